package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nftfolio/batch-lister/internal/feeoracle"
	"go.uber.org/zap"
)

// ApplyFeeQuote applies a resolved fee quote to a single row. When the quote
// reports listing disabled, the row is evicted, the owning item is pruned
// from the selection if this was its last row, and a one-shot notice is
// raised. Replace-by-key is commutative for distinct keys, so quotes for
// different rows may land in any order.
func (b *Builder) ApplyFeeQuote(key Key, quote feeoracle.Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, found := b.indexOfLocked(key)
	if !found {
		return
	}

	if !quote.ListingEnabled {
		row := b.listings[i]
		marketplace, _ := b.marketplaceForLocked(row.Orderbook)
		b.removeListingLocked(key.Token, key.Orderbook)
		RowEvictionsTotal.Inc()

		b.logger.Info("row-evicted-listing-disabled",
			zap.String("token", key.Token),
			zap.String("orderbook", key.Orderbook),
			zap.String("collection", row.Token.Collection.ID))

		if b.notifier != nil {
			b.notifier.Notify(
				"Listing not enabled",
				fmt.Sprintf("Cannot list %s on %s", row.Token.Name, marketplace.Name),
			)
		}
		return
	}

	b.listings[i].FeeBps = quote.Bps
	b.listings[i] = recomputeFee(b.listings[i])
	FeeQuotesAppliedTotal.Inc()
}

// Resolver resolves marketplace fees for rows on fee-charging orderbooks.
// Each row is an isolated task: its quote updates only that row.
type Resolver struct {
	builder *Builder
	oracle  feeoracle.Oracle
	logger  *zap.Logger
	timeout time.Duration
}

// ResolverConfig holds resolver configuration.
type ResolverConfig struct {
	Builder *Builder
	Oracle  feeoracle.Oracle
	Logger  *zap.Logger
	Timeout time.Duration // per-lookup timeout
}

// NewResolver creates a new fee resolver.
func NewResolver(cfg *ResolverConfig) *Resolver {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Resolver{
		builder: cfg.Builder,
		oracle:  cfg.Oracle,
		logger:  cfg.Logger,
		timeout: timeout,
	}
}

// ResolveAll resolves fees for every row whose marketplace charges them and
// blocks until all lookups have been applied.
func (r *Resolver) ResolveAll(ctx context.Context) {
	var wg sync.WaitGroup

	for _, l := range r.builder.Listings() {
		marketplace, found := r.builder.MarketplaceFor(l.Orderbook)
		if !found || !marketplace.ChargesFees {
			continue
		}

		wg.Add(1)
		go func(row CandidateListing) {
			defer wg.Done()
			r.resolveRow(ctx, row)
		}(l)
	}

	wg.Wait()
}

func (r *Resolver) resolveRow(ctx context.Context, row CandidateListing) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	quote, err := r.oracle.CollectionFees(lookupCtx, row.Token.Collection.ID)
	if err != nil {
		// Non-fatal: the row keeps an unresolved fee and remains listable.
		r.logger.Warn("fee-lookup-failed",
			zap.String("token", row.Token.Key()),
			zap.String("collection", row.Token.Collection.ID),
			zap.Error(err))
		return
	}

	r.builder.ApplyFeeQuote(row.Key(), quote)
}

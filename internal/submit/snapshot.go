package submit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/pkg/types"
	"github.com/shopspring/decimal"
)

// SnapshotEntry pairs a finalized listing payload with its source token.
type SnapshotEntry struct {
	Payload types.ListingPayload
	Token   types.Token
}

// Snapshot is the immutable listing set handed to the execution service.
// A new submission attempt always builds a new snapshot.
type Snapshot struct {
	Entries   []SnapshotEntry
	Currency  types.Currency
	CreatedAt time.Time
}

// Payloads returns the finalized payloads in snapshot order.
func (s *Snapshot) Payloads() []types.ListingPayload {
	payloads := make([]types.ListingPayload, len(s.Entries))
	for i, e := range s.Entries {
		payloads[i] = e.Payload
	}
	return payloads
}

// BuildSnapshot finalizes the working set at submit time. The minor-unit
// amount is price * 10^decimals * quantity computed in decimal arithmetic,
// so inputs with many significant digits convert without rounding error.
// Expiration is resolved to an absolute unix timestamp only when the row
// carries a relative policy; the currency contract is included only when it
// differs from the native zero-address sentinel.
func BuildSnapshot(listings []listing.CandidateListing, currency types.Currency, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		Entries:   make([]SnapshotEntry, 0, len(listings)),
		Currency:  currency,
		CreatedAt: now,
	}

	for _, l := range listings {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q for %s: %w", l.Price, l.Token.Key(), err)
		}

		wei := price.
			Shift(currency.Decimals).
			Mul(decimal.NewFromInt(int64(l.Quantity))).
			Truncate(0)

		payload := types.ListingPayload{
			Token:     l.Token.Key(),
			WeiPrice:  wei.String(),
			Orderbook: l.Orderbook,
			OrderKind: l.OrderKind,
			Quantity:  l.Quantity,
		}

		if l.ExpirationOption.HasExpiration() {
			payload.ExpirationTime = strconv.FormatInt(l.ExpirationOption.AbsoluteTime(now).Unix(), 10)
		}

		if !currency.IsNative() {
			payload.Currency = currency.Contract
		}

		snap.Entries = append(snap.Entries, SnapshotEntry{
			Payload: payload,
			Token:   l.Token,
		})
	}

	return snap, nil
}

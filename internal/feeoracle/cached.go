package feeoracle

import (
	"context"
	"fmt"
	"time"

	"github.com/nftfolio/batch-lister/pkg/cache"
)

// CachedOracle wraps an Oracle with caching. Fee quotes change rarely, so a
// missed update only affects the displayed fee, never the executed order.
type CachedOracle struct {
	oracle Oracle
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedOracle creates a new cached fee oracle.
func NewCachedOracle(oracle Oracle, c cache.Cache, ttl time.Duration) *CachedOracle {
	return &CachedOracle{
		oracle: oracle,
		cache:  c,
		ttl:    ttl,
	}
}

// CollectionFees fetches a collection's fee quote with caching.
func (c *CachedOracle) CollectionFees(ctx context.Context, collectionID string) (Quote, error) {
	cacheKey := fmt.Sprintf("fees:%s", collectionID)

	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			if quote, ok := cached.(Quote); ok {
				QuoteCacheHitsTotal.Inc()
				return quote, nil
			}
		}
		QuoteCacheMissesTotal.Inc()
	}

	quote, err := c.oracle.CollectionFees(ctx, collectionID)
	if err != nil {
		return quote, err
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, quote, c.ttl)
	}

	return quote, nil
}

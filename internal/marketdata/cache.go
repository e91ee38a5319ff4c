package marketdata

import (
	"context"
	"strings"
	"sync"
	"time"

	"stock-risk-explorer/internal/interfaces"
	"stock-risk-explorer/internal/logger"
	"stock-risk-explorer/internal/types"
)

// CachedProvider wraps a provider with an in-memory TTL cache so repeated
// lookups within a run do not hammer the upstream source. An optional
// SnapshotStore persists entries across runs.
type CachedProvider struct {
	inner interfaces.MarketDataProvider
	ttl   time.Duration
	store *SnapshotStore

	mu           sync.RWMutex
	fundamentals map[string]fundamentalsEntry
	history      map[string]historyEntry
}

type fundamentalsEntry struct {
	data      *types.Fundamentals
	expiresAt time.Time
}

type historyEntry struct {
	data      types.PriceSeries
	expiresAt time.Time
}

// NewCachedProvider wraps inner with a TTL cache. store may be nil to
// disable persistence.
func NewCachedProvider(inner interfaces.MarketDataProvider, ttl time.Duration, store *SnapshotStore) *CachedProvider {
	return &CachedProvider{
		inner:        inner,
		ttl:          ttl,
		store:        store,
		fundamentals: make(map[string]fundamentalsEntry),
		history:      make(map[string]historyEntry),
	}
}

func (c *CachedProvider) FetchFundamentals(ctx context.Context, symbol string) (*types.Fundamentals, error) {
	key := cacheKey(symbol)

	c.mu.RLock()
	entry, ok := c.fundamentals[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		logger.Debug(ctx, "Fundamentals cache hit", "symbol", key)
		return entry.data, nil
	}

	if c.store != nil {
		var f types.Fundamentals
		hit, err := c.store.Get(key, snapshotFundamentals, c.ttl, &f)
		if err != nil {
			logger.Warn(ctx, "Snapshot read failed", "symbol", key, "error", err)
		} else if hit {
			logger.Debug(ctx, "Fundamentals snapshot hit", "symbol", key)
			c.putFundamentals(key, &f)
			return &f, nil
		}
	}

	f, err := c.inner.FetchFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	c.putFundamentals(key, f)
	if c.store != nil && f != nil {
		if err := c.store.Put(key, snapshotFundamentals, f); err != nil {
			logger.Warn(ctx, "Snapshot write failed", "symbol", key, "error", err)
		}
	}
	return f, nil
}

func (c *CachedProvider) FetchDailyHistory(ctx context.Context, symbol string, years int) (types.PriceSeries, error) {
	key := cacheKey(symbol)

	c.mu.RLock()
	entry, ok := c.history[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		logger.Debug(ctx, "History cache hit", "symbol", key)
		return entry.data, nil
	}

	if c.store != nil {
		var series types.PriceSeries
		hit, err := c.store.Get(key, snapshotHistory, c.ttl, &series)
		if err != nil {
			logger.Warn(ctx, "Snapshot read failed", "symbol", key, "error", err)
		} else if hit && len(series) > 0 {
			logger.Debug(ctx, "History snapshot hit", "symbol", key)
			c.putHistory(key, series)
			return series, nil
		}
	}

	series, err := c.inner.FetchDailyHistory(ctx, symbol, years)
	if err != nil {
		return nil, err
	}
	c.putHistory(key, series)
	if c.store != nil && len(series) > 0 {
		if err := c.store.Put(key, snapshotHistory, series); err != nil {
			logger.Warn(ctx, "Snapshot write failed", "symbol", key, "error", err)
		}
	}
	return series, nil
}

func (c *CachedProvider) putFundamentals(key string, f *types.Fundamentals) {
	c.mu.Lock()
	c.fundamentals[key] = fundamentalsEntry{data: f, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *CachedProvider) putHistory(key string, series types.PriceSeries) {
	c.mu.Lock()
	c.history[key] = historyEntry{data: series, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func cacheKey(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

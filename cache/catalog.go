package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// Catalog is the read-through cache for slow-changing catalog entities.
// Backend failures are logged and treated as misses.
type Catalog struct {
	store Store
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewCatalog(store Store, ttl time.Duration, log logrus.FieldLogger) *Catalog {
	if store == nil {
		store = NoopStore{}
	}
	return &Catalog{store: store, ttl: ttl, log: log}
}

// GetOrLoad returns the cached value for key, or calls load and caches its result.
func GetOrLoad[T any](ctx context.Context, c *Catalog, key string, load func(context.Context) (T, error)) (T, error) {
	return GetOrLoadTTL(ctx, c, key, c.ttl, load)
}

func GetOrLoadTTL[T any](ctx context.Context, c *Catalog, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	entry := c.log.WithField("key", key)

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		entry.WithError(err).Warn("cache get failed")
	}
	if ok {
		var cached T
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			entry.Debug("cache HIT")
			return cached, nil
		}
		entry.WithError(err).Warn("cache entry undecodable")
	}

	entry.Debug("cache MISS")
	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err != nil {
		entry.WithError(err).Warn("cache encode failed")
	} else if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		entry.WithError(err).Warn("cache set failed")
	}
	return value, nil
}

// Invalidate drops every entry matching each pattern.
func (c *Catalog) Invalidate(ctx context.Context, patterns ...string) {
	for _, pattern := range patterns {
		if err := c.store.DeletePattern(ctx, pattern); err != nil {
			c.log.WithError(err).WithField("pattern", pattern).Warn("cache invalidate failed")
			continue
		}
		c.log.WithField("pattern", pattern).Debug("cache invalidated")
	}
}

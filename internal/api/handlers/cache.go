package handlers

import (
	"context"

	"github.com/wonny/rostercast/pkg/logger"
	"github.com/wonny/rostercast/pkg/redis"
)

// dropEntry evicts a cache entry that could not be read back so the next
// request recomputes and rewrites it
func dropEntry(ctx context.Context, cache *redis.Cache, log *logger.Logger, key string) {
	if err := cache.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache evict failed")
	}
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"eventlistings/internal/domain"
	"eventlistings/internal/lib/logger/sl"

	"github.com/redis/go-redis/v9"
)

// GenresKey is the cache key holding the JSON-encoded genre list.
const GenresKey = "genres:with_counts"

// GenreCache is a read-through cache in front of another GenreRepository.
// Cache failures are logged and never fail the read.
type GenreCache struct {
	client redis.Cmdable
	next   domain.GenreRepository
	ttl    time.Duration
	log    *slog.Logger
}

// NewGenreCache wraps next with a Redis cache whose entries expire after ttl.
func NewGenreCache(client redis.Cmdable, next domain.GenreRepository, ttl time.Duration, log *slog.Logger) *GenreCache {
	return &GenreCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *GenreCache) ListWithCounts(ctx context.Context) ([]*domain.Genre, error) {
	const op = "repository.redis.GenreCache.ListWithCounts"
	log := c.log.With(slog.String("op", op))

	data, err := c.client.Get(ctx, GenresKey).Bytes()
	switch {
	case err == nil:
		var genres []*domain.Genre
		if err := json.Unmarshal(data, &genres); err == nil {
			return genres, nil
		}
		log.Warn("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn("cache read failed", sl.Err(err))
	}

	genres, err := c.next.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(genres)
	if err != nil {
		log.Warn("cache encode failed", sl.Err(err))
		return genres, nil
	}
	if err := c.client.Set(ctx, GenresKey, payload, c.ttl).Err(); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}
	return genres, nil
}

// NewClient returns a go-redis client for addr using the default database.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
}

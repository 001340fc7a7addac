package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-lookup-service/internal/catalog"
	"movie-lookup-service/internal/models"
	"movie-lookup-service/internal/registry"
)

const searchCacheTTL = 5 * time.Minute

// LookupService handles movie searches on behalf of a user: it
// registers the caller, records the raw query in their history and
// answers from the catalog, with a Redis read-through cache in front.
type LookupService struct {
	catalog *catalog.Catalog
	store   registry.Store
	redis   *redis.Client
}

// NewLookupService creates a new LookupService. rdb may be nil; the
// service then runs without a cache.
func NewLookupService(cat *catalog.Catalog, store registry.Store, rdb *redis.Client) *LookupService {
	return &LookupService{catalog: cat, store: store, redis: rdb}
}

// Search registers userID, appends query to their history and returns
// the matching catalog records. The query is stored verbatim; matching
// is case-insensitive.
func (s *LookupService) Search(ctx context.Context, userID, query string) ([]models.MovieRecord, error) {
	if err := s.store.Register(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.store.RecordHistory(ctx, userID, query); err != nil {
		return nil, err
	}
	return s.lookup(ctx, query), nil
}

// Lookup answers a catalog query without touching any user state.
func (s *LookupService) Lookup(ctx context.Context, query string) []models.MovieRecord {
	return s.lookup(ctx, query)
}

func (s *LookupService) lookup(ctx context.Context, query string) []models.MovieRecord {
	cacheKey := fmt.Sprintf("search:%s", query)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var results []models.MovieRecord
		if json.Unmarshal([]byte(cached), &results) == nil {
			return results
		}
	}

	results := s.catalog.Search(query)

	if data, err := json.Marshal(results); err == nil {
		s.setCache(ctx, cacheKey, string(data), searchCacheTTL)
	}
	return results
}

// Redis helpers

func (s *LookupService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *LookupService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

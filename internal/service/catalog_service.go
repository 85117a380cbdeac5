package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/persistence"
	"github.com/spec-kit/rma-portal/internal/repository"
)

const catalogCacheKey = "catalog:error-types:active"

// CatalogCache is the subset of the redis wrapper the catalog needs;
// kept narrow so tests can stub it.
type CatalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CatalogService serves the active error-type catalog, caching the listing
// in Redis. Cache failures degrade silently to the database.
type CatalogService struct {
	errorTypes repository.ErrorTypeRepository
	cache      CatalogCache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewCatalogService constructs the service. cache may be nil to disable caching.
func NewCatalogService(errorTypes repository.ErrorTypeRepository, cache CatalogCache, ttl time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		errorTypes: errorTypes,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// ListActive returns the active subset of the catalog.
func (s *CatalogService) ListActive(ctx context.Context) ([]domain.ErrorType, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	listing, err := s.errorTypes.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, listing)
	return listing, nil
}

// GetActive returns one active catalog entry, or nil when the id is
// unknown or inactive.
func (s *CatalogService) GetActive(ctx context.Context, id string) (*domain.ErrorType, error) {
	listing, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range listing {
		if listing[i].ID == id {
			return &listing[i], nil
		}
	}
	return nil, nil
}

func (s *CatalogService) fromCache(ctx context.Context) ([]domain.ErrorType, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		if !persistence.IsCacheMiss(err) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var listing []domain.ErrorType
	if err := json.Unmarshal([]byte(raw), &listing); err != nil {
		s.logger.Warn("catalog cache entry unreadable", zap.Error(err))
		return nil, false
	}
	return listing, true
}

func (s *CatalogService) toCache(ctx context.Context, listing []domain.ErrorType) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(listing)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey, string(raw), s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

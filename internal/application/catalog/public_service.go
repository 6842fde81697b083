package catalog

import (
	"context"
	"strconv"
	"time"

	"github.com/intercel/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// Cache keys of the public read models. Entries are stored under
// "<key>:<generation>" and the generation counter lives under PublicCacheGenerationKey.
const (
	PublicPlansCacheKey      = "catalog:public:plans"
	PublicCategoriesCacheKey = "catalog:public:categories"
	PublicCacheGenerationKey = "catalog:public:generation"
)

// ProjectionCache stores rendered public read models for a short time.
// It is never the source of truth: every catalog write bumps the generation,
// and entries written for an older generation are never read again.
type ProjectionCache interface {
	// Get loads the value stored under key into dest and reports whether it was present
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error
	// Increment atomically adds one to the integer stored under key and returns the new value
	Increment(ctx context.Context, key string) (int64, error)
}

// GenerationKey returns the cache key of a read model for one generation
func GenerationKey(key string, generation int64) string {
	return key + ":" + strconv.FormatInt(generation, 10)
}

// PublicCacheKeys returns every read model key of one generation
func PublicCacheKeys(generation int64) []string {
	return []string{
		GenerationKey(PublicPlansCacheKey, generation),
		GenerationKey(PublicCategoriesCacheKey, generation),
	}
}

// PublicCatalogService serves the storefront view of the catalog
type PublicCatalogService struct {
	txScope      TransactionScope
	cache        ProjectionCache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// PublicCatalogServiceConfig holds the collaborators of PublicCatalogService.
// A nil Cache makes every call query the store. Without a TxScope the two reads
// of a projection run outside any transaction.
type PublicCatalogServiceConfig struct {
	CategoryRepo catalog.CategoryRepository
	PlanRepo     catalog.PlanRepository
	TxScope      TransactionScope
	Cache        ProjectionCache
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

// NewPublicCatalogService creates a new PublicCatalogService
func NewPublicCatalogService(cfg PublicCatalogServiceConfig) *PublicCatalogService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	txScope := cfg.TxScope
	if txScope == nil {
		txScope = NewNoOpTransactionScope(cfg.CategoryRepo, cfg.PlanRepo)
	}
	return &PublicCatalogService{
		txScope:      txScope,
		cache:        cfg.Cache,
		cacheTTL:     cfg.CacheTTL,
		logger:       logger,
	}
}

// Plans returns the active categories in display order, each with its active plans
func (s *PublicCatalogService) Plans(ctx context.Context) ([]catalog.PublicCategory, error) {
	key, cacheable := s.cacheKey(ctx, PublicPlansCacheKey)
	var cached []catalog.PublicCategory
	if cacheable && s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	categories, plans, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	projection := catalog.ProjectPublicCatalog(categories, plans)
	if cacheable {
		s.toCache(ctx, key, projection)
	}
	return projection, nil
}

// Categories returns the active categories with their active plan counts
func (s *PublicCatalogService) Categories(ctx context.Context) ([]catalog.PublicCategorySummary, error) {
	key, cacheable := s.cacheKey(ctx, PublicCategoriesCacheKey)
	var cached []catalog.PublicCategorySummary
	if cacheable && s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	categories, plans, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	summaries := catalog.SummarizePublicCategories(categories, plans)
	if cacheable {
		s.toCache(ctx, key, summaries)
	}
	return summaries, nil
}

// loadActive reads the active categories and plans from one snapshot, so a
// concurrent cascade delete or reorder is seen entirely or not at all.
func (s *PublicCatalogService) loadActive(ctx context.Context) ([]catalog.Category, []catalog.Plan, error) {
	active := true
	var (
		categories []catalog.Category
		plans      []catalog.Plan
	)
	err := s.txScope.ReadSnapshot(ctx, func(repos TransactionalRepositories) error {
		var err error
		categories, err = repos.CategoryRepo().FindAll(ctx, catalog.CategoryFilter{IsActive: &active})
		if err != nil {
			return err
		}
		plans, err = repos.PlanRepo().FindAll(ctx, catalog.PlanFilter{IsActive: &active})
		return err
	})
	if err != nil {
		return nil, nil, storageError(err)
	}
	return categories, plans, nil
}

// cacheKey resolves key for the current generation. The generation is read
// before the store, so a projection loaded before a write lands under the old
// generation and is never served after the write invalidates the cache.
func (s *PublicCatalogService) cacheKey(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	var generation int64
	if _, err := s.cache.Get(ctx, PublicCacheGenerationKey, &generation); err != nil {
		s.logger.Warn("Public catalog cache generation read failed", zap.Error(err))
		return "", false
	}
	return GenerationKey(key, generation), true
}

func (s *PublicCatalogService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Public catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *PublicCatalogService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("Public catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

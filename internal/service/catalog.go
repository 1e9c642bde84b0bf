package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/pkg/trm"
	"github.com/sixlab/storefront/pkg/utils"
)

const catalogCacheKey = "catalog:list"

type ProductRepo interface {
	ListProducts(ctx context.Context) ([]entities.Product, error)
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
	UpsertProducts(ctx context.Context, products []entities.Product) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type catalogService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      ProductRepo
	cache     Cache
}

func NewCatalogService(logger *slog.Logger, txManager trm.Manager, repo ProductRepo, cache Cache) *catalogService {
	return &catalogService{
		logger:    logger.With(slog.String("service", "catalog")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
	}
}

// SyncCatalog upserts the seed catalog in one transaction and drops the
// cached listing so the next read sees the fresh rows.
func (s *catalogService) SyncCatalog(ctx context.Context, products []entities.Product) error {
	if len(products) == 0 {
		return nil
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.UpsertProducts(ctx, products)
	})
	if err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	s.cache.Delete(catalogCacheKey)
	s.logger.Info("catalog synced", slog.Int("products", len(products)))
	return nil
}

// ListProducts serves the catalog through the LRU cache. The catalog
// changes rarely, so a short TTL keeps it fresh enough.
func (s *catalogService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	if data, ok := s.cache.Get(catalogCacheKey); ok {
		var products entities.ProductList
		if err := products.Unmarshal(data); err == nil {
			return products, nil
		}
		s.logger.Warn("failed to unmarshal cached catalog, refetching")
	}

	var products entities.ProductList
	fn := func() error {
		var err error
		products, err = s.repo.ListProducts(ctx)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if data, err := products.Marshal(); err == nil {
		s.cache.Set(catalogCacheKey, data)
	}
	return products, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	return product, nil
}

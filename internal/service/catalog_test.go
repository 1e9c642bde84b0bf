package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/internal/service"
	"github.com/sixlab/storefront/pkg/trm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTxManager struct {
	calls int
}

func (m *stubTxManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nil, errors.New("not used in tests")
}

func (m *stubTxManager) Do(ctx context.Context, cb func(ctx context.Context) error) error {
	m.calls++
	return cb(ctx)
}

type stubProductRepo struct {
	products []entities.Product
	listErrs []error
	upserted []entities.Product

	listCalls int
}

func (r *stubProductRepo) ListProducts(context.Context) ([]entities.Product, error) {
	r.listCalls++
	if len(r.listErrs) > 0 {
		err := r.listErrs[0]
		r.listErrs = r.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return r.products, nil
}

func (r *stubProductRepo) GetProductByID(_ context.Context, id string) (entities.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return entities.Product{}, entities.ErrProductNotFound
}

func (r *stubProductRepo) UpsertProducts(_ context.Context, products []entities.Product) error {
	r.upserted = products
	return nil
}

type mapCache map[string][]byte

func (c mapCache) Get(key string) ([]byte, bool) {
	v, ok := c[key]
	return v, ok
}

func (c mapCache) Set(key string, value []byte) { c[key] = value }
func (c mapCache) Delete(key string)            { delete(c, key) }

var catalogProducts = []entities.Product{
	{ID: "item-01", Name: "Classic Tee", Collection: "essentials", Price: 450},
	{ID: "item-04", Name: "Wool Coat", Collection: "winter", Price: 3450},
}

func TestCatalogService_ListProducts(t *testing.T) {
	t.Run("miss fetches and caches", func(t *testing.T) {
		repo := &stubProductRepo{products: catalogProducts}
		cache := mapCache{}
		svc := service.NewCatalogService(testLogger(), &stubTxManager{}, repo, cache)

		got, err := svc.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, catalogProducts, got)
		assert.Equal(t, 1, repo.listCalls)
		assert.Contains(t, cache, "catalog:list")

		// Second read is served from cache.
		got, err = svc.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, catalogProducts, got)
		assert.Equal(t, 1, repo.listCalls)
	})

	t.Run("corrupt cache entry falls back to repo", func(t *testing.T) {
		repo := &stubProductRepo{products: catalogProducts}
		cache := mapCache{"catalog:list": []byte("broken")}
		svc := service.NewCatalogService(testLogger(), &stubTxManager{}, repo, cache)

		got, err := svc.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, catalogProducts, got)
		assert.Equal(t, 1, repo.listCalls)
	})

	t.Run("transient repo failure is retried", func(t *testing.T) {
		repo := &stubProductRepo{
			products: catalogProducts,
			listErrs: []error{errors.New("connection reset")},
		}
		svc := service.NewCatalogService(testLogger(), &stubTxManager{}, repo, mapCache{})

		got, err := svc.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, catalogProducts, got)
		assert.Equal(t, 2, repo.listCalls)
	})

	t.Run("persistent failure surfaces", func(t *testing.T) {
		dbErr := errors.New("db down")
		repo := &stubProductRepo{listErrs: []error{dbErr, dbErr, dbErr}}
		svc := service.NewCatalogService(testLogger(), &stubTxManager{}, repo, mapCache{})

		_, err := svc.ListProducts(context.Background())
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCatalogService_SyncCatalog(t *testing.T) {
	repo := &stubProductRepo{products: catalogProducts}
	tx := &stubTxManager{}
	cache := mapCache{"catalog:list": []byte("stale")}
	svc := service.NewCatalogService(testLogger(), tx, repo, cache)

	err := svc.SyncCatalog(context.Background(), catalogProducts)
	require.NoError(t, err)

	assert.Equal(t, catalogProducts, repo.upserted)
	assert.Equal(t, 1, tx.calls)
	assert.NotContains(t, cache, "catalog:list")
}

func TestCatalogService_SyncCatalog_EmptyIsNoop(t *testing.T) {
	repo := &stubProductRepo{}
	tx := &stubTxManager{}
	svc := service.NewCatalogService(testLogger(), tx, repo, mapCache{})

	require.NoError(t, svc.SyncCatalog(context.Background(), nil))
	assert.Zero(t, tx.calls)
	assert.Nil(t, repo.upserted)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	svc := service.NewCatalogService(testLogger(), &stubTxManager{}, &stubProductRepo{products: catalogProducts}, mapCache{})

	product, err := svc.GetProductByID(context.Background(), "item-01")
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", product.Name)

	_, err = svc.GetProductByID(context.Background(), "item-99")
	assert.ErrorIs(t, err, entities.ErrProductNotFound)
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sixlab/storefront/internal/entities"
	"github.com/sixlab/storefront/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query, args := r.qb.Select("id", "name", "collection", "price", "images", "created_at").
		From("products").
		OrderBy("collection", "id").
		MustSql()

	var products []Product
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	result := make([]entities.Product, 0, len(products))
	for _, p := range products {
		result = append(result, p.toEntity())
	}
	return result, nil
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	query, args := r.qb.Select("id", "name", "collection", "price", "images", "created_at").
		From("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	var product Product
	err := r.getContext(ctx, &product, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to select product: %w", err)
	}
	return product.toEntity(), nil
}

// UpsertProducts refreshes the catalog seed. Idempotent via ON CONFLICT.
func (r *postgresRepo) UpsertProducts(ctx context.Context, products []entities.Product) error {
	builder := r.qb.Insert("products").
		Columns("id", "name", "collection", "price", "images").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			collection = EXCLUDED.collection,
			price = EXCLUDED.price,
			images = EXCLUDED.images`)

	for _, p := range products {
		builder = builder.Values(p.ID, p.Name, p.Collection, p.Price, pq.Array(p.Images))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}

	if err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert products: %w", err)
	}
	return nil
}

// Queries run in the ambient transaction when one is bound to ctx.

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) error {
	var err error
	if tx := trm.ExtractTx(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	return err
}

package repo

import (
	"time"

	"github.com/lib/pq"
	"github.com/sixlab/storefront/internal/entities"
)

type Product struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Collection string         `db:"collection"`
	Price      int            `db:"price"`
	Images     pq.StringArray `db:"images"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (p Product) toEntity() entities.Product {
	return entities.Product{
		ID:         p.ID,
		Name:       p.Name,
		Collection: p.Collection,
		Price:      p.Price,
		Images:     p.Images,
		CreatedAt:  p.CreatedAt,
	}
}

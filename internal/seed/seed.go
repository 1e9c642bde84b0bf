// Package seed carries the built-in product catalog, applied on startup.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/sixlab/storefront/internal/entities"
)

//go:embed products.json
var productsJSON []byte

type product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Collection string   `json:"collection"`
	Price      int      `json:"price"`
	Images     []string `json:"images"`
}

func Products() ([]entities.Product, error) {
	var raw []product
	if err := json.Unmarshal(productsJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse product seed: %w", err)
	}

	products := make([]entities.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, entities.Product{
			ID:         p.ID,
			Name:       p.Name,
			Collection: p.Collection,
			Price:      p.Price,
			Images:     p.Images,
		})
	}
	return products, nil
}

package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"
)

type Product struct {
	ID         string
	Name       string
	Collection string
	Price      int
	Images     []string
	CreatedAt  time.Time
}

var ErrProductNotFound = errors.New("product not found")

// ProductList is gob-encoded for the catalog cache.
type ProductList []Product

func (l *ProductList) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *ProductList) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(l)
}

func init() {
	gob.Register(Product{})
}

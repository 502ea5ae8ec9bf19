// Package catalog holds store reference data and product matching.
package catalog

import (
	"context"
	"strings"

	"supermarket-comparator/internal/geo"
)

// Product is one catalog entry, scoped to its store. Immutable once loaded.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	Category  string  `json:"category"`
	Barcode   string  `json:"barcode,omitempty"`
}

// Store is a retailer with its own catalog and location. Reference data for
// the whole session; the engine never mutates it.
type Store struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Location geo.Coordinate `json:"location"`
	Address  string         `json:"address,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Hours    string         `json:"hours,omitempty"`
	Products []Product      `json:"products"`
}

// LookupExact finds a product by exact case-insensitive name match. Used by
// the evaluator, which works on already-resolved item names.
func (s *Store) LookupExact(name string) *Product {
	lower := strings.ToLower(name)
	for i := range s.Products {
		if strings.ToLower(s.Products[i].Name) == lower {
			return &s.Products[i]
		}
	}
	return nil
}

// Catalog is the full set of stores. Slice order is the iteration order used
// for every first-match-wins tie-break, so it stays stable for a session.
type Catalog struct {
	Stores []Store `json:"stores"`
}

// StoreNames returns store names in catalog order.
func (c *Catalog) StoreNames() []string {
	names := make([]string, len(c.Stores))
	for i := range c.Stores {
		names[i] = c.Stores[i].Name
	}
	return names
}

// StoreByName returns the store with the given name, or nil.
func (c *Catalog) StoreByName(name string) *Store {
	for i := range c.Stores {
		if c.Stores[i].Name == name {
			return &c.Stores[i]
		}
	}
	return nil
}

// Source loads a catalog from some backing store (file, database, cache).
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

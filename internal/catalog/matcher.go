package catalog

import "strings"

// Match is a resolved free-text query: the product plus the store it was
// found in.
type Match struct {
	Product *Product
	Store   *Store
}

// FindProduct resolves a free-text token to the first matching product across
// stores in catalog order. The rule is deliberately permissive: a product
// matches when its lowercased name contains the token, or the token contains
// the product's first word. No similarity ranking; first match wins.
//
// Returns ok=false when nothing matches. That is a skip/notify signal for the
// caller, never an error.
func (c *Catalog) FindProduct(token string) (Match, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return Match{}, false
	}

	for si := range c.Stores {
		store := &c.Stores[si]
		for pi := range store.Products {
			name := strings.ToLower(store.Products[pi].Name)
			firstWord := name
			if idx := strings.IndexByte(name, ' '); idx >= 0 {
				firstWord = name[:idx]
			}

			if strings.Contains(name, token) || strings.Contains(token, firstWord) {
				return Match{Product: &store.Products[pi], Store: store}, true
			}
		}
	}

	return Match{}, false
}

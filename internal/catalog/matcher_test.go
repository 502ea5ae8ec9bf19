package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-comparator/internal/geo"
)

// ==========================
// Test Helpers
// ==========================

func createTestCatalog() *Catalog {
	return &Catalog{
		Stores: []Store{
			{
				ID:       "alpha",
				Name:     "Alpha",
				Location: geo.Coordinate{Lat: -32.89, Lng: -68.84},
				Products: []Product{
					{ID: "p1", Name: "Leche Entera 1L", Price: 1350, Available: true, Category: "lácteos"},
					{ID: "p2", Name: "Arroz Largo Fino 1Kg", Price: 1400, Available: true, Category: "almacén"},
				},
			},
			{
				ID:       "beta",
				Name:     "Beta",
				Location: geo.Coordinate{Lat: -32.88, Lng: -68.85},
				Products: []Product{
					{ID: "p3", Name: "Leche Descremada 1L", Price: 1200, Available: true, Category: "lácteos"},
					{ID: "p4", Name: "Detergente 750ml", Price: 950, Available: true, Category: "limpieza"},
				},
			},
		},
	}
}

// ==========================
// Fuzzy Matcher Tests
// ==========================

func TestFindProduct(t *testing.T) {
	cat := createTestCatalog()

	tests := []struct {
		name        string
		token       string
		wantMatch   bool
		wantProduct string
		wantStore   string
	}{
		{
			name:        "substring match",
			token:       "lech",
			wantMatch:   true,
			wantProduct: "Leche Entera 1L",
			wantStore:   "Alpha",
		},
		{
			name:      "token containing first word does not match superstring",
			token:     "lechita",
			wantMatch: false,
		},
		{
			name:        "token contains product first word",
			token:       "leche entera de campo",
			wantMatch:   true,
			wantProduct: "Leche Entera 1L",
			wantStore:   "Alpha",
		},
		{
			name:        "case insensitive",
			token:       "DETERGENTE",
			wantMatch:   true,
			wantProduct: "Detergente 750ml",
			wantStore:   "Beta",
		},
		{
			name:      "no match",
			token:     "paraguas",
			wantMatch: false,
		},
		{
			name:      "empty token",
			token:     "   ",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := cat.FindProduct(tt.token)
			if !tt.wantMatch {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantProduct, match.Product.Name)
			assert.Equal(t, tt.wantStore, match.Store.Name)
		})
	}
}

func TestFindProductFirstStoreWins(t *testing.T) {
	// Both stores stock a "Leche ..." product; catalog order decides.
	cat := createTestCatalog()

	match, ok := cat.FindProduct("leche")
	require.True(t, ok)
	assert.Equal(t, "Alpha", match.Store.Name)
	assert.Equal(t, "Leche Entera 1L", match.Product.Name)
}

// ==========================
// Exact Lookup Tests
// ==========================

func TestLookupExact(t *testing.T) {
	store := &createTestCatalog().Stores[0]

	assert.NotNil(t, store.LookupExact("leche entera 1l"))
	assert.NotNil(t, store.LookupExact("LECHE ENTERA 1L"))
	assert.Nil(t, store.LookupExact("leche"))
	assert.Nil(t, store.LookupExact("leche entera"))
}

func TestStoreHelpers(t *testing.T) {
	cat := createTestCatalog()

	assert.Equal(t, []string{"Alpha", "Beta"}, cat.StoreNames())
	require.NotNil(t, cat.StoreByName("Beta"))
	assert.Nil(t, cat.StoreByName("Gamma"))
}

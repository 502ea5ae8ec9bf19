package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/common/logger"
)

const validDocument = `{
  "stores": [
    {
      "id": "alpha",
      "name": "Alpha",
      "location": {"lat": -32.89, "lng": -68.84},
      "address": "Av. San Martín 1234",
      "products": [
        {"id": "p1", "name": "Leche Entera 1L", "brand": "La Lechera", "price": 1350, "available": true, "category": "lácteos"}
      ]
    }
  ]
}`

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceLoad(t *testing.T) {
	path := writeTempCatalog(t, validDocument)
	source := NewFileSource(path, logger.NewTestLogger(t))

	cat, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Stores, 1)

	store := cat.Stores[0]
	assert.Equal(t, "Alpha", store.Name)
	assert.Equal(t, "Av. San Martín 1234", store.Address)
	require.Len(t, store.Products, 1)
	assert.Equal(t, 1350.0, store.Products[0].Price)
	assert.True(t, store.Products[0].Available)
}

func TestFileSourceLoadMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), logger.NewTestLogger(t))

	_, err := source.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogLoadFailed))
}

func TestFileSourceLoadInvalidSchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing stores key",
			content: `{"markets": []}`,
		},
		{
			name: "negative price",
			content: `{"stores": [{"name": "X", "location": {"lat": 0, "lng": 0},
				"products": [{"name": "p", "price": -1, "available": true, "category": "c"}]}]}`,
		},
		{
			name: "latitude out of range",
			content: `{"stores": [{"name": "X", "location": {"lat": 95, "lng": 0}, "products": []}]}`,
		},
		{
			name: "missing location",
			content: `{"stores": [{"name": "X", "products": []}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCatalog(t, tt.content)
			source := NewFileSource(path, logger.NewTestLogger(t))

			_, err := source.Load(context.Background())
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogSchemaInvalid))
		})
	}
}

func TestValidateDocumentMalformedJSON(t *testing.T) {
	err := ValidateDocument([]byte(`{not json`))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogSchemaInvalid))
}

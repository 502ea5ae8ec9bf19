package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-comparator/internal/catalog"
	apperrors "supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/common/events"
	"supermarket-comparator/internal/common/logger"
	"supermarket-comparator/internal/geo"
)

// ==========================
// Test Helpers
// ==========================

func createTestCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Stores: []catalog.Store{
			{
				ID:       "alpha",
				Name:     "Alpha",
				Location: geo.Coordinate{Lat: -32.89, Lng: -68.84},
				Products: []catalog.Product{
					{ID: "p1", Name: "Leche Entera 1L", Brand: "La Lechera", Price: 1350, Available: true, Category: "lácteos"},
					{ID: "p2", Name: "Arroz Largo Fino 1Kg", Price: 1400, Available: true, Category: "almacén"},
					{ID: "p3", Name: "Detergente 750ml", Price: 1000, Available: true, Category: "limpieza"},
				},
			},
		},
	}
}

func createTestManager(t *testing.T) *Manager {
	return NewManager(createTestCatalog(), events.NewBus(), logger.NewTestLogger(t))
}

// ==========================
// Add Tests
// ==========================

func TestAddResolvesAndNormalizes(t *testing.T) {
	m := createTestManager(t)

	item, err := m.Add("Leche")
	require.NoError(t, err)
	assert.Equal(t, "leche entera 1l", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "lácteos", item.Category)
	assert.NotEmpty(t, item.ID)
}

func TestAddMergesDuplicates(t *testing.T) {
	m := createTestManager(t)

	first, err := m.Add("leche")
	require.NoError(t, err)

	second, err := m.Add("lech")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)
	assert.Len(t, m.Items(), 1)
}

func TestAddNotFound(t *testing.T) {
	m := createTestManager(t)

	_, err := m.Add("paraguas")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProductNotFound))
	assert.True(t, m.IsEmpty())
}

func TestAddRejectsEmptyQuery(t *testing.T) {
	m := createTestManager(t)

	_, err := m.Add("  <>&  ")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

func TestAddMany(t *testing.T) {
	m := createTestManager(t)

	added, notFound := m.AddMany("leche, arroz\ndetergente, paraguas")
	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"paraguas"}, notFound)
	assert.Len(t, m.Items(), 3)
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims and lowercases", input: "  LeChe  ", expected: "leche"},
		{name: "strips markup characters", input: `le<c>h"e'&`, expected: "leche"},
		{name: "caps length at 100", input: longQuery(150), expected: longQuery(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeQuery(tt.input))
		})
	}
}

func longQuery(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = 'a'
	}
	return string(out)
}

// ==========================
// Quantity Tests
// ==========================

func TestChangeQuantityRemovesAtZero(t *testing.T) {
	m := createTestManager(t)
	item, err := m.Add("leche")
	require.NoError(t, err)

	assert.True(t, m.ChangeQuantity(item.ID, 2))
	assert.Equal(t, 3, m.Find(item.ID).Quantity)

	assert.True(t, m.ChangeQuantity(item.ID, -3))
	assert.Nil(t, m.Find(item.ID))
	assert.True(t, m.IsEmpty())
}

func TestSetQuantity(t *testing.T) {
	m := createTestManager(t)
	item, err := m.Add("leche")
	require.NoError(t, err)

	assert.True(t, m.SetQuantity(item.ID, 5))
	assert.Equal(t, 5, m.Find(item.ID).Quantity)

	assert.True(t, m.SetQuantity(item.ID, 0))
	assert.Nil(t, m.Find(item.ID))
}

func TestQuantityUnknownID(t *testing.T) {
	m := createTestManager(t)

	assert.False(t, m.ChangeQuantity("missing", 1))
	assert.False(t, m.SetQuantity("missing", 1))
	assert.False(t, m.Remove("missing"))
}

func TestTotalCount(t *testing.T) {
	m := createTestManager(t)
	item, err := m.Add("leche")
	require.NoError(t, err)
	_, err = m.Add("arroz")
	require.NoError(t, err)

	m.SetQuantity(item.ID, 3)
	assert.Equal(t, 4, m.TotalCount())
}

// ==========================
// Query / Sort Tests
// ==========================

func TestSearch(t *testing.T) {
	m := createTestManager(t)
	_, err := m.Add("leche")
	require.NoError(t, err)
	_, err = m.Add("detergente")
	require.NoError(t, err)

	byName := m.Search("leche")
	require.Len(t, byName, 1)
	assert.Equal(t, "leche entera 1l", byName[0].Name)

	byCategory := m.Search("limpieza")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "detergente 750ml", byCategory[0].Name)

	assert.Len(t, m.Search(""), 2)
}

func TestItemsByCategory(t *testing.T) {
	m := createTestManager(t)
	_, err := m.Add("leche")
	require.NoError(t, err)
	_, err = m.Add("arroz")
	require.NoError(t, err)

	grouped := m.ItemsByCategory()
	assert.Len(t, grouped["lácteos"], 1)
	assert.Len(t, grouped["almacén"], 1)
}

func TestSortBy(t *testing.T) {
	m := createTestManager(t)
	_, err := m.Add("leche")
	require.NoError(t, err)
	item, err := m.Add("arroz")
	require.NoError(t, err)
	m.SetQuantity(item.ID, 4)

	m.SortBy("name", "asc")
	assert.Equal(t, "arroz largo fino 1kg", m.Items()[0].Name)

	m.SortBy("quantity", "desc")
	assert.Equal(t, 4, m.Items()[0].Quantity)
}

// ==========================
// Import / Export Tests
// ==========================

func TestImportText(t *testing.T) {
	m := createTestManager(t)

	added, notFound, err := m.ImportText("leche\narroz, paraguas")
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"paraguas"}, notFound)
}

func TestImportTextEmpty(t *testing.T) {
	m := createTestManager(t)

	_, _, err := m.ImportText("   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeImportParseFailed))
}

func TestExportText(t *testing.T) {
	m := createTestManager(t)
	assert.Empty(t, m.ExportText())

	_, err := m.Add("leche")
	require.NoError(t, err)
	item, err := m.Add("arroz")
	require.NoError(t, err)
	m.SetQuantity(item.ID, 2)

	out := m.ExportText()
	assert.Contains(t, out, "SHOPPING LIST")
	assert.Contains(t, out, "LÁCTEOS:")
	assert.Contains(t, out, "leche entera 1l x1")
	assert.Contains(t, out, "arroz largo fino 1kg x2")
}

// ==========================
// Event Tests
// ==========================

func TestListEvents(t *testing.T) {
	bus := events.NewBus()
	m := NewManager(createTestCatalog(), bus, logger.NewTestLogger(t))

	var updates int
	var cleared bool
	bus.Subscribe(events.ListUpdated, func(events.Event) { updates++ })
	bus.Subscribe(events.ListCleared, func(events.Event) { cleared = true })

	item, err := m.Add("leche")
	require.NoError(t, err)
	m.ChangeQuantity(item.ID, 1)
	m.Clear()

	assert.Equal(t, 2, updates)
	assert.True(t, cleared)
}

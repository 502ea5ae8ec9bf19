package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-comparator/internal/geo"
)

func TestFindOptimalCombinationSplitsPurchase(t *testing.T) {
	results, order := scenarioResults(t)

	// Without a distance penalty the split wins: pan lactal is cheaper at
	// MarketB, the rest comes from MarketA, full coverage at 900.
	combo := FindOptimalCombination(results, order, geo.ModeDriving, nil)

	require.NotNil(t, combo)
	assert.Equal(t, []string{"MarketA", "MarketB"}, combo.Markets)
	assert.Equal(t, 900.0, combo.Total)
	assert.Equal(t, 100.0, combo.Coverage)
	assert.NotEmpty(t, combo.TravelTime)

	require.NotNil(t, combo.Allocation)
	fromA := combo.Allocation["MarketA"]
	fromB := combo.Allocation["MarketB"]
	require.Len(t, fromA, 2)
	require.Len(t, fromB, 1)
	assert.Equal(t, "pan lactal", fromB[0].Name)
	assert.Equal(t, "queso cremoso", fromA[0].Name)
	assert.Equal(t, "cafe molido", fromA[1].Name)
}

func TestFindOptimalCombinationDistancePenaltyFavorsSingleStore(t *testing.T) {
	results, order := scenarioResults(t)

	// Both stores sit at the average distance, so the pair's summed distance
	// draws the full penalty and the complete single store comes out ahead.
	avg := *results["MarketA"].Distance
	combo := FindOptimalCombination(results, order, geo.ModeDriving, &avg)

	require.NotNil(t, combo)
	assert.Equal(t, []string{"MarketA"}, combo.Markets)
	assert.Nil(t, combo.Allocation)
	assert.Equal(t, 1000.0, combo.Total)
	assert.Equal(t, 100.0, combo.Coverage)
}

func TestFindOptimalCombinationUnitPriceTieGoesToFirstStore(t *testing.T) {
	results := map[string]*MarketResult{
		"First": {
			MarketName: "First", Total: 1000,
			AvailableCount: 2, TotalRequested: 2, Availability: 100,
			Items: []ItemLine{
				{Name: "pan", Quantity: 1, UnitPrice: 500, Total: 500, Available: true},
				{Name: "queso", Quantity: 1, UnitPrice: 500, Total: 500, Available: true},
			},
		},
		"Second": {
			MarketName: "Second", Total: 1000,
			AvailableCount: 2, TotalRequested: 2, Availability: 100,
			Items: []ItemLine{
				{Name: "pan", Quantity: 1, UnitPrice: 500, Total: 500, Available: true},
				{Name: "queso", Quantity: 1, UnitPrice: 500, Total: 500, Available: true},
			},
		},
	}
	order := []string{"First", "Second"}

	pair := pairCombination(results["First"], results["Second"], listFromResults(results, order), geo.ModeDriving)

	assert.Len(t, pair.Allocation["First"], 2)
	assert.Empty(t, pair.Allocation["Second"])
	assert.Equal(t, 100.0, pair.Coverage)
}

func TestFindOptimalCombinationPairBelowCoverageExcluded(t *testing.T) {
	results := map[string]*MarketResult{
		"A": {
			MarketName: "A", Total: 500,
			AvailableCount: 2, TotalRequested: 3, Availability: 66.67,
			Items: []ItemLine{
				{Name: "pan", Quantity: 1, UnitPrice: 300, Total: 300, Available: true},
				{Name: "queso", Quantity: 1, UnitPrice: 200, Total: 200, Available: true},
				{Name: "cafe", Quantity: 1, Available: false},
			},
		},
		"B": {
			MarketName: "B", Total: 250,
			AvailableCount: 1, TotalRequested: 3, Availability: 33.33,
			Items: []ItemLine{
				{Name: "pan", Quantity: 1, UnitPrice: 250, Total: 250, Available: true},
				{Name: "queso", Quantity: 1, Available: false},
				{Name: "cafe", Quantity: 1, Available: false},
			},
		},
	}
	order := []string{"A", "B"}

	// Neither store carries cafe, so the pair tops out at 66.67% coverage
	// and only the singles compete.
	combo := FindOptimalCombination(results, order, geo.ModeDriving, nil)

	require.NotNil(t, combo)
	assert.Len(t, combo.Markets, 1)
	assert.Nil(t, combo.Allocation)
}

func TestFindOptimalCombinationNothingAvailable(t *testing.T) {
	results := map[string]*MarketResult{
		"A": {
			MarketName: "A", TotalRequested: 1,
			Items: []ItemLine{{Name: "pan", Quantity: 1, Available: false}},
		},
		"B": {
			MarketName: "B", TotalRequested: 1,
			Items: []ItemLine{{Name: "pan", Quantity: 1, Available: false}},
		},
	}

	assert.Nil(t, FindOptimalCombination(results, []string{"A", "B"}, geo.ModeDriving, nil))
}

func TestFindOptimalCombinationEmptyList(t *testing.T) {
	assert.Nil(t, FindOptimalCombination(nil, nil, geo.ModeDriving, nil))
}

func TestFindOptimalCombinationCoverageNeverBelowBestSingle(t *testing.T) {
	results, order := scenarioResults(t)

	combo := FindOptimalCombination(results, order, geo.ModeDriving, nil)

	require.NotNil(t, combo)
	bestSingle := 0.0
	for _, name := range order {
		if results[name].Availability > bestSingle {
			bestSingle = results[name].Availability
		}
	}
	assert.GreaterOrEqual(t, combo.Coverage, bestSingle)
}

// Package compare implements the comparison engine: per-store evaluation,
// aggregate metrics, the composite value score, recommendations and the
// two-store combination search.
package compare

import "time"

// Weights blends price, availability and distance into the composite score.
// They conventionally sum to 1.0; this is not enforced.
type Weights struct {
	Price        float64
	Availability float64
	Distance     float64
}

// DefaultWeights returns the standard 0.4 / 0.4 / 0.2 blend.
func DefaultWeights() Weights {
	return Weights{Price: 0.4, Availability: 0.4, Distance: 0.2}
}

// ItemLine is the per-item breakdown inside a MarketResult.
type ItemLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
	Available bool    `json:"available"`
	Brand     string  `json:"brand,omitempty"`
	Category  string  `json:"category"`
}

// MarketResult is the outcome of pricing one shopping list against one store.
// Fully recomputed on every comparison, never patched incrementally.
type MarketResult struct {
	MarketName       string     `json:"marketName"`
	Total            float64    `json:"total"`
	AvailableCount   int        `json:"availableCount"`
	TotalRequested   int        `json:"totalItemsRequested"`
	Availability     float64    `json:"availability"`
	AverageItemPrice float64    `json:"averageItemPrice"`
	Items            []ItemLine `json:"items"`
	MissingProducts  []string   `json:"missingProducts"`
	Distance         *float64   `json:"distance,omitempty"`
	TravelTime       string     `json:"travelTime,omitempty"`
	Address          string     `json:"address,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Hours            string     `json:"hours,omitempty"`
}

type BestPrice struct {
	Market string  `json:"market"`
	Total  float64 `json:"total"`
}

type MostAvailable struct {
	Market     string  `json:"market"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Closest struct {
	Market   string  `json:"market"`
	Distance float64 `json:"distance"`
}

type BestValue struct {
	Market string  `json:"market"`
	Score  float64 `json:"score"`
}

// PriceVariation summarizes totals across stores with total>0. Only defined
// when at least two stores qualify.
type PriceVariation struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Average     float64 `json:"average"`
	Range       float64 `json:"range"`
	Coefficient float64 `json:"coefficient"`
}

// Stats carries the best/worst spread across stores with total>0.
type Stats struct {
	BestMarket        string  `json:"bestMarket"`
	WorstMarket       string  `json:"worstMarket"`
	BestPrice         float64 `json:"bestPrice"`
	WorstPrice        float64 `json:"worstPrice"`
	TotalSavings      float64 `json:"totalSavings"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}

// Metrics aggregates one comparison run. Nil pointers mean the metric is
// undefined for this run (no qualifying store).
type Metrics struct {
	BestPrice       *BestPrice      `json:"bestPrice,omitempty"`
	MostAvailable   *MostAvailable  `json:"mostAvailable,omitempty"`
	Closest         *Closest        `json:"closest,omitempty"`
	BestValue       *BestValue      `json:"bestValue,omitempty"`
	Stats           *Stats          `json:"stats,omitempty"`
	MarketCount     int             `json:"marketCount"`
	AverageDistance *float64        `json:"averageDistance,omitempty"`
	PriceVariation  *PriceVariation `json:"priceVariation,omitempty"`
}

// Snapshot is the store detail attached to a recommendation entry.
type Snapshot struct {
	Total           float64  `json:"total"`
	Availability    float64  `json:"availability"`
	Distance        *float64 `json:"distance,omitempty"`
	TravelTime      string   `json:"travelTime,omitempty"`
	MissingProducts []string `json:"missingProducts,omitempty"`
}

type Primary struct {
	Market  string   `json:"market"`
	Reason  string   `json:"reason"`
	Score   float64  `json:"score"`
	Details Snapshot `json:"details"`
}

type Alternative struct {
	Type         string   `json:"type"`
	Market       string   `json:"market"`
	Reason       string   `json:"reason"`
	Savings      float64  `json:"savings,omitempty"`
	Availability float64  `json:"availability,omitempty"`
	Distance     *float64 `json:"distance,omitempty"`
	Details      Snapshot `json:"details"`
}

type Tip struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"` // high, medium, low
}

type Warning struct {
	Type     string `json:"type"`
	Market   string `json:"market,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // medium, low
}

type Recommendation struct {
	Primary      *Primary      `json:"primary,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
	Tips         []Tip         `json:"tips"`
	Warnings     []Warning     `json:"warnings"`
}

// AllocatedItem is a shopping-list entry assigned to one store of a
// combination.
type AllocatedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// Combination is a 1-2 store allocation found by the optimizer. Allocation is
// nil for single-store candidates.
type Combination struct {
	Markets    []string                   `json:"markets"`
	Total      float64                    `json:"total"`
	Coverage   float64                    `json:"coverage"`
	Distance   float64                    `json:"distance"`
	TravelTime string                     `json:"travelTime"`
	Allocation map[string][]AllocatedItem `json:"allocation,omitempty"`
}

// Outcome is the full result of one comparison run. StoreOrder preserves
// catalog order, which every tie-break and rendering keys on.
type Outcome struct {
	Timestamp       time.Time                `json:"timestamp"`
	StoreOrder      []string                 `json:"-"`
	Results         map[string]*MarketResult `json:"results"`
	Metrics         Metrics                  `json:"metrics"`
	Recommendations Recommendation           `json:"recommendations"`
}

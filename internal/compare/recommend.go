package compare

import (
	"fmt"
	"sort"

	"supermarket-comparator/internal/geo"
)

// Thresholds for tips and warnings, in minor-unit-free currency and km.
const (
	savingsTipThreshold      = 1000.0
	priceDifferenceThreshold = 500.0
	lowAvailabilityThreshold = 50.0
	variationWarnThreshold   = 30.0
	longDistanceThresholdKm  = 10.0
)

// BuildRecommendations derives the primary pick, alternatives, tips and
// warnings from one run's metrics and results. Pure assembly, no new math.
func BuildRecommendations(results map[string]*MarketResult, order []string, metrics Metrics) Recommendation {
	rec := Recommendation{
		Alternatives: []Alternative{},
		Tips:         []Tip{},
		Warnings:     []Warning{},
	}

	primaryMarket := ""
	if metrics.BestValue != nil {
		primaryMarket = metrics.BestValue.Market
		result := results[primaryMarket]
		rec.Primary = &Primary{
			Market:  primaryMarket,
			Reason:  "Best balance of price, availability and distance",
			Score:   metrics.BestValue.Score,
			Details: snapshotOf(result),
		}
	}

	if metrics.BestPrice != nil && metrics.BestPrice.Market != primaryMarket {
		result := results[metrics.BestPrice.Market]
		alt := Alternative{
			Type:    "cheapest",
			Market:  metrics.BestPrice.Market,
			Reason:  "Lowest total price",
			Details: snapshotOf(result),
		}
		if metrics.Stats != nil {
			alt.Savings = metrics.Stats.TotalSavings
		}
		rec.Alternatives = append(rec.Alternatives, alt)
	}

	if metrics.MostAvailable != nil && metrics.MostAvailable.Market != primaryMarket {
		result := results[metrics.MostAvailable.Market]
		rec.Alternatives = append(rec.Alternatives, Alternative{
			Type:         "most_available",
			Market:       metrics.MostAvailable.Market,
			Reason:       "Highest product availability",
			Availability: metrics.MostAvailable.Percentage,
			Details:      snapshotOf(result),
		})
	}

	if metrics.Closest != nil && metrics.Closest.Market != primaryMarket {
		result := results[metrics.Closest.Market]
		distance := metrics.Closest.Distance
		rec.Alternatives = append(rec.Alternatives, Alternative{
			Type:     "closest",
			Market:   metrics.Closest.Market,
			Reason:   "Shortest travel distance",
			Distance: &distance,
			Details:  snapshotOf(result),
		})
	}

	rec.Tips = buildTips(results, order, metrics)
	rec.Warnings = buildWarnings(results, order, metrics)

	return rec
}

func snapshotOf(result *MarketResult) Snapshot {
	return Snapshot{
		Total:           result.Total,
		Availability:    result.Availability,
		Distance:        result.Distance,
		TravelTime:      result.TravelTime,
		MissingProducts: result.MissingProducts,
	}
}

func buildTips(results map[string]*MarketResult, order []string, metrics Metrics) []Tip {
	tips := []Tip{}

	if metrics.Stats != nil && metrics.Stats.TotalSavings > savingsTipThreshold {
		tips = append(tips, Tip{
			Type:     "savings",
			Message:  fmt.Sprintf("You can save up to %.0f by choosing the cheapest store", metrics.Stats.TotalSavings),
			Priority: "high",
		})
	}

	if metrics.Closest != nil && metrics.BestPrice != nil &&
		metrics.Closest.Market != metrics.BestPrice.Market {
		diff := results[metrics.Closest.Market].Total - results[metrics.BestPrice.Market].Total
		if diff < priceDifferenceThreshold {
			tips = append(tips, Tip{
				Type:     "distance_vs_price",
				Message:  fmt.Sprintf("The price difference is small (%.0f). The closest store saves time and fuel", diff),
				Priority: "medium",
			})
		}
	}

	totalMissing := 0
	for _, name := range order {
		totalMissing += len(results[name].MissingProducts)
	}
	if totalMissing > 0 {
		tips = append(tips, Tip{
			Type:     "missing_products",
			Message:  "Some products are unavailable. Consider visiting several stores or looking for alternatives",
			Priority: "medium",
		})
	}

	if len(order) > 1 {
		tips = append(tips, Tip{
			Type:     "smart_shopping",
			Message:  "You can buy specific products at different stores to maximize savings",
			Priority: "low",
		})
	}

	// high > medium > low, stable within the same priority
	rank := map[string]int{"high": 3, "medium": 2, "low": 1}
	sort.SliceStable(tips, func(i, j int) bool {
		return rank[tips[i].Priority] > rank[tips[j].Priority]
	})

	return tips
}

func buildWarnings(results map[string]*MarketResult, order []string, metrics Metrics) []Warning {
	warnings := []Warning{}

	for _, name := range order {
		if results[name].Availability < lowAvailabilityThreshold {
			warnings = append(warnings, Warning{
				Type:     "low_availability",
				Market:   name,
				Message:  fmt.Sprintf("%s has low availability (%.0f%% of products)", name, results[name].Availability),
				Severity: "medium",
			})
		}
	}

	if metrics.PriceVariation != nil && metrics.PriceVariation.Coefficient > variationWarnThreshold {
		warnings = append(warnings, Warning{
			Type:     "high_price_variation",
			Message:  fmt.Sprintf("Prices vary widely between stores (%.0f%%)", metrics.PriceVariation.Coefficient),
			Severity: "low",
		})
	}

	for _, name := range order {
		d := results[name].Distance
		if d != nil && *d > longDistanceThresholdKm {
			warnings = append(warnings, Warning{
				Type:     "long_distance",
				Market:   name,
				Message:  fmt.Sprintf("%s is far away (%s). Factor in the fuel cost", name, geo.FormatDistance(*d)),
				Severity: "low",
			})
		}
	}

	return warnings
}

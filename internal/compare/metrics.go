package compare

import "math"

// Policy constants carried over for result compatibility. They are tunables,
// not derived invariants.
const (
	// priceScoreDenominator: a total at or above this multiple of the
	// cheapest store's total scores zero on price.
	priceScoreDenominator = 1.5
	// distanceScoreDenominator: a store at or beyond this multiple of the
	// closest distance scores zero on distance.
	distanceScoreDenominator = 3.0
)

// ComputeMetrics aggregates per-store results into comparison metrics.
// Iteration follows catalog order, so every argmin/argmax tie-break is
// first-encountered-wins and deterministic.
func ComputeMetrics(results map[string]*MarketResult, order []string, weights Weights) Metrics {
	if len(order) == 0 {
		return Metrics{}
	}

	m := Metrics{MarketCount: len(order)}

	// Best price and closest come first: the value score depends on both.
	for _, name := range order {
		result := results[name]

		if result.AvailableCount > 0 && (m.BestPrice == nil || result.Total < m.BestPrice.Total) {
			m.BestPrice = &BestPrice{Market: name, Total: result.Total}
		}

		if m.MostAvailable == nil && result.AvailableCount > 0 ||
			m.MostAvailable != nil && result.AvailableCount > m.MostAvailable.Count {
			m.MostAvailable = &MostAvailable{
				Market:     name,
				Count:      result.AvailableCount,
				Percentage: result.Availability,
			}
		}

		if result.Distance != nil && (m.Closest == nil || *result.Distance < m.Closest.Distance) {
			m.Closest = &Closest{Market: name, Distance: *result.Distance}
		}
	}

	for _, name := range order {
		score := valueScore(results[name], m.BestPrice, m.Closest, weights)
		if score > 0 && (m.BestValue == nil || score > m.BestValue.Score) {
			m.BestValue = &BestValue{Market: name, Score: score}
		}
	}

	m.Stats = computeStats(results, order)
	m.AverageDistance = averageDistance(results, order)
	m.PriceVariation = priceVariation(results, order)

	return m
}

// valueScore is the composite 0-100 ranking for one store. Stores with
// nothing available score 0 regardless of price or distance. The distance
// term is omitted, not zeroed, when either distance is unknown.
func valueScore(result *MarketResult, best *BestPrice, closest *Closest, weights Weights) float64 {
	if result.AvailableCount == 0 {
		return 0
	}

	score := 0.0

	if result.Total > 0 && best != nil && best.Total > 0 {
		priceScore := math.Max(0, (1-result.Total/(best.Total*priceScoreDenominator))*100)
		score += priceScore * weights.Price
	}

	score += result.Availability * weights.Availability

	if result.Distance != nil && closest != nil && closest.Distance > 0 {
		distanceScore := math.Max(0, (1-*result.Distance/(closest.Distance*distanceScoreDenominator))*100)
		score += distanceScore * weights.Distance
	}

	return math.Min(100, math.Max(0, score))
}

// computeStats finds the best/worst spread over stores with total>0.
func computeStats(results map[string]*MarketResult, order []string) *Stats {
	stats := &Stats{BestPrice: math.Inf(1)}

	for _, name := range order {
		total := results[name].Total
		if total <= 0 {
			continue
		}
		if total < stats.BestPrice {
			stats.BestPrice = total
			stats.BestMarket = name
		}
		if total > stats.WorstPrice {
			stats.WorstPrice = total
			stats.WorstMarket = name
		}
	}

	if stats.BestMarket == "" {
		return nil
	}

	stats.TotalSavings = stats.WorstPrice - stats.BestPrice
	if stats.WorstPrice > 0 {
		stats.SavingsPercentage = stats.TotalSavings / stats.WorstPrice * 100
	}

	return stats
}

func averageDistance(results map[string]*MarketResult, order []string) *float64 {
	sum := 0.0
	count := 0
	for _, name := range order {
		if d := results[name].Distance; d != nil {
			sum += *d
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

// priceVariation needs at least two stores with total>0.
func priceVariation(results map[string]*MarketResult, order []string) *PriceVariation {
	var totals []float64
	for _, name := range order {
		if results[name].Total > 0 {
			totals = append(totals, results[name].Total)
		}
	}
	if len(totals) < 2 {
		return nil
	}

	min, max, sum := totals[0], totals[0], 0.0
	for _, t := range totals {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
		sum += t
	}
	avg := sum / float64(len(totals))

	v := &PriceVariation{Min: min, Max: max, Average: avg, Range: max - min}
	if avg > 0 {
		v.Coefficient = v.Range / avg * 100
	}
	return v
}

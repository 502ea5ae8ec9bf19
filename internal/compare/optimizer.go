package compare

import (
	"math"

	"supermarket-comparator/internal/geo"
)

// Optimizer policy constants, preserved for result compatibility.
const (
	// coverageThreshold: a pair must cover strictly more than this percentage
	// of the list to qualify.
	coverageThreshold = 80.0
	// combinationPriceDenominator: combined totals are scored against the
	// best single-store total times this factor.
	combinationPriceDenominator = 1.3
	coverageWeight              = 0.4
	combinationPriceWeight      = 0.4
	maxDistancePenalty          = 20.0
)

// FindOptimalCombination searches single stores and unordered store pairs
// for the allocation that maximizes coverage at the lowest cost. The search
// is deliberately capped at two stores. Returns nil when no candidate
// qualifies.
func FindOptimalCombination(results map[string]*MarketResult, order []string, mode geo.Mode, avgDistance *float64) *Combination {
	items := listFromResults(results, order)
	if len(items) == 0 {
		return nil
	}

	var combinations []*Combination

	for _, name := range order {
		result := results[name]
		if result.AvailableCount == 0 {
			continue
		}
		single := &Combination{
			Markets:    []string{name},
			Total:      result.Total,
			Coverage:   result.Availability,
			TravelTime: result.TravelTime,
		}
		if result.Distance != nil {
			single.Distance = *result.Distance
		}
		if single.TravelTime == "" {
			single.TravelTime = "0 min"
		}
		combinations = append(combinations, single)
	}

	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			pair := pairCombination(results[order[i]], results[order[j]], items, mode)
			if pair.Coverage > coverageThreshold {
				combinations = append(combinations, pair)
			}
		}
	}

	if len(combinations) == 0 {
		return nil
	}

	// First-encountered wins ties: only a strictly better score replaces.
	best := combinations[0]
	bestScore := scoreCombination(best, results, order, avgDistance)
	for _, candidate := range combinations[1:] {
		if score := scoreCombination(candidate, results, order, avgDistance); score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best
}

// pairCombination allocates each item to the cheaper of two stores (ties to
// the first), falling back to whichever one has it. Items available in
// neither stay uncovered.
func pairCombination(first, second *MarketResult, items []AllocatedItem, mode geo.Mode) *Combination {
	firstLines := linesByName(first)
	secondLines := linesByName(second)

	total := 0.0
	covered := 0
	allocation := map[string][]AllocatedItem{
		first.MarketName:  {},
		second.MarketName: {},
	}

	for _, item := range items {
		lineA, okA := firstLines[item.Name]
		lineB, okB := secondLines[item.Name]
		availA := okA && lineA.Available
		availB := okB && lineB.Available

		switch {
		case availA && availB:
			if lineA.UnitPrice <= lineB.UnitPrice {
				total += lineA.Total
				allocation[first.MarketName] = append(allocation[first.MarketName], item)
			} else {
				total += lineB.Total
				allocation[second.MarketName] = append(allocation[second.MarketName], item)
			}
			covered++
		case availA:
			total += lineA.Total
			allocation[first.MarketName] = append(allocation[first.MarketName], item)
			covered++
		case availB:
			total += lineB.Total
			allocation[second.MarketName] = append(allocation[second.MarketName], item)
			covered++
		}
	}

	// Visiting both stores, not routing between them.
	distance := 0.0
	if first.Distance != nil {
		distance += *first.Distance
	}
	if second.Distance != nil {
		distance += *second.Distance
	}

	return &Combination{
		Markets:    []string{first.MarketName, second.MarketName},
		Total:      total,
		Coverage:   float64(covered) / float64(len(items)) * 100,
		Distance:   distance,
		TravelTime: geo.TravelTime(distance, mode),
		Allocation: allocation,
	}
}

// scoreCombination trades coverage against price, with a distance penalty.
func scoreCombination(c *Combination, results map[string]*MarketResult, order []string, avgDistance *float64) float64 {
	if c == nil {
		return 0
	}

	score := c.Coverage * coverageWeight

	bestSingleTotal := math.Inf(1)
	for _, name := range order {
		if t := results[name].Total; t > 0 && t < bestSingleTotal {
			bestSingleTotal = t
		}
	}
	if !math.IsInf(bestSingleTotal, 1) && bestSingleTotal > 0 {
		priceScore := math.Max(0, (1-c.Total/(bestSingleTotal*combinationPriceDenominator))*100)
		score += priceScore * combinationPriceWeight
	}

	if avgDistance != nil && *avgDistance > 0 && c.Distance > 0 {
		penalty := math.Min(maxDistancePenalty, c.Distance / *avgDistance*10)
		score -= penalty
	}

	return math.Max(0, score)
}

func linesByName(result *MarketResult) map[string]ItemLine {
	lines := make(map[string]ItemLine, len(result.Items))
	for _, line := range result.Items {
		lines[line.Name] = line
	}
	return lines
}

// listFromResults recovers the requested items from the first store's
// breakdown; every result carries the same list.
func listFromResults(results map[string]*MarketResult, order []string) []AllocatedItem {
	if len(order) == 0 {
		return nil
	}
	first := results[order[0]]
	items := make([]AllocatedItem, 0, len(first.Items))
	for _, line := range first.Items {
		items = append(items, AllocatedItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Category: line.Category,
		})
	}
	return items
}

package compare

// DistanceStats summarizes distances across stores that have one.
type DistanceStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Total   float64 `json:"total"`
}

// CategoryStats describes one category of the requested list.
type CategoryStats struct {
	Count         int      `json:"count"`
	TotalQuantity int      `json:"totalQuantity"`
	AvailableIn   []string `json:"availableIn"`
}

// DetailedStats is the on-demand deep dive over one outcome.
type DetailedStats struct {
	TotalComparisons    int                       `json:"totalComparisons"`
	TotalProducts       int                       `json:"totalProducts"`
	AverageAvailability float64                   `json:"averageAvailability"`
	PriceRange          *PriceVariation           `json:"priceRange,omitempty"`
	DistanceStats       *DistanceStats            `json:"distanceStats,omitempty"`
	CategoryBreakdown   map[string]*CategoryStats `json:"categoryBreakdown"`
}

// BuildDetailedStats derives the detailed view from a completed outcome.
func BuildDetailedStats(o *Outcome) DetailedStats {
	items := listFromResults(o.Results, o.StoreOrder)

	return DetailedStats{
		TotalComparisons:    len(o.StoreOrder),
		TotalProducts:       len(items),
		AverageAvailability: averageAvailability(o),
		PriceRange:          o.Metrics.PriceVariation,
		DistanceStats:       distanceStats(o),
		CategoryBreakdown:   categoryBreakdown(o, items),
	}
}

func averageAvailability(o *Outcome) float64 {
	if len(o.StoreOrder) == 0 {
		return 0
	}
	sum := 0.0
	for _, name := range o.StoreOrder {
		sum += o.Results[name].Availability
	}
	return sum / float64(len(o.StoreOrder))
}

func distanceStats(o *Outcome) *DistanceStats {
	var stats *DistanceStats
	count := 0
	for _, name := range o.StoreOrder {
		d := o.Results[name].Distance
		if d == nil {
			continue
		}
		if stats == nil {
			stats = &DistanceStats{Min: *d, Max: *d}
		}
		if *d < stats.Min {
			stats.Min = *d
		}
		if *d > stats.Max {
			stats.Max = *d
		}
		stats.Total += *d
		count++
	}
	if stats != nil {
		stats.Average = stats.Total / float64(count)
	}
	return stats
}

func categoryBreakdown(o *Outcome, items []AllocatedItem) map[string]*CategoryStats {
	breakdown := map[string]*CategoryStats{}

	for _, item := range items {
		entry := breakdown[item.Category]
		if entry == nil {
			entry = &CategoryStats{}
			breakdown[item.Category] = entry
		}
		entry.Count++
		entry.TotalQuantity += item.Quantity

		for _, name := range o.StoreOrder {
			for _, line := range o.Results[name].Items {
				if line.Name == item.Name && line.Available {
					entry.AvailableIn = append(entry.AvailableIn, name)
					break
				}
			}
		}
	}

	return breakdown
}

package compare

import (
	"fmt"
	"strings"

	"supermarket-comparator/internal/catalog"
	"supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/geo"
	"supermarket-comparator/internal/list"
)

// ValidateList rejects a shopping list before any computation: it must be
// non-empty, every item needs a name and a quantity of at least 1.
func ValidateList(items []list.Item) error {
	var problems []string

	if len(items) == 0 {
		problems = append(problems, "shopping list is empty")
	}

	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			problems = append(problems, itemProblem(i, "name is required"))
		}
		if item.Quantity < 1 {
			problems = append(problems, itemProblem(i, "quantity must be at least 1"))
		}
	}

	if len(problems) > 0 {
		return errors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

func itemProblem(index int, msg string) string {
	return fmt.Sprintf("item %d: %s", index+1, msg)
}

// EvaluateStore prices one shopping list against one store. Lookup is exact
// case-insensitive name equality; the fuzzy matcher only runs when the list
// is built, not here. An unavailable or absent product lands in
// missingProducts with a zero-priced breakdown line.
func EvaluateStore(store *catalog.Store, items []list.Item, userLoc *geo.Coordinate, mode geo.Mode) *MarketResult {
	result := &MarketResult{
		MarketName:     store.Name,
		TotalRequested: len(items),
		Items:          make([]ItemLine, 0, len(items)),
		Address:        store.Address,
		Phone:          store.Phone,
		Hours:          store.Hours,
	}

	for _, item := range items {
		product := store.LookupExact(item.Name)

		if product != nil && product.Available {
			lineTotal := product.Price * float64(item.Quantity)
			result.Total += lineTotal
			result.AvailableCount++
			result.Items = append(result.Items, ItemLine{
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Total:     lineTotal,
				Available: true,
				Brand:     product.Brand,
				Category:  product.Category,
			})
			continue
		}

		category := item.Category
		if category == "" {
			category = "unknown"
		}
		result.MissingProducts = append(result.MissingProducts, item.Name)
		result.Items = append(result.Items, ItemLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Available: false,
			Category:  category,
		})
	}

	if len(items) > 0 {
		result.Availability = float64(result.AvailableCount) / float64(len(items)) * 100
	}
	if result.AvailableCount > 0 {
		result.AverageItemPrice = result.Total / float64(result.AvailableCount)
	}

	if userLoc != nil {
		distance := geo.DistanceKm(*userLoc, store.Location)
		result.Distance = &distance
		result.TravelTime = geo.TravelTime(distance, mode)
	}

	return result
}

package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/geo"
)

// Export renders a completed outcome in the requested format: "txt", "csv"
// or "json".
func Export(o *Outcome, format string) (string, error) {
	switch format {
	case "txt", "text", "":
		return ExportText(o), nil
	case "csv":
		return ExportCSV(o)
	case "json":
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return "", errors.Normalize(err)
		}
		return string(data), nil
	default:
		return "", errors.NewExportFormatInvalidError(format)
	}
}

// ExportText renders store-by-store itemized blocks.
func ExportText(o *Outcome) string {
	var b strings.Builder
	b.WriteString("SUPERMARKET COMPARISON\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, name := range o.StoreOrder {
		result := o.Results[name]

		b.WriteString(strings.ToUpper(name) + "\n")
		b.WriteString(strings.Repeat("-", len(name)) + "\n")
		b.WriteString(fmt.Sprintf("Total: %.2f\n", result.Total))
		b.WriteString(fmt.Sprintf("Available products: %d\n", result.AvailableCount))
		if result.Distance != nil {
			b.WriteString(fmt.Sprintf("Distance: %s\n", geo.FormatDistance(*result.Distance)))
		}
		b.WriteString("\nProducts:\n")

		for _, line := range result.Items {
			status := "✗"
			if line.Available {
				status = "✓"
			}
			b.WriteString(fmt.Sprintf("  %s %s x%d - %.2f\n", status, line.Name, line.Quantity, line.Total))
		}

		b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
	}

	return b.String()
}

// ExportCSV renders one row per store/item pair.
func ExportCSV(o *Outcome) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"Store", "Product", "Quantity", "Unit Price", "Line Total", "Available"}); err != nil {
		return "", errors.Normalize(err)
	}

	for _, name := range o.StoreOrder {
		for _, line := range o.Results[name].Items {
			available := "no"
			if line.Available {
				available = "yes"
			}
			record := []string{
				name,
				line.Name,
				strconv.Itoa(line.Quantity),
				strconv.FormatFloat(line.UnitPrice, 'f', 2, 64),
				strconv.FormatFloat(line.Total, 'f', 2, 64),
				available,
			}
			if err := w.Write(record); err != nil {
				return "", errors.Normalize(err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Normalize(err)
	}

	return b.String(), nil
}

// Package list manages the shopping list: stable item ids, quantity edits,
// text import/export and category grouping.
package list

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"supermarket-comparator/internal/catalog"
	"supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/common/events"
	"supermarket-comparator/internal/common/logger"
)

// Item is one shopping-list entry. The name is the resolved product name,
// lowercase-normalized; at most one item exists per normalized name.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	Brand    string  `json:"brand,omitempty"`
	Price    float64 `json:"price"`
}

// Manager owns the mutable list state. Items are kept in insertion order and
// addressed by stable id, never by index, so removals cannot shift a pending
// reference.
type Manager struct {
	catalog *catalog.Catalog
	events  *events.Bus
	logger  logger.Logger
	items   []Item
}

func NewManager(cat *catalog.Catalog, bus *events.Bus, log logger.Logger) *Manager {
	return &Manager{
		catalog: cat,
		events:  bus,
		logger:  log.WithFields(map[string]interface{}{"component": "shopping-list"}),
	}
}

// SanitizeQuery normalizes free-text input: trim, lowercase, strip markup
// characters, cap at 100 runes.
func SanitizeQuery(input string) string {
	cleaned := strings.TrimSpace(strings.ToLower(input))
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return r
	}, cleaned)

	runes := []rune(cleaned)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}

// Add resolves a free-text query against the catalogs and adds the matched
// product, or bumps the quantity when it is already listed.
func (m *Manager) Add(query string) (*Item, error) {
	sanitized := SanitizeQuery(query)
	if sanitized == "" {
		return nil, errors.NewValidationError("empty product query")
	}

	match, ok := m.catalog.FindProduct(sanitized)
	if !ok {
		m.logger.Debug("no catalog match", map[string]interface{}{"query": sanitized})
		return nil, errors.NewProductNotFoundError(sanitized)
	}

	name := strings.ToLower(match.Product.Name)
	for i := range m.items {
		if m.items[i].Name == name {
			m.items[i].Quantity++
			m.publishUpdated()
			return &m.items[i], nil
		}
	}

	category := match.Product.Category
	if category == "" {
		category = "unknown"
	}

	item := Item{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: 1,
		Category: category,
		Brand:    match.Product.Brand,
		Price:    match.Product.Price,
	}
	m.items = append(m.items, item)

	m.logger.Info("item added", map[string]interface{}{
		"name":     item.Name,
		"category": item.Category,
	})
	m.publishUpdated()

	return &m.items[len(m.items)-1], nil
}

// AddMany splits comma/newline-separated input and adds each token.
// Unmatched tokens are returned, not fatal.
func (m *Manager) AddMany(input string) (added int, notFound []string) {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, err := m.Add(token); err != nil {
			if errors.IsCode(err, errors.ErrCodeProductNotFound) {
				notFound = append(notFound, SanitizeQuery(token))
				continue
			}
			continue
		}
		added++
	}

	return added, notFound
}

// ChangeQuantity adjusts an item's quantity by delta. Reaching zero or below
// removes the item entirely.
func (m *Manager) ChangeQuantity(id string, delta int) bool {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		m.items[i].Quantity += delta
		if m.items[i].Quantity <= 0 {
			m.items = append(m.items[:i], m.items[i+1:]...)
		}
		m.publishUpdated()
		return true
	}
	return false
}

// SetQuantity sets an absolute quantity; zero or below removes the item.
func (m *Manager) SetQuantity(id string, quantity int) bool {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if quantity <= 0 {
			m.items = append(m.items[:i], m.items[i+1:]...)
		} else {
			m.items[i].Quantity = quantity
		}
		m.publishUpdated()
		return true
	}
	return false
}

// Remove deletes an item by id.
func (m *Manager) Remove(id string) bool {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.publishUpdated()
			return true
		}
	}
	return false
}

// Clear empties the list.
func (m *Manager) Clear() {
	m.items = nil
	if m.events != nil {
		m.events.Publish(events.ListCleared, nil)
	}
}

// Items returns a copy of the list in insertion order.
func (m *Manager) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// TotalCount sums quantities across items.
func (m *Manager) TotalCount() int {
	total := 0
	for i := range m.items {
		total += m.items[i].Quantity
	}
	return total
}

func (m *Manager) IsEmpty() bool {
	return len(m.items) == 0
}

// Find returns the item matching the id, or nil.
func (m *Manager) Find(id string) *Item {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i]
		}
	}
	return nil
}

// Search filters items whose name or category contains the query.
func (m *Manager) Search(query string) []Item {
	if query == "" {
		return m.Items()
	}

	term := strings.ToLower(query)
	var out []Item
	for i := range m.items {
		if strings.Contains(m.items[i].Name, term) ||
			strings.Contains(strings.ToLower(m.items[i].Category), term) {
			out = append(out, m.items[i])
		}
	}
	return out
}

// ItemsByCategory groups items by category tag.
func (m *Manager) ItemsByCategory() map[string][]Item {
	out := map[string][]Item{}
	for i := range m.items {
		out[m.items[i].Category] = append(out[m.items[i].Category], m.items[i])
	}
	return out
}

// SortBy reorders the list by name, category or quantity. Unknown criteria
// sort by name; direction is "asc" or "desc".
func (m *Manager) SortBy(criteria, direction string) {
	sort.SliceStable(m.items, func(i, j int) bool {
		var less bool
		switch criteria {
		case "category":
			less = m.items[i].Category < m.items[j].Category
		case "quantity":
			less = m.items[i].Quantity < m.items[j].Quantity
		default:
			less = m.items[i].Name < m.items[j].Name
		}
		if direction == "desc" {
			return !less
		}
		return less
	})
	m.publishUpdated()
}

// ImportText adds products from comma/newline-separated text.
func (m *Manager) ImportText(text string) (int, []string, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil, errors.NewImportParseFailedError("empty input")
	}
	added, notFound := m.AddMany(text)
	return added, notFound, nil
}

// ExportText renders the list as a plain-text block, one "name xN" line per
// item grouped under its category.
func (m *Manager) ExportText() string {
	if len(m.items) == 0 {
		return ""
	}

	grouped := m.ItemsByCategory()
	var order []string
	for i := range m.items {
		cat := m.items[i].Category
		if _, seen := grouped[cat]; seen && !contains(order, cat) {
			order = append(order, cat)
		}
	}

	var b strings.Builder
	b.WriteString("SHOPPING LIST\n")
	b.WriteString(strings.Repeat("=", 20) + "\n\n")

	for _, category := range order {
		b.WriteString(strings.ToUpper(category) + ":\n")
		for _, item := range grouped[category] {
			b.WriteString(fmt.Sprintf("  %s x%d\n", item.Name, item.Quantity))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func (m *Manager) publishUpdated() {
	if m.events != nil {
		m.events.Publish(events.ListUpdated, m.Items())
	}
}

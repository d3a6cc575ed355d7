package widget

import (
	"fmt"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// QuantityOption is one entry of the quantity picker.
type QuantityOption struct {
	Name     string `json:"name"`
	Index    int    `json:"index"`
	Selected bool   `json:"selected"`
}

// Selector holds the currently chosen quantity of a catalog.
type Selector struct {
	catalog *units.Catalog
	current int
}

// NewSelector returns a selector positioned on the first quantity. A nil
// catalog falls back to units.Default().
func NewSelector(catalog *units.Catalog) *Selector {
	if catalog == nil {
		catalog = units.Default()
	}
	return &Selector{catalog: catalog}
}

// Catalog returns the backing catalog.
func (s *Selector) Catalog() *units.Catalog {
	return s.catalog
}

// Index returns the position of the current quantity.
func (s *Selector) Index() int {
	return s.current
}

// Current returns the selected quantity.
func (s *Selector) Current() units.Quantity {
	q, err := s.catalog.At(s.current)
	if err != nil {
		// current is always kept in range by Select/SelectIndex.
		panic(err)
	}
	return q
}

// Primary returns the default unit for the first field.
func (s *Selector) Primary() string {
	return s.Current().Primary
}

// Secondary returns the default unit for the second field.
func (s *Selector) Secondary() string {
	return s.Current().Secondary
}

// Select switches to the named quantity. The selection is unchanged on error.
func (s *Selector) Select(name string) error {
	idx := s.catalog.IndexOf(name)
	if idx < 0 {
		return fmt.Errorf("widget: select %q: %w", name, units.ErrUnknownQuantity)
	}
	s.current = idx
	return nil
}

// SelectIndex switches to the quantity at index.
func (s *Selector) SelectIndex(index int) error {
	if index < 0 || index >= s.catalog.Len() {
		return fmt.Errorf("widget: select index %d: %w", index, units.ErrUnknownQuantity)
	}
	s.current = index
	return nil
}

// Options lists every quantity with the current one flagged.
func (s *Selector) Options() []QuantityOption {
	names := s.catalog.Names()
	out := make([]QuantityOption, 0, len(names))
	for i, name := range names {
		out = append(out, QuantityOption{
			Name:     name,
			Index:    i,
			Selected: i == s.current,
		})
	}
	return out
}

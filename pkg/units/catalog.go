package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Catalog is an ordered, immutable set of quantities. Lookups by name are
// case-insensitive; the order is the order shown in the quantity picker.
type Catalog struct {
	quantities []Quantity
	index      map[string]int
}

// NewCatalog validates the quantities and returns a catalog holding copies of
// them.
func NewCatalog(quantities ...Quantity) (*Catalog, error) {
	c := &Catalog{
		quantities: make([]Quantity, 0, len(quantities)),
		index:      make(map[string]int, len(quantities)),
	}
	for _, q := range quantities {
		c.quantities = append(c.quantities, q.clone())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i, q := range c.quantities {
		c.index[normalizeName(q.Name)] = i
	}
	return c, nil
}

// MustCatalog panics when the quantities do not form a valid catalog. Useful
// for package level tables.
func MustCatalog(quantities ...Quantity) *Catalog {
	c, err := NewCatalog(quantities...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of quantities.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.quantities)
}

// Quantities returns a copy of the quantities in display order.
func (c *Catalog) Quantities() []Quantity {
	if c == nil {
		return nil
	}
	out := make([]Quantity, 0, len(c.quantities))
	for _, q := range c.quantities {
		out = append(out, q.clone())
	}
	return out
}

// Names lists quantity names in display order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.quantities))
	for _, q := range c.quantities {
		names = append(names, q.Name)
	}
	return names
}

// IndexOf returns the position of the named quantity or -1.
func (c *Catalog) IndexOf(name string) int {
	if c == nil {
		return -1
	}
	idx, ok := c.index[normalizeName(name)]
	if !ok {
		return -1
	}
	return idx
}

// Quantity resolves a quantity by name.
func (c *Catalog) Quantity(name string) (Quantity, error) {
	idx := c.IndexOf(name)
	if idx < 0 {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	return c.quantities[idx].clone(), nil
}

// At resolves a quantity by its position in the catalog.
func (c *Catalog) At(index int) (Quantity, error) {
	if c == nil || index < 0 || index >= len(c.quantities) {
		return Quantity{}, fmt.Errorf("%w: index %d", ErrUnknownQuantity, index)
	}
	return c.quantities[index].clone(), nil
}

// With returns a new catalog where quantities sharing a name with an existing
// entry replace it in place and the rest are appended.
func (c *Catalog) With(quantities ...Quantity) (*Catalog, error) {
	merged := c.Quantities()
	for _, q := range quantities {
		replaced := false
		for i := range merged {
			if normalizeName(merged[i].Name) == normalizeName(q.Name) {
				merged[i] = q
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, q)
		}
	}
	return NewCatalog(merged...)
}

// Convert converts value between two units of the named quantity.
func (c *Catalog) Convert(quantity, from, to string, value float64) (float64, error) {
	q, err := c.Quantity(quantity)
	if err != nil {
		return 0, err
	}
	return Convert(q, from, to, value)
}

// Validate checks the catalog invariants and returns every violation joined
// under ErrInvalidCatalog.
func (c *Catalog) Validate() error {
	if c == nil || len(c.quantities) == 0 {
		return fmt.Errorf("%w: no quantities", ErrInvalidCatalog)
	}
	var errs []error
	seen := make(map[string]struct{}, len(c.quantities))
	for _, q := range c.quantities {
		key := normalizeName(q.Name)
		if key == "" {
			errs = append(errs, errors.New("quantity name is required"))
			continue
		}
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("duplicate quantity %q", q.Name))
			continue
		}
		seen[key] = struct{}{}
		errs = append(errs, validateQuantity(q)...)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

func validateQuantity(q Quantity) []error {
	var errs []error
	switch q.Kind {
	case KindLinear, KindTemperature:
	default:
		errs = append(errs, fmt.Errorf("quantity %q: unsupported kind %q", q.Name, q.Kind))
	}
	if len(q.Units) == 0 {
		return append(errs, fmt.Errorf("quantity %q: no units", q.Name))
	}

	keys := make(map[string]struct{}, len(q.Units))
	for _, unit := range q.Units {
		if strings.TrimSpace(unit.Key) == "" {
			errs = append(errs, fmt.Errorf("quantity %q: unit key is required", q.Name))
			continue
		}
		if _, dup := keys[unit.Key]; dup {
			errs = append(errs, fmt.Errorf("quantity %q: duplicate unit %q", q.Name, unit.Key))
			continue
		}
		keys[unit.Key] = struct{}{}

		if q.Kind == KindTemperature {
			if !isTemperatureUnit(unit.Key) {
				errs = append(errs, fmt.Errorf("quantity %q: unsupported temperature unit %q", q.Name, unit.Key))
			}
			continue
		}
		if math.IsNaN(unit.Factor) || math.IsInf(unit.Factor, 0) || unit.Factor <= 0 {
			errs = append(errs, fmt.Errorf("quantity %q: unit %q factor must be a positive finite number", q.Name, unit.Key))
		}
	}

	if _, ok := keys[q.Primary]; !ok {
		errs = append(errs, fmt.Errorf("quantity %q: primary unit %q not defined", q.Name, q.Primary))
	}
	if _, ok := keys[q.Secondary]; !ok {
		errs = append(errs, fmt.Errorf("quantity %q: secondary unit %q not defined", q.Name, q.Secondary))
	}
	return errs
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

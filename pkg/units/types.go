package units

import "strings"

// Kind selects the conversion strategy for a quantity.
type Kind string

const (
	// KindLinear converts through the ratio of unit factors.
	KindLinear Kind = "linear"
	// KindTemperature converts through the affine temperature formulas.
	KindTemperature Kind = "temperature"
)

// Temperature unit keys understood by the affine converter.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

// Unit is a named unit of a quantity. Factor satisfies
// value_in_unit = value_in_base_unit * Factor and is ignored for temperature.
type Unit struct {
	Key    string  `json:"key" yaml:"key"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Symbol string  `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Factor float64 `json:"factor,omitempty" yaml:"factor,omitempty"`
}

// DisplayLabel returns the label shown in unit pickers.
func (u Unit) DisplayLabel() string {
	if label := strings.TrimSpace(u.Label); label != "" {
		return label
	}
	return u.Key
}

// Quantity is a physical dimension with its units in display order. Primary
// and Secondary name the units a panel starts with.
type Quantity struct {
	Name        string `json:"name" yaml:"name"`
	Kind        Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Primary     string `json:"primary" yaml:"primary"`
	Secondary   string `json:"secondary" yaml:"secondary"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Units       []Unit `json:"units" yaml:"units"`
}

// IsTemperature reports whether the quantity uses affine conversion.
func (q Quantity) IsTemperature() bool {
	return q.Kind == KindTemperature
}

// Unit looks up a unit by key. Keys are matched exactly.
func (q Quantity) Unit(key string) (Unit, bool) {
	for _, unit := range q.Units {
		if unit.Key == key {
			return unit, true
		}
	}
	return Unit{}, false
}

// HasUnit reports whether key belongs to the quantity.
func (q Quantity) HasUnit(key string) bool {
	_, ok := q.Unit(key)
	return ok
}

// UnitKeys lists the unit keys in display order.
func (q Quantity) UnitKeys() []string {
	keys := make([]string, 0, len(q.Units))
	for _, unit := range q.Units {
		keys = append(keys, unit.Key)
	}
	return keys
}

func (q Quantity) clone() Quantity {
	out := q
	if q.Units != nil {
		out.Units = append([]Unit(nil), q.Units...)
	}
	if out.Kind == "" {
		out.Kind = KindLinear
	}
	return out
}

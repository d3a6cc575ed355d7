package widget

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// Side identifies one of the two numeric fields.
type Side string

const (
	SideInput  Side = "input"
	SideOutput Side = "output"
)

// Panel is the conversion panel: two unit pickers and two numeric fields for
// the quantity chosen on its Selector.
type Panel struct {
	selector   *Selector
	inputUnit  string
	outputUnit string
	input      float64
	output     float64
	edited     Side

	// Text the user typed into a field, shown instead of the formatted value
	// until the field changes again. Empty means format the value.
	inputText  string
	outputText string
}

// NewPanel builds a panel for the selector's current quantity using its
// primary and secondary units. A nil selector uses the default catalog.
func NewPanel(selector *Selector) *Panel {
	if selector == nil {
		selector = NewSelector(nil)
	}
	p := &Panel{selector: selector}
	p.resetUnits()
	return p
}

// Selector returns the quantity selector backing the panel.
func (p *Panel) Selector() *Selector {
	return p.selector
}

// Quantity returns the current quantity.
func (p *Panel) Quantity() units.Quantity {
	return p.selector.Current()
}

// InputUnit returns the unit of the first field.
func (p *Panel) InputUnit() string { return p.inputUnit }

// OutputUnit returns the unit of the second field.
func (p *Panel) OutputUnit() string { return p.outputUnit }

// Input returns the value of the first field.
func (p *Panel) Input() float64 { return p.input }

// Output returns the value of the second field.
func (p *Panel) Output() float64 { return p.output }

// LastEdited reports which field was edited last, empty after a reset.
func (p *Panel) LastEdited() Side { return p.edited }

// SelectQuantity switches quantity, restores the default units and zeroes both
// fields.
func (p *Panel) SelectQuantity(name string) error {
	if err := p.selector.Select(name); err != nil {
		return err
	}
	p.resetUnits()
	return nil
}

// SelectQuantityIndex is SelectQuantity addressed by catalog position.
func (p *Panel) SelectQuantityIndex(index int) error {
	if err := p.selector.SelectIndex(index); err != nil {
		return err
	}
	p.resetUnits()
	return nil
}

// SetInputUnit changes the first field's unit and zeroes both fields.
func (p *Panel) SetInputUnit(key string) error {
	if err := p.checkUnit(key); err != nil {
		return err
	}
	p.inputUnit = key
	p.Reset()
	return nil
}

// SetOutputUnit changes the second field's unit and zeroes both fields.
func (p *Panel) SetOutputUnit(key string) error {
	if err := p.checkUnit(key); err != nil {
		return err
	}
	p.outputUnit = key
	p.Reset()
	return nil
}

// EditInput parses raw into the first field and recomputes the second. Input
// that does not parse zeroes both fields and returns units.ErrInvalidValue.
func (p *Panel) EditInput(raw string) error {
	value, err := units.ParseValue(raw)
	if err != nil {
		p.Reset()
		return err
	}
	if err := p.SetInputValue(value); err != nil {
		return err
	}
	p.inputText = strings.TrimSpace(raw)
	return nil
}

// EditOutput parses raw into the second field and recomputes the first.
func (p *Panel) EditOutput(raw string) error {
	value, err := units.ParseValue(raw)
	if err != nil {
		p.Reset()
		return err
	}
	if err := p.SetOutputValue(value); err != nil {
		return err
	}
	p.outputText = strings.TrimSpace(raw)
	return nil
}

// SetInputValue stores value in the first field and recomputes the second. A
// result outside the float64 range zeroes both fields and returns
// units.ErrInvalidValue.
func (p *Panel) SetInputValue(value float64) error {
	converted, err := units.Convert(p.Quantity(), p.inputUnit, p.outputUnit, value)
	if err != nil {
		return fmt.Errorf("widget: convert input: %w", err)
	}
	if !units.IsFinite(converted) {
		p.Reset()
		return fmt.Errorf("widget: convert input: %w", units.ErrInvalidValue)
	}
	p.input = value
	p.output = units.Round(converted)
	p.inputText, p.outputText = "", ""
	p.edited = SideInput
	return nil
}

// SetOutputValue stores value in the second field and recomputes the first.
func (p *Panel) SetOutputValue(value float64) error {
	converted, err := units.Convert(p.Quantity(), p.outputUnit, p.inputUnit, value)
	if err != nil {
		return fmt.Errorf("widget: convert output: %w", err)
	}
	if !units.IsFinite(converted) {
		p.Reset()
		return fmt.Errorf("widget: convert output: %w", units.ErrInvalidValue)
	}
	p.output = value
	p.input = units.Round(converted)
	p.inputText, p.outputText = "", ""
	p.edited = SideOutput
	return nil
}

// InputText returns the first field as displayed: the typed text after an
// edit, the formatted value otherwise.
func (p *Panel) InputText() string { return displayText(p.inputText, p.input) }

// OutputText is InputText for the second field.
func (p *Panel) OutputText() string { return displayText(p.outputText, p.output) }

func displayText(text string, value float64) string {
	if text != "" {
		return text
	}
	return units.FormatValue(value)
}

// Swap exchanges the two units and carries the values along with them, so the
// displayed pair stays equivalent.
func (p *Panel) Swap() {
	p.inputUnit, p.outputUnit = p.outputUnit, p.inputUnit
	p.input, p.output = p.output, p.input
	p.inputText, p.outputText = p.outputText, p.inputText
	switch p.edited {
	case SideInput:
		p.edited = SideOutput
	case SideOutput:
		p.edited = SideInput
	}
}

// Reset zeroes both fields.
func (p *Panel) Reset() {
	p.input = 0
	p.output = 0
	p.inputText, p.outputText = "", ""
	p.edited = ""
}

func (p *Panel) resetUnits() {
	q := p.selector.Current()
	p.inputUnit = q.Primary
	p.outputUnit = q.Secondary
	p.Reset()
}

func (p *Panel) checkUnit(key string) error {
	q := p.Quantity()
	if !q.HasUnit(key) {
		return fmt.Errorf("widget: unit %q in %s: %w", key, q.Name, units.ErrUnknownUnit)
	}
	return nil
}

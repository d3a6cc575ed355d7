package widget

import (
	"fmt"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// UnitOption is one entry of a unit picker.
type UnitOption struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Symbol string `json:"symbol,omitempty"`
}

// View is an immutable snapshot of a panel, shaped for renderers.
type View struct {
	Quantity    string           `json:"quantity"`
	Index       int              `json:"index"`
	Kind        units.Kind       `json:"kind"`
	Description string           `json:"description,omitempty"`
	Quantities  []QuantityOption `json:"quantities"`
	Units       []UnitOption     `json:"units"`
	InputUnit   string           `json:"inputUnit"`
	OutputUnit  string           `json:"outputUnit"`
	Input       float64          `json:"input"`
	Output      float64          `json:"output"`
	InputText   string           `json:"inputText"`
	OutputText  string           `json:"outputText"`
	LastEdited  Side             `json:"lastEdited,omitempty"`
}

// View snapshots the panel.
func (p *Panel) View() View {
	q := p.Quantity()
	options := make([]UnitOption, 0, len(q.Units))
	for _, unit := range q.Units {
		options = append(options, UnitOption{
			Key:    unit.Key,
			Label:  unit.DisplayLabel(),
			Symbol: unit.Symbol,
		})
	}
	return View{
		Quantity:    q.Name,
		Index:       p.selector.Index(),
		Kind:        q.Kind,
		Description: q.Description,
		Quantities:  p.selector.Options(),
		Units:       options,
		InputUnit:   p.inputUnit,
		OutputUnit:  p.outputUnit,
		Input:       p.input,
		Output:      p.output,
		InputText:   p.InputText(),
		OutputText:  p.OutputText(),
		LastEdited:  p.edited,
	}
}

// State returns the serializable part of the view.
func (v View) State() State {
	return State{
		Quantity:   v.Quantity,
		InputUnit:  v.InputUnit,
		OutputUnit: v.OutputUnit,
		Input:      v.InputText,
		Output:     v.OutputText,
	}
}

// Summary renders the pair as "1 km = 1000 m".
func (v View) Summary() string {
	return fmt.Sprintf("%s %s = %s %s", v.InputText, v.unitDisplay(v.InputUnit), v.OutputText, v.unitDisplay(v.OutputUnit))
}

// UnitLabel returns the display label for key, or key when unknown.
func (v View) UnitLabel(key string) string {
	for _, unit := range v.Units {
		if unit.Key == key {
			return unit.Label
		}
	}
	return key
}

func (v View) unitDisplay(key string) string {
	for _, unit := range v.Units {
		if unit.Key == key && unit.Symbol != "" {
			return unit.Symbol
		}
	}
	return v.UnitLabel(key)
}

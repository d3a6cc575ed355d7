package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// EventKind names a UI interaction the panel understands.
type EventKind string

const (
	EventQuantity   EventKind = "quantity"
	EventInputUnit  EventKind = "inputUnit"
	EventOutputUnit EventKind = "outputUnit"
	EventInput      EventKind = "input"
	EventOutput     EventKind = "output"
	EventSwap       EventKind = "swap"
)

// ErrUnknownEvent is returned by Apply for unsupported event kinds.
var ErrUnknownEvent = errors.New("widget: unknown event")

// Event is a single UI interaction. Value carries the quantity name, unit key
// or raw field text depending on Kind.
type Event struct {
	Kind  EventKind `json:"kind"`
	Value string    `json:"value,omitempty"`
}

// Apply dispatches ev to the matching panel operation.
func (p *Panel) Apply(ev Event) error {
	switch ev.Kind {
	case EventQuantity:
		return p.SelectQuantity(ev.Value)
	case EventInputUnit:
		return p.SetInputUnit(ev.Value)
	case EventOutputUnit:
		return p.SetOutputUnit(ev.Value)
	case EventInput:
		return p.EditInput(ev.Value)
	case EventOutput:
		return p.EditOutput(ev.Value)
	case EventSwap:
		p.Swap()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
}

// ApplyAll applies events in order and stops at the first failure.
func (p *Panel) ApplyAll(events ...Event) error {
	for i, ev := range events {
		if err := p.Apply(ev); err != nil {
			return fmt.Errorf("widget: event %d (%s): %w", i, ev.Kind, err)
		}
	}
	return nil
}

// State is the serializable form of a panel, carried by stateless shells
// between interactions (hidden inputs, JSON payloads).
type State struct {
	Quantity   string `json:"quantity"`
	InputUnit  string `json:"inputUnit"`
	OutputUnit string `json:"outputUnit"`
	Input      string `json:"input"`
	Output     string `json:"output"`
}

// Restore rebuilds a panel from state. An empty quantity starts from the
// catalog's first entry, empty units fall back to the quantity defaults and
// values that do not parse restore as zero. Values that parse keep their text.
func Restore(catalog *units.Catalog, state State) (*Panel, error) {
	selector := NewSelector(catalog)
	if name := strings.TrimSpace(state.Quantity); name != "" {
		if err := selector.Select(name); err != nil {
			return nil, err
		}
	}
	p := NewPanel(selector)
	if state.InputUnit != "" {
		if err := p.checkUnit(state.InputUnit); err != nil {
			return nil, err
		}
		p.inputUnit = state.InputUnit
	}
	if state.OutputUnit != "" {
		if err := p.checkUnit(state.OutputUnit); err != nil {
			return nil, err
		}
		p.outputUnit = state.OutputUnit
	}
	if v, err := units.ParseValue(state.Input); err == nil {
		p.input = v
		p.inputText = strings.TrimSpace(state.Input)
	}
	if v, err := units.ParseValue(state.Output); err == nil {
		p.output = v
		p.outputText = strings.TrimSpace(state.Output)
	}
	return p, nil
}

// State captures the panel for a later Restore.
func (p *Panel) State() State {
	return State{
		Quantity:   p.Quantity().Name,
		InputUnit:  p.inputUnit,
		OutputUnit: p.outputUnit,
		Input:      p.InputText(),
		Output:     p.OutputText(),
	}
}

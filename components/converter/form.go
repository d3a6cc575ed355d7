package converter

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-unitconv/pkg/widget"
)

// Form field names posted by the vanilla panel.
const (
	fieldEvent      = "event"
	statePrefix     = "state."
	fieldQuantity   = string(widget.EventQuantity)
	fieldInputUnit  = string(widget.EventInputUnit)
	fieldOutputUnit = string(widget.EventOutputUnit)
	fieldInput      = string(widget.EventInput)
	fieldOutput     = string(widget.EventOutput)
)

// stateFromForm reads the hidden state.* inputs.
func stateFromForm(form url.Values) widget.State {
	return widget.State{
		Quantity:   form.Get(statePrefix + fieldQuantity),
		InputUnit:  form.Get(statePrefix + fieldInputUnit),
		OutputUnit: form.Get(statePrefix + fieldOutputUnit),
		Input:      form.Get(statePrefix + fieldInput),
		Output:     form.Get(statePrefix + fieldOutput),
	}
}

// eventsFromForm derives panel events from a form post. The runtime names the
// changed field in "event"; plain submits are diffed against the hidden state.
// A quantity change discards the other visible fields since they belong to
// the previous quantity.
func eventsFromForm(form url.Values, state widget.State) []widget.Event {
	if kind := strings.TrimSpace(form.Get(fieldEvent)); kind != "" {
		ev := widget.Event{Kind: widget.EventKind(kind)}
		if ev.Kind != widget.EventSwap {
			ev.Value = form.Get(kind)
		}
		return []widget.Event{ev}
	}

	if q, ok := changed(form, fieldQuantity, state.Quantity); ok {
		return []widget.Event{{Kind: widget.EventQuantity, Value: q}}
	}

	var events []widget.Event
	if u, ok := changed(form, fieldInputUnit, state.InputUnit); ok {
		events = append(events, widget.Event{Kind: widget.EventInputUnit, Value: u})
	}
	if u, ok := changed(form, fieldOutputUnit, state.OutputUnit); ok {
		events = append(events, widget.Event{Kind: widget.EventOutputUnit, Value: u})
	}
	if v, ok := changed(form, fieldInput, state.Input); ok {
		events = append(events, widget.Event{Kind: widget.EventInput, Value: v})
	} else if v, ok := changed(form, fieldOutput, state.Output); ok {
		events = append(events, widget.Event{Kind: widget.EventOutput, Value: v})
	}
	return events
}

func changed(form url.Values, field, previous string) (string, bool) {
	if _, present := form[field]; !present {
		return "", false
	}
	value := form.Get(field)
	if strings.TrimSpace(value) == strings.TrimSpace(previous) {
		return "", false
	}
	return value, true
}

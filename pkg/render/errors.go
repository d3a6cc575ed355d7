package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

// FieldErrors maps a failed panel event onto the field it belongs to, with a
// message suitable for inline display. A nil err yields nil.
func FieldErrors(ev widget.Event, err error) map[string][]string {
	if err == nil {
		return nil
	}
	field := ""
	switch ev.Kind {
	case widget.EventQuantity, widget.EventInputUnit, widget.EventOutputUnit, widget.EventInput, widget.EventOutput:
		field = string(ev.Kind)
	}
	return map[string][]string{field: {Message(err)}}
}

// Message returns the user facing text for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, units.ErrInvalidValue):
		return "Enter a number"
	case errors.Is(err, units.ErrUnknownUnit):
		return "Unknown unit"
	case errors.Is(err, units.ErrUnknownQuantity):
		return "Unknown quantity"
	case errors.Is(err, widget.ErrUnknownEvent):
		return "Unsupported action"
	default:
		return strings.TrimSpace(err.Error())
	}
}

// MergeErrors combines error maps, trimming and de-duplicating messages per
// field while preserving order.
func MergeErrors(maps ...map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, m := range maps {
		for field, messages := range m {
			out[field] = append(out[field], messages...)
		}
	}
	for field, messages := range out {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			delete(out, field)
			continue
		}
		out[field] = normalized
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

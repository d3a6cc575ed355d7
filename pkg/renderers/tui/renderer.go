// Package tui runs the converter as a prompt driven terminal session.
//
// The renderer restores a panel from the incoming view, asks for a quantity,
// both units, the side to edit and a value, prints the synchronized pair and
// repeats until the user declines. The final panel state is returned in the
// configured output format.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

// Renderer implements render.Renderer for interactive terminal sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	catalog      *units.Catalog
	maxRounds    int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer. Without WithPromptDriver it prompts on the
// process terminal through survey.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatPrettyText,
		catalog:      units.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, r.outputFormat)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatJSON:
		return "application/json"
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render restores a panel from view and runs an interactive session on it.
func (r *Renderer) Render(ctx context.Context, view widget.View, _ render.RenderOptions) ([]byte, error) {
	panel, err := widget.Restore(r.catalog, view.State())
	if err != nil {
		return nil, fmt.Errorf("tui: restore panel: %w", err)
	}
	lines, err := r.Run(ctx, panel)
	if err != nil {
		return nil, err
	}
	return r.encode(panel.View(), lines)
}

// Run drives the prompt loop against panel and returns one summary line per
// completed conversion.
func (r *Renderer) Run(ctx context.Context, panel *widget.Panel) ([]string, error) {
	var lines []string
	for round := 1; ; round++ {
		if err := r.round(ctx, panel); err != nil {
			return lines, err
		}
		summary := panel.View().Summary()
		lines = append(lines, summary)
		if err := r.info(ctx, summary); err != nil {
			return lines, err
		}

		if r.maxRounds > 0 && round >= r.maxRounds {
			return lines, nil
		}
		again, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Convert another value?", Default: true})
		if err != nil {
			return lines, err
		}
		if !again {
			return lines, nil
		}
	}
}

func (r *Renderer) round(ctx context.Context, panel *widget.Panel) error {
	selector := panel.Selector()
	quantities := selector.Catalog().Quantities()
	names := make([]string, len(quantities))
	descriptions := make([]string, len(quantities))
	for i, q := range quantities {
		names[i] = q.Name
		descriptions[i] = plainText(q.Description)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Quantity",
		Options:      names,
		Descriptions: descriptions,
		DefaultIndex: selector.Index(),
		PageSize:     len(names),
	})
	if err != nil {
		return err
	}
	if idx != selector.Index() {
		if err := panel.SelectQuantityIndex(idx); err != nil {
			return err
		}
	}

	view := panel.View()
	unitLabels := make([]string, len(view.Units))
	for i, unit := range view.Units {
		unitLabels[i] = unitOption(unit)
	}
	if err := r.pickUnit(ctx, "From unit", view, unitLabels, view.InputUnit, panel.SetInputUnit); err != nil {
		return err
	}
	view = panel.View()
	if err := r.pickUnit(ctx, "To unit", view, unitLabels, view.OutputUnit, panel.SetOutputUnit); err != nil {
		return err
	}

	view = panel.View()
	sides := []string{
		fmt.Sprintf("From (%s)", view.UnitLabel(view.InputUnit)),
		fmt.Sprintf("To (%s)", view.UnitLabel(view.OutputUnit)),
	}
	side, err := r.driver.Select(ctx, SelectConfig{Message: "Which value do you know?", Options: sides})
	if err != nil {
		return err
	}

	edit, current, unitKey := panel.EditInput, view.InputText, view.InputUnit
	if side == 1 {
		edit, current, unitKey = panel.EditOutput, view.OutputText, view.OutputUnit
	}
	raw, err := r.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("Value in %s", view.UnitLabel(unitKey)),
		Default:   current,
		Validator: validateValue,
	})
	if err != nil {
		return err
	}
	if err := edit(raw); err != nil {
		if errors.Is(err, units.ErrInvalidValue) {
			return r.info(ctx, r.theme.ErrorPrefix+render.Message(err))
		}
		return err
	}
	return nil
}

func (r *Renderer) pickUnit(ctx context.Context, message string, view widget.View, labels []string, current string, set func(string) error) error {
	def := 0
	for i, unit := range view.Units {
		if unit.Key == current {
			def = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, PageSize: len(labels)})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(view.Units) {
		return fmt.Errorf("tui: %s: %w", strings.ToLower(message), units.ErrUnknownUnit)
	}
	if view.Units[idx].Key == current {
		return nil
	}
	return set(view.Units[idx].Key)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) encode(view widget.View, lines []string) ([]byte, error) {
	state := view.State()
	switch r.outputFormat {
	case OutputFormatJSON:
		out, err := json.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		values.Set("quantity", state.Quantity)
		values.Set("inputUnit", state.InputUnit)
		values.Set("outputUnit", state.OutputUnit)
		values.Set("input", state.Input)
		values.Set("output", state.Output)
		return []byte(values.Encode()), nil
	default:
		if len(lines) == 0 {
			lines = []string{view.Summary()}
		}
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	}
}

var stripTags = bluemonday.StrictPolicy()

// plainText drops the markup catalog descriptions may carry.
func plainText(description string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(description)))
}

func validateValue(raw string) error {
	if _, err := units.ParseValue(raw); err != nil {
		return errNotANumber
	}
	return nil
}

func unitOption(unit widget.UnitOption) string {
	if unit.Symbol == "" || unit.Symbol == unit.Label {
		return unit.Label
	}
	return fmt.Sprintf("%s (%s)", unit.Label, unit.Symbol)
}

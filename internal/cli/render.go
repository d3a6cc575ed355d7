package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-unitconv/pkg/orchestrator"
	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		format   string
		quantity string
		state    string
		events   []string
		fragment bool
		output   string
		theme    string
		variant  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the panel with a registered renderer",
		Example: `  unitconv render --format vanilla --output panel.html
  unitconv render --format json -q Mass --event input=2 --event swap`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := orchestrator.Request{
				Source:        a.source(),
				Renderer:      format,
				ThemeName:     theme,
				ThemeVariant:  variant,
				RenderOptions: render.RenderOptions{Fragment: fragment},
			}
			if state != "" {
				if err := json.Unmarshal([]byte(state), &req.State); err != nil {
					return fmt.Errorf("render: --state: %w", err)
				}
			}
			if q := a.quantity(quantity); q != "" && req.State.Quantity == "" {
				req.State.Quantity = q
			}
			for _, raw := range events {
				ev, err := parseEvent(raw)
				if err != nil {
					return err
				}
				req.Events = append(req.Events, ev)
			}

			res, err := a.orch.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, res.Output); err != nil {
				return err
			}
			if res.EventErr != nil {
				a.logger.Warn("unitconv: event rejected", zap.Error(res.EventErr))
				return fmt.Errorf("render: %w", res.EventErr)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", "", "renderer name, e.g. vanilla or json (defaults to panel.renderer)")
	flags.StringVarP(&quantity, "quantity", "q", "", "starting quantity")
	flags.StringVar(&state, "state", "", `panel state as JSON, e.g. {"quantity":"Length","input":"1"}`)
	flags.StringArrayVarP(&events, "event", "e", nil, "event to apply as kind=value, repeatable")
	flags.BoolVar(&fragment, "fragment", false, "emit the panel markup without the page document")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.StringVar(&theme, "theme", "", "theme name")
	flags.StringVar(&variant, "variant", "", "theme variant (defaults to the quantity)")
	return cmd
}

// parseEvent reads "kind=value". Swap takes no value.
func parseEvent(raw string) (widget.Event, error) {
	kind, value, _ := strings.Cut(strings.TrimSpace(raw), "=")
	ev := widget.Event{Kind: widget.EventKind(strings.TrimSpace(kind)), Value: value}
	switch ev.Kind {
	case widget.EventSwap:
		ev.Value = ""
	case widget.EventQuantity, widget.EventInputUnit, widget.EventOutputUnit, widget.EventInput, widget.EventOutput:
	default:
		return widget.Event{}, fmt.Errorf("render: --event %q: %w", raw, widget.ErrUnknownEvent)
	}
	return ev, nil
}

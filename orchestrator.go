package unitconv

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-unitconv/pkg/catalog"
	"github.com/goliatone/go-unitconv/pkg/orchestrator"
	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

// RenderOptions describes per-request data renderers use to customise their
// output, such as inline errors and the form action.
type RenderOptions = render.RenderOptions

// State is the replayable form of a panel.
type State = widget.State

// Event is a single panel interaction.
type Event = widget.Event

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render restores state from the catalog named by source (nil for the
// built-in one), applies events in order and renders the panel with the
// named renderer. It is the simplest entry point for callers that just want
// output bytes.
func Render(ctx context.Context, source catalog.Source, state State, events []Event, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		State:    state,
		Events:   events,
		Renderer: rendererName,
	})
}

// RenderHTML renders the full vanilla page for state.
func RenderHTML(ctx context.Context, state State, options ...orchestrator.Option) ([]byte, error) {
	return Render(ctx, nil, state, nil, "vanilla", options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// the theme variant can follow the selected quantity.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

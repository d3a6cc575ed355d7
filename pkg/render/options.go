package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the panel.
type RenderOptions struct {
	// Fragment asks HTML renderers for the panel markup only, without the
	// surrounding document. Used when a page swaps the panel in place.
	Fragment bool
	// Action is the URL the no-script form posts events to.
	Action string
	// AssetsPrefix is where runtime assets (script, stylesheet) are mounted.
	AssetsPrefix string
	// Errors surfaces feedback keyed by field name ("quantity", "inputUnit",
	// "outputUnit", "input", "output"); the empty key holds panel-level
	// messages.
	Errors map[string][]string
	// Theme carries the resolved theme for the current quantity.
	Theme *theme.RendererConfig
}

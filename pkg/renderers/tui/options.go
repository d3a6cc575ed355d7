package tui

import "github.com/goliatone/go-unitconv/pkg/units"

// OutputFormat controls how the final panel state is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the panel state as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the state as application/x-www-form-urlencoded.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one summary line per conversion.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the session adds to printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithCatalog sets the catalog views are restored against. Defaults to
// units.Default().
func WithCatalog(c *units.Catalog) Option {
	return func(r *Renderer) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithMaxRounds caps how many conversions one session runs. Zero means until
// the user declines to continue.
func WithMaxRounds(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxRounds = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

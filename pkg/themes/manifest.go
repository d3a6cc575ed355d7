// Package themes resolves the go-theme configuration the renderers receive.
// The built-in manifest carries one variant per default quantity so the page
// changes its accent colour with the selected quantity.
package themes

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-unitconv/pkg/units"
)

const (
	// DefaultTheme is the name of the built-in manifest.
	DefaultTheme = "unitconv"

	// AccentToken is the token the live view and the stylesheet colour with.
	AccentToken = "unitconv-accent"
)

var quantityAccents = map[string]string{
	"Length":      "#2563eb",
	"Volume":      "#0891b2",
	"Mass":        "#7c3aed",
	"Time":        "#ca8a04",
	"Temperature": "#dc2626",
	"Area":        "#16a34a",
	"Speed":       "#ea580c",
	"Energy":      "#db2777",
	"Pressure":    "#475569",
}

// DefaultManifest builds the built-in manifest. Each call returns a fresh
// value so callers may modify it before registering.
func DefaultManifest() *theme.Manifest {
	variants := make(map[string]theme.Variant, len(quantityAccents))
	for name, accent := range quantityAccents {
		variants[units.Slug(name)] = theme.Variant{
			Tokens: map[string]string{AccentToken: accent},
		}
	}
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			AccentToken:        "#2563eb",
			"unitconv-surface": "#ffffff",
			"unitconv-border":  "#d1d5db",
			"unitconv-text":    "#111827",
			"unitconv-error":   "#b91c1c",
			"unitconv-radius":  "6px",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"vanilla.stylesheet": "unitconv-vanilla.css",
			},
		},
		Variants: variants,
	}
}

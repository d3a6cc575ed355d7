package themes

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RendererConfig flattens a selection into what renderers consume: variant
// tokens over base tokens, CSS variables named "--" + token, partials over
// fallbacks and an asset resolver where variant files win over base files.
func RendererConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	variant, hasVariant := manifest.Variants[sel.Variant]

	tokens := mergeStrings(manifest.Tokens)
	partials := mergeStrings(fallbacks, manifest.Templates)
	if hasVariant {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	base := manifest.Assets
	var over theme.Assets
	if hasVariant {
		over = variant.Assets
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			return resolveAsset(base, over, key)
		},
	}
}

func resolveAsset(base, over theme.Assets, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	prefix := base.Prefix
	if over.Prefix != "" {
		prefix = over.Prefix
	}
	file, ok := over.Files[key]
	if !ok {
		file, ok = base.Files[key]
	}
	if !ok || file == "" {
		return ""
	}
	if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}

func mergeStrings(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	return out
}

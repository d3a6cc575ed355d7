package themes

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// ErrUnknownTheme is returned when no manifest is registered under a name.
var ErrUnknownTheme = errors.New("themes: unknown theme")

// Selector resolves theme selections from registered manifests. Unknown
// variants fall back to the base manifest so custom quantities still render.
type Selector struct {
	mu           sync.RWMutex
	provider     theme.ThemeProvider
	manifests    map[string]*theme.Manifest
	defaultTheme string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests with a go-theme registry. The first
// manifest becomes the default theme. Without manifests the built-in one is
// used.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	s := &Selector{
		provider:  registry,
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
	}
	if s.defaultTheme == "" {
		return nil, fmt.Errorf("%w: no manifests", ErrUnknownTheme)
	}
	return s, nil
}

// MustSelector is NewSelector that panics on error.
func MustSelector(manifests ...*theme.Manifest) *Selector {
	s, err := NewSelector(manifests...)
	if err != nil {
		panic(err)
	}
	return s
}

// Provider exposes the go-theme registry backing the selector.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// DefaultTheme returns the name used when Select receives an empty name.
func (s *Selector) DefaultTheme() string {
	return s.defaultTheme
}

// Select implements theme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// ForQuantity selects the variant named after quantity in theme name.
func (s *Selector) ForQuantity(name, quantity string) (*theme.Selection, error) {
	return s.Select(name, units.Slug(quantity))
}

// Accent returns the accent colour of quantity in the default theme.
func (s *Selector) Accent(quantity string) string {
	sel, err := s.ForQuantity("", quantity)
	if err != nil {
		return ""
	}
	return RendererConfig(sel, nil).Tokens[AccentToken]
}

package render

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUnknownRenderer is returned for names that were never registered.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrNoRenderers is returned by Resolve on an empty registry.
	ErrNoRenderers = errors.New("render: no renderers registered")
)

// Registry stores renderers by name so shells can pick an output format at
// runtime, for example an HTML page or a JSON snapshot. Names are matched
// case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := registryKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[key]; exists {
		return fmt.Errorf("render: renderer %q already registered", renderer.Name())
	}
	r.renderers[key] = renderer
	r.order = append(r.order, key)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[registryKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// Resolve picks the renderer for a request. An explicit name must exist.
// Without one the fallback is tried, then the first registered renderer.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if strings.TrimSpace(name) != "" {
		return r.Get(name)
	}
	if renderer, err := r.Get(fallback); err == nil {
		return renderer, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil, ErrNoRenderers
	}
	return r.renderers[r.order[0]], nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for _, key := range slices.Sorted(maps.Keys(r.renderers)) {
		names = append(names, r.renderers[key].Name())
	}
	return names
}

func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

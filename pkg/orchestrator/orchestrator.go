package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-unitconv/pkg/catalog"
	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/renderers/jsonview"
	"github.com/goliatone/go-unitconv/pkg/renderers/vanilla"
	"github.com/goliatone/go-unitconv/pkg/themes"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

const defaultRendererName = "vanilla"

// CatalogLoader reads a unit catalog. A nil source means the built-in one.
type CatalogLoader interface {
	Load(ctx context.Context, src catalog.Source) (*units.Catalog, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom catalog loader.
func WithLoader(loader CatalogLoader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithCatalog pins the catalog used when a request names no source.
func WithCatalog(c *units.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = c
	}
}

// WithRegistry supplies the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer sets the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a hook that can rewrite the view before
// rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector replaces the built-in theme selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeManifests registers manifests with a fresh selector. The first
// manifest becomes the default theme.
func WithThemeManifests(manifests ...*theme.Manifest) Option {
	return func(o *Orchestrator) {
		selector, err := themes.NewSelector(manifests...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme manifests: %w", err)
			return
		}
		o.themeSelector = selector
	}
}

// WithTheme sets the theme name used when a request names none.
func WithTheme(name string) Option {
	return func(o *Orchestrator) {
		o.themeName = strings.TrimSpace(name)
	}
}

// WithThemeFallbacks sets partials used when the manifest defines none.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithoutTheme skips theme resolution; renderers receive a nil theme.
func WithoutTheme() Option {
	return func(o *Orchestrator) {
		o.themeDisabled = true
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator restores a panel, applies events, resolves a theme and hands
// the resulting view to a renderer.
type Orchestrator struct {
	loader          CatalogLoader
	catalog         *units.Catalog
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	themeName       string
	themeFallbacks  map[string]string
	themeDisabled   bool
	logger          *zap.Logger
	initialiseErr   error
	defaultsApplied bool

	mu       sync.RWMutex
	catalogs map[string]*units.Catalog
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one interaction with the converter panel.
type Request struct {
	// Source names a catalog document. When nil the configured catalog, or
	// the built-in one, is used. Loaded catalogs are cached per location.
	Source catalog.Source

	// State restores the panel before events are applied. The zero value
	// starts from the first quantity with its default units.
	State widget.State

	// Events are applied in order. Processing stops at the first failure;
	// the failure is reported through Result.Errors and the panel is still
	// rendered.
	Events []widget.Event

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the theme selection. The variant
	// defaults to the slug of the current quantity.
	ThemeName    string
	ThemeVariant string

	// AssetBase is prepended to root-relative theme asset URLs, for shells
	// mounted below a path prefix.
	AssetBase string

	// RenderOptions carries per-request instructions. Errors given here are
	// merged with event errors; a Theme given here skips theme resolution.
	RenderOptions render.RenderOptions
}

// Result is the outcome of Run.
type Result struct {
	Output      []byte
	ContentType string
	View        widget.View
	State       widget.State
	// Errors holds field errors raised while applying events.
	Errors map[string][]string
	// EventErr is the first event failure, if any.
	EventErr error
}

// Generate runs the pipeline and returns only the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Run executes load, restore, apply, theme and render in sequence.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}
	started := time.Now()

	cat, err := o.Catalog(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	panel, err := widget.Restore(cat, req.State)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: restore panel: %w", err)
	}

	var (
		eventErrs map[string][]string
		eventErr  error
	)
	for _, ev := range req.Events {
		if err := panel.Apply(ev); err != nil {
			eventErr = err
			eventErrs = render.FieldErrors(ev, err)
			o.logger.Debug("orchestrator: event rejected",
				zap.String("kind", string(ev.Kind)),
				zap.String("value", ev.Value),
				zap.Error(err),
			)
			break
		}
	}

	view := panel.View()
	if err := o.applyTransformer(ctx, &view); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	options.Errors = render.MergeErrors(options.Errors, eventErrs)
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req, view.Quantity)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, view, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("orchestrator: rendered panel",
		zap.String("renderer", renderer.Name()),
		zap.String("quantity", view.Quantity),
		zap.Int("events", len(req.Events)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		View:        view,
		State:       view.State(),
		Errors:      eventErrs,
		EventErr:    eventErr,
	}, nil
}

// Catalog returns the catalog for src, loading and caching it on first use.
func (o *Orchestrator) Catalog(ctx context.Context, src catalog.Source) (*units.Catalog, error) {
	if src == nil {
		if o.catalog != nil {
			return o.catalog, nil
		}
		return units.Default(), nil
	}

	key := string(src.Kind()) + ":" + src.Location()
	o.mu.RLock()
	cached, ok := o.catalogs[key]
	o.mu.RUnlock()
	if ok {
		return cached, nil
	}

	loaded, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load catalog: %w", err)
	}

	o.mu.Lock()
	if o.catalogs == nil {
		o.catalogs = make(map[string]*units.Catalog)
	}
	o.catalogs[key] = loaded
	o.mu.Unlock()
	o.logger.Debug("orchestrator: catalog loaded",
		zap.String("source", key),
		zap.Int("quantities", loaded.Len()),
	)
	return loaded, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveTheme(req Request, quantity string) (*theme.RendererConfig, error) {
	if o.themeDisabled || o.themeSelector == nil {
		return nil, nil
	}
	name := strings.TrimSpace(req.ThemeName)
	if name == "" {
		name = o.themeName
	}
	variant := strings.TrimSpace(req.ThemeVariant)
	if variant == "" {
		variant = units.Slug(quantity)
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	cfg := themes.RendererConfig(selection, o.themeFallbacks)
	if base := strings.TrimRight(strings.TrimSpace(req.AssetBase), "/"); base != "" && cfg != nil && cfg.AssetURL != nil {
		resolve := cfg.AssetURL
		cfg.AssetURL = func(key string) string {
			url := resolve(key)
			if strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//") {
				return base + url
			}
			return url
		}
	}
	return cfg, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, view *widget.View) error {
	if o.transformer == nil || view == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, view); err != nil {
		return fmt.Errorf("orchestrator: transform view: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = catalog.NewLoader()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(jsonview.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil && !o.themeDisabled {
		o.themeSelector = themes.MustSelector()
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}

	o.defaultsApplied = true
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		vanilla.PartialPage:  "templates/page.tmpl",
		vanilla.PartialPanel: "templates/panel.tmpl",
	}
}

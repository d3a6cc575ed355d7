package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-unitconv/pkg/render"
	rendertemplate "github.com/goliatone/go-unitconv/pkg/render/template"
	gotemplate "github.com/goliatone/go-unitconv/pkg/render/template/gotemplate"
	"github.com/goliatone/go-unitconv/pkg/runtime"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

const (
	pageTemplate  = "templates/page.tmpl"
	panelTemplate = "templates/panel.tmpl"

	defaultAction       = "/panel"
	defaultAssetsPrefix = "/runtime"

	// Theme asset keys looked up through RendererConfig.AssetURL.
	themeAssetStylesheet = "vanilla.stylesheet"
	themeAssetScript     = "vanilla.runtime"
)

// Partial keys a theme can set in RendererConfig.Partials to swap the page or
// panel template.
const (
	PartialPage  = "vanilla.page"
	PartialPanel = "vanilla.panel"
)

type Option func(*config)

// Engine names the template engine that executes the embedded templates.
type Engine string

const (
	// EnginePongo2 is the adapter's own pongo2 engine.
	EnginePongo2 Engine = "pongo2"
	// EngineGoTemplate is the github.com/goliatone/go-template engine.
	EngineGoTemplate Engine = "go-template"
)

// ParseEngine maps a configured name to an Engine. Empty selects pongo2.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EnginePongo2:
		return EnginePongo2, nil
	case EngineGoTemplate:
		return EngineGoTemplate, nil
	default:
		return "", fmt.Errorf("vanilla renderer: unknown template engine %q", name)
	}
}

// WithEngine selects the template engine. Extra options reach the adapter
// constructor, e.g. gotemplate.WithGoTemplateOptions for go-template hooks.
// WithTemplateRenderer takes precedence.
func WithEngine(engine Engine, opts ...gotemplate.Option) Option {
	return func(cfg *config) {
		cfg.engine = engine
		cfg.engineOptions = append(cfg.engineOptions, opts...)
	}
}

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.Executor
	engine           Engine
	engineOptions    []gotemplate.Option
	inlineStyles     bool
	stylesheets      []string
	runtime          bool
	title            string
	classes          ChromeClasses
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.Executor) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into full pages.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an extra stylesheet from full pages.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		href = strings.TrimSpace(href)
		if href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithoutRuntime drops the runtime script tag. The panel then relies on plain
// form submits.
func WithoutRuntime() Option {
	return func(cfg *config) {
		cfg.runtime = false
	}
}

// WithTitle sets the document title of full pages.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if t := strings.TrimSpace(title); t != "" {
			cfg.title = t
		}
	}
}

// WithChromeClasses overrides the class names of panel regions.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer turns a panel view into HTML: a full document or the panel form
// alone.
type Renderer struct {
	templates    rendertemplate.Executor
	inlineStyles bool
	stylesheets  []string
	runtime      bool
	title        string
	classes      ChromeClasses
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), runtime: true, title: "Unit converter"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := newEngine(cfg)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		inlineStyles: cfg.inlineStyles,
		stylesheets:  append([]string(nil), cfg.stylesheets...),
		runtime:      cfg.runtime,
		title:        cfg.title,
		classes:      cfg.classes.withDefaults(),
	}, nil
}

func newEngine(cfg config) (rendertemplate.Executor, error) {
	opts := append([]gotemplate.Option{
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	}, cfg.engineOptions...)
	switch cfg.engine {
	case "", EnginePongo2:
		return gotemplate.New(opts...)
	case EngineGoTemplate:
		return gotemplate.NewGoTemplate(opts...)
	default:
		return nil, fmt.Errorf("unknown template engine %q", cfg.engine)
	}
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view widget.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := templateFor(options.Theme, PartialPage, pageTemplate)
	if options.Fragment {
		name = templateFor(options.Theme, PartialPanel, panelTemplate)
	}
	out, err := rendertemplate.Execute(r.templates, name, r.buildContext(view, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return out, nil
}

func (r *Renderer) buildContext(view widget.View, options render.RenderOptions) map[string]any {
	action := strings.TrimSpace(options.Action)
	if action == "" {
		action = defaultAction
	}
	prefix := strings.TrimSpace(options.AssetsPrefix)
	if prefix == "" {
		prefix = defaultAssetsPrefix
	}

	themeCtx := buildThemeContext(options.Theme)
	page := map[string]any{
		"title":       r.title,
		"stylesheets": r.stylesheetURLs(prefix, options.Theme),
		"inlineStyle": "",
		"script":      "",
	}
	if r.inlineStyles {
		page["inlineStyle"] = defaultStylesheet()
	}
	if r.runtime {
		page["script"] = resolveAsset(options.Theme, themeAssetScript, expandAssetURL(prefix, runtime.ScriptName))
	}

	errs := render.MergeErrors(options.Errors)
	return map[string]any{
		"panel":   panelContext(view, errs),
		"action":  action,
		"theme":   themeCtx,
		"page":    page,
		"classes": r.classes.asMap(),
		"errors":  errs[""],
	}
}

func (r *Renderer) stylesheetURLs(prefix string, cfg *theme.RendererConfig) []string {
	out := make([]string, 0, len(r.stylesheets)+1)
	if href := resolveAsset(cfg, themeAssetStylesheet, ""); href != "" {
		out = append(out, expandAssetURL(prefix, href))
	}
	for _, href := range r.stylesheets {
		out = append(out, expandAssetURL(prefix, href))
	}
	return out
}

func panelContext(view widget.View, errs map[string][]string) map[string]any {
	quantities := make([]map[string]any, 0, len(view.Quantities))
	for _, q := range view.Quantities {
		quantities = append(quantities, map[string]any{
			"name":     q.Name,
			"index":    q.Index,
			"selected": q.Selected,
		})
	}
	return map[string]any{
		"quantity":    view.Quantity,
		"slug":        units.Slug(view.Quantity),
		"kind":        string(view.Kind),
		"description": sanitizeDescription(view.Description),
		"quantities":  quantities,
		"summary":     view.Summary(),
		"state":       stateContext(view.State()),
		"lastEdited":  string(view.LastEdited),
		"input":       sideContext(view, widget.SideInput, view.InputUnit, view.InputText, errs),
		"output":      sideContext(view, widget.SideOutput, view.OutputUnit, view.OutputText, errs),
		"errors": map[string]any{
			"quantity": errs[string(widget.EventQuantity)],
		},
	}
}

func stateContext(state widget.State) map[string]any {
	return map[string]any{
		"quantity":   state.Quantity,
		"inputUnit":  state.InputUnit,
		"outputUnit": state.OutputUnit,
		"input":      state.Input,
		"output":     state.Output,
	}
}

func sideContext(view widget.View, side widget.Side, selected, text string, errs map[string][]string) map[string]any {
	field := string(widget.EventInput)
	unitField := string(widget.EventInputUnit)
	label := "From"
	if side == widget.SideOutput {
		field = string(widget.EventOutput)
		unitField = string(widget.EventOutputUnit)
		label = "To"
	}

	options := make([]map[string]any, 0, len(view.Units))
	for _, unit := range view.Units {
		options = append(options, map[string]any{
			"key":      unit.Key,
			"label":    unit.Label,
			"symbol":   unit.Symbol,
			"selected": unit.Key == selected,
		})
	}

	messages := append([]string(nil), errs[field]...)
	messages = append(messages, errs[unitField]...)
	return map[string]any{
		"name":      field,
		"unitName":  unitField,
		"id":        "unitconv-" + field,
		"unitID":    "unitconv-" + unitField,
		"label":     label,
		"unit":      selected,
		"unitLabel": view.UnitLabel(selected),
		"value":     text,
		"units":     options,
		"errors":    messages,
		"invalid":   len(messages) > 0,
	}
}

func buildThemeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"tokens":  copyStringMap(cfg.Tokens),
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}

func templateFor(cfg *theme.RendererConfig, partial, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if name := strings.TrimSpace(cfg.Partials[partial]); name != "" {
		return name
	}
	return fallback
}

func resolveAsset(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return fallback
	}
	if resolved := strings.TrimSpace(cfg.AssetURL(key)); resolved != "" {
		return resolved
	}
	return fallback
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func expandAssetURL(prefix, name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http://") ||
		strings.HasPrefix(name, "https://") ||
		strings.HasPrefix(name, "//") ||
		strings.HasPrefix(name, "/") {
		return name
	}
	if prefix == "" {
		return name
	}
	p := strings.TrimRight(prefix, "/")
	n := strings.TrimLeft(name, "/")
	if p == "" {
		return n
	}
	return p + "/" + n
}

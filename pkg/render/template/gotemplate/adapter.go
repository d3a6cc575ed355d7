package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-unitconv/pkg/render/template"
	"github.com/goliatone/go-unitconv/pkg/units"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	filters    map[string]func(input any, param any) (any, error)
	globalData map[string]any
	goTemplate []gotemplatepkg.Option
}

// WithBaseDir loads templates from a directory on disk. Files found there win
// over the ones in the fs.FS given to WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension sets the extension appended to template names that lack one.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFilter registers a filter when the engine is built.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(any, any) (any, error))
		}
		cfg.filters[name] = fn
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions passes extra options to the engine built by
// NewGoTemplate. New ignores them.
func WithGoTemplateOptions(opts ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		cfg.goTemplate = append(cfg.goTemplate, opts...)
	}
}

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// NewGoTemplate builds a github.com/goliatone/go-template engine from the
// same options as New. Both engines share the pongo2 filter registry, so
// templates see the unitvalue filter either way; go-template adds render hooks.
func NewGoTemplate(options ...Option) (*gotemplatepkg.Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need a base dir or an fs.FS")
	}
	registerBuiltinFilters()

	opts := []gotemplatepkg.Option{
		gotemplatepkg.WithExtension(cfg.extension),
		gotemplatepkg.WithTemplateFunc(map[string]any{"unitvalue": filterUnitValue}),
	}
	if cfg.baseDir != "" {
		opts = append(opts, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		opts = append(opts, gotemplatepkg.WithFS(cfg.templates))
	}
	if len(cfg.globalData) > 0 {
		opts = append(opts, gotemplatepkg.WithGlobalData(cfg.globalData))
	}
	opts = append(opts, cfg.goTemplate...)

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: %w", err)
		}
	}
	return engine, nil
}

// Engine implements template.TemplateRenderer on top of a pongo2 template
// set. Parsed templates are cached by path.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
	ext   string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: need a base dir or an fs.FS")
	}

	engine := &Engine{
		set:   pongo2.NewSet("unitconv", loaders...),
		cache: make(map[string]*pongo2.Template),
		ext:   cfg.extension,
	}
	registerBuiltinFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: global data: %w", err)
	}
	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// Render renders inline template content when name looks like a template
// body, and a named template otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if e.ext != "" && !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse string: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter adds a filter. pongo2 filters are process wide, so a name
// that is already registered is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var p any
		if param != nil {
			p = param.Interface()
		}
		result, err := fn(in.Interface(), p)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// toContext accepts maps as-is and round-trips anything else through JSON so
// templates see the json field names.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out := pongo2.Context{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func registerBuiltinFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("unitvalue") {
		_ = pongo2.RegisterFilter("unitvalue", filterUnitValue)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterUnitValue formats numbers the way the panel displays them.
func filterUnitValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch {
	case in.IsNil():
		return pongo2.AsValue("0"), nil
	case in.IsString():
		v, err := units.ParseValue(in.String())
		if err != nil {
			return pongo2.AsValue(in.String()), nil
		}
		return pongo2.AsValue(units.FormatValue(v)), nil
	default:
		return pongo2.AsValue(units.FormatValue(in.Float())), nil
	}
}

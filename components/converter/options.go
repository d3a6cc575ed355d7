package converter

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-unitconv/pkg/catalog"
	"github.com/goliatone/go-unitconv/pkg/orchestrator"
)

// GuardFunc runs before every route. A non-nil error rejects the request;
// errors implementing HTTPError choose the status code.
type GuardFunc func(r *http.Request) error

// Options configure the converter handler.
type Options struct {
	// BasePath is where the handler is mounted. Form actions and asset URLs
	// are built below it.
	BasePath        string
	PanelPath       string
	APIPrefix       string
	RuntimePath     string
	AssetsPath      string
	PageRenderer    string
	DefaultQuantity string
	ThemeName       string
	ThemeVariant    string
	MaxBodyBytes    int64
	Guard           GuardFunc

	Source       catalog.Source
	Orchestrator *orchestrator.Orchestrator
	Logger       *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		PanelPath:    "/panel",
		APIPrefix:    "/api",
		RuntimePath:  "/runtime",
		AssetsPath:   "/assets",
		PageRenderer: "vanilla",
		MaxBodyBytes: 64 << 10,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.PanelPath == "" {
		opts.PanelPath = defaults.PanelPath
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = defaults.APIPrefix
	}
	if opts.RuntimePath == "" {
		opts.RuntimePath = defaults.RuntimePath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = defaults.AssetsPath
	}
	if opts.PageRenderer == "" {
		opts.PageRenderer = defaults.PageRenderer
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaults.MaxBodyBytes
	}
	opts.BasePath = cleanBase(opts.BasePath)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New(orchestrator.WithLogger(opts.Logger))
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithPanelPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PanelPath = path
	}
}

func WithAPIPrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.APIPrefix = prefix
	}
}

func WithPageRenderer(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageRenderer = name
	}
}

func WithDefaultQuantity(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultQuantity = strings.TrimSpace(name)
	}
}

func WithTheme(name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeName = strings.TrimSpace(name)
		o.ThemeVariant = strings.TrimSpace(variant)
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSource(src catalog.Source) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = src
	}
}

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func cleanBase(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

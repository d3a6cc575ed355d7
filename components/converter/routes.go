package converter

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the pattern the component registers under basePath.
func MountPath(basePath string) string {
	return mountPath(basePath, "/")
}

// RegisterRoutes registers the converter handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value. basePath replaces Options.BasePath so generated
// links match the mount point.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("converter: missing mux")
	}
	opts.BasePath = basePath
	opts = NewOptions(func(o *Options) { *o = opts })

	pattern := mountPath(opts.BasePath, "/")
	handler := HandlerWithOptions(opts)
	if opts.BasePath != "" {
		handler = http.StripPrefix(opts.BasePath, handler)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// Loader reads catalog documents from disk or an fs.FS.
type Loader struct {
	fs fs.FS
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the filesystem used for SourceFromFS sources.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// NewLoader constructs a Loader.
func NewLoader(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load reads, parses and validates the catalog named by src. A nil source
// yields the built-in catalog.
func (l *Loader) Load(ctx context.Context, src Source) (*units.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src == nil {
		return units.Default(), nil
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("catalog loader: fs source without filesystem")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		return nil, fmt.Errorf("catalog loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("catalog loader: read %s: %w", src.Location(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog loader: %s: %w", src.Location(), err)
	}
	catalog, err := doc.Catalog()
	if err != nil {
		return nil, fmt.Errorf("catalog loader: %s: %w", src.Location(), err)
	}
	return catalog, nil
}

// Package jsonview renders panel views as JSON documents for API clients.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty prints the payload using the given indent string.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer encodes a widget.View together with its replayable state.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Document is the JSON payload produced by the renderer.
type Document struct {
	View    widget.View         `json:"view"`
	State   widget.State        `json:"state"`
	Summary string              `json:"summary"`
	Theme   *Theme              `json:"theme,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Theme is the serialisable part of a theme.RendererConfig.
type Theme struct {
	Name    string            `json:"name,omitempty"`
	Variant string            `json:"variant,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, view widget.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := NewDocument(view, options)

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode: %w", err)
	}
	return out, nil
}

// NewDocument builds the payload Render encodes.
func NewDocument(view widget.View, options render.RenderOptions) Document {
	doc := Document{
		View:    view,
		State:   view.State(),
		Summary: view.Summary(),
		Errors:  render.MergeErrors(options.Errors),
	}
	if cfg := options.Theme; cfg != nil {
		doc.Theme = &Theme{Name: cfg.Theme, Variant: cfg.Variant, CSSVars: cfg.CSSVars}
	}
	return doc
}

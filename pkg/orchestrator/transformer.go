package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-unitconv/pkg/widget"
)

// Transformer mutates a view before it reaches the renderer. Implementations
// can relabel units, rewrite descriptions or perform arbitrary rewrites that
// leave the panel state untouched.
type Transformer interface {
	Transform(ctx context.Context, view *widget.View) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, view *widget.View) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, view *widget.View) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, view)
}

// Chain runs transformers in order and stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, view *widget.View) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, view); err != nil {
				return err
			}
		}
		return nil
	})
}

// PresetTransformer applies declarative display overrides read from a YAML or
// JSON document:
//
//	quantities:
//	  Length:
//	    description: Distance between two points
//	    units:
//	      km: {label: Kilometre, symbol: km}
//
// Quantities that are not on screen are ignored. Unit keys never change, so
// overrides only affect what people read.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Quantities map[string]quantityPatch `yaml:"quantities" json:"quantities"`
}

type quantityPatch struct {
	Description string               `yaml:"description" json:"description"`
	Units       map[string]unitPatch `yaml:"units" json:"units"`
}

type unitPatch struct {
	Label  string `yaml:"label" json:"label"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

// NewPresetTransformer constructs a transformer from raw document bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patch for the view's quantity, if any.
func (t *PresetTransformer) Transform(ctx context.Context, view *widget.View) error {
	if view == nil {
		return errors.New("preset transformer: view is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	patch, ok := t.patchFor(view.Quantity)
	if !ok {
		return nil
	}
	if d := strings.TrimSpace(patch.Description); d != "" {
		view.Description = d
	}
	if len(patch.Units) == 0 {
		return nil
	}
	units := make([]widget.UnitOption, len(view.Units))
	for i, unit := range view.Units {
		if up, ok := patch.Units[unit.Key]; ok {
			if up.Label != "" {
				unit.Label = up.Label
			}
			if up.Symbol != "" {
				unit.Symbol = up.Symbol
			}
		}
		units[i] = unit
	}
	view.Units = units
	return nil
}

func (t *PresetTransformer) patchFor(quantity string) (quantityPatch, bool) {
	if patch, ok := t.document.Quantities[quantity]; ok {
		return patch, true
	}
	for name, patch := range t.document.Quantities {
		if strings.EqualFold(strings.TrimSpace(name), quantity) {
			return patch, true
		}
	}
	return quantityPatch{}, false
}

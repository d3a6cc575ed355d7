// Package apispec serves the OpenAPI description of the converter's HTTP API
// and validates request payloads against it.
//
// The document is embedded. Build injects the quantity names and unit keys of
// the active catalog as enums, validates the result with kin-openapi and
// keeps the rendered JSON for the /api/openapi.json route.
package apispec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-unitconv/pkg/units"
)

//go:embed openapi.yaml
var document []byte

// Schema names used by the HTTP component.
const (
	SchemaQuantityName = "QuantityName"
	SchemaUnitKey      = "UnitKey"
	SchemaEvent        = "Event"
	SchemaState        = "State"
	SchemaPanelRequest = "PanelRequest"
)

// ErrInvalidPayload wraps schema validation failures.
var ErrInvalidPayload = errors.New("apispec: invalid payload")

// Spec is a validated OpenAPI document bound to one catalog.
type Spec struct {
	doc  *openapi3.T
	json []byte
}

// Raw returns the embedded document before catalog data is injected.
func Raw() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Build loads the embedded document and binds it to catalog. A nil catalog
// uses units.Default().
func Build(ctx context.Context, catalog *units.Catalog) (*Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = units.Default()
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}

	if err := setEnum(doc, SchemaQuantityName, catalog.Names()); err != nil {
		return nil, err
	}
	if err := setEnum(doc, SchemaUnitKey, unitKeys(catalog)); err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}

	payload, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("apispec: encode: %w", err)
	}
	return &Spec{doc: doc, json: payload}, nil
}

// MustBuild is Build that panics on error.
func MustBuild(catalog *units.Catalog) *Spec {
	spec, err := Build(context.Background(), catalog)
	if err != nil {
		panic(err)
	}
	return spec
}

// JSON returns the document as JSON.
func (s *Spec) JSON() []byte {
	out := make([]byte, len(s.json))
	copy(out, s.json)
	return out
}

// Document exposes the parsed kin-openapi document.
func (s *Spec) Document() *openapi3.T {
	return s.doc
}

// Operations lists "METHOD path" pairs in sorted order.
func (s *Spec) Operations() []string {
	var out []string
	if s.doc.Paths == nil {
		return out
	}
	for path, item := range s.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method := range item.Operations() {
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(out)
	return out
}

// Validate checks value, typically decoded from JSON, against the named
// component schema.
func (s *Spec) Validate(schema string, value any) error {
	ref, ok := s.doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("apispec: unknown schema %q", schema)
	}
	if err := ref.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidPayload, schema, firstLine(err.Error()))
	}
	return nil
}

// ValidateQuantity checks name against the catalog's quantity names.
func (s *Spec) ValidateQuantity(name string) error {
	return s.Validate(SchemaQuantityName, name)
}

func setEnum(doc *openapi3.T, schema string, values []string) error {
	ref, ok := doc.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("apispec: schema %q missing from document", schema)
	}
	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}
	ref.Value.Enum = enum
	return nil
}

func unitKeys(catalog *units.Catalog) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range catalog.Quantities() {
		for _, key := range q.UnitKeys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}
	return msg
}

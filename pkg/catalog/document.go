package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-unitconv/pkg/units"
)

// ExtendsDefault is the only supported value of Document.Extends.
const ExtendsDefault = "default"

// Document is the on-disk catalog format.
type Document struct {
	Extends    string           `yaml:"extends,omitempty" json:"extends,omitempty"`
	Quantities []units.Quantity `yaml:"quantities" json:"quantities"`
}

// Parse decodes a YAML or JSON catalog document. Unknown keys are rejected so
// typos in unit definitions surface early.
func Parse(data []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, errors.New("catalog: document is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("catalog: decode: %w", err)
	}
	doc.Extends = strings.ToLower(strings.TrimSpace(doc.Extends))
	return doc, nil
}

// Catalog builds a validated catalog from the document.
func (d Document) Catalog() (*units.Catalog, error) {
	switch d.Extends {
	case "":
		return units.NewCatalog(d.Quantities...)
	case ExtendsDefault:
		return units.Default().With(d.Quantities...)
	default:
		return nil, fmt.Errorf("catalog: unsupported extends %q", d.Extends)
	}
}

// Marshal encodes the catalog as a YAML document, the inverse of Parse.
func Marshal(c *units.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Quantities: c.Quantities()}); err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return buf.Bytes(), nil
}

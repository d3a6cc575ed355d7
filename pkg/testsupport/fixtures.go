package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-unitconv/pkg/catalog"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

// LoadCatalog reads a catalog fixture through the file loader. It fails the
// test on error to keep table setup short.
func LoadCatalog(t *testing.T, path string) *units.Catalog {
	t.Helper()

	c, err := LoadCatalogFromPath(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

// LoadCatalogFromPath returns a catalog without requiring testing.T.
func LoadCatalogFromPath(path string) (*units.Catalog, error) {
	if path == "" {
		return nil, errors.New("testsupport: catalog path is required")
	}
	c, err := catalog.NewLoader().Load(context.Background(), catalog.SourceFromFile(path))
	if err != nil {
		return nil, fmt.Errorf("testsupport: load catalog: %w", err)
	}
	return c, nil
}

// MustView replays events on a default panel and returns the resulting view.
func MustView(t *testing.T, events ...widget.Event) widget.View {
	t.Helper()

	panel := widget.NewPanel(nil)
	if err := panel.ApplyAll(events...); err != nil {
		t.Fatalf("apply events: %v", err)
	}
	return panel.View()
}

// MustLoadState loads a JSON golden file into a panel state.
func MustLoadState(t *testing.T, path string) widget.State {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	var out widget.State
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

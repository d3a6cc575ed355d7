package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-unitconv/pkg/catalog"
	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/renderers/vanilla"
	"github.com/goliatone/go-unitconv/pkg/themes"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

func TestOrchestrator_AppliesEventsAndRenders(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithDefaultRenderer(renderer.Name()))

	result, err := orch.Run(context.Background(), Request{
		Events: []widget.Event{
			{Kind: widget.EventInput, Value: "2"},
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if string(result.Output) != "captured" {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if result.ContentType != "text/plain" {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	want := widget.State{Quantity: "Length", InputUnit: "km", OutputUnit: "m", Input: "2", Output: "2000"}
	if diff := cmp.Diff(want, result.State); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if renderer.view.Summary() != "2 km = 2000 m" {
		t.Fatalf("renderer saw %q", renderer.view.Summary())
	}
	if result.EventErr != nil || result.Errors != nil {
		t.Fatalf("expected no event errors, got %v %v", result.EventErr, result.Errors)
	}
}

func TestOrchestrator_RestoresState(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)))

	result, err := orch.Run(context.Background(), Request{
		State: widget.State{Quantity: "Temperature", InputUnit: "celsius", OutputUnit: "fahrenheit", Input: "100", Output: "212"},
		Events: []widget.Event{
			{Kind: widget.EventSwap},
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := result.View.Summary(); got != "212 °F = 100 °C" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestOrchestrator_ReportsEventErrors(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)))

	result, err := orch.Run(context.Background(), Request{
		Events: []widget.Event{
			{Kind: widget.EventInput, Value: "5"},
			{Kind: widget.EventInput, Value: "abc"},
			{Kind: widget.EventOutput, Value: "7"},
		},
		RenderOptions: render.RenderOptions{
			Errors: map[string][]string{"": {"Saved"}},
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !errors.Is(result.EventErr, units.ErrInvalidValue) {
		t.Fatalf("expected invalid value error, got %v", result.EventErr)
	}
	if diff := cmp.Diff(map[string][]string{"input": {"Enter a number"}}, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got := renderer.options.Errors["input"]; len(got) != 1 {
		t.Fatalf("expected input error passed to renderer, got %v", renderer.options.Errors)
	}
	if got := renderer.options.Errors[""]; len(got) != 1 || got[0] != "Saved" {
		t.Fatalf("expected request errors kept, got %v", renderer.options.Errors)
	}
	// the failed edit resets both fields and later events are skipped
	if result.State.Input != "0" || result.State.Output != "0" {
		t.Fatalf("expected reset fields, got %+v", result.State)
	}
}

func TestOrchestrator_RestoreFailure(t *testing.T) {
	orch := New(WithRegistry(registryWith(&captureRenderer{})))

	_, err := orch.Run(context.Background(), Request{State: widget.State{Quantity: "Luminosity"}})
	if !errors.Is(err, units.ErrUnknownQuantity) {
		t.Fatalf("expected unknown quantity, got %v", err)
	}
}

func TestOrchestrator_DefaultThemeFollowsQuantity(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)))

	_, err := orch.Run(context.Background(), Request{
		Events: []widget.Event{{Kind: widget.EventQuantity, Value: "Temperature"}},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != themes.DefaultTheme || cfg.Variant != "temperature" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens[themes.AccentToken] != "#dc2626" {
		t.Fatalf("expected temperature accent, got %q", cfg.Tokens[themes.AccentToken])
	}
	if cfg.Partials[vanilla.PartialPage] != defaultThemeFallbacks()[vanilla.PartialPage] {
		t.Fatalf("fallback partials not applied: %v", cfg.Partials)
	}
	if cfg.AssetURL == nil || cfg.AssetURL("vanilla.stylesheet") != "/assets/unitconv-vanilla.css" {
		t.Fatalf("unexpected stylesheet asset")
	}
}

func TestOrchestrator_AssetBasePrefixesThemeAssets(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)))

	if _, err := orch.Run(context.Background(), Request{AssetBase: "/tools/"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := renderer.options.Theme.AssetURL("vanilla.stylesheet"); got != "/tools/assets/unitconv-vanilla.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
}

func TestOrchestrator_PassesThemeSelection(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}
	renderer := &captureRenderer{}
	orch := New(
		WithRegistry(registryWith(renderer)),
		WithThemeSelector(selector),
		WithTheme("fallback"),
	)

	if _, err := orch.Run(context.Background(), Request{ThemeName: "acme", ThemeVariant: "dark"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := orch.Run(context.Background(), Request{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []selectCall{
		{name: "acme", variant: "dark"},
		{name: "fallback", variant: "length"},
	}
	if diff := cmp.Diff(want, selector.calls, cmp.AllowUnexported(selectCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	if renderer.options.Theme.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens: %v", renderer.options.Theme.CSSVars)
	}
}

func TestOrchestrator_ThemeSelectionError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("boom")}
	orch := New(WithRegistry(registryWith(&captureRenderer{})), WithThemeSelector(selector))

	if _, err := orch.Run(context.Background(), Request{}); err == nil {
		t.Fatalf("expected theme selection error")
	}
}

func TestOrchestrator_ThemeFromRequestSkipsSelector(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("should not be called")}
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithThemeSelector(selector))

	cfg := &theme.RendererConfig{Theme: "given"}
	if _, err := orch.Run(context.Background(), Request{RenderOptions: render.RenderOptions{Theme: cfg}}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if renderer.options.Theme != cfg || len(selector.calls) != 0 {
		t.Fatalf("expected request theme to be used as-is")
	}
}

func TestOrchestrator_WithoutTheme(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithoutTheme())

	if _, err := orch.Run(context.Background(), Request{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected nil theme, got %+v", renderer.options.Theme)
	}
}

func TestOrchestrator_WithThemeManifests(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(
		WithRegistry(registryWith(renderer)),
		WithThemeManifests(&theme.Manifest{Name: "plain", Version: "1.0.0", Tokens: map[string]string{"ink": "#000"}}),
	)

	if _, err := orch.Run(context.Background(), Request{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if cfg := renderer.options.Theme; cfg.Theme != "plain" || cfg.Variant != "" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
}

func TestOrchestrator_CachesCatalogs(t *testing.T) {
	loader := &countingLoader{catalog: units.MustCatalog(units.Quantity{
		Name:      "Angle",
		Primary:   "deg",
		Secondary: "rad",
		Units: []units.Unit{
			{Key: "deg", Factor: 1},
			{Key: "rad", Factor: 0.0174533},
		},
	})}
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithLoader(loader))

	src := catalog.SourceFromFile("testdata/angles.yaml")
	for i := 0; i < 2; i++ {
		result, err := orch.Run(context.Background(), Request{Source: src})
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if result.View.Quantity != "Angle" {
			t.Fatalf("expected custom catalog, got %q", result.View.Quantity)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("expected one load, got %d", loader.calls)
	}
}

func TestOrchestrator_CatalogLoadError(t *testing.T) {
	orch := New(
		WithRegistry(registryWith(&captureRenderer{})),
		WithLoader(&countingLoader{err: errors.New("missing")}),
	)

	if _, err := orch.Run(context.Background(), Request{Source: catalog.SourceFromFile("nope.yaml")}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestOrchestrator_WithCatalog(t *testing.T) {
	cat := units.MustCatalog(units.Quantity{
		Name:      "Data",
		Primary:   "kb",
		Secondary: "b",
		Units: []units.Unit{
			{Key: "kb", Factor: 1},
			{Key: "b", Factor: 1000},
		},
	})
	orch := New(WithRegistry(registryWith(&captureRenderer{})), WithCatalog(cat))

	got, err := orch.Catalog(context.Background(), nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if got != cat {
		t.Fatalf("expected pinned catalog")
	}
}

func TestOrchestrator_DefaultRegistry(t *testing.T) {
	orch := New()

	if diff := cmp.Diff([]string{"json", "vanilla"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	out, err := orch.Generate(context.Background(), Request{
		Renderer: "json",
		Events:   []widget.Event{{Kind: widget.EventInput, Value: "1"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var doc struct {
		Summary string `json:"summary"`
		Theme   struct {
			Variant string `json:"variant"`
		} `json:"theme"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Summary != "1 km = 1000 m" || doc.Theme.Variant != "length" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	orch := New(WithRegistry(registryWith(&captureRenderer{})))

	if _, err := orch.Generate(context.Background(), Request{Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestOrchestrator_FallsBackToFirstRenderer(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(WithRegistry(registryWith(renderer)), WithDefaultRenderer("missing"))

	if _, err := orch.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !renderer.called {
		t.Fatalf("expected fallback renderer to be used")
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Run(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func registryWith(renderers ...render.Renderer) *render.Registry {
	registry := render.NewRegistry()
	for _, r := range renderers {
		registry.MustRegister(r)
	}
	return registry
}

type captureRenderer struct {
	called  bool
	view    widget.View
	options render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, view widget.View, options render.RenderOptions) ([]byte, error) {
	c.called = true
	c.view = view
	c.options = options
	return []byte("captured"), nil
}

type selectCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectCall{name: name, variant: variant})
	if s.err != nil {
		return nil, s.err
	}
	return s.selection, nil
}

type countingLoader struct {
	catalog *units.Catalog
	err     error
	calls   int
}

func (l *countingLoader) Load(_ context.Context, _ catalog.Source) (*units.Catalog, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.catalog, nil
}

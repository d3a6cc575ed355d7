package vanilla_test

import (
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/renderers/vanilla"
	"github.com/goliatone/go-unitconv/pkg/testsupport"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

func TestRenderer_RenderPage(t *testing.T) {
	view := testsupport.MustView(t)

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), view, render.RenderOptions{
		Theme: testThemeConfig(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	assertContains(t, string(output),
		"<!DOCTYPE html>",
		`<html lang="en" data-theme="dark">`,
		"<title>Unit converter</title>",
		`<link rel="stylesheet" href="/themes/acme/vanilla.stylesheet">`,
		"<style data-theme-vars>:root {\n  --brand: #123456;\n}</style>",
		`<form class="unitconv-panel" id="unitconv-panel" method="post" action="/panel" data-unitconv-panel data-theme="dark" data-quantity="Length" data-kind="linear">`,
		`<option value="Length" selected>Length</option>`,
		`<option value="Temperature">Temperature</option>`,
		`<input type="hidden" name="state.inputUnit" value="km">`,
		`<input id="unitconv-input" name="input" type="text" inputmode="decimal" autocomplete="off" value="0">`,
		`<script src="/themes/acme/vanilla.runtime" defer></script>`,
		"0 km = 0 m",
	)
}

func TestRenderer_RenderFragment(t *testing.T) {
	view := testsupport.MustView(t,
		widget.Event{Kind: widget.EventInput, Value: "1.5"},
	)

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), view, render.RenderOptions{
		Fragment: true,
		Action:   "/widget/panel",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	if strings.Contains(html, "<html") {
		t.Fatalf("fragment should not contain the document shell:\n%s", html)
	}
	if !strings.HasPrefix(html, "<form") {
		t.Fatalf("fragment should start with the panel form:\n%s", html)
	}
	assertContains(t, html,
		`action="/widget/panel"`,
		`data-theme="length"`,
		`name="output" type="text" inputmode="decimal" autocomplete="off" value="1500"`,
		`<input type="hidden" name="state.input" value="1.5">`,
		`data-side="input" data-last-edited`,
		"1.5 km = 1500 m",
	)
}

func TestRenderer_Engines(t *testing.T) {
	view := testsupport.MustView(t,
		widget.Event{Kind: widget.EventInput, Value: "2."},
	)

	for _, engine := range []vanilla.Engine{vanilla.EnginePongo2, vanilla.EngineGoTemplate} {
		t.Run(string(engine), func(t *testing.T) {
			renderer, err := vanilla.New(vanilla.WithEngine(engine))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}

			page, err := renderer.Render(testsupport.Context(), view, render.RenderOptions{})
			if err != nil {
				t.Fatalf("render page: %v", err)
			}
			assertContains(t, string(page),
				"<!DOCTYPE html>",
				`<form class="unitconv-panel"`,
				`<fieldset class="unitconv-field" data-side="input" data-last-edited>`,
				`<fieldset class="unitconv-field" data-side="output">`,
				`name="input" type="text" inputmode="decimal" autocomplete="off" value="2."`,
				"2. km = 2000 m",
			)

			fragment, err := renderer.Render(testsupport.Context(), view, render.RenderOptions{Fragment: true})
			if err != nil {
				t.Fatalf("render fragment: %v", err)
			}
			assertContains(t, string(fragment), `name="output" type="text" inputmode="decimal" autocomplete="off" value="2000"`)
		})
	}
}

func TestRenderer_ConvertIsTheDefaultButton(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), testsupport.MustView(t), render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	convert := strings.Index(html, `<button type="submit" class="unitconv-convert">Convert</button>`)
	swap := strings.Index(html, `value="swap"`)
	if convert == -1 || swap == -1 || convert > swap {
		t.Fatalf("convert button must precede swap (convert=%d swap=%d):\n%s", convert, swap, html)
	}
}

func TestParseEngine(t *testing.T) {
	cases := map[string]vanilla.Engine{
		"":             vanilla.EnginePongo2,
		"pongo2":       vanilla.EnginePongo2,
		" Go-Template": vanilla.EngineGoTemplate,
	}
	for in, want := range cases {
		got, err := vanilla.ParseEngine(in)
		if err != nil || got != want {
			t.Fatalf("ParseEngine(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := vanilla.ParseEngine("jinja"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

func TestRenderer_RenderDefaultAssets(t *testing.T) {
	view := testsupport.MustView(t)

	renderer, err := vanilla.New(vanilla.WithDefaultStyles(), vanilla.WithStylesheet("custom.css"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), view, render.RenderOptions{AssetsPrefix: "/assets"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	assertContains(t, string(output),
		`<link rel="stylesheet" href="/assets/custom.css">`,
		"--unitconv-accent",
		`<script src="/assets/unitconv-runtime.js" defer></script>`,
	)
}

func TestRenderer_WithoutRuntime(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithoutRuntime())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), testsupport.MustView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<script") {
		t.Fatalf("expected no script tag:\n%s", output)
	}
}

func TestRenderer_RenderErrors(t *testing.T) {
	panel := widget.NewPanel(nil)
	ev := widget.Event{Kind: widget.EventInput, Value: "abc"}
	applyErr := panel.Apply(ev)
	if applyErr == nil {
		t.Fatalf("expected invalid input error")
	}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), panel.View(), render.RenderOptions{
		Fragment: true,
		Errors: render.MergeErrors(
			render.FieldErrors(ev, applyErr),
			map[string][]string{"": {"Something went wrong"}},
		),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	assertContains(t, string(output),
		`<fieldset class="unitconv-field is-invalid" data-side="input"`,
		`aria-invalid="true"`,
		`<p class="unitconv-errors">Enter a number</p>`,
		`<ul class="unitconv-errors" role="alert"><li>Something went wrong</li></ul>`,
	)
}

func TestRenderer_SanitizesDescriptions(t *testing.T) {
	catalog := units.MustCatalog(units.Quantity{
		Name:        "Volume",
		Primary:     "cbm",
		Secondary:   "l",
		Description: `Cubic metres (m<sup>3</sup>)<script>alert("x")</script>`,
		Units: []units.Unit{
			{Key: "cbm", Label: "Cubic metre", Symbol: "m3", Factor: 1},
			{Key: "l", Label: "Litre", Symbol: "l", Factor: 1000},
		},
	})
	panel := widget.NewPanel(widget.NewSelector(catalog))

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), panel.View(), render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	assertContains(t, html, `<p class="unitconv-description">Cubic metres (m<sup>3</sup>)</p>`)
	if strings.Contains(html, "alert") {
		t.Fatalf("expected script to be stripped:\n%s", html)
	}
}

func TestRenderer_ChromeClasses(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithChromeClasses(vanilla.ChromeClasses{Panel: "card"}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), testsupport.MustView(t), render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(output), `<form class="card"`, `class="`+vanilla.DefaultSummaryClass+`"`)
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	var gotName string
	var gotData map[string]any
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, _ ...io.Writer) (string, error) {
			gotName = name
			gotData, _ = data.(map[string]any)
			return "custom-output", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), testsupport.MustView(t), render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if !stub.called {
		t.Fatalf("expected render template to be called")
	}
	if gotName != "templates/panel.tmpl" {
		t.Fatalf("expected panel template for fragments, got %q", gotName)
	}
	for _, key := range []string{"panel", "action", "theme", "page", "classes"} {
		if _, ok := gotData[key]; !ok {
			t.Fatalf("expected %q in template data", key)
		}
	}
}

func TestRenderer_ThemePartialSelectsTemplate(t *testing.T) {
	var gotName string
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, _ any, _ ...io.Writer) (string, error) {
			gotName = name
			return "", nil
		},
	}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	cfg := testThemeConfig()
	cfg.Partials = map[string]string{vanilla.PartialPanel: "themes/acme/panel.tmpl"}
	if _, err := renderer.Render(testsupport.Context(), testsupport.MustView(t), render.RenderOptions{Fragment: true, Theme: cfg}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if gotName != "themes/acme/panel.tmpl" {
		t.Fatalf("expected theme panel template, got %q", gotName)
	}

	if _, err := renderer.Render(testsupport.Context(), testsupport.MustView(t), render.RenderOptions{Theme: cfg}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if gotName != "templates/page.tmpl" {
		t.Fatalf("expected default page template, got %q", gotName)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

type stubTemplateRenderer struct {
	called             bool
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.called = true
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(data any) error {
	return nil
}

func assertContains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func testThemeConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		CSSVars: map[string]string{
			"--brand": "#123456",
		},
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}
}

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selectErr    error
	prompts      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectErr != nil {
		return -1, s.selectErr
	}
	s.prompts = append(s.prompts, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func defaultView(t *testing.T) widget.View {
	t.Helper()
	return widget.NewPanel(nil).View()
}

func TestRender_TimeConversion(t *testing.T) {
	driver := &stubDriver{
		// quantity Time, from hour, to min, edit the input side
		selectIdx: []int{3, 2, 1, 0},
		inputs:    []string{"1.5"},
		confirm:   []bool{false},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "1.5 h = 90 min\n"; got != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, got)
	}
	if diff := cmp.Diff([]string{"1.5 h = 90 min"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	first := driver.prompts[0]
	if first.DefaultIndex != 0 || first.Options[0] != "Length" {
		t.Fatalf("unexpected quantity prompt: %+v", first)
	}
	units := driver.prompts[1]
	if diff := cmp.Diff([]string{"sec (s)", "min", "hour (h)", "day (d)"}, units.Options); diff != "" {
		t.Fatalf("unit options mismatch (-want +got):\n%s", diff)
	}
	if units.DefaultIndex != 1 {
		t.Fatalf("expected primary unit preselected, got %d", units.DefaultIndex)
	}
}

func TestRender_EditOutputSideAsJSON(t *testing.T) {
	driver := &stubDriver{
		// Temperature, keep celsius and fahrenheit, edit the output side
		selectIdx: []int{4, 0, 1, 1},
		inputs:    []string{"212"},
		confirm:   []bool{false},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatJSON))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	out, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got widget.State
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := widget.State{
		Quantity:   "Temperature",
		InputUnit:  "celsius",
		OutputUnit: "fahrenheit",
		Input:      "100",
		Output:     "212",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FormOutputAcrossRounds(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			0, 0, 1, 0, // Length km -> m, edit input
			0, 1, 0, 0, // Length m -> km, edit input
		},
		inputs:  []string{"2", "500"},
		confirm: []bool{true, false},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	values, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if values.Get("inputUnit") != "m" || values.Get("outputUnit") != "km" {
		t.Fatalf("unexpected units: %v", values)
	}
	if values.Get("input") != "500" || values.Get("output") != "0.5" {
		t.Fatalf("unexpected values: %v", values)
	}
	if diff := cmp.Diff([]string{"2 km = 2000 m", "500 m = 0.5 km"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_InvalidValueResetsFields(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 0, 1, 0},
		inputs:    []string{"abc"},
		confirm:   []bool{false},
	}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "0 km = 0 m\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if diff := cmp.Diff([]string{"! Enter a number", "0 km = 0 m"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_MaxRoundsSkipsConfirm(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1, 0, 1, 0},
		inputs:    []string{"1"},
	}
	r, err := New(WithPromptDriver(driver), WithMaxRounds(1))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "1 L = 1000 mL\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if driver.confirmPos != 0 {
		t.Fatalf("expected no confirm prompt")
	}
}

func TestRender_Aborted(t *testing.T) {
	driver := &stubDriver{selectErr: ErrAborted}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if _, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("yaml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestValidateValue(t *testing.T) {
	if err := validateValue(" 12.5 "); err != nil {
		t.Fatalf("expected valid number, got %v", err)
	}
	if err := validateValue("twelve"); err == nil {
		t.Fatalf("expected error for text")
	}
}

func TestRender_QuantityDescriptionsArePlainText(t *testing.T) {
	catalog, err := units.Default().With(units.Quantity{
		Name:        "Data",
		Kind:        units.KindLinear,
		Primary:     "MB",
		Secondary:   "kB",
		Description: "Digital <b>storage</b> &amp; more",
		Units:       []units.Unit{{Key: "MB", Factor: 1}, {Key: "kB", Factor: 1000}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	driver := &stubDriver{
		selectIdx: []int{9, 0, 1, 0},
		inputs:    []string{"2"},
	}
	r, err := New(WithPromptDriver(driver), WithCatalog(catalog), WithMaxRounds(1))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), defaultView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "2 MB = 2000 kB\n" {
		t.Fatalf("unexpected output %q", out)
	}

	quantities := driver.prompts[0]
	if len(quantities.Descriptions) != len(quantities.Options) {
		t.Fatalf("expected one description per option, got %d/%d", len(quantities.Descriptions), len(quantities.Options))
	}
	if got := quantities.Descriptions[9]; got != "Digital storage & more" {
		t.Fatalf("unexpected description %q", got)
	}
	if quantities.Descriptions[0] != "" {
		t.Fatalf("expected empty description for Length, got %q", quantities.Descriptions[0])
	}
}

package units

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCatalogConvert(t *testing.T) {
	approx := cmpopts.EquateApprox(1e-9, 1e-9)

	cases := []struct {
		name     string
		quantity string
		from, to string
		value    float64
		want     float64
	}{
		{name: "km to m", quantity: "Length", from: "km", to: "m", value: 1, want: 1000},
		{name: "m to km", quantity: "Length", from: "m", to: "km", value: 1500, want: 1.5},
		{name: "mm to m", quantity: "length", from: "mm", to: "m", value: 2500, want: 2.5},
		{name: "g to kg", quantity: "Mass", from: "g", to: "kg", value: 250, want: 0.25},
		{name: "min to sec", quantity: "Time", from: "min", to: "sec", value: 2, want: 120},
		{name: "day to hour", quantity: "Time", from: "day", to: "hour", value: 1, want: 24},
		{name: "l to ml", quantity: "Volume", from: "l", to: "ml", value: 0.5, want: 500},
		{name: "mps to kmph", quantity: "Speed", from: "mps", to: "kmph", value: 10, want: 36},
		{name: "bar to pascal", quantity: "Pressure", from: "bar", to: "pascal", value: 1, want: 100000},
		{name: "same unit", quantity: "Area", from: "sqft", to: "sqft", value: 42, want: 42},
		{name: "celsius to fahrenheit", quantity: "Temperature", from: Celsius, to: Fahrenheit, value: 100, want: 212},
		{name: "fahrenheit to celsius", quantity: "Temperature", from: Fahrenheit, to: Celsius, value: 32, want: 0},
		{name: "celsius to kelvin", quantity: "Temperature", from: Celsius, to: Kelvin, value: 0, want: 273.15},
		{name: "kelvin to celsius", quantity: "Temperature", from: Kelvin, to: Celsius, value: 0, want: -273.15},
		{name: "kelvin to fahrenheit", quantity: "Temperature", from: Kelvin, to: Fahrenheit, value: 373.15, want: 212},
		{name: "fahrenheit to kelvin", quantity: "Temperature", from: Fahrenheit, to: Kelvin, value: -40, want: 233.15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Default().Convert(tc.quantity, tc.from, tc.to, tc.value)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, approx); diff != "" {
				t.Fatalf("convert mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalogConvertRoundTrip(t *testing.T) {
	catalog := Default()
	for _, q := range catalog.Quantities() {
		for _, from := range q.UnitKeys() {
			for _, to := range q.UnitKeys() {
				there, err := catalog.Convert(q.Name, from, to, 12.5)
				if err != nil {
					t.Fatalf("%s %s->%s: %v", q.Name, from, to, err)
				}
				back, err := catalog.Convert(q.Name, to, from, there)
				if err != nil {
					t.Fatalf("%s %s->%s: %v", q.Name, to, from, err)
				}
				if diff := cmp.Diff(12.5, back, cmpopts.EquateApprox(1e-9, 0)); diff != "" {
					t.Fatalf("%s %s<->%s round trip (-want +got):\n%s", q.Name, from, to, diff)
				}
			}
		}
	}
}

func TestCatalogConvertErrors(t *testing.T) {
	catalog := Default()

	if _, err := catalog.Convert("Luminosity", "lm", "cd", 1); !errors.Is(err, ErrUnknownQuantity) {
		t.Fatalf("expected ErrUnknownQuantity, got %v", err)
	}
	if _, err := catalog.Convert("Length", "furlong", "m", 1); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for source, got %v", err)
	}
	if _, err := catalog.Convert("Length", "m", "furlong", 1); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for target, got %v", err)
	}
	if _, err := ConvertTemperature(1, "rankine", Celsius); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for rankine, got %v", err)
	}
	if _, err := ConvertTemperature(1, "rankine", "rankine"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit for identity rankine, got %v", err)
	}
}

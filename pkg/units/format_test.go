package units

import (
	"errors"
	"math"
	"testing"
)

func TestFormatValue(t *testing.T) {
	cases := map[string]struct {
		in   float64
		want string
	}{
		"integer":         {in: 1000, want: "1000"},
		"trailing zeros":  {in: 1.5, want: "1.5"},
		"float noise":     {in: 0.1 + 0.2, want: "0.3"},
		"below precision": {in: 1e-7, want: "0"},
		"negative zero":   {in: -1e-7, want: "0"},
		"six decimals":    {in: 123.456789, want: "123.456789"},
		"rounds seventh":  {in: 1.2345678, want: "1.234568"},
		"small energy":    {in: 2.77778e-4, want: "0.000278"},
		"negative":        {in: -40, want: "-40"},
		"zero":            {in: 0, want: "0"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := FormatValue(tc.in); got != tc.want {
				t.Fatalf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	if got := Round(2.0 / 3.0); got != 0.666667 {
		t.Fatalf("Round(2/3) = %v", got)
	}
	if got := Round(-1e-9); got != 0 {
		t.Fatalf("Round(-1e-9) = %v", got)
	}
	if got := Round(math.Inf(1)); got != 0 {
		t.Fatalf("Round(+Inf) = %v", got)
	}
	if IsFinite(math.Inf(-1)) || IsFinite(math.NaN()) || !IsFinite(1e308) {
		t.Fatal("IsFinite mismatch")
	}
}

func TestParseValue(t *testing.T) {
	valid := map[string]float64{
		"007":     7,
		" 3.5 ":   3.5,
		".5":      0.5,
		"-0.25":   -0.25,
		"+2":      2,
		"1e3":     1000,
		"000":     0,
		"0012.50": 12.5,
		"0.":      0,
		"5.":      5,
		"-.5":     -0.5,
		"0e3":     0,
	}
	for in, want := range valid {
		got, err := ParseValue(in)
		if err != nil {
			t.Fatalf("ParseValue(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseValue(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "   ", "abc", "12abc", "0x10", "NaN", "Inf", "-", "1e400", "1..2",
		"e5", "E3", "-e2", ".", "+.", "-.", "1e", ".e1"} {
		if _, err := ParseValue(in); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("ParseValue(%q): expected ErrInvalidValue, got %v", in, err)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Length":        "length",
		"  Fuel Usage ": "fuel-usage",
		"Data (bytes)":  "data-bytes",
		"":              "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

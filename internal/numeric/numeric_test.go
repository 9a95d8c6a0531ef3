package numeric

import (
	"math"
	"testing"
)

func TestToDecimal_FormatInsensitive(t *testing.T) {
	// Comma and dot separators must parse to the same value.
	cases := []struct {
		comma string
		dot   string
	}{
		{"1,5", "1.5"},
		{"0,05", "0.05"},
		{"1000,25", "1000.25"},
		{"-3,2", "-3.2"},
	}
	for _, tt := range cases {
		a, _ := ToDecimal(tt.comma).Float64()
		b, _ := ToDecimal(tt.dot).Float64()
		if a != b {
			t.Errorf("ToDecimal(%q) = %v, ToDecimal(%q) = %v, want equal", tt.comma, a, tt.dot, b)
		}
	}
}

func TestToDecimal_InvalidInputs(t *testing.T) {
	cases := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"whitespace", "   "},
		{"letters", "abc"},
		{"two commas", "1,2,3"},
		{"two dots", "1.2.3"},
		{"mixed separators", "1.234,5"},
		{"exponent", "1e5"},
		{"NaN", math.NaN()},
		{"Inf", math.Inf(1)},
		{"unsupported type", []int{1}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if !ToDecimal(tt.input).IsZero() {
				t.Errorf("ToDecimal(%v) = %v, want 0", tt.input, ToDecimal(tt.input))
			}
		})
	}
}

func TestMultiply_IdentityNoDrift(t *testing.T) {
	// Regression for the float-drift bug where 150 × 1 became 149.9.
	cases := []float64{150, 140, 0.1, 9999, 33.3}
	for _, a := range cases {
		if got := Multiply(a, 1, 1); got != a {
			t.Errorf("Multiply(%v, 1, 1) = %v, want %v", a, got, a)
		}
	}
	if got := Multiply("140", "1,0", 1); got != 140 {
		t.Errorf("Multiply(\"140\", \"1,0\", 1) = %v, want 140", got)
	}
}

func TestMultiply_HalfUpRounding(t *testing.T) {
	cases := []struct {
		a, b   any
		places int32
		want   float64
	}{
		{"1,25", 1, 1, 1.3},
		{2.5, 1, 0, 3},
		{"0,15", 1, 1, 0.2},
		{3, "0,333", 1, 1.0},
	}
	for _, tt := range cases {
		if got := Multiply(tt.a, tt.b, tt.places); got != tt.want {
			t.Errorf("Multiply(%v, %v, %d) = %v, want %v", tt.a, tt.b, tt.places, got, tt.want)
		}
	}
}

func TestDivide(t *testing.T) {
	if got := Divide(150, 0, 1); got != 0 {
		t.Errorf("Divide(150, 0, 1) = %v, want 0", got)
	}
	if got := Divide(150, "", 1); got != 0 {
		t.Errorf("Divide(150, \"\", 1) = %v, want 0", got)
	}
	if got := Divide(150, "abc", 1); got != 0 {
		t.Errorf("Divide(150, \"abc\", 1) = %v, want 0", got)
	}
	if got := Divide(1, 3, 1); got != 0.3 {
		t.Errorf("Divide(1, 3, 1) = %v, want 0.3", got)
	}
	if got := Divide("7,5", "2,5", 1); got != 3 {
		t.Errorf("Divide(\"7,5\", \"2,5\", 1) = %v, want 3", got)
	}
}

func TestAdd(t *testing.T) {
	// 0.1 + 0.2 is the canonical binary float failure.
	if got := Add(0.1, 0.2, 1); got != 0.3 {
		t.Errorf("Add(0.1, 0.2, 1) = %v, want 0.3", got)
	}
	if got := Add("1,5", "2,5", 1); got != 4 {
		t.Errorf("Add(\"1,5\", \"2,5\", 1) = %v, want 4", got)
	}
}

func TestParseNumberSafe(t *testing.T) {
	cases := []struct {
		name  string
		input string
		def   float64
		want  float64
	}{
		{"comma decimal", "1,5", 0, 1.5},
		{"dot decimal", "1.5", 0, 1.5},
		{"integer", "42", 0, 42},
		{"negative", "-2,5", 0, -2.5},
		{"empty", "", 7, 7},
		{"two commas", "1,2,3", 7, 7},
		{"two dots", "1.2.3", 7, 7},
		{"letters", "12a", 7, 7},
		{"mixed separators", "1.234,5", 7, 7},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumberSafe(tt.input, tt.def); got != tt.want {
				t.Errorf("ParseNumberSafe(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	r := ValidateQuantity("0,05")
	if r.Valid || r.Value != 0.1 {
		t.Errorf("ValidateQuantity(\"0,05\") = %+v, want invalid value 0.1", r)
	}
	if r.Message == "" {
		t.Error("ValidateQuantity(\"0,05\") missing bound message")
	}

	r = ValidateQuantity("10000")
	if r.Valid || r.Value != 9999 {
		t.Errorf("ValidateQuantity(\"10000\") = %+v, want invalid value 9999", r)
	}

	r = ValidateQuantity("150")
	if !r.Valid || r.Value != 150 || r.Message != "" {
		t.Errorf("ValidateQuantity(\"150\") = %+v, want valid 150", r)
	}

	// Unparseable falls below the minimum and clamps up.
	r = ValidateQuantity("garbage")
	if r.Valid || r.Value != 0.1 {
		t.Errorf("ValidateQuantity(\"garbage\") = %+v, want invalid value 0.1", r)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		name   string
		value  float64
		places []int32
		want   string
	}{
		{"drops zero fraction", 1000.0, nil, "1000"},
		{"keeps fraction", 1.5, nil, "1,5"},
		{"explicit places", 1.5, []int32{2}, "1,50"},
		{"explicit zero places", 2.5, []int32{0}, "3"},
		{"NaN", math.NaN(), nil, "0"},
		{"Inf", math.Inf(-1), nil, "0"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNumber(tt.value, tt.places...); got != tt.want {
				t.Errorf("FormatNumber(%v, %v) = %q, want %q", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, s := range []string{"1,5", "150", "0,1", "9999", "33,3"} {
		v := ParseNumberSafe(s, -1)
		if got := FormatNumber(v); got != s {
			t.Errorf("FormatNumber(ParseNumberSafe(%q)) = %q, want %q", s, got, s)
		}
	}
}

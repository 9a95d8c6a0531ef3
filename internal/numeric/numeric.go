// Package numeric provides locale-tolerant decimal parsing, exact decimal
// arithmetic, and Polish-locale number formatting.
//
// Quantities and macro values are entered by users with either a comma or a
// dot as the decimal separator, and arithmetic on them must not pick up
// binary floating-point drift (150 × 1 must stay 150, never 149.9). All
// operations here go through exact decimals and round once, half-up, at the
// operation boundary.
package numeric

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberPattern matches a plain signed decimal number after the comma
// separator has been normalized to a dot. Anything else (exponents, hex,
// Inf, NaN, stray characters) is rejected.
var numberPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// Quantity bounds accepted by ValidateQuantity.
const (
	MinQuantity = 0.1
	MaxQuantity = 9999
)

// ToDecimal converts a value of any supported type to an exact decimal.
// Strings may use a comma or a dot as the decimal separator. Invalid, empty,
// nil, or non-finite input yields zero; ToDecimal never fails.
func ToDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case string:
		return parseDecimal(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return ToDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}

// parseDecimal parses a comma- or dot-separated decimal string, returning
// zero on any malformed input.
func parseDecimal(s string) decimal.Decimal {
	normalized := normalize(s)
	if normalized == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// normalize trims the input and converts a single comma separator to a dot.
// Returns "" when the input cannot be a plain decimal number.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Count(s, ",") > 1 || strings.Count(s, ".") > 1 {
		return ""
	}
	s = strings.ReplaceAll(s, ",", ".")
	if !numberPattern.MatchString(s) {
		return ""
	}
	return s
}

// Multiply multiplies two values exactly and rounds the product half-up to
// the given number of fractional digits.
func Multiply(a, b any, places int32) float64 {
	result := ToDecimal(a).Mul(ToDecimal(b)).Round(places)
	f, _ := result.Float64()
	return f
}

// Divide divides a by b exactly and rounds the quotient half-up to the given
// number of fractional digits. A zero or unparseable divisor yields 0 rather
// than an error or infinity.
func Divide(a, b any, places int32) float64 {
	divisor := ToDecimal(b)
	if divisor.IsZero() {
		return 0
	}
	result := ToDecimal(a).DivRound(divisor, places)
	f, _ := result.Float64()
	return f
}

// Add adds two values exactly and rounds the sum half-up to the given number
// of fractional digits.
func Add(a, b any, places int32) float64 {
	result := ToDecimal(a).Add(ToDecimal(b)).Round(places)
	f, _ := result.Float64()
	return f
}

// ParseNumberSafe parses a Polish-formatted numeric string (comma decimal
// separator, dot also accepted). Strings with more than one comma, more than
// one dot, or any non-numeric character yield def.
func ParseNumberSafe(s string, def float64) float64 {
	normalized := normalize(s)
	if normalized == "" {
		return def
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return def
	}
	f, _ := d.Float64()
	return f
}

// QuantityResult is the outcome of validating a user-entered quantity.
type QuantityResult struct {
	Valid   bool
	Value   float64
	Message string
}

// ValidateQuantity parses a quantity string and clamps it to the closed
// range [MinQuantity, MaxQuantity]. Valid is false when clamping occurred;
// Message then names the violated bound.
func ValidateQuantity(s string) QuantityResult {
	v := ParseNumberSafe(s, 0)
	if v < MinQuantity {
		return QuantityResult{
			Valid:   false,
			Value:   MinQuantity,
			Message: "Minimalna ilość to " + FormatNumber(MinQuantity),
		}
	}
	if v > MaxQuantity {
		return QuantityResult{
			Valid:   false,
			Value:   MaxQuantity,
			Message: "Maksymalna ilość to " + FormatNumber(MaxQuantity),
		}
	}
	return QuantityResult{Valid: true, Value: v}
}

// FormatNumber formats a value as a Polish-locale string with a comma
// decimal separator. With no explicit places a zero-only fraction is dropped
// (1000.0 renders as "1000"). Non-finite values render as "0".
func FormatNumber(v float64, places ...int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	d := decimal.NewFromFloat(v)
	var s string
	if len(places) > 0 {
		s = d.StringFixed(places[0])
	} else {
		s = d.String()
	}
	return strings.ReplaceAll(s, ".", ",")
}

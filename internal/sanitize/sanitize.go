package sanitize

import (
	"math"
	"strconv"
	"strings"

	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cast"
)

// Bounds declares the accepted range of a numeric field and the value used
// in place of anything outside of it.
type Bounds struct {
	Default float64
	Min     float64
	Max     float64
	// Precision is the number of fractional digits to keep,
	// nil rounds to the nearest integer.
	Precision *int
}

// Digits is a helper to declare Bounds.Precision inline.
func Digits(n int) *int {
	return &n
}

// Value is the result of sanitizing a single raw value.
type Value struct {
	Value float64
	// Text is the display representation, fixed decimal or integer.
	Text string
	// Substituted is true if the default had to be used.
	Substituted bool
}

// Sanitize validates raw against bounds. Anything that is not a finite number
// within [Min, Max] is replaced by Default and reported as a warning.
func Sanitize(name string, raw interface{}, bounds Bounds) Value {
	v, ok := Parse(raw)
	substituted := false
	if !ok || v < bounds.Min || v > bounds.Max {
		ui.Warning("Value for %s was invalid (%v), using default: %v", name, raw, bounds.Default)
		v = bounds.Default
		substituted = true
	}

	v = round(v, bounds.Precision)
	// rounding must never leave the declared range
	if v < bounds.Min {
		v = bounds.Min
	} else if v > bounds.Max {
		v = bounds.Max
	}

	return Value{
		Value:       v,
		Text:        format(v, bounds.Precision),
		Substituted: substituted,
	}
}

// Parse converts any representation of a number to a finite float64.
func Parse(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil, bool:
		return 0, false
	case string:
		raw = strings.TrimSpace(v)
		if raw == "" {
			return 0, false
		}
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt converts any representation of a number to an int, dropping the
// fractional part. Values outside of the int range are rejected.
func ParseInt(raw interface{}) (int, bool) {
	f, ok := Parse(raw)
	if !ok {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

func round(v float64, precision *int) float64 {
	if precision == nil {
		return math.Round(v)
	}
	factor := math.Pow(10, float64(*precision))
	return math.Round(v*factor) / factor
}

func format(v float64, precision *int) string {
	if precision == nil {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', *precision, 64)
}

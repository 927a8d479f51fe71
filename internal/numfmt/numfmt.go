// Package numfmt holds the numeric presentation rules shared by the
// evaluator and the sampler.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// #region places
const (
	// ResultPlaces is the precision of a non-integer evaluator result.
	ResultPlaces = 6
	// ScientificPlaces is the precision of a scientific-key result.
	ScientificPlaces = 8
	// XPlaces and YPlaces are the precisions of sampled plot points.
	XPlaces = 2
	YPlaces = 4
)

// #endregion places

// #region predicates
// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsInteger reports whether v is a finite mathematical integer.
func IsInteger(v float64) bool {
	return Finite(v) && v == math.Trunc(v)
}

// #endregion predicates

// #region rounding
// Round rounds v to the given number of decimal places, half away from zero.
// Negative zero comes back as zero so that rounded values compare equal.
func Round(v float64, places int) float64 {
	r := scalar.Round(v, places)
	if r == 0 {
		return 0
	}
	return r
}

// #endregion rounding

// #region format
// FormatResult renders an evaluator result: integers without a decimal point,
// everything else rounded to ResultPlaces with trailing zeros removed.
func FormatResult(v float64) string {
	if IsInteger(v) {
		return formatInteger(v)
	}
	return Fixed(v, ResultPlaces)
}

// FormatScientific renders a scientific-key result rounded to ScientificPlaces.
func FormatScientific(v float64) string {
	return Fixed(v, ScientificPlaces)
}

// Fixed rounds v to places decimals and strips trailing zeros and a dangling
// decimal point, so 2.500000 becomes 2.5 and 3.000000 becomes 3.
func Fixed(v float64, places int) string {
	s := strconv.FormatFloat(v, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

func formatInteger(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// #endregion format

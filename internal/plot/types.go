package plot

import "errors"

// #region errors
var (
	// ErrTooManyPoints indicates the range would need more samples than the sampler allows.
	ErrTooManyPoints = errors.New("plot: range requires too many sample points")
)

// #endregion errors

// #region defaults
// DefaultFunction is the function shown before the user types one.
const DefaultFunction = "sin(x)"

// DefaultMaxPoints bounds the sample count of a single call.
const DefaultMaxPoints = 100000

// DefaultRange returns the initial plot window.
func DefaultRange() Range {
	return Range{Min: -10, Max: 10, Step: 0.5}
}

// #endregion defaults

// #region types
// Range is the sampled x interval, inclusive on both ends.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Point is one sampled value. Both coordinates are finite.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extent is the bounding box of a point sequence.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Func is a compiled single-variable function.
type Func func(x float64) float64

// #endregion types

package plot

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/sigma-calc/internal/expr"
	"github.com/danielpatrickdp/sigma-calc/internal/numfmt"
)

// countSlack absorbs float error in (max-min)/step so the endpoint is kept.
const countSlack = 1e-9

// #region compile
// Compile parses src against the math symbol table. Identifiers outside it
// fail here with expr.ErrUnknownSymbol, never during evaluation.
func Compile(src string) (Func, error) {
	tree, err := expr.Parse(src, expr.MathSymbols())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return tree.Eval, nil
}

// #endregion compile

// #region range
// Valid reports whether r describes a non-empty sample: finite bounds, a
// positive finite step, and Min <= Max.
func (r Range) Valid() bool {
	if !numfmt.Finite(r.Min) || !numfmt.Finite(r.Max) || !numfmt.Finite(r.Step) {
		return false
	}
	return r.Step > 0 && r.Min <= r.Max
}

// Count returns how many x values r yields, or 0 for an invalid range.
// The result saturates at math.MaxInt64 for absurdly dense ranges.
func (r Range) Count() int64 {
	if !r.Valid() {
		return 0
	}
	q := (r.Max - r.Min) / r.Step
	if math.IsInf(r.Max-r.Min, 0) {
		// The span of two finite bounds can still overflow.
		q = r.Max/r.Step - r.Min/r.Step
	}
	if math.IsNaN(q) || q+countSlack+1 >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(q+countSlack)) + 1
}

// #endregion range

// #region sampler
// Sampler evaluates functions over ranges. The zero value uses DefaultMaxPoints.
type Sampler struct {
	MaxPoints int64
}

// NewSampler creates a sampler that refuses ranges needing more than maxPoints
// samples. A non-positive maxPoints selects DefaultMaxPoints.
func NewSampler(maxPoints int64) *Sampler {
	return &Sampler{MaxPoints: maxPoints}
}

func (s *Sampler) limit() int64 {
	if s == nil || s.MaxPoints <= 0 {
		return DefaultMaxPoints
	}
	return s.MaxPoints
}

// Sample evaluates src at Min, Min+Step, ... up to Max inclusive. Points whose
// y is NaN or infinite are dropped. x is rounded to 2 places and y to 4.
// src is compiled first, so a bad function fails whatever the range. After
// that an invalid range yields an empty sequence and no error.
func (s *Sampler) Sample(src string, r Range) ([]Point, error) {
	f, err := Compile(src)
	if err != nil {
		return nil, err
	}
	if !r.Valid() {
		return []Point{}, nil
	}
	n := r.Count()
	if n > s.limit() {
		return nil, fmt.Errorf("%d samples over [%v, %v] step %v, limit %d: %w",
			n, r.Min, r.Max, r.Step, s.limit(), ErrTooManyPoints)
	}

	points := make([]Point, 0, n)
	for i := int64(0); i < n; i++ {
		// Fused so i*Step cannot overflow on its own when Min is far negative.
		x := math.FMA(float64(i), r.Step, r.Min)
		y := f(x)
		if !numfmt.Finite(y) {
			continue
		}
		points = append(points, Point{
			X: numfmt.Round(x, numfmt.XPlaces),
			Y: numfmt.Round(y, numfmt.YPlaces),
		})
	}
	return points, nil
}

var defaultSampler = &Sampler{}

// Sample runs src over r with the default sampler.
func Sample(src string, r Range) ([]Point, error) {
	return defaultSampler.Sample(src, r)
}

// #endregion sampler

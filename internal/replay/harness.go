package replay

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/danielpatrickdp/sigma-calc/internal/calc"
	"github.com/danielpatrickdp/sigma-calc/internal/expr"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region types
const (
	OpEvaluate = "evaluate"
	OpSample   = "sample"
)

// Outcomes besides the expr kinds ("syntax", "invalid", "unknown_symbol").
const (
	OutcomeOK            = "ok"
	OutcomeTooManyPoints = "too_many_points"
	OutcomeError         = "error"
)

// pointTolerance absorbs float noise in fixture files; sampled values are
// already rounded to 2 and 4 places.
const pointTolerance = 1e-9

// ReplayResult captures the outcome of replaying one case.
type ReplayResult struct {
	ID      string
	Op      string
	Outcome string
	Display string
	Points  []plot.Point
	Err     error
}

// Mismatch is one difference between a case's expectation and its replay.
type Mismatch struct {
	ID    string
	Field string
	Want  string
	Got   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s want %s, got %s", m.ID, m.Field, m.Want, m.Got)
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCases int
	Passed     int
	Failed     int
	ByOutcome  map[string]int
}

// #endregion types

// #region replay

// OutcomeOf classifies err into a fixture outcome string.
func OutcomeOf(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if kind, ok := expr.KindOf(err); ok {
		return kind.String()
	}
	if errors.Is(err, plot.ErrTooManyPoints) {
		return OutcomeTooManyPoints
	}
	return OutcomeError
}

// Replay runs every case through calc.Evaluate or sampler.Sample. A nil
// sampler uses the package default.
func Replay(cases []FixtureCase, sampler *plot.Sampler) []ReplayResult {
	if sampler == nil {
		sampler = plot.NewSampler(0)
	}
	results := make([]ReplayResult, 0, len(cases))
	for _, c := range cases {
		r := ReplayResult{ID: c.ID, Op: c.Op}
		switch c.Op {
		case OpEvaluate:
			res, err := calc.Evaluate(c.Input)
			r.Display, r.Err = res.Display, err
		case OpSample:
			r.Points, r.Err = sampler.Sample(c.Input, c.SampleRange())
		default:
			r.Err = fmt.Errorf("unknown op %q", c.Op)
		}
		r.Outcome = OutcomeOf(r.Err)
		results = append(results, r)
	}
	return results
}

// Check compares results against the expectations in cases, pairwise.
func Check(cases []FixtureCase, results []ReplayResult) []Mismatch {
	var out []Mismatch
	if len(cases) != len(results) {
		out = append(out, Mismatch{
			Field: "count",
			Want:  fmt.Sprint(len(cases)),
			Got:   fmt.Sprint(len(results)),
		})
		return out
	}
	for i, c := range cases {
		r := results[i]
		if r.Outcome != c.Expect.Outcome {
			out = append(out, Mismatch{ID: c.ID, Field: "outcome", Want: c.Expect.Outcome, Got: r.Outcome})
			continue
		}
		if r.Outcome != OutcomeOK {
			continue
		}
		switch c.Op {
		case OpEvaluate:
			if r.Display != c.Expect.Display {
				out = append(out, Mismatch{ID: c.ID, Field: "display", Want: c.Expect.Display, Got: r.Display})
			}
		case OpSample:
			if !samePoints(c.Expect.Points, r.Points) {
				out = append(out, Mismatch{
					ID:    c.ID,
					Field: "points",
					Want:  fmt.Sprint(c.Expect.Points),
					Got:   fmt.Sprint(r.Points),
				})
			}
		}
	}
	return out
}

// Run replays f with a sampler honoring its MaxPoints and checks the results.
func Run(f *Fixture) ([]ReplayResult, []Mismatch) {
	results := Replay(f.Cases, plot.NewSampler(f.MaxPoints))
	return results, Check(f.Cases, results)
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult, mismatches []Mismatch) ReplaySummary {
	s := ReplaySummary{
		TotalCases: len(results),
		ByOutcome:  make(map[string]int),
	}
	failed := make(map[string]bool)
	for _, m := range mismatches {
		failed[m.ID] = true
	}
	for _, r := range results {
		s.ByOutcome[r.Outcome]++
		if failed[r.ID] {
			s.Failed++
		} else {
			s.Passed++
		}
	}
	return s
}

// #endregion replay

func samePoints(want, got []plot.Point) bool {
	if len(want) != len(got) {
		return false
	}
	wx, wy := split(want)
	gx, gy := split(got)
	return floats.EqualApprox(wx, gx, pointTolerance) && floats.EqualApprox(wy, gy, pointTolerance)
}

func split(points []plot.Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

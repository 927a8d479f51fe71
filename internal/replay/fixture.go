package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/sigma-calc/internal/calc"
	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	MaxPoints   int64         `json:"max_points,omitempty"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureCase is one recorded call and the outcome it must reproduce.
type FixtureCase struct {
	ID     string        `json:"id"`
	Op     string        `json:"op"` // "evaluate" | "sample"
	Input  string        `json:"input"`
	Range  *plot.Range   `json:"range,omitempty"`
	Expect FixtureExpect `json:"expect"`
}

// FixtureExpect is the expected outcome of a case. Display is checked for
// successful evaluations, Points for successful samples.
type FixtureExpect struct {
	Outcome string       `json:"outcome"`
	Display string       `json:"display,omitempty"`
	Points  []plot.Point `json:"points,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i, c := range f.Cases {
		if c.Op != OpEvaluate && c.Op != OpSample {
			return nil, fmt.Errorf("fixture %s case %d (%s): unknown op %q", path, i, c.ID, c.Op)
		}
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// SampleRange returns the case's range, or the default plotting window when
// the case leaves it out.
func (c *FixtureCase) SampleRange() plot.Range {
	if c.Range == nil {
		return plot.DefaultRange()
	}
	return *c.Range
}

// #endregion fixture-loader

// #region from-history

// FromHistory builds evaluate cases from recorded history, oldest first.
// Entries whose expression is not plain arithmetic (scientific key labels
// such as "sin(30)") are skipped, since Evaluate would read them differently.
func FromHistory(description string, entries []history.Entry) *Fixture {
	f := &Fixture{Description: description, Cases: []FixtureCase{}}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Expression == "" || calc.Sanitize(e.Expression) != e.Expression {
			continue
		}
		f.Cases = append(f.Cases, FixtureCase{
			ID:     e.ID,
			Op:     OpEvaluate,
			Input:  e.Expression,
			Expect: FixtureExpect{Outcome: OutcomeOK, Display: e.Result},
		})
	}
	return f
}

// #endregion from-history

package rpc

import (
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region field-readers
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "missing field %q", key)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "field %q must be a string", key)
	}
	return sv.StringValue, nil
}

// numberField reads key, returning fallback when it is absent.
func numberField(s *structpb.Struct, key string, fallback float64) (float64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return fallback, nil
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "field %q must be a number", key)
	}
	return nv.NumberValue, nil
}

// #endregion field-readers

// #region range
func rangeToFields(fn string, r plot.Range) map[string]any {
	return map[string]any{
		"function": fn,
		"min":      r.Min,
		"max":      r.Max,
		"step":     r.Step,
	}
}

func rangeFromStruct(s *structpb.Struct) (plot.Range, error) {
	def := plot.DefaultRange()
	var r plot.Range
	var err error
	if r.Min, err = numberField(s, "min", def.Min); err != nil {
		return plot.Range{}, err
	}
	if r.Max, err = numberField(s, "max", def.Max); err != nil {
		return plot.Range{}, err
	}
	if r.Step, err = numberField(s, "step", def.Step); err != nil {
		return plot.Range{}, err
	}
	return r, nil
}

// #endregion range

// #region points
func pointsToList(points []plot.Point) []any {
	out := make([]any, len(points))
	for i, p := range points {
		out[i] = map[string]any{"x": p.X, "y": p.Y}
	}
	return out
}

func pointsFromStruct(s *structpb.Struct) ([]plot.Point, error) {
	values := s.GetFields()["points"].GetListValue().GetValues()
	points := make([]plot.Point, 0, len(values))
	for i, v := range values {
		ps := v.GetStructValue()
		if ps == nil {
			return nil, fmt.Errorf("point %d: not an object", i)
		}
		x, err := numberField(ps, "x", 0)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		y, err := numberField(ps, "y", 0)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		points = append(points, plot.Point{X: x, Y: y})
	}
	return points, nil
}

// #endregion points

// #region entries
func entriesToList(entries []history.Entry) []any {
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = map[string]any{
			"id":         e.ID,
			"expression": e.Expression,
			"result":     e.Result,
			"created_at": e.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	return out
}

func entriesFromStruct(s *structpb.Struct) ([]history.Entry, error) {
	values := s.GetFields()["entries"].GetListValue().GetValues()
	entries := make([]history.Entry, 0, len(values))
	for i, v := range values {
		es := v.GetStructValue()
		if es == nil {
			return nil, fmt.Errorf("entry %d: not an object", i)
		}
		fields := es.GetFields()
		e := history.Entry{
			ID:         fields["id"].GetStringValue(),
			Expression: fields["expression"].GetStringValue(),
			Result:     fields["result"].GetStringValue(),
		}
		if ts := fields["created_at"].GetStringValue(); ts != "" {
			t, err := time.Parse(time.RFC3339Nano, ts)
			if err != nil {
				return nil, fmt.Errorf("entry %d created_at: %w", i, err)
			}
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// #endregion entries

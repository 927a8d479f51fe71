package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/sigma-calc/internal/calc"
	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region deps
// HistoryStore is the slice of history.Store the server uses.
type HistoryStore interface {
	Add(expression, result string) (history.Entry, error)
	List(limit int) ([]history.Entry, error)
	Clear() (int, error)
}

// #endregion deps

// #region server-struct
// Server implements CalculatorServer on top of calc, plot, and history.
type Server struct {
	sampler *plot.Sampler
	hist    HistoryStore
}

// NewServer creates a server. A nil sampler uses plot defaults; a nil
// history disables recording and History returns no entries.
func NewServer(sampler *plot.Sampler, hist HistoryStore) *Server {
	if sampler == nil {
		sampler = &plot.Sampler{}
	}
	return &Server{sampler: sampler, hist: hist}
}

var _ CalculatorServer = (*Server)(nil)

// #endregion server-struct

// #region evaluate
// Evaluate handles {expression} and answers {expression, value, display}.
// Successful evaluations are recorded in history.
func (s *Server) Evaluate(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := stringField(req, "expression")
	if err != nil {
		return nil, err
	}
	res, err := calc.Evaluate(raw)
	if err != nil {
		return nil, toStatus(err)
	}
	if s.hist != nil {
		if _, err := s.hist.Add(res.Expression, res.Display); err != nil {
			return nil, status.Errorf(codes.Internal, "record history: %v", err)
		}
	}
	return newStruct(map[string]any{
		"expression": res.Expression,
		"value":      res.Value,
		"display":    res.Display,
	})
}

// #endregion evaluate

// #region sample
// Sample handles {function, min, max, step} and answers {points, count}.
// Missing range fields fall back to plot.DefaultRange.
func (s *Server) Sample(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fn, err := stringField(req, "function")
	if err != nil {
		return nil, err
	}
	r, err := rangeFromStruct(req)
	if err != nil {
		return nil, err
	}
	points, err := s.sampler.Sample(fn, r)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{
		"points": pointsToList(points),
		"count":  len(points),
	})
}

// #endregion sample

// #region history
// History handles {limit} and answers {entries}, newest first.
func (s *Server) History(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := numberField(req, "limit", 0)
	if err != nil {
		return nil, err
	}
	var entries []history.Entry
	if s.hist != nil {
		entries, err = s.hist.List(int(limit))
		if err != nil {
			return nil, status.Errorf(codes.Internal, "list history: %v", err)
		}
	}
	return newStruct(map[string]any{"entries": entriesToList(entries)})
}

// ClearHistory answers {cleared} with the number of removed entries.
func (s *Server) ClearHistory(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	cleared := 0
	if s.hist != nil {
		n, err := s.hist.Clear()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "clear history: %v", err)
		}
		cleared = n
	}
	return newStruct(map[string]any{"cleared": cleared})
}

// #endregion history

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return s, nil
}

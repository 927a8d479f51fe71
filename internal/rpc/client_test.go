package rpc

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/sigma-calc/internal/expr"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region mock
type mockConn struct {
	grpc.ClientConnInterface

	method string
	req    *structpb.Struct
	resp   map[string]any
	err    error
}

func (m *mockConn) Invoke(_ context.Context, method string, args, reply any, _ ...grpc.CallOption) error {
	m.method = method
	m.req = args.(*structpb.Struct)
	if m.err != nil {
		return m.err
	}
	s, err := structpb.NewStruct(m.resp)
	if err != nil {
		return err
	}
	proto.Merge(reply.(*structpb.Struct), s)
	return nil
}

// #endregion mock

// #region constructor-tests
func TestNewClientLazyConnect(t *testing.T) {
	client, err := NewClient("localhost:0")
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	defer client.Close()
}

func TestNewClientWithConnClose(t *testing.T) {
	c := NewClientWithConn(&mockConn{})
	if err := c.Close(); err != nil {
		t.Fatalf("Close on borrowed conn: %v", err)
	}
}

// #endregion constructor-tests

// #region evaluate-tests
func TestClientEvaluate_Success(t *testing.T) {
	m := &mockConn{resp: map[string]any{"expression": "12+7", "value": 19.0, "display": "19"}}
	c := NewClientWithConn(m)

	res, err := c.Evaluate(context.Background(), "12+7")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if m.method != MethodEvaluate {
		t.Errorf("expected method %s, got %s", MethodEvaluate, m.method)
	}
	if got := m.req.GetFields()["expression"].GetStringValue(); got != "12+7" {
		t.Errorf("expected request expression 12+7, got %q", got)
	}
	if res.Display != "19" || res.Value != 19 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestClientEvaluate_MapsReasons(t *testing.T) {
	cases := []struct {
		domain error
		want   error
	}{
		{expr.Invalid("result is +Inf"), expr.ErrInvalid},
		{&expr.Error{Kind: expr.KindSyntax, Pos: 2, Msg: "missing operand"}, expr.ErrSyntax},
		{&expr.Error{Kind: expr.KindUnknownSymbol, Pos: 0, Msg: "unknown identifier y"}, expr.ErrUnknownSymbol},
		{plot.ErrTooManyPoints, plot.ErrTooManyPoints},
	}
	for _, tc := range cases {
		c := NewClientWithConn(&mockConn{err: toStatus(tc.domain)})
		_, err := c.Evaluate(context.Background(), "whatever")
		if !errors.Is(err, tc.want) {
			t.Errorf("expected %v, got %v", tc.want, err)
		}
	}
}

func TestClientEvaluate_PlainStatusPassesThrough(t *testing.T) {
	c := NewClientWithConn(&mockConn{err: status.Error(codes.Unavailable, "down")})
	_, err := c.Evaluate(context.Background(), "1+1")
	if status.Code(errors.Unwrap(err)) != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v", err)
	}
	if _, ok := expr.KindOf(err); ok {
		t.Fatalf("transport failure must not look like an evaluation failure: %v", err)
	}
}

// #endregion evaluate-tests

// #region sample-tests
func TestClientSample_DecodesPoints(t *testing.T) {
	m := &mockConn{resp: map[string]any{
		"points": []any{
			map[string]any{"x": 0.0, "y": 0.0},
			map[string]any{"x": 1.0, "y": 1.0},
		},
		"count": 2,
	}}
	c := NewClientWithConn(m)

	pts, err := c.Sample(context.Background(), "x*x", plot.Range{Min: 0, Max: 1, Step: 1})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(pts) != 2 || pts[1] != (plot.Point{X: 1, Y: 1}) {
		t.Fatalf("unexpected points %+v", pts)
	}
	if got := m.req.GetFields()["step"].GetNumberValue(); got != 1 {
		t.Errorf("expected step 1 in request, got %v", got)
	}
}

func TestClientSample_MalformedPoint(t *testing.T) {
	m := &mockConn{resp: map[string]any{"points": []any{"nope"}}}
	_, err := NewClientWithConn(m).Sample(context.Background(), "x", plot.DefaultRange())
	if err == nil {
		t.Fatal("expected decode error")
	}
}

// #endregion sample-tests

// #region history-tests
func TestClientHistory_BadTimestamp(t *testing.T) {
	m := &mockConn{resp: map[string]any{"entries": []any{
		map[string]any{"id": "a", "expression": "1+1", "result": "2", "created_at": "yesterday"},
	}}}
	_, err := NewClientWithConn(m).History(context.Background(), 5)
	if err == nil {
		t.Fatal("expected timestamp decode error")
	}
}

func TestClientClearHistory(t *testing.T) {
	m := &mockConn{resp: map[string]any{"cleared": 4}}
	n, err := NewClientWithConn(m).ClearHistory(context.Background())
	if err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4, got %d", n)
	}
	if m.method != MethodClearHistory {
		t.Errorf("expected method %s, got %s", MethodClearHistory, m.method)
	}
}

// #endregion history-tests

// #region status-tests
func TestToStatus(t *testing.T) {
	if toStatus(nil) != nil {
		t.Fatal("nil must stay nil")
	}
	st := status.Convert(toStatus(errors.New("disk on fire")))
	if st.Code() != codes.Internal {
		t.Errorf("expected Internal for an unclassified error, got %s", st.Code())
	}
	st = status.Convert(toStatus(plot.ErrTooManyPoints))
	if st.Code() != codes.OutOfRange {
		t.Errorf("expected OutOfRange, got %s", st.Code())
	}
	already := status.Error(codes.NotFound, "gone")
	if toStatus(already) != already {
		t.Error("status errors must pass through unchanged")
	}
}

// #endregion status-tests

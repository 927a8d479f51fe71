package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/sigma-calc/internal/calc"
	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region client-struct
// Client wraps a gRPC connection to a calculator server.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// #endregion client-struct

// #region constructor
// NewClient connects to the calculator server at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn creates a Client over an existing connection.
// Used for testing without a real network.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection if the client owns one.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

func (c *Client) invoke(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, resp); err != nil {
		return nil, fromStatus(err)
	}
	return resp, nil
}

// #region evaluate
// Evaluate asks the server to evaluate an arithmetic expression. Failures
// match expr.ErrSyntax or expr.ErrInvalid under errors.Is.
func (c *Client) Evaluate(ctx context.Context, expression string) (calc.Result, error) {
	resp, err := c.invoke(ctx, MethodEvaluate, map[string]any{"expression": expression})
	if err != nil {
		return calc.Result{}, fmt.Errorf("evaluate rpc: %w", err)
	}
	fields := resp.GetFields()
	return calc.Result{
		Expression: fields["expression"].GetStringValue(),
		Value:      fields["value"].GetNumberValue(),
		Display:    fields["display"].GetStringValue(),
	}, nil
}

// #endregion evaluate

// #region sample
// Sample asks the server to sample fn over r.
func (c *Client) Sample(ctx context.Context, fn string, r plot.Range) ([]plot.Point, error) {
	resp, err := c.invoke(ctx, MethodSample, rangeToFields(fn, r))
	if err != nil {
		return nil, fmt.Errorf("sample rpc: %w", err)
	}
	points, err := pointsFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("decode sample: %w", err)
	}
	return points, nil
}

// #endregion sample

// #region history
// History returns up to limit recorded calculations, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]history.Entry, error) {
	resp, err := c.invoke(ctx, MethodHistory, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("history rpc: %w", err)
	}
	entries, err := entriesFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

// ClearHistory removes all recorded calculations and returns how many there were.
func (c *Client) ClearHistory(ctx context.Context) (int, error) {
	resp, err := c.invoke(ctx, MethodClearHistory, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("clear history rpc: %w", err)
	}
	return int(resp.GetFields()["cleared"].GetNumberValue()), nil
}

// #endregion history

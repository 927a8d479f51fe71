package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region names
const (
	ServiceName = "sigmacalc.v1.Calculator"

	MethodEvaluate     = "/" + ServiceName + "/Evaluate"
	MethodSample       = "/" + ServiceName + "/Sample"
	MethodHistory      = "/" + ServiceName + "/History"
	MethodClearHistory = "/" + ServiceName + "/ClearHistory"
)

// #endregion names

// #region server-interface
// CalculatorServer is the server API. Every message is a google.protobuf.Struct
// so the service needs no generated code.
type CalculatorServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Sample(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCalculatorServer attaches srv to s.
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

// #endregion server-interface

// #region descriptor
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: unaryHandler(MethodEvaluate, CalculatorServer.Evaluate)},
		{MethodName: "Sample", Handler: unaryHandler(MethodSample, CalculatorServer.Sample)},
		{MethodName: "History", Handler: unaryHandler(MethodHistory, CalculatorServer.History)},
		{MethodName: "ClearHistory", Handler: unaryHandler(MethodClearHistory, CalculatorServer.ClearHistory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sigmacalc/v1/calculator.proto",
}

type unaryMethod func(CalculatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CalculatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// #endregion descriptor

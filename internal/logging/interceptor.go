package logging

import (
	"context"
	"log"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// #region interceptor
// UnaryServerInterceptor writes one CallEntry line per unary call to logger.
func UnaryServerInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Print(Entry(info.FullMethod, err, time.Since(start)))
		return resp, err
	}
}

// Entry builds the CallEntry for a finished call.
func Entry(method string, err error, d time.Duration) CallEntry {
	return CallEntry{
		Method:   method,
		Code:     status.Code(err),
		Reason:   reason(err),
		Duration: d.Round(time.Microsecond),
	}
}

// #endregion interceptor

// #region helpers
func reason(err error) string {
	if err == nil {
		return ""
	}
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

// #endregion helpers

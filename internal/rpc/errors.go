package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danielpatrickdp/sigma-calc/internal/expr"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// ErrorDomain tags ErrorInfo details produced by this service.
const ErrorDomain = "sigmacalc"

// #region reasons
const (
	ReasonSyntax        = "SYNTAX"
	ReasonInvalid       = "INVALID"
	ReasonUnknownSymbol = "UNKNOWN_SYMBOL"
	ReasonTooManyPoints = "TOO_MANY_POINTS"
)

var reasonErrors = map[string]error{
	ReasonSyntax:        expr.ErrSyntax,
	ReasonInvalid:       expr.ErrInvalid,
	ReasonUnknownSymbol: expr.ErrUnknownSymbol,
	ReasonTooManyPoints: plot.ErrTooManyPoints,
}

func reasonFor(kind expr.Kind) string {
	switch kind {
	case expr.KindSyntax:
		return ReasonSyntax
	case expr.KindInvalid:
		return ReasonInvalid
	default:
		return ReasonUnknownSymbol
	}
}

// #endregion reasons

// #region to-status
// toStatus converts a domain error into a gRPC status carrying an ErrorInfo
// detail, so clients can recover the failure class.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if kind, ok := expr.KindOf(err); ok {
		return withReason(codes.InvalidArgument, err, reasonFor(kind))
	}
	if errors.Is(err, plot.ErrTooManyPoints) {
		return withReason(codes.OutOfRange, err, ReasonTooManyPoints)
	}
	return status.Error(codes.Internal, err.Error())
}

func withReason(code codes.Code, err error, reason string) error {
	st := status.New(code, err.Error())
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// #endregion to-status

// #region from-status
// fromStatus maps a status produced by toStatus back onto the domain
// sentinels, so errors.Is(err, expr.ErrSyntax) holds on the client side.
// Other errors are returned unchanged.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		if sentinel, ok := reasonErrors[info.GetReason()]; ok {
			return fmt.Errorf("%s: %w", st.Message(), sentinel)
		}
	}
	return err
}

// #endregion from-status

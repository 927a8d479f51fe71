package expr

import (
	"errors"
	"fmt"
)

// #region sentinels
var (
	// ErrSyntax indicates the input cannot be parsed into an expression tree.
	ErrSyntax = errors.New("expr: syntax error")
	// ErrInvalid indicates the expression parsed but evaluated to NaN or ±Inf.
	ErrInvalid = errors.New("expr: result is not a finite number")
	// ErrUnknownSymbol indicates an identifier outside the symbol table.
	ErrUnknownSymbol = errors.New("expr: unknown symbol")
)

// #endregion sentinels

// #region kind
// Kind classifies an evaluation failure.
type Kind int

const (
	KindSyntax Kind = iota + 1
	KindInvalid
	KindUnknownSymbol
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindInvalid:
		return "invalid"
	case KindUnknownSymbol:
		return "unknown_symbol"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindSyntax:
		return ErrSyntax
	case KindInvalid:
		return ErrInvalid
	case KindUnknownSymbol:
		return ErrUnknownSymbol
	}
	return nil
}

// KindOf reports which failure class err belongs to.
func KindOf(err error) (Kind, bool) {
	switch {
	case errors.Is(err, ErrSyntax):
		return KindSyntax, true
	case errors.Is(err, ErrInvalid):
		return KindInvalid, true
	case errors.Is(err, ErrUnknownSymbol):
		return KindUnknownSymbol, true
	}
	return 0, false
}

// #endregion kind

// #region error
// Error is a positioned failure. Pos is a byte offset into the parsed source,
// or -1 when the failure is not tied to a location.
type Error struct {
	Kind Kind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Msg)
}

// Is matches the sentinel of the error's kind, so errors.Is(err, ErrSyntax) works.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func syntaxErr(pos int, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Invalid builds a KindInvalid error with no source position.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Pos: -1, Msg: fmt.Sprintf(format, args...)}
}

// #endregion error

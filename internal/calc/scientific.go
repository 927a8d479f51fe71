package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/sigma-calc/internal/expr"
	"github.com/danielpatrickdp/sigma-calc/internal/numfmt"
)

// #region parse-func
// ParseFunc maps a key name (sin, cos, tan, log, ln, sqrt, pow2, pi, e) to a Func.
func ParseFunc(name string) (Func, error) {
	f, ok := funcNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("scientific key %q: %w", name, expr.ErrUnknownSymbol)
	}
	return f, nil
}

// #endregion parse-func

// #region apply
// Apply runs a scientific key against the displayed operand. Pi and E ignore
// the operand. The label mirrors what the keypad records in history.
func Apply(f Func, operand string) (Result, error) {
	var val float64
	if f != Pi && f != E {
		v, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
		if err != nil {
			return Result{}, fmt.Errorf("%s operand %q: %w", f, operand, expr.ErrSyntax)
		}
		val = v
	}
	arg := strconv.FormatFloat(val, 'f', -1, 64)

	var res float64
	var label string
	switch f {
	case Sin:
		res, label = math.Sin(val), "sin("+arg+")"
	case Cos:
		res, label = math.Cos(val), "cos("+arg+")"
	case Tan:
		res, label = math.Tan(val), "tan("+arg+")"
	case Log:
		res, label = math.Log10(val), "log("+arg+")"
	case Ln:
		res, label = math.Log(val), "ln("+arg+")"
	case Sqrt:
		res, label = math.Sqrt(val), "√("+arg+")"
	case Square:
		res, label = math.Pow(val, 2), "("+arg+")²"
	case Pi:
		res, label = math.Pi, "π"
	case E:
		res, label = math.E, "e"
	default:
		return Result{}, fmt.Errorf("scientific key %d: %w", int(f), expr.ErrUnknownSymbol)
	}

	if !numfmt.Finite(res) {
		return Result{}, fmt.Errorf("%s: %w", label, expr.Invalid("result is %v", res))
	}
	return Result{
		Expression: label,
		Value:      res,
		Display:    numfmt.FormatScientific(res),
	}, nil
}

// #endregion apply

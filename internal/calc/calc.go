package calc

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/sigma-calc/internal/expr"
	"github.com/danielpatrickdp/sigma-calc/internal/numfmt"
)

// #region sanitize
// allowed is the evaluator's character allow-list.
const allowed = "0123456789.+-*/%()"

// Sanitize drops every character outside the allow-list. Identifiers,
// function calls, and whitespace never reach the parser.
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(allowed, r) {
			return r
		}
		return -1
	}, raw)
}

// #endregion sanitize

// #region evaluate
// Evaluate sanitizes raw, parses it as arithmetic, and formats the value.
// It fails with expr.ErrSyntax for malformed input and expr.ErrInvalid when
// the value is NaN or infinite, such as after a division by zero.
func Evaluate(raw string) (Result, error) {
	clean := Sanitize(raw)
	tree, err := expr.Parse(clean, nil)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate %q: %w", clean, err)
	}
	v := tree.Eval(0)
	if !numfmt.Finite(v) {
		return Result{}, fmt.Errorf("evaluate %q: %w", clean, expr.Invalid("result is %v", v))
	}
	return Result{
		Expression: clean,
		Value:      v,
		Display:    numfmt.FormatResult(v),
	}, nil
}

// #endregion evaluate

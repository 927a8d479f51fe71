package expr

import (
	"strconv"
	"strings"
)

// #region node
// Node is a parsed expression tree. Eval is total: IEEE-754 semantics apply,
// so division by zero yields ±Inf or NaN and callers classify the result.
type Node interface {
	Eval(x float64) float64
	String() string
}

// #endregion node

// #region leaves
// Num is a numeric literal or a resolved constant.
type Num float64

func (n Num) Eval(float64) float64 { return float64(n) }

func (n Num) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// Var is the free variable of a function body.
type Var string

func (v Var) Eval(x float64) float64 { return x }

func (v Var) String() string { return string(v) }

// #endregion leaves

// #region operators
// Neg is unary minus.
type Neg struct {
	X Node
}

func (n *Neg) Eval(x float64) float64 { return -n.X.Eval(x) }

func (n *Neg) String() string { return "(-" + n.X.String() + ")" }

// Percent is the postfix percent operator: the operand divided by 100.
type Percent struct {
	X Node
}

func (p *Percent) Eval(x float64) float64 { return p.X.Eval(x) / 100 }

func (p *Percent) String() string { return "(" + p.X.String() + "%)" }

// Binary is one of + - * /.
type Binary struct {
	Op          byte
	Left, Right Node
}

func (b *Binary) Eval(x float64) float64 {
	l := b.Left.Eval(x)
	r := b.Right.Eval(x)
	switch b.Op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	}
	panic("expr: unknown binary operator " + string(b.Op))
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + string(b.Op) + " " + b.Right.String() + ")"
}

// Call applies an allow-listed function to its arguments.
type Call struct {
	Name string
	Fn   Func
	Args []Node
}

func (c *Call) Eval(x float64) float64 {
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Eval(x)
	}
	return c.Fn.Apply(args)
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// #endregion operators

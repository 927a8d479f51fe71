package expr

import (
	"math"
	"sort"
	"strings"
)

// Qualifier is an optional namespace prefix accepted on identifiers, so the
// plotter's historical default "Math.sin(x)" still compiles.
const Qualifier = "Math."

// #region func
// Func is an allow-listed function of fixed arity.
type Func struct {
	Arity int
	Apply func(args []float64) float64
}

func unary(f func(float64) float64) Func {
	return Func{Arity: 1, Apply: func(a []float64) float64 { return f(a[0]) }}
}

// #endregion func

// #region symbols
// Symbols is the table consulted while parsing. Identifiers absent from it
// fail with ErrUnknownSymbol before any evaluation happens.
type Symbols struct {
	Var    string
	Consts map[string]float64
	Funcs  map[string]Func
}

// MathSymbols returns the plotter vocabulary: sin cos tan pow sqrt log abs
// exp, the constants PI and E, and the free variable x. log is the natural
// logarithm.
func MathSymbols() *Symbols {
	return &Symbols{
		Var: "x",
		Consts: map[string]float64{
			"PI": math.Pi,
			"E":  math.E,
		},
		Funcs: map[string]Func{
			"sin":  unary(math.Sin),
			"cos":  unary(math.Cos),
			"tan":  unary(math.Tan),
			"sqrt": unary(math.Sqrt),
			"log":  unary(math.Log),
			"abs":  unary(math.Abs),
			"exp":  unary(math.Exp),
			"pow": {Arity: 2, Apply: func(a []float64) float64 {
				return math.Pow(a[0], a[1])
			}},
		},
	}
}

// Names lists every identifier the table resolves, sorted, for help output.
func (s *Symbols) Names() []string {
	if s == nil {
		return nil
	}
	var names []string
	if s.Var != "" {
		names = append(names, s.Var)
	}
	for k := range s.Consts {
		names = append(names, k)
	}
	for k := range s.Funcs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func canonical(name string) string {
	return strings.TrimPrefix(name, Qualifier)
}

// #endregion symbols

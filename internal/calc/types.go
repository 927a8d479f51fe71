package calc

// #region result
// Result is a successful evaluation. Expression is the input after
// sanitizing (or the function label for scientific keys), Display is the
// formatted value shown to the user.
type Result struct {
	Expression string
	Value      float64
	Display    string
}

// #endregion result

// #region func
// Func is a single-operand scientific key.
type Func int

const (
	Sin Func = iota + 1
	Cos
	Tan
	Log
	Ln
	Sqrt
	Square
	Pi
	E
)

// funcNames are the key identifiers accepted by ParseFunc.
var funcNames = map[string]Func{
	"sin":  Sin,
	"cos":  Cos,
	"tan":  Tan,
	"log":  Log,
	"ln":   Ln,
	"sqrt": Sqrt,
	"pow2": Square,
	"pi":   Pi,
	"e":    E,
}

func (f Func) String() string {
	for name, fn := range funcNames {
		if fn == f {
			return name
		}
	}
	return "unknown"
}

// #endregion func

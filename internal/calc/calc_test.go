package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/sigma-calc/internal/expr"
)

// #region sanitize-tests
func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"12+7":               "12+7",
		"alert(1)":           "(1)",
		"2 * (3 + 4)":        "2*(3+4)",
		"Math.pow(2,3)":      ".(23)",
		"1e3":                "13",
		"x = 5; 4/2":         "54/2",
		"constructor('x')()": "()()",
		"½":                  "",
		"-0.5%":              "-0.5%",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "Sanitize(%q)", in)
	}
}

// #endregion sanitize-tests

// #region evaluate-tests
func TestEvaluate_Values(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2+2", "4"},
		{"10/4", "2.5"},
		{"1/3", "0.333333"},
		{"12+7", "19"},
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"-5+2", "-3"},
		{"0.1+0.2", "0.3"},
		{"50%", "0.5"},
		{"200*15%", "30"},
		{"7-10", "-3"},
		{"2/3", "0.666667"},
		{"3*(4-(2+1))", "3"},
		{"1 000 + 1", "1001"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			res, err := Evaluate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Display)
		})
	}
}

func TestEvaluate_Result(t *testing.T) {
	res, err := Evaluate("1 / 4 apples")
	require.NoError(t, err)
	assert.Equal(t, "1/4", res.Expression)
	assert.Equal(t, 0.25, res.Value)
	assert.Equal(t, "0.25", res.Display)
}

func TestEvaluate_Invalid(t *testing.T) {
	for _, in := range []string{"5/0", "-5/0", "0/0", "1/(2-2)"} {
		t.Run(in, func(t *testing.T) {
			_, err := Evaluate(in)
			require.ErrorIs(t, err, expr.ErrInvalid)
			assert.NotErrorIs(t, err, expr.ErrSyntax)
		})
	}
}

func TestEvaluate_Syntax(t *testing.T) {
	for _, in := range []string{"2++", "12++", "(()", "", "abc", "3*", "1..2", "()", "7%3"} {
		t.Run(in, func(t *testing.T) {
			_, err := Evaluate(in)
			require.ErrorIs(t, err, expr.ErrSyntax)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	a, errA := Evaluate("22/7")
	b, errB := Evaluate("22/7")
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

// #endregion evaluate-tests

// #region scientific-tests
func TestApply(t *testing.T) {
	cases := []struct {
		fn      Func
		operand string
		label   string
		display string
	}{
		{Sin, "0", "sin(0)", "0"},
		{Cos, "0", "cos(0)", "1"},
		{Tan, "0", "tan(0)", "0"},
		{Log, "1000", "log(1000)", "3"},
		{Ln, "1", "ln(1)", "0"},
		{Sqrt, "9", "√(9)", "3"},
		{Square, "1.5", "(1.5)²", "2.25"},
		{Pi, "whatever", "π", "3.14159265"},
		{E, "", "e", "2.71828183"},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			res, err := Apply(tc.fn, tc.operand)
			require.NoError(t, err)
			assert.Equal(t, tc.label, res.Expression)
			assert.Equal(t, tc.display, res.Display)
		})
	}
}

func TestApply_Failures(t *testing.T) {
	_, err := Apply(Sqrt, "-4")
	require.ErrorIs(t, err, expr.ErrInvalid)

	_, err = Apply(Ln, "0")
	require.ErrorIs(t, err, expr.ErrInvalid)

	_, err = Apply(Sin, "Error")
	require.ErrorIs(t, err, expr.ErrSyntax)

	_, err = Apply(Func(99), "1")
	require.ErrorIs(t, err, expr.ErrUnknownSymbol)
}

func TestParseFunc(t *testing.T) {
	f, err := ParseFunc(" SIN ")
	require.NoError(t, err)
	assert.Equal(t, Sin, f)
	assert.Equal(t, "pow2", Square.String())

	_, err = ParseFunc("cosh")
	require.ErrorIs(t, err, expr.ErrUnknownSymbol)
}

func TestApply_ValueMatchesMath(t *testing.T) {
	res, err := Apply(Sin, "1")
	require.NoError(t, err)
	assert.Equal(t, math.Sin(1), res.Value)
	assert.Equal(t, "0.84147098", res.Display)
}

// #endregion scientific-tests

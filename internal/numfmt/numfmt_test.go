package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{2.5, "2.5"},
		{1.0 / 3, "0.333333"},
		{2.0 / 3, "0.666667"},
		{-7, "-7"},
		{math.Copysign(0, -1), "0"},
		{0.1 + 0.2, "0.3"},
		{1e-7, "0"},
		{-1e-7, "0"},
		{123456789, "123456789"},
		{1e21, "1000000000000000000000"},
		{-0.125, "-0.125"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatResult(tc.in), "FormatResult(%v)", tc.in)
	}
}

func TestFormatScientific(t *testing.T) {
	assert.Equal(t, "0.5", FormatScientific(math.Sin(math.Pi/6)))
	assert.Equal(t, "3.14159265", FormatScientific(math.Pi))
	assert.Equal(t, "100", FormatScientific(100))
	assert.Equal(t, "0", FormatScientific(math.Cos(math.Pi/2)))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.33, Round(1.0/3, 2))
	assert.Equal(t, 0.6667, Round(2.0/3, 4))
	assert.Equal(t, -1.5, Round(-1.4999999, 4))
	assert.Equal(t, 2.0, Round(1.999999999, 2))

	z := Round(-0.0001, 2)
	assert.Equal(t, 0.0, z)
	assert.False(t, math.Signbit(z))
}

func TestPredicates(t *testing.T) {
	assert.True(t, Finite(1))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))

	assert.True(t, IsInteger(-3))
	assert.False(t, IsInteger(3.5))
	assert.False(t, IsInteger(math.Inf(1)))
}

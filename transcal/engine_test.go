package transcal

import (
	"testing"

	"github.com/njchilds90/gosymbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLinear2Numeric(t *testing.T) {
	eng := DefaultEngine()

	// 2x + y = 5, x - y = 1
	x, y, err := eng.SolveLinear2(
		gosymbol.N(2), gosymbol.N(1), gosymbol.N(5),
		gosymbol.N(1), gosymbol.N(-1), gosymbol.N(1),
	)
	require.NoError(t, err)

	xv, ok := AsFloat(x)
	require.True(t, ok)
	yv, ok := AsFloat(y)
	require.True(t, ok)
	assert.InDelta(t, 2.0, xv, 1e-12)
	assert.InDelta(t, 1.0, yv, 1e-12)
}

func TestSolveLinear2Symbolic(t *testing.T) {
	eng := DefaultEngine()

	// x + y = s, x - y = 0  =>  x = y = s/2
	x, y, err := eng.SolveLinear2(
		gosymbol.N(1), gosymbol.N(1), Symbol("s"),
		gosymbol.N(1), gosymbol.N(-1), gosymbol.N(0),
	)
	require.NoError(t, err)

	xv, ok := AsFloat(gosymbol.Sub(x, "s", Value(4.0)))
	require.True(t, ok)
	yv, ok := AsFloat(gosymbol.Sub(y, "s", Value(4.0)))
	require.True(t, ok)
	assert.InDelta(t, 2.0, xv, 1e-12)
	assert.InDelta(t, 2.0, yv, 1e-12)
}

func TestSolveLinear2Singular(t *testing.T) {
	eng := DefaultEngine()

	// 数値経路: 特異な係数行列
	_, _, err := eng.SolveLinear2(
		gosymbol.N(1), gosymbol.N(1), gosymbol.N(1),
		gosymbol.N(2), gosymbol.N(2), gosymbol.N(2),
	)
	assert.ErrorIs(t, err, ErrSolveFailure)

	// 記号経路: 右辺が記号でも行列式が 0 なら解けない
	_, _, err = eng.SolveLinear2(
		gosymbol.N(1), gosymbol.N(1), Symbol("s"),
		gosymbol.N(2), gosymbol.N(2), gosymbol.N(4),
	)
	assert.ErrorIs(t, err, ErrSolveFailure)
}

func TestEngineDiffAndSubst(t *testing.T) {
	eng := DefaultEngine()

	// d/dx x^2 = 2x
	d := eng.Diff(gosymbol.PowOf(gosymbol.S("x"), gosymbol.N(2)), "x")
	v, ok := AsFloat(eng.Subst(d, "x", Value(3.0)))
	require.True(t, ok)
	assert.InDelta(t, 6.0, v, 1e-12)
}

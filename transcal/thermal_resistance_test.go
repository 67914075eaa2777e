package transcal

import (
	"math"
	"testing"

	"github.com/njchilds90/gosymbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convectionElement(h, area float64) *ResistanceElement {
	return &ResistanceElement{
		Mode:                ModeConvection,
		CharacteristicValue: Value(area),
		Coefficient:         Value(h),
	}
}

func cylinderElement(k, rInner, rOuter, length, angle float64) *ResistanceElement {
	return &ResistanceElement{
		Mode:                ModeConduction,
		Geometry:            GeometryCylindrical,
		CharacteristicValue: Value(k),
		GeometryParams: map[string]gosymbol.Expr{
			"r_inner": Value(rInner),
			"r_outer": Value(rOuter),
			"length":  Value(length),
			"angle":   Value(angle),
		},
	}
}

func TestEvaluateConvection(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("surface", convectionElement(50.0, math.Pi*0.8))

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	v, ok := AsFloat(values["surface"])
	require.True(t, ok)
	assert.InDelta(t, 1.0/(50.0*math.Pi*0.8), v, 1e-12)
	assert.InDelta(t, 0.00796, v, 1e-5)
}

func TestEvaluateRadiation(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("rad", &ResistanceElement{
		Mode:                ModeRadiation,
		CharacteristicValue: Value(2.0),
		Coefficient:         Value(5.5),
	})

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	v, ok := AsFloat(values["rad"])
	require.True(t, ok)
	assert.InDelta(t, 1.0/(5.5*2.0), v, 1e-12)
}

func TestEvaluateCylindricalConduction(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("insulation", cylinderElement(0.03, 0.20, 0.23, 2.0, 2.0*math.Pi))

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	v, ok := AsFloat(values["insulation"])
	require.True(t, ok)
	assert.InDelta(t, math.Log(0.23/0.20)/(2.0*math.Pi*0.03*2.0), v, 1e-12)
	assert.InDelta(t, 0.3707, v, 1e-3)
	assert.Greater(t, v, 0.0)
}

func TestEvaluatePlanarConduction(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("wall", &ResistanceElement{
		Mode:                ModeConduction,
		Geometry:            GeometryPlanar,
		CharacteristicValue: Value(2.0), // k
		GeometryParams: map[string]gosymbol.Expr{
			"thickness": Value(0.1),
			"area":      Value(4.0),
		},
	})

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	v, ok := AsFloat(values["wall"])
	require.True(t, ok)
	assert.InDelta(t, 0.1/(2.0*4.0), v, 1e-12)
}

func TestEvaluateSphericalConduction(t *testing.T) {
	shell := func(params map[string]gosymbol.Expr) *ResistanceElement {
		return &ResistanceElement{
			Mode:                ModeConduction,
			Geometry:            GeometrySpherical,
			CharacteristicValue: Value(0.5),
			GeometryParams:      params,
		}
	}

	nw := NewResistanceNetwork()
	// solid_angle 省略時は全球 4π
	nw.Add("default_angle", shell(map[string]gosymbol.Expr{
		"r_inner": Value(0.1),
		"r_outer": Value(0.2),
	}))
	nw.Add("explicit_angle", shell(map[string]gosymbol.Expr{
		"r_inner":     Value(0.1),
		"r_outer":     Value(0.2),
		"solid_angle": Value(4.0 * math.Pi),
	}))

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	expected := (1.0/0.1 - 1.0/0.2) / (4.0 * math.Pi * 0.5)

	v, ok := AsFloat(values["default_angle"])
	require.True(t, ok)
	assert.InDelta(t, expected, v, 1e-12)

	v2, ok := AsFloat(values["explicit_angle"])
	require.True(t, ok)
	assert.InDelta(t, expected, v2, 1e-12)
}

// 熱伝導率を c 倍すると伝導抵抗は 1/c 倍、
// 熱伝達率を c 倍すると対流抵抗は 1/c 倍になる。
func TestResistanceScaling(t *testing.T) {
	c := 3.7

	nw := NewResistanceNetwork()
	nw.Add("cond", cylinderElement(0.03, 0.20, 0.23, 2.0, 2.0*math.Pi))
	nw.Add("cond_scaled", cylinderElement(0.03*c, 0.20, 0.23, 2.0, 2.0*math.Pi))
	nw.Add("conv", convectionElement(50.0, 2.0))
	nw.Add("conv_scaled", convectionElement(50.0*c, 2.0))

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	rCond, _ := AsFloat(values["cond"])
	rCondScaled, _ := AsFloat(values["cond_scaled"])
	assert.InEpsilon(t, rCond/c, rCondScaled, 1e-9)

	rConv, _ := AsFloat(values["conv"])
	rConvScaled, _ := AsFloat(values["conv_scaled"])
	assert.InEpsilon(t, rConv/c, rConvScaled, 1e-9)
}

func TestEvaluateUnknownMode(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("weird", &ResistanceElement{
		Mode:                Mode("advection"),
		CharacteristicValue: Value(1.0),
	})

	values, err := nw.Evaluate(true)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
	assert.ErrorContains(t, err, "weird")
	assert.Nil(t, values)
}

func TestEvaluateUnknownGeometry(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("no_geometry", &ResistanceElement{
		Mode:                ModeConduction,
		Geometry:            GeometryNone,
		CharacteristicValue: Value(1.0),
	})

	values, err := nw.Evaluate(true)
	assert.ErrorIs(t, err, ErrUnsupportedConfiguration)
	assert.ErrorContains(t, err, "no_geometry")
	assert.Nil(t, values)
}

// 必須の幾何パラメータの欠落はエラー。既定値で補わない。
// 不正要素が1つでもあれば部分的な結果は返さない。
func TestEvaluateMissingParameterFailsFast(t *testing.T) {
	noAngle := cylinderElement(0.03, 0.20, 0.23, 2.0, 2.0*math.Pi)
	delete(noAngle.GeometryParams, "angle")

	nw := NewResistanceNetwork()
	nw.Add("broken_pipe", noAngle)
	nw.Add("fine_surface", convectionElement(50.0, 2.0))

	values, err := nw.Evaluate(true)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.ErrorContains(t, err, "broken_pipe")
	assert.ErrorContains(t, err, "angle")
	assert.Nil(t, values)
}

// 記号値を含む要素は記号式のまま返り、後から代入できる。
func TestEvaluateSymbolic(t *testing.T) {
	e := cylinderElement(0.0, 0.20, 0.23, 2.0, 2.0*math.Pi)
	e.CharacteristicValue = Symbol("k")

	nw := NewResistanceNetwork()
	nw.Add("pipe", e)

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	r := values["pipe"]
	_, ok := AsFloat(r)
	assert.False(t, ok)

	syms := gosymbol.FreeSymbols(r)
	_, hasK := syms["k"]
	assert.True(t, hasK)

	v, ok := AsFloat(gosymbol.Sub(r, "k", Value(0.03)))
	require.True(t, ok)
	assert.InDelta(t, math.Log(0.23/0.20)/(2.0*math.Pi*0.03*2.0), v, 1e-12)
}

// suppress は表示のみに影響し、戻り値は変わらない。
func TestSuppressDoesNotChangeValues(t *testing.T) {
	build := func() *ResistanceNetwork {
		nw := NewResistanceNetwork()
		nw.Add("surface", convectionElement(50.0, math.Pi*0.8))
		nw.Add("pipe", cylinderElement(0.03, 0.20, 0.23, 2.0, 2.0*math.Pi))
		return nw
	}

	quiet, err := build().Evaluate(true)
	require.NoError(t, err)
	loud, err := build().Evaluate(false)
	require.NoError(t, err)

	require.Len(t, loud, len(quiet))
	for name, v := range quiet {
		a, ok := AsFloat(v)
		require.True(t, ok)
		b, ok := AsFloat(loud[name])
		require.True(t, ok)
		assert.Equal(t, a, b)
	}
}

func TestNamesKeepInsertionOrder(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("c", convectionElement(1.0, 1.0))
	nw.Add("a", convectionElement(2.0, 1.0))
	nw.Add("b", convectionElement(3.0, 1.0))

	assert.Equal(t, []string{"c", "a", "b"}, nw.Names())
}

// 既存の名前の再追加は位置を保ったまま要素を置き換える。
func TestAddReplacesInPlace(t *testing.T) {
	nw := NewResistanceNetwork()
	nw.Add("first", convectionElement(1.0, 1.0))
	nw.Add("second", convectionElement(2.0, 1.0))
	nw.Add("first", convectionElement(4.0, 1.0))

	assert.Equal(t, []string{"first", "second"}, nw.Names())

	values, err := nw.Evaluate(true)
	require.NoError(t, err)

	v, ok := AsFloat(values["first"])
	require.True(t, ok)
	assert.InDelta(t, 0.25, v, 1e-12)
}

package transcal

import (
	"fmt"

	"github.com/njchilds90/gosymbol"
	"gonum.org/v1/gonum/floats"
)

// フィンの境界条件（先端条件）の種別
type BoundaryCondition string

const (
	// 無限長フィン: x -> ∞ で θ -> 0
	BoundaryConditionInfinitelyLongFin BoundaryCondition = "infinitely_long_fin"

	// 断熱先端: θ'(L) = 0
	BoundaryConditionAdiabaticTip BoundaryCondition = "adiabatic_tip"

	// 対流先端: -k θ'(L) = h θ(L)
	BoundaryConditionConvectiveTip BoundaryCondition = "convective_tip"

	// 先端温度既知: θ(L) = T_tip - T_env（tipTemperature の指定が必須）
	BoundaryConditionPrescribedTipTemperature BoundaryCondition = "prescribed_tip_temperature"
)

// フィンの物性値
type FinParameters struct {
	K     gosymbol.Expr // フィンの熱伝導率, W/mK
	H     gosymbol.Expr // 対流熱伝達率, W/m2K
	TBase gosymbol.Expr // フィン根元の温度, K または degree C
	TEnv  gosymbol.Expr // 周囲流体の温度, K または degree C
}

// フィンの形状
type FinGeometry struct {
	CrossArea gosymbol.Expr // 断面積, m2
	Perimeter gosymbol.Expr // 断面の周長, m
	Length    gosymbol.Expr // フィン長さ, m
}

/*
1次元温度分布のフィンモデル。

	温度分布を1次元で近似する。近似誤差が十分小さいかどうかの
	検証は行わないことに注意。

	支配方程式は θ'' - m^2 θ = 0（θ = T - T_env）で、一般解
	C1 exp(m x) + C2 exp(-m x) の定数を境界条件ごとの連立一次
	方程式から決定する。Solve を呼ぶたびに解 θ は置き換えられる。
	変数名 x, C1, C2 は内部で予約されている。
*/
type FinModel struct {
	physics  FinParameters
	geometry FinGeometry
	engine   Engine

	m     gosymbol.Expr // フィンパラメータ m = sqrt(h P / (k A)), 1/m
	theta gosymbol.Expr // 温度差 θ(x)。Solve 前は nil
}

/*
フィンモデルを作成する。

	Args:
		physics: 物性値
		geometry: 形状

	Returns:
		フィンモデル。数値の幾何量が 0 以下の場合は ErrInvalidGeometry
		（記号値は検査せず信頼する）。
*/
func NewFinModel(physics FinParameters, geometry FinGeometry) (*FinModel, error) {
	return NewFinModelWithEngine(physics, geometry, DefaultEngine())
}

// 記号計算エンジンを差し替えてフィンモデルを作成する。
func NewFinModelWithEngine(physics FinParameters, geometry FinGeometry, engine Engine) (*FinModel, error) {
	for name, e := range map[string]gosymbol.Expr{
		"k": physics.K, "h": physics.H, "T_base": physics.TBase, "T_env": physics.TEnv,
	} {
		if e == nil {
			return nil, fmt.Errorf("%w: fin physics value %q is not set", ErrMissingParameter, name)
		}
	}

	for _, g := range []struct {
		name  string
		value gosymbol.Expr
	}{
		{"cross_area", geometry.CrossArea},
		{"perimeter", geometry.Perimeter},
		{"length", geometry.Length},
	} {
		if g.value == nil {
			return nil, fmt.Errorf("%w: fin geometry value %q is not set", ErrMissingParameter, g.name)
		}
		if v, ok := AsFloat(g.value); ok && v <= 0.0 {
			return nil, fmt.Errorf("%w: fin geometry value %q must be positive, got %v", ErrInvalidGeometry, g.name, v)
		}
	}

	// m = sqrt(h P / (k A))
	m := gosymbol.SqrtOf(div(
		gosymbol.MulOf(physics.H, geometry.Perimeter),
		gosymbol.MulOf(physics.K, geometry.CrossArea),
	))
	// 数値に評価できる場合は畳み込んでおく
	if n, ok := m.Eval(); ok {
		m = n
	}

	return &FinModel{
		physics:  physics,
		geometry: geometry,
		engine:   engine,
		m:        m,
	}, nil
}

// フィンパラメータ m, 1/m
func (f *FinModel) M() gosymbol.Expr {
	return f.m
}

/*
フィンの微分方程式を解き、温度差 θ(x) を求めて保持する。

	一般解の定数 C1, C2 は、根元条件 θ(0) = T_base - T_env と
	境界条件ごとの先端条件からなる連立一次方程式で決定する。
	k, h, T_base, T_env, length は記号のままでもよい。

	Args:
		bc: 境界条件の種別
		tipTemperature: 先端温度。prescribed_tip_temperature のときのみ必須。
		                それ以外の境界条件では nil を渡す。
*/
func (f *FinModel) Solve(bc BoundaryCondition, tipTemperature gosymbol.Expr) error {
	x := gosymbol.S("x")

	// θ(0) = T_base - T_env
	theta0 := f.engine.Simplify(gosymbol.AddOf(f.physics.TBase, neg(f.physics.TEnv)))

	// 一般解 C1 exp(m x) + C2 exp(-m x)
	general := gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.S("C1"), gosymbol.ExpOf(gosymbol.MulOf(f.m, x))),
		gosymbol.MulOf(gosymbol.S("C2"), gosymbol.ExpOf(gosymbol.MulOf(gosymbol.N(-1), f.m, x))),
	)

	if bc == BoundaryConditionInfinitelyLongFin {
		// 有界性より C1 = 0。根元条件だけで C2 が決まる。
		bounded := f.engine.Subst(general, "C1", gosymbol.N(0))
		atBase := f.engine.Subst(bounded, "x", gosymbol.N(0))
		coef := f.engine.Subst(atBase, "C2", gosymbol.N(1))
		c2 := f.engine.Simplify(div(theta0, coef))
		f.theta = f.engine.Simplify(f.engine.Subst(bounded, "C2", c2))
		return nil
	}

	// 根元条件: θ(0) = θ0
	a1, b1 := f.constantCoeffs(f.engine.Subst(general, "x", gosymbol.N(0)))
	c1 := theta0

	// 先端条件
	var a2, b2, c2 gosymbol.Expr
	length := f.geometry.Length

	switch bc {

	case BoundaryConditionAdiabaticTip:
		// θ'(L) = 0
		dTip := f.engine.Subst(f.engine.Diff(general, "x"), "x", length)
		a2, b2 = f.constantCoeffs(dTip)
		c2 = gosymbol.N(0)

	case BoundaryConditionConvectiveTip:
		// k θ'(L) + h θ(L) = 0
		dTip := f.engine.Subst(f.engine.Diff(general, "x"), "x", length)
		tip := f.engine.Subst(general, "x", length)
		balance := gosymbol.AddOf(
			gosymbol.MulOf(f.physics.K, dTip),
			gosymbol.MulOf(f.physics.H, tip),
		)
		a2, b2 = f.constantCoeffs(balance)
		c2 = gosymbol.N(0)

	case BoundaryConditionPrescribedTipTemperature:
		// θ(L) = T_tip - T_env
		if tipTemperature == nil {
			return fmt.Errorf("%w: boundary condition %q requires a tip temperature", ErrMissingParameter, bc)
		}
		tip := f.engine.Subst(general, "x", length)
		a2, b2 = f.constantCoeffs(tip)
		c2 = f.engine.Simplify(gosymbol.AddOf(tipTemperature, neg(f.physics.TEnv)))

	default:
		return fmt.Errorf("%w: unknown boundary condition %q", ErrUnsupportedConfiguration, bc)
	}

	cc1, cc2, err := f.engine.SolveLinear2(a1, b1, c1, a2, b2, c2)
	if err != nil {
		return err
	}

	f.theta = f.engine.Simplify(f.engine.Subst(f.engine.Subst(general, "C1", cc1), "C2", cc2))
	return nil
}

// C1, C2 について線形な式から各係数を取り出す。
// （(C1, C2) = (1, 0), (0, 1) の代入で得る。定数項はない。）
func (f *FinModel) constantCoeffs(e gosymbol.Expr) (gosymbol.Expr, gosymbol.Expr) {
	a := f.engine.Subst(f.engine.Subst(e, "C1", gosymbol.N(1)), "C2", gosymbol.N(0))
	b := f.engine.Subst(f.engine.Subst(e, "C1", gosymbol.N(0)), "C2", gosymbol.N(1))
	return a, b
}

/*
位置 position の熱移動量を計算する。

	q(x) = -k A θ'(x)

	position が [0, L] の外でも評価は行う（外挿として扱うのは
	呼び出し側の責任）。

	Args:
		position: 位置, m

	Returns:
		熱移動量, W（数値または記号式）。Solve 前は ErrNotSolved。
*/
func (f *FinModel) GetHeatTransfer(position gosymbol.Expr) (gosymbol.Expr, error) {
	if f.theta == nil {
		return nil, fmt.Errorf("%w: call Solve before GetHeatTransfer", ErrNotSolved)
	}
	if position == nil {
		return nil, fmt.Errorf("%w: position is not set", ErrMissingParameter)
	}

	grad := f.engine.Subst(f.engine.Diff(f.theta, "x"), "x", position)
	q := gosymbol.MulOf(gosymbol.N(-1), f.physics.K, f.geometry.CrossArea, grad)
	return f.engine.Simplify(q), nil
}

/*
位置 position の温度を計算する。

	T(x) = T_env + θ(x)

	Args:
		position: 位置, m

	Returns:
		温度, K または degree C（T_base, T_env の単位に従う）。
		Solve 前は ErrNotSolved。
*/
func (f *FinModel) GetTemperature(position gosymbol.Expr) (gosymbol.Expr, error) {
	if f.theta == nil {
		return nil, fmt.Errorf("%w: call Solve before GetTemperature", ErrNotSolved)
	}
	if position == nil {
		return nil, fmt.Errorf("%w: position is not set", ErrMissingParameter)
	}

	t := gosymbol.AddOf(f.physics.TEnv, f.engine.Subst(f.theta, "x", position))
	return f.engine.Simplify(t), nil
}

/*
フィンに沿った温度分布を数値でサンプリングする。

	[0, L] を等間隔の n 点に分割し、各点の温度を返す。
	全パラメータが数値に評価できる場合にのみ使用できる。

	Args:
		n: サンプル点数（2 以上）

	Returns:
		以下のタプル
			(1) 位置, m, [n]
			(2) 温度, [n]
*/
func (f *FinModel) TemperatureProfile(n int) ([]float64, []float64, error) {
	if f.theta == nil {
		return nil, nil, fmt.Errorf("%w: call Solve before TemperatureProfile", ErrNotSolved)
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("transcal: temperature profile requires at least 2 sample points, got %d", n)
	}

	length, ok := AsFloat(f.geometry.Length)
	if !ok {
		return nil, nil, fmt.Errorf("%w: fin length does not evaluate to a number", ErrSolveFailure)
	}

	xs := make([]float64, n)
	floats.Span(xs, 0.0, length)

	temps := make([]float64, n)
	for i, xv := range xs {
		t, err := f.GetTemperature(gosymbol.NFloat(xv))
		if err != nil {
			return nil, nil, err
		}
		v, ok := AsFloat(t)
		if !ok {
			return nil, nil, fmt.Errorf("%w: temperature at x=%v does not evaluate to a number (free symbols remain)", ErrSolveFailure, xv)
		}
		temps[i] = v
	}

	return xs, temps, nil
}

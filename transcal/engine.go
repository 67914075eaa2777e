package transcal

import (
	"fmt"

	"github.com/njchilds90/gosymbol"
	"gonum.org/v1/gonum/mat"
)

// Engine は記号計算エンジンのインターフェース。
// FinModel はこのインターフェースのみに依存し、
// エンジンの実装（記号／数値）を差し替えられる。
type Engine interface {
	// 式 e を変数 name で微分する。
	Diff(e gosymbol.Expr, name string) gosymbol.Expr

	// 式 e の変数 name に値 value を代入して整理する。
	Subst(e gosymbol.Expr, name string, value gosymbol.Expr) gosymbol.Expr

	// 式 e を整理する。
	Simplify(e gosymbol.Expr) gosymbol.Expr

	// 連立一次方程式
	//   a1*x + b1*y = c1
	//   a2*x + b2*y = c2
	// を未知数 x, y について解く。
	SolveLinear2(a1, b1, c1, a2, b2, c2 gosymbol.Expr) (x gosymbol.Expr, y gosymbol.Expr, err error)
}

// 既定のエンジン。記号演算は gosymbol、
// 係数がすべて数値の場合の求解は gonum で行う。
type symbolicEngine struct{}

func DefaultEngine() Engine {
	return symbolicEngine{}
}

func (symbolicEngine) Diff(e gosymbol.Expr, name string) gosymbol.Expr {
	return gosymbol.Diff(e, name)
}

func (symbolicEngine) Subst(e gosymbol.Expr, name string, value gosymbol.Expr) gosymbol.Expr {
	return gosymbol.Sub(e, name, value).Simplify()
}

func (symbolicEngine) Simplify(e gosymbol.Expr) gosymbol.Expr {
	return e.Simplify()
}

/*
連立一次方程式を解く。

	係数がすべて数値に評価できる場合は 2x2 の行列方程式として解き、
	記号を含む場合はクラメルの公式で閉形式解を構成する。
	行列式が 0 に評価される場合は ErrSolveFailure を返す。
	行列式が記号のまま残る場合は非零とみなす（呼び出し側の責任）。
*/
func (symbolicEngine) SolveLinear2(a1, b1, c1, a2, b2, c2 gosymbol.Expr) (gosymbol.Expr, gosymbol.Expr, error) {
	coeffs := []gosymbol.Expr{a1, b1, c1, a2, b2, c2}
	vals := make([]float64, len(coeffs))
	numeric := true
	for i, e := range coeffs {
		n, ok := e.Eval()
		if !ok {
			numeric = false
			break
		}
		vals[i] = n.Float64()
	}

	if numeric {
		ma := mat.NewDense(2, 2, []float64{vals[0], vals[1], vals[3], vals[4]})
		mb := mat.NewVecDense(2, []float64{vals[2], vals[5]})
		var v mat.VecDense
		if err := v.SolveVec(ma, mb); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrSolveFailure, err)
		}
		return gosymbol.NFloat(v.AtVec(0)), gosymbol.NFloat(v.AtVec(1)), nil
	}

	// クラメルの公式
	det := gosymbol.AddOf(gosymbol.MulOf(a1, b2), neg(gosymbol.MulOf(a2, b1))).Simplify()
	if dn, ok := det.Eval(); ok && dn.IsZero() {
		return nil, nil, fmt.Errorf("%w: singular 2x2 system", ErrSolveFailure)
	}
	dx := gosymbol.AddOf(gosymbol.MulOf(c1, b2), neg(gosymbol.MulOf(c2, b1)))
	dy := gosymbol.AddOf(gosymbol.MulOf(a1, c2), neg(gosymbol.MulOf(a2, c1)))
	return div(dx, det).Simplify(), div(dy, det).Simplify(), nil
}

package transcal

import (
	"github.com/njchilds90/gosymbol"
)

// 本パッケージのスカラー値は数値・記号のどちらでもよく、
// すべて gosymbol.Expr として扱う。
// 変数名 x, C1, C2 はフィンの解法で予約されているため、
// 呼び出し側の自由記号には使用しないこと。

/*
数値スカラーを生成する。

	Args:
		v: 数値

	Returns:
		数値スカラー
*/
func Value(v float64) gosymbol.Expr {
	return gosymbol.NFloat(v)
}

/*
記号スカラーを生成する。

	Args:
		name: 記号名

	Returns:
		記号スカラー
*/
func Symbol(name string) gosymbol.Expr {
	return gosymbol.S(name)
}

/*
スカラーを数値として評価する。

	Args:
		e: スカラー

	Returns:
		以下のタプル
			(1) 数値
			(2) 数値として評価できたか否か
*/
func AsFloat(e gosymbol.Expr) (float64, bool) {
	n, ok := e.Eval()
	if !ok {
		return 0.0, false
	}
	return n.Float64(), true
}

// a / b
func div(a, b gosymbol.Expr) gosymbol.Expr {
	return gosymbol.MulOf(a, gosymbol.PowOf(b, gosymbol.N(-1)))
}

// -a
func neg(a gosymbol.Expr) gosymbol.Expr {
	return gosymbol.MulOf(gosymbol.N(-1), a)
}

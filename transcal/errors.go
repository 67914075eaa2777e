package transcal

import "errors"

// 評価・求解時のエラー種別。
// いずれも同期的に呼び出し側へ返す（内部リトライなし）。
var (
	// ErrUnsupportedConfiguration は (mode, geometry) の組み合わせ、
	// または境界条件に対応する式が存在しないことを示す。
	ErrUnsupportedConfiguration = errors.New("transcal: unsupported configuration")

	// ErrMissingParameter は必須の補助値（幾何パラメータ、先端温度）が
	// 与えられていないことを示す。
	ErrMissingParameter = errors.New("transcal: missing parameter")

	// ErrInvalidGeometry は数値の幾何量が 0 以下であることを示す。
	ErrInvalidGeometry = errors.New("transcal: invalid geometry")

	// ErrNotSolved は Solve 前に温度・熱移動量を取得しようとしたことを示す。
	ErrNotSolved = errors.New("transcal: not solved")

	// ErrSolveFailure は連立方程式が閉形式で解けないことを示す。
	ErrSolveFailure = errors.New("transcal: solve failure")
)

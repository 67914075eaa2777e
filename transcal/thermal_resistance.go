package transcal

import (
	"fmt"
	"math"

	"github.com/njchilds90/gosymbol"
)

// 熱移動のモード
type Mode string

const (
	ModeConduction Mode = "conduction" // 熱伝導
	ModeConvection Mode = "convection" // 対流熱伝達
	ModeRadiation  Mode = "radiation"  // 放射熱伝達（線形化）
)

// 熱伝導要素の形状
type Geometry string

const (
	GeometryNone        Geometry = ""                   // 対流・放射では未使用
	GeometryPlanar      Geometry = "planar"             // 平板
	GeometryCylindrical Geometry = "cylindrical_radial" // 円筒（半径方向）
	GeometrySpherical   Geometry = "spherical_radial"   // 球殻（半径方向）
)

/*
熱抵抗ネットワークの一要素。

	CharacteristicValue の意味はモードに依存する。
	- 対流・放射: 表面積, m2
	- 熱伝導:     熱伝導率 k, W/mK（全形状で共通の約束とする）

	Coefficient
	- 対流: 対流熱伝達率 h, W/m2K
	- 放射: 線形化した放射熱伝達率, W/m2K
	- 熱伝導: 未使用

	GeometryParams（(mode, geometry) の組み合わせごとの必須キー。欠落はエラー）
	- 平板:  thickness（厚さ, m）, area（伝熱面積, m2）
	- 円筒:  r_inner, r_outer（内外半径, m）, length（長さ, m）, angle（角度, rad。閉じた円筒は 2π）
	- 球殻:  r_inner, r_outer（内外半径, m）, solid_angle（立体角, sr。省略時は 4π）
*/
type ResistanceElement struct {
	Mode                Mode
	Geometry            Geometry
	CharacteristicValue gosymbol.Expr
	Coefficient         gosymbol.Expr
	GeometryParams      map[string]gosymbol.Expr
}

// 要素名 -> 要素の順序付き集合。
// 挿入順は表示のためにのみ保持する（要素間に依存はなく評価順は任意）。
type ResistanceNetwork struct {
	names    []string
	elements map[string]*ResistanceElement
}

func NewResistanceNetwork() *ResistanceNetwork {
	return &ResistanceNetwork{
		names:    make([]string, 0),
		elements: make(map[string]*ResistanceElement),
	}
}

/*
要素を追加する。

	既存の名前を再追加した場合は位置を保ったまま要素を置き換える
	（OrderedDict と同じ扱い）。

	Args:
		name: 要素名（ネットワーク内で一意）
		element: 要素
*/
func (nw *ResistanceNetwork) Add(name string, element *ResistanceElement) {
	if _, ok := nw.elements[name]; !ok {
		nw.names = append(nw.names, name)
	}
	nw.elements[name] = element
}

// 挿入順の要素名リストを返す。
func (nw *ResistanceNetwork) Names() []string {
	names := make([]string, len(nw.names))
	copy(names, nw.names)
	return names
}

/*
各要素の熱抵抗を計算する。

	最初の不正な要素でエラーを返し、部分的な結果は返さない
	（不正要素を黙って読み飛ばすと下流の合算が壊れるため）。
	本関数は抵抗の合成は行わない。直列合成は呼び出し側が値を合算する。

	Args:
		suppress: true の場合、要素ごとのサマリ表示を抑制する。
		          表示のみに影響し、戻り値には一切影響しない。

	Returns:
		要素名 -> 熱抵抗, K/W（数値または記号式）。表示順は Names() に従う。
*/
func (nw *ResistanceNetwork) Evaluate(suppress bool) (map[string]gosymbol.Expr, error) {
	values := make(map[string]gosymbol.Expr, len(nw.names))

	for _, name := range nw.names {
		r, err := evaluateElement(name, nw.elements[name])
		if err != nil {
			return nil, err
		}
		values[name] = r

		if !suppress {
			if v, ok := AsFloat(r); ok {
				fmt.Printf("%s: R = %.6f [K/W]\n", name, v)
			} else {
				fmt.Printf("%s: R = %s [K/W]\n", name, r.String())
			}
		}
	}

	return values, nil
}

/*
一要素の熱抵抗を計算する。

	Args:
		name: 要素名（エラーメッセージ用）
		e: 要素

	Returns:
		熱抵抗, K/W
*/
func evaluateElement(name string, e *ResistanceElement) (gosymbol.Expr, error) {
	if e.CharacteristicValue == nil {
		return nil, fmt.Errorf("%w: element %q has no characteristic_value", ErrMissingParameter, name)
	}

	switch e.Mode {

	case ModeConvection:
		// 対流: R = 1 / (h * 表面積)
		if e.Coefficient == nil {
			return nil, fmt.Errorf("%w: element %q has no coefficient", ErrMissingParameter, name)
		}
		return div(gosymbol.N(1), gosymbol.MulOf(e.Coefficient, e.CharacteristicValue)).Simplify(), nil

	case ModeRadiation:
		// 放射（線形化）: R = 1 / (h_r * 表面積)
		if e.Coefficient == nil {
			return nil, fmt.Errorf("%w: element %q has no coefficient", ErrMissingParameter, name)
		}
		return div(gosymbol.N(1), gosymbol.MulOf(e.Coefficient, e.CharacteristicValue)).Simplify(), nil

	case ModeConduction:
		return conductionResistance(name, e)

	default:
		return nil, fmt.Errorf("%w: element %q has unknown mode %q", ErrUnsupportedConfiguration, name, e.Mode)
	}
}

func conductionResistance(name string, e *ResistanceElement) (gosymbol.Expr, error) {
	k := e.CharacteristicValue

	switch e.Geometry {

	case GeometryPlanar:
		// R = 厚さ / (k * 面積)
		thickness, err := requiredParam(name, e, "thickness")
		if err != nil {
			return nil, err
		}
		area, err := requiredParam(name, e, "area")
		if err != nil {
			return nil, err
		}
		return div(thickness, gosymbol.MulOf(k, area)).Simplify(), nil

	case GeometryCylindrical:
		// R = ln(r_outer / r_inner) / (angle * k * length)
		// 閉じた円筒では angle = 2π。角度は既定値を持たず必須とする。
		rInner, err := requiredParam(name, e, "r_inner")
		if err != nil {
			return nil, err
		}
		rOuter, err := requiredParam(name, e, "r_outer")
		if err != nil {
			return nil, err
		}
		length, err := requiredParam(name, e, "length")
		if err != nil {
			return nil, err
		}
		angle, err := requiredParam(name, e, "angle")
		if err != nil {
			return nil, err
		}
		return div(gosymbol.LnOf(div(rOuter, rInner)), gosymbol.MulOf(angle, k, length)).Simplify(), nil

	case GeometrySpherical:
		// R = (1/r_inner - 1/r_outer) / (solid_angle * k)
		// solid_angle 省略時は全球 4π とする。
		rInner, err := requiredParam(name, e, "r_inner")
		if err != nil {
			return nil, err
		}
		rOuter, err := requiredParam(name, e, "r_outer")
		if err != nil {
			return nil, err
		}
		solidAngle, ok := e.GeometryParams["solid_angle"]
		if !ok || solidAngle == nil {
			solidAngle = gosymbol.NFloat(4.0 * math.Pi)
		}
		diff := gosymbol.AddOf(
			gosymbol.PowOf(rInner, gosymbol.N(-1)),
			neg(gosymbol.PowOf(rOuter, gosymbol.N(-1))),
		)
		return div(diff, gosymbol.MulOf(solidAngle, k)).Simplify(), nil

	default:
		return nil, fmt.Errorf("%w: element %q has no conduction formula for geometry %q",
			ErrUnsupportedConfiguration, name, e.Geometry)
	}
}

func requiredParam(name string, e *ResistanceElement, key string) (gosymbol.Expr, error) {
	v, ok := e.GeometryParams[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: element %q requires geometry parameter %q", ErrMissingParameter, name, key)
	}
	return v, nil
}

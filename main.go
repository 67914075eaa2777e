package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/njchilds90/gosymbol"

	"transcal/transcal"
)

// 熱抵抗ネットワークCSVの1行
type elementRecord struct {
	Name                string   `csv:"name"`
	Mode                string   `csv:"mode"`
	Geometry            string   `csv:"geometry"`
	CharacteristicValue float64  `csv:"characteristic_value"`
	Coefficient         *float64 `csv:"coefficient"`
	Thickness           *float64 `csv:"thickness"`
	Area                *float64 `csv:"area"`
	RInner              *float64 `csv:"r_inner"`
	ROuter              *float64 `csv:"r_outer"`
	Length              *float64 `csv:"length"`
	Angle               *float64 `csv:"angle"`
	SolidAngle          *float64 `csv:"solid_angle"`
}

/*
熱抵抗ネットワークCSVファイルを読み込む。

	Args:
		path: CSVファイルへのパス

	Returns:
		熱抵抗ネットワーク
*/
func load_network(path string) *transcal.ResistanceNetwork {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	records := []*elementRecord{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		log.Fatal(err)
	}

	nw := transcal.NewResistanceNetwork()
	for _, rec := range records {
		e := &transcal.ResistanceElement{
			Mode:                transcal.Mode(rec.Mode),
			Geometry:            transcal.Geometry(rec.Geometry),
			CharacteristicValue: transcal.Value(rec.CharacteristicValue),
			GeometryParams:      map[string]gosymbol.Expr{},
		}
		if rec.Coefficient != nil {
			e.Coefficient = transcal.Value(*rec.Coefficient)
		}
		for key, v := range map[string]*float64{
			"thickness":   rec.Thickness,
			"area":        rec.Area,
			"r_inner":     rec.RInner,
			"r_outer":     rec.ROuter,
			"length":      rec.Length,
			"angle":       rec.Angle,
			"solid_angle": rec.SolidAngle,
		} {
			if v != nil {
				e.GeometryParams[key] = transcal.Value(*v)
			}
		}
		nw.Add(rec.Name, e)
	}

	return nw
}

/*
計算処理の実行

	Args:
		network_path: 熱抵抗ネットワークCSVファイルへのパス
		quiet: 要素ごとのサマリ表示を抑制するか否か
*/
func run(network_path string, quiet bool) {

	// ---- 熱抵抗ネットワーク ----

	log.Printf("熱抵抗ネットワークCSVファイルの読み込み開始")
	nw := load_network(network_path)

	log.Printf("熱抵抗の計算開始")
	values, err := nw.Evaluate(quiet)
	if err != nil {
		log.Fatal(err)
	}

	// 直列合成は呼び出し側で合算する
	terms := make([]gosymbol.Expr, 0, len(values))
	for _, name := range nw.Names() {
		terms = append(terms, values[name])
	}
	total := gosymbol.AddOf(terms...)
	if v, ok := transcal.AsFloat(total); ok {
		fmt.Printf("R_total = %.6f [K/W]\n", v)
	} else {
		fmt.Printf("R_total = %s [K/W]\n", total.String())
	}

	// ---- フィンモデル ----

	// 半径 2mm、長さ 100mm のアルミ製ピンフィン
	log.Printf("フィンモデルの求解開始")
	radius := 2.0e-3
	fin, err := transcal.NewFinModel(
		transcal.FinParameters{
			K:     transcal.Value(237.0),
			H:     transcal.Value(12.0),
			TBase: transcal.Value(373.15),
			TEnv:  transcal.Value(293.15),
		},
		transcal.FinGeometry{
			CrossArea: transcal.Value(math.Pi * radius * radius),
			Perimeter: transcal.Value(2.0 * math.Pi * radius),
			Length:    transcal.Value(0.10),
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := fin.Solve(transcal.BoundaryConditionInfinitelyLongFin, nil); err != nil {
		log.Fatal(err)
	}
	qInf, err := fin.GetHeatTransfer(transcal.Value(0.0))
	if err != nil {
		log.Fatal(err)
	}

	if err := fin.Solve(transcal.BoundaryConditionAdiabaticTip, nil); err != nil {
		log.Fatal(err)
	}
	qAd, err := fin.GetHeatTransfer(transcal.Value(0.0))
	if err != nil {
		log.Fatal(err)
	}

	qInfV, _ := transcal.AsFloat(qInf)
	qAdV, _ := transcal.AsFloat(qAd)
	mV, _ := transcal.AsFloat(fin.M())
	fmt.Printf("m = %.4f [1/m]\n", mV)
	fmt.Printf("q(0) 無限長フィン = %.4f [W]\n", qInfV)
	fmt.Printf("q(0) 断熱先端     = %.4f [W]\n", qAdV)
	fmt.Printf("比 = %.6f (1/tanh(mL) = %.6f)\n", qInfV/qAdV, 1.0/math.Tanh(mV*0.10))

	// 温度分布（断熱先端）
	xs, temps, err := fin.TemperatureProfile(5)
	if err != nil {
		log.Fatal(err)
	}
	for i := range xs {
		fmt.Printf("x = %.3f [m], T = %.2f\n", xs[i], temps[i])
	}
}

func main() {
	var network_path string
	flag.StringVar(&network_path, "network", "example/network.csv", "熱抵抗ネットワークのCSVファイルへのパスを指定します。")

	var quiet bool
	flag.BoolVar(&quiet, "quiet", false, "要素ごとのサマリ表示を抑制するか否かを指定します。")

	// 引数を受け取る
	flag.Parse()

	start := time.Now()

	run(network_path, quiet)

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}

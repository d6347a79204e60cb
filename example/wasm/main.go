//go:build js && wasm

// Command wasm exposes the chart to a web page. Build with
//
//	GOOS=js GOARCH=wasm go build -o lchart.wasm ./example/wasm
//
// and load it next to a <canvas id="chart">. JavaScript then calls
//
//	lchartPlot("sin", 10)
//	lchartPlot("custom", 100, -10000, 10000, -10000, 10000)
//
// which returns null on success or the error message.
package main

import (
	"fmt"
	"syscall/js"

	"github.com/go-theft-auto/lchart"
	"github.com/go-theft-auto/lchart/backend/webgl"
)

func main() {
	g, err := webgl.FromCanvas("chart")
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	chart, err := lchart.New(g)
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}

	js.Global().Set("lchartPlot", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if err := plot(chart, args); err != nil {
			return err.Error()
		}
		return nil
	}))

	select {}
}

func plot(chart *lchart.Chart, args []js.Value) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: lchartPlot(kind, points[, fromX, toX, fromY, toY])")
	}
	kind := lchart.KindSin
	if args[0].String() == "custom" {
		kind = lchart.KindCustom
	}
	points := args[1].Int()
	if kind == lchart.KindSin || len(args) < 6 {
		return chart.PlotKind(kind, points, lchart.Custom(diagonal))
	}
	return chart.Plot(lchart.Custom(diagonal), points,
		float32(args[2].Float()), float32(args[3].Float()),
		float32(args[4].Float()), float32(args[5].Float()))
}

// diagonal plots y = x.
func diagonal(x float32) float32 {
	return x
}

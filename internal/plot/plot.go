package plot

import (
	"fmt"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"io"
)

const (
	pointSymbolSize    = 8
	centroidSymbolSize = 20
	unassignedColor    = "black"
	centroidColor      = "red"
)

// 渲染所需的数据。Assignments为空时所有点以黑色显示
type Frame struct {
	Title       string
	Bounds      core.Bounds
	Dataset     core.Dataset
	Centroids   []core.Point
	Assignments []int
}

// 第i类的颜色，色相在k个类之间均分
func ClusterColor(i, k int) string {
	if k <= 0 {
		return unassignedColor
	}
	return fmt.Sprintf("hsl(%d, 100%%, 50%%)", i*360/k)
}

func NewScatter(frame *Frame) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: frame.Title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", int(frame.Bounds.Width)),
			Height: fmt.Sprintf("%dpx", int(frame.Bounds.Height)),
		}),
	)

	k := len(frame.Centroids)
	if len(frame.Assignments) != len(frame.Dataset) || k == 0 {
		data := make([]opts.ScatterData, 0, len(frame.Dataset))
		for _, p := range frame.Dataset {
			data = append(data, scatterData(p, pointSymbolSize))
		}
		scatter.AddSeries("Points", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: unassignedColor}))
	} else {
		clusters := make([][]opts.ScatterData, k)
		for i, p := range frame.Dataset {
			c := frame.Assignments[i]
			clusters[c] = append(clusters[c], scatterData(p, pointSymbolSize))
		}
		for i, data := range clusters {
			scatter.AddSeries(fmt.Sprintf("Cluster %d", i), data,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: ClusterColor(i, k)}))
		}
	}

	centroids := make([]opts.ScatterData, 0, k)
	for _, c := range frame.Centroids {
		centroids = append(centroids, scatterData(c, centroidSymbolSize))
	}
	scatter.AddSeries("Centroids", centroids, charts.WithItemStyleOpts(opts.ItemStyle{Color: centroidColor}))

	return scatter
}

// 将散点图渲染为HTML页面
func RenderScatter(out io.Writer, frame *Frame) error {
	for _, a := range frame.Assignments {
		if a < 0 || a >= len(frame.Centroids) {
			return fmt.Errorf("类别序号%d超出中心数量%d", a, len(frame.Centroids))
		}
	}

	err := NewScatter(frame).Render(out)
	if err != nil {
		return errors.Wrap(err, "渲染散点图出错")
	}
	return nil
}

func scatterData(p core.Point, size int) opts.ScatterData {
	return opts.ScatterData{
		Value:      []interface{}{p.X, p.Y},
		SymbolSize: size,
	}
}

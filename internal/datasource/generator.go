package datasource

import (
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
)

type Float64Source interface {
	Float64() float64
}

func NewUniformGenerator(rng Float64Source) Generator {
	return &uniformGenerator{rng: rng}
}

// 每个坐标独立均匀分布在[0, 边界-MarkerMargin)内
type uniformGenerator struct {
	rng Float64Source
}

func (u *uniformGenerator) Generate(n int, bounds core.Bounds) (core.Dataset, error) {
	if n < 0 {
		return nil, fmt.Errorf("数据点数量不能小于0，现在为%d", n)
	}
	if bounds.Width <= core.MarkerMargin || bounds.Height <= core.MarkerMargin {
		return nil, fmt.Errorf("显示区域过小，宽%g，高%g", bounds.Width, bounds.Height)
	}

	data := make(core.Dataset, n)
	for i := 0; i < n; i++ {
		data[i] = core.Point{
			X: u.rng.Float64() * (bounds.Width - core.MarkerMargin),
			Y: u.rng.Float64() * (bounds.Height - core.MarkerMargin),
		}
	}
	return data, nil
}

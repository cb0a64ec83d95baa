package preprocess

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
)

// 将点线性缩放到[0, 宽-MarkerMargin)与[0, 高-MarkerMargin)内，保证标记完整显示。
// 某一坐标所有值都相同时，该坐标统一置为0
func Normalize(bounds core.Bounds) Preprocessor {
	return &normalize{bounds: bounds}
}

type normalize struct {
	bounds core.Bounds
}

// 缩放后最大值落在区间内的比例
const normalizeScale = 0.999

func (n normalize) Preprocess(data core.Dataset) core.Dataset {
	if len(data) == 0 {
		return data
	}

	minX, maxX := data[0].X, data[0].X
	minY, maxY := data[0].Y, data[0].Y
	for _, p := range data {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	width := (n.bounds.Width - core.MarkerMargin) * normalizeScale
	height := (n.bounds.Height - core.MarkerMargin) * normalizeScale

	result := make(core.Dataset, len(data))
	for i, p := range data {
		result[i] = core.Point{
			X: rescale(p.X, minX, maxX, width),
			Y: rescale(p.Y, minY, maxY, height),
		}
	}
	return result
}

func rescale(v, min, max, length float64) float64 {
	if max == min {
		return 0
	}
	return (v - min) / (max - min) * length
}

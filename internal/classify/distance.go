package classify

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// 欧氏距离
func Distance(a, b core.Point) float64 {
	return floats.Distance(a.Vector(), b.Vector(), 2)
}

// 点到所有中心的最短距离
func minDistance(p core.Point, centroids []core.Point) float64 {
	min := -1.0
	for _, c := range centroids {
		if d := Distance(p, c); min < 0 || d < min {
			min = d
		}
	}
	return min
}

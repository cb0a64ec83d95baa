package classify

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"math"
)

const DefaultEpsilon = 1e-6

// 将每个点分配到最近的中心。距离相同时取序号最小的中心
func AssignClusters(dataset core.Dataset, centroids []core.Point) ([]int, error) {
	if len(centroids) == 0 {
		return nil, ErrNoCentroids
	}

	assignments := make([]int, len(dataset))
	for i, point := range dataset {
		closest := 0
		min := math.Inf(1)
		for j, centroid := range centroids {
			if d := Distance(point, centroid); d < min {
				min = d
				closest = j
			}
		}
		assignments[i] = closest
	}

	return assignments, nil
}

// 将每个中心更新为其所属点的平均值，并返回更新前的中心。没有任何点的中心保持不动。
// centroids会被原地修改
func UpdateCentroids(dataset core.Dataset, assignments []int, centroids []core.Point) ([]core.Point, error) {
	if len(centroids) == 0 {
		return nil, ErrNoCentroids
	}
	if len(assignments) != len(dataset) {
		return nil, errors.Wrapf(ErrAssignmentMismatch, "分配结果长度为%d，数据集长度为%d",
			len(assignments), len(dataset))
	}
	for i, a := range assignments {
		if a < 0 || a >= len(centroids) {
			return nil, errors.Wrapf(ErrInvalidAssignment, "第%d个点被分配到%d", i, a)
		}
	}

	// 必须在修改中心之前完成快照
	previous := make([]core.Point, len(centroids))
	copy(previous, centroids)

	sums := make([][]float64, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, 2)
	}
	counts := make([]int, len(centroids))
	for i, point := range dataset {
		cluster := assignments[i]
		floats.Add(sums[cluster], point.Vector())
		counts[cluster]++
	}

	for i, sum := range sums {
		if counts[i] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[i]), sum)
		centroids[i] = core.Point{X: sum[0], Y: sum[1]}
	}

	return previous, nil
}

// 所有中心在两个坐标上的移动都小于epsilon时视为收敛
func IsConverged(centroids, previous []core.Point, epsilon float64) (bool, error) {
	if previous == nil {
		return false, ErrNotUpdated
	}
	if len(centroids) != len(previous) {
		return false, errors.Wrapf(ErrCentroidMismatch, "当前%d个，上一轮%d个", len(centroids), len(previous))
	}

	for i, c := range centroids {
		prev := previous[i]
		if !(math.Abs(c.X-prev.X) < epsilon && math.Abs(c.Y-prev.Y) < epsilon) {
			return false, nil
		}
	}
	return true, nil
}

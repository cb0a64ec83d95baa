package classify

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"testing"
)

var fourPoints = core.Dataset{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 10}, {X: 10, Y: 11}}

func randomDataset(rng *rand.Rand, n int) core.Dataset {
	data := make(core.Dataset, n)
	for i := range data {
		data[i] = core.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}
	return data
}

func TestAssignClusters(t *testing.T) {
	centroids := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	assignments, err := AssignClusters(fourPoints, centroids)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, assignments)

	/*
		距离相同时取序号最小的中心
	*/
	assignments, err = AssignClusters(core.Dataset{{X: 5, Y: 0}}, []core.Point{{X: 10, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}})
	assert.NoError(t, err)
	assert.Equal(t, []int{0}, assignments)

	assignments, err = AssignClusters(core.Dataset{{X: 5, Y: 0}}, []core.Point{{X: 20, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}})
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, assignments)

	/*
		没有中心
	*/
	_, err = AssignClusters(fourPoints, nil)
	assert.Equal(t, ErrNoCentroids, errors.Cause(err))
}

func TestAssignClustersChoosesNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		data := randomDataset(rng, 200)
		k := 1 + rng.Intn(8)
		centroids := make([]core.Point, k)
		for i := range centroids {
			centroids[i] = core.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		}
		// 制造完全重合的中心，检验取序号最小者
		if k > 2 {
			centroids[k-1] = centroids[0]
		}

		assignments, err := AssignClusters(data, centroids)
		require.NoError(t, err)
		require.Equal(t, len(data), len(assignments))

		for i, p := range data {
			a := assignments[i]
			require.True(t, a >= 0 && a < k)
			chosen := Distance(p, centroids[a])
			for j, c := range centroids {
				d := Distance(p, c)
				assert.False(t, d < chosen, "存在更近的中心")
				if j < a {
					assert.False(t, d == chosen, "距离相同时应取序号更小的中心")
				}
			}
		}
	}
}

func TestUpdateCentroids(t *testing.T) {
	centroids := []core.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	previous, err := UpdateCentroids(fourPoints, []int{0, 0, 1, 1}, centroids)
	assert.NoError(t, err)
	assert.Equal(t, []core.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}, previous)
	assert.Equal(t, []core.Point{{X: 0, Y: 0.5}, {X: 10, Y: 10.5}}, centroids)

	/*
		空的类保持不动
	*/
	centroids = []core.Point{{X: 0, Y: 0}, {X: 1000, Y: 1000}}
	assignments, err := AssignClusters(fourPoints, centroids)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, assignments)
	_, err = UpdateCentroids(fourPoints, assignments, centroids)
	assert.NoError(t, err)
	assert.Equal(t, core.Point{X: 1000, Y: 1000}, centroids[1])
	assert.Equal(t, core.Point{X: 5, Y: 5.5}, centroids[0])

	/*
		长度不一致
	*/
	_, err = UpdateCentroids(fourPoints, []int{0, 1}, centroids)
	assert.Equal(t, ErrAssignmentMismatch, errors.Cause(err))

	/*
		无效的序号，中心不应被修改
	*/
	centroids = []core.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	_, err = UpdateCentroids(fourPoints, []int{0, 0, 1, 2}, centroids)
	assert.Equal(t, ErrInvalidAssignment, errors.Cause(err))
	assert.Equal(t, []core.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}, centroids)

	_, err = UpdateCentroids(fourPoints, []int{0, 0, 1, 1}, nil)
	assert.Equal(t, ErrNoCentroids, errors.Cause(err))
}

func TestIsConverged(t *testing.T) {
	centroids := []core.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}

	_, err := IsConverged(centroids, nil, DefaultEpsilon)
	assert.Equal(t, ErrNotUpdated, errors.Cause(err))

	_, err = IsConverged(centroids, []core.Point{{X: 1, Y: 1}}, DefaultEpsilon)
	assert.Equal(t, ErrCentroidMismatch, errors.Cause(err))

	converged, err := IsConverged(centroids, []core.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, DefaultEpsilon)
	assert.NoError(t, err)
	assert.True(t, converged)

	converged, err = IsConverged(centroids, []core.Point{{X: 1 + DefaultEpsilon/2, Y: 1}, {X: 2, Y: 2 - DefaultEpsilon/2}}, DefaultEpsilon)
	assert.NoError(t, err)
	assert.True(t, converged)

	converged, err = IsConverged(centroids, []core.Point{{X: 1, Y: 1}, {X: 2, Y: 2 + 2*DefaultEpsilon}}, DefaultEpsilon)
	assert.NoError(t, err)
	assert.False(t, converged)
}

package preprocess

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestImpute(t *testing.T) {
	data := core.Dataset{{X: 1, Y: 2}, {X: math.NaN(), Y: 2}, {X: 3, Y: math.Inf(1)}, {X: 4, Y: 5}}
	result := Impute().Preprocess(data)
	assert.Equal(t, core.Dataset{{X: 1, Y: 2}, {X: 4, Y: 5}}, result)

	assert.Empty(t, Impute().Preprocess(nil))
}

func TestNormalize(t *testing.T) {
	bounds := core.Bounds{Width: 105, Height: 55}
	data := core.Dataset{{X: -10, Y: 100}, {X: 0, Y: 200}, {X: 10, Y: 300}}
	result := Normalize(bounds).Preprocess(data)

	assert.Equal(t, 3, len(result))
	assert.InDelta(t, 0, result[0].X, 1e-9)
	assert.InDelta(t, 49.95, result[1].X, 1e-9)
	assert.InDelta(t, 99.9, result[2].X, 1e-9)
	assert.InDelta(t, 0, result[0].Y, 1e-9)
	assert.InDelta(t, 49.95, result[2].Y, 1e-9)
	for _, p := range result {
		assert.True(t, p.X < 100 && p.Y < 50)
	}

	/*
		坐标全部相同
	*/
	result = Normalize(bounds).Preprocess(core.Dataset{{X: 3, Y: 1}, {X: 3, Y: 2}})
	assert.Equal(t, 0.0, result[0].X)
	assert.Equal(t, 0.0, result[1].X)

	assert.Empty(t, Normalize(bounds).Preprocess(core.Dataset{}))
}

func TestDefault(t *testing.T) {
	bounds := core.Bounds{Width: core.DefaultWidth, Height: core.DefaultHeight}
	data := core.Dataset{{X: 1, Y: 1}, {X: math.NaN(), Y: 0}, {X: 3, Y: 3}}
	result := Default(bounds).Preprocess(data)
	assert.Equal(t, 2, len(result))
	for _, p := range result {
		assert.True(t, bounds.Contains(p))
	}
}

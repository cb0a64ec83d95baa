package server

import (
	"github.com/packagewjx/kmeans-visualizer/internal/classify"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"io/ioutil"
	"os"
	"testing"
)

func testConfig() ServerConfig {
	return ServerConfig{
		Port:      DefaultPort,
		Bounds:    core.Bounds{Width: 400, Height: 300},
		NumPoints: 50,
		K:         3,
		Method:    core.Random,
		Seed:      1,
	}
}

func TestNewServer(t *testing.T) {
	ctx := testConfig()
	_, err := NewServer(&ctx)
	assert.NoError(t, err)
	assert.Equal(t, classify.DefaultEpsilon, ctx.Epsilon)
	assert.Equal(t, DefaultMaxIterations, ctx.MaxIterations)
	assert.Equal(t, float64(DefaultRateLimit), ctx.RateLimit)

	ctxCopy := testConfig()
	ctxCopy.Port = 80
	_, err = NewServer(&ctxCopy)
	assert.Error(t, err)

	ctxCopy = testConfig()
	ctxCopy.Bounds.Width = 5
	_, err = NewServer(&ctxCopy)
	assert.Error(t, err)

	ctxCopy = testConfig()
	ctxCopy.NumPoints = 0
	_, err = NewServer(&ctxCopy)
	assert.Error(t, err)

	ctxCopy = testConfig()
	ctxCopy.MaxIterations = -1
	_, err = NewServer(&ctxCopy)
	assert.Error(t, err)

	ctxCopy = testConfig()
	ctxCopy.RateLimit = -1
	_, err = NewServer(&ctxCopy)
	assert.Error(t, err)

	/*
		聚类数量大于数据点数量
	*/
	ctxCopy = testConfig()
	ctxCopy.K = 51
	_, err = NewServer(&ctxCopy)
	assert.Error(t, err)

	/*
		使用默认值
	*/
	ctxCopy = testConfig()
	ctxCopy.K = 0
	ctxCopy.Method = ""
	_, err = NewServer(&ctxCopy)
	assert.NoError(t, err)
	assert.Equal(t, DefaultK, ctxCopy.K)
	assert.Equal(t, DefaultMethod, ctxCopy.Method)
}

func TestNewServerWithDatasetFile(t *testing.T) {
	f, err := ioutil.TempFile("", "dataset-*.csv")
	if !assert.NoError(t, err) {
		assert.FailNow(t, "创建临时文件失败")
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()
	_, _ = f.WriteString("x,y\n-100,-100\n0,0\n100,100\nNaN,1\n")
	_ = f.Close()

	ctx := testConfig()
	ctx.InitialDatasetCsvFile = f.Name()
	s, err := NewServer(&ctx)
	assert.NoError(t, err)

	state, err := s.State()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(state.Dataset))
	for _, p := range state.Dataset {
		assert.True(t, ctx.Bounds.Contains(p))
	}

	ctx = testConfig()
	ctx.InitialDatasetCsvFile = f.Name() + ".missing"
	_, err = NewServer(&ctx)
	assert.Error(t, err)
}

package server

import (
	"encoding/json"
	"github.com/packagewjx/kmeans-visualizer/internal/classify"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/packagewjx/kmeans-visualizer/pkg/server"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, k int, method core.InitMethod) Server {
	ctx := testConfig()
	ctx.K = k
	ctx.Method = method
	s, err := NewServer(&ctx)
	require.NoError(t, err)
	return s
}

func TestServerImpl_StepAndConverge(t *testing.T) {
	s := newTestServer(t, 3, core.KMeansPP)

	state, err := s.State()
	assert.NoError(t, err)
	assert.Equal(t, classify.StateEmpty.String(), state.State)
	assert.Equal(t, 50, len(state.Dataset))
	assert.Empty(t, state.Centroids)

	result, err := s.Step()
	assert.NoError(t, err)
	assert.True(t, result.Initialized)
	assert.Equal(t, 3, len(result.State.Centroids))

	result, err = s.Step()
	assert.NoError(t, err)
	assert.True(t, result.ConvergenceKnown)
	assert.Equal(t, 50, len(result.State.Assignments))

	converge, err := s.Converge()
	assert.NoError(t, err)
	assert.True(t, converge.Converged)
	assert.Equal(t, converge.Iterations, len(converge.Frames))
	for i, frame := range converge.Frames {
		assert.Equal(t, i+1, frame.Iteration)
		assert.Equal(t, 3, len(frame.Centroids))
	}

	/*
		新数据集清除聚类状态
	*/
	state, err = s.NewDataset()
	assert.NoError(t, err)
	assert.Equal(t, classify.StateEmpty.String(), state.State)
	assert.Empty(t, state.Centroids)
	assert.Empty(t, state.Assignments)
}

func TestServerImpl_Manual(t *testing.T) {
	s := newTestServer(t, 2, core.Manual)

	_, err := s.AddManualCentroid(core.Point{X: 1000, Y: 10})
	assert.Equal(t, server.ErrOutOfBounds, errors.Cause(err))

	added, err := s.AddManualCentroid(core.Point{X: 10, Y: 10})
	assert.NoError(t, err)
	assert.False(t, added.Done)
	assert.Equal(t, classify.StateAwaitingManual.String(), added.State.State)

	_, err = s.Step()
	assert.Equal(t, classify.ErrManualPending, errors.Cause(err))

	added, err = s.AddManualCentroid(core.Point{X: 300, Y: 200})
	assert.NoError(t, err)
	assert.True(t, added.Done)
	assert.Equal(t, []core.Point{{X: 10, Y: 10}, {X: 300, Y: 200}}, added.State.Centroids)

	converge, err := s.Converge()
	assert.NoError(t, err)
	assert.True(t, converge.Converged)

	state, err := s.Reset()
	assert.NoError(t, err)
	assert.Equal(t, classify.StateAwaitingManual.String(), state.State)

	state, err = s.Configure(&server.ConfigRequest{K: 4, Method: core.Farthest})
	assert.NoError(t, err)
	assert.Equal(t, 4, state.K)
	assert.Equal(t, classify.StateEmpty.String(), state.State)

	_, err = s.Configure(&server.ConfigRequest{K: 0, Method: core.Farthest})
	assert.Equal(t, classify.ErrInvalidK, errors.Cause(err))
}

func TestHandler(t *testing.T) {
	s := newTestServer(t, 2, core.Manual)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	response, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	/*
		方法不正确
	*/
	response, err = http.Get(ts.URL + "/step")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)

	/*
		等待手动中心时单步执行返回冲突
	*/
	response, err = http.Post(ts.URL+"/reset", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	response, err = http.Post(ts.URL+"/step", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, response.StatusCode)
	errResp := &server.ErrorResponse{}
	assert.NoError(t, json.NewDecoder(response.Body).Decode(errResp))
	assert.NotEmpty(t, errResp.Error)

	/*
		请求体错误
	*/
	response, err = http.Post(ts.URL+"/centroids", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, err = http.Post(ts.URL+"/config", "application/json", strings.NewReader(`{"k":2,"method":"spiral"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, err = http.Get(ts.URL + "/plot")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, response.Header.Get("Content-Type"), "text/html")
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusCode(errors.Wrap(classify.ErrTooManyClusters, "test")))
	assert.Equal(t, http.StatusConflict, statusCode(classify.ErrMaxIterations))
	assert.Equal(t, http.StatusInternalServerError, statusCode(errors.New("unknown")))
}

func TestHandler_RateLimit(t *testing.T) {
	ctx := testConfig()
	ctx.RateLimit = 1
	s, err := NewServer(&ctx)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		response, err := http.Post(ts.URL+"/reset", "application/json", nil)
		require.NoError(t, err)
		statuses = append(statuses, response.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	/*
		查询类请求不受限制
	*/
	response, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
}

package server

import (
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
)

// 引擎当前状态，供前端渲染
type State struct {
	State             string          `json:"state"`
	K                 int             `json:"k"`
	Method            core.InitMethod `json:"method"`
	Bounds            core.Bounds     `json:"bounds"`
	Dataset           []core.Point    `json:"dataset"`
	Centroids         []core.Point    `json:"centroids"`
	PreviousCentroids []core.Point    `json:"previousCentroids,omitempty"`
	Assignments       []int           `json:"assignments,omitempty"`
}

type StepResult struct {
	Initialized      bool   `json:"initialized"`
	ConvergenceKnown bool   `json:"convergenceKnown"`
	Converged        bool   `json:"converged"`
	State            *State `json:"state"`
}

// 迭代至收敛过程中每一轮的中间结果
type Frame struct {
	Iteration   int          `json:"iteration"`
	Centroids   []core.Point `json:"centroids"`
	Assignments []int        `json:"assignments"`
}

type ConvergeResult struct {
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Frames     []*Frame `json:"frames"`
	State      *State   `json:"state"`
}

type ManualCentroidResult struct {
	Done  bool   `json:"done"`
	State *State `json:"state"`
}

type ConfigRequest struct {
	K      int             `json:"k"`
	Method core.InitMethod `json:"method"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

var ErrBadRequest = fmt.Errorf("请求参数错误")

var ErrConflict = fmt.Errorf("当前状态不允许此操作")

var ErrOutOfBounds = fmt.Errorf("坐标超出显示区域")

type API interface {
	State() (*State, error)

	// 生成新的随机数据集并清除聚类状态
	NewDataset() (*State, error)

	Reset() (*State, error)

	Configure(request *ConfigRequest) (*State, error)

	AddManualCentroid(point core.Point) (*ManualCentroidResult, error)

	Step() (*StepResult, error)

	Converge() (*ConvergeResult, error)
}

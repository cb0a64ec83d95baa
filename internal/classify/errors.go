package classify

import "github.com/pkg/errors"

// 配置错误。在修改任何状态之前返回
var (
	ErrInvalidK         = errors.New("聚类数量不能小于1")
	ErrTooManyClusters  = errors.New("聚类数量不能大于数据点数量")
	ErrUnknownMethod    = errors.New("未知的初始化方法")
	ErrInvalidEpsilon   = errors.New("收敛阈值必须大于0")
	ErrInvalidIteration = errors.New("最大迭代次数不能小于0")
	ErrEmptyDataset     = errors.New("数据集为空")
)

// 前置条件错误
var (
	ErrManualPending      = errors.New("尚未选择足够的手动中心")
	ErrManualComplete     = errors.New("手动中心已经选择完毕")
	ErrNotManual          = errors.New("当前不处于手动选择中心的状态")
	ErrNotInitialized     = errors.New("尚未初始化中心")
	ErrNoCentroids        = errors.New("中心列表为空")
	ErrNotAssigned        = errors.New("尚未执行分配步骤")
	ErrAssignmentMismatch = errors.New("分配结果与数据集长度不一致")
	ErrInvalidAssignment  = errors.New("分配结果中存在无效的中心序号")
	ErrNotUpdated         = errors.New("尚未执行中心更新步骤，无法判断是否收敛")
	ErrCentroidMismatch   = errors.New("中心与上一轮中心数量不一致")
	ErrMaxIterations      = errors.New("超过最大迭代次数仍未收敛")
)

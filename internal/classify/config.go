package classify

import (
	"encoding/json"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
)

type Config struct {
	K             int             // 聚类数量
	Method        core.InitMethod // 中心初始化方法
	Epsilon       float64         // 收敛阈值，为0时使用DefaultEpsilon
	MaxIterations int             // 迭代至收敛时的最大轮次。0表示不限制
}

func (c Config) String() string {
	marshal, _ := json.Marshal(c)
	return string(marshal)
}

// 填充默认值
func (c *Config) Complete() {
	if c.Epsilon == 0 {
		c.Epsilon = DefaultEpsilon
	}
}

// 检查配置是否适用于大小为datasetSize的数据集
func (c *Config) Validate(datasetSize int) error {
	if c.K < 1 {
		return errors.Wrapf(ErrInvalidK, "k为%d", c.K)
	}
	if !c.Method.IsValid() {
		return errors.Wrapf(ErrUnknownMethod, "方法为%s", c.Method)
	}
	if c.Epsilon <= 0 {
		return errors.Wrapf(ErrInvalidEpsilon, "epsilon为%g", c.Epsilon)
	}
	if c.MaxIterations < 0 {
		return errors.Wrapf(ErrInvalidIteration, "最大迭代次数为%d", c.MaxIterations)
	}
	// 手动选择的中心不来自数据集，不受数据集大小限制
	if c.Method != core.Manual && c.K > datasetSize {
		return errors.Wrapf(ErrTooManyClusters, "k为%d，数据点数量为%d", c.K, datasetSize)
	}
	return nil
}

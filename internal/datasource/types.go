package datasource

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"io"
)

type DatasetReader interface {
	Read() (core.Dataset, error)
}

type PointSource interface {
	// 读取一个数据点。若读取完毕，则error设置为io.EOF。error为其他时表示读取出错
	Load() (*core.Point, error)
}

// 生成演示用的数据集
type Generator interface {
	Generate(n int, bounds core.Bounds) (core.Dataset, error)
}

type DataFileLoader interface {
	Load(in io.Reader) (core.Dataset, error)
}

type DataFormat string

const (
	CSV = DataFormat("csv")
)

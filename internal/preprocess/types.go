package preprocess

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
)

type Preprocessor interface {
	Preprocess(data core.Dataset) core.Dataset
}

type defaultPreprocess struct {
	chain []Preprocessor
}

func (d *defaultPreprocess) Preprocess(data core.Dataset) core.Dataset {
	for _, processor := range d.chain {
		data = processor.Preprocess(data)
	}
	return data
}

// 去除无效点后缩放到显示区域内
func Default(bounds core.Bounds) Preprocessor {
	return &defaultPreprocess{chain: []Preprocessor{Impute(), Normalize(bounds)}}
}

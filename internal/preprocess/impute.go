package preprocess

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"log"
)

// 去除坐标为NaN或Inf的点。聚类过程假定所有坐标都是有限值
func Impute() Preprocessor {
	return &imputePreProcessor{}
}

type imputePreProcessor struct {
}

func (i imputePreProcessor) Preprocess(data core.Dataset) core.Dataset {
	result := make(core.Dataset, 0, len(data))
	for idx, point := range data {
		if !point.IsValid() {
			log.Printf("第%d个点坐标无效，已移除：%v\n", idx, point)
			continue
		}
		result = append(result, point)
	}
	return result
}

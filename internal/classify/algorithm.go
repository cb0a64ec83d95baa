package classify

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/packagewjx/kmeanspp"
	"github.com/pkg/errors"
	"log"
)

// 批量聚类算法接口
type Algorithm interface {
	Run(data core.Dataset, numClass int, context interface{}) (centers []core.Point, class []int, err error)
}

type AlgorithmType string

const (
	Lloyd           = AlgorithmType("lloyd")
	KMeansPPLibrary = AlgorithmType("kmeanspp")
)

func GetAlgorithm(algorithmType AlgorithmType) Algorithm {
	switch algorithmType {
	case Lloyd:
		return &lloydRunner{}
	case KMeansPPLibrary:
		return &kMeansPPRunner{}
	default:
		return nil
	}
}

type LloydContext struct {
	Method        core.InitMethod
	Epsilon       float64
	MaxIterations int
	Rand          Rand
	Logger        *log.Logger
}

// 使用Engine迭代至收敛
type lloydRunner struct {
}

func (l *lloydRunner) Run(data core.Dataset, numClass int, context interface{}) ([]core.Point, []int, error) {
	ctx := &LloydContext{Method: core.KMeansPP}
	if context != nil {
		c, ok := context.(*LloydContext)
		if !ok {
			log.Printf("输入的context不是LloydContext类型。将使用默认参数")
		} else {
			ctx = c
		}
	}
	if ctx.Method == core.Manual {
		return nil, nil, errors.Wrap(ErrUnknownMethod, "批量聚类不支持手动初始化")
	}

	opts := []Option{WithRand(ctx.Rand)}
	if ctx.Logger != nil {
		opts = append(opts, WithLogger(ctx.Logger))
	}
	engine, err := NewEngine(data, Config{
		K:             numClass,
		Method:        ctx.Method,
		Epsilon:       ctx.Epsilon,
		MaxIterations: ctx.MaxIterations,
	}, opts...)
	if err != nil {
		return nil, nil, err
	}

	_, err = engine.Run(nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "迭代聚类出错")
	}

	return engine.Centroids(), engine.Assignments(), nil
}

type KMeansPPContext struct {
	Round int
}

const (
	KMeansDefaultRound = 30
)

// 使用kmeanspp库，固定轮次迭代
type kMeansPPRunner struct {
}

func (k *kMeansPPRunner) Run(data core.Dataset, numClass int, context interface{}) ([]core.Point, []int, error) {
	round := KMeansDefaultRound

	if context != nil {
		ctx, ok := context.(*KMeansPPContext)
		if !ok {
			log.Printf("输入的context不是KMeansPPContext类型。将使用默认参数")
		} else {
			round = ctx.Round
		}
	}

	if numClass < 1 {
		return nil, nil, ErrInvalidK
	}
	if numClass > len(data) {
		return nil, nil, errors.Wrapf(ErrTooManyClusters, "k为%d，数据点数量为%d", numClass, len(data))
	}

	input := make([][]float32, len(data))
	for i, p := range data {
		input[i] = []float32{float32(p.X), float32(p.Y)}
	}

	centers, class := kmeanspp.KMeansPP(numClass, round, input)

	result := make([]core.Point, len(centers))
	for i, c := range centers {
		result[i] = core.Point{X: float64(c[0]), Y: float64(c[1])}
	}
	return result, class, nil
}

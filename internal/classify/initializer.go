package classify

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"math/rand"
	"time"
)

// 随机数来源。*rand.Rand满足此接口，测试时可以替换为固定序列
type Rand interface {
	Intn(n int) int
	Float64() float64
}

func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// 中心初始化策略接口。手动初始化由Engine的状态机处理，没有对应的实现
type Initializer interface {
	Init(dataset core.Dataset, k int, rng Rand) []core.Point
}

func GetInitializer(method core.InitMethod) Initializer {
	switch method {
	case core.Random:
		return &randomInitializer{}
	case core.Farthest:
		return &farthestInitializer{}
	case core.KMeansPP:
		return &kMeansPPInitializer{}
	default:
		return nil
	}
}

// 使用非手动的方法计算k个初始中心
func Initialize(dataset core.Dataset, k int, method core.InitMethod, rng Rand) ([]core.Point, error) {
	if method == core.Manual {
		return nil, errors.Wrap(ErrUnknownMethod, "手动初始化需要通过Engine逐个添加中心")
	}
	initializer := GetInitializer(method)
	if initializer == nil {
		return nil, errors.Wrapf(ErrUnknownMethod, "方法为%s", method)
	}
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(dataset) == 0 {
		return nil, ErrEmptyDataset
	}
	if k > len(dataset) {
		return nil, errors.Wrapf(ErrTooManyClusters, "k为%d，数据点数量为%d", k, len(dataset))
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return initializer.Init(dataset, k, rng), nil
}

// 有放回地随机选取k个点，允许重复
type randomInitializer struct {
}

func (r *randomInitializer) Init(dataset core.Dataset, k int, rng Rand) []core.Point {
	centroids := make([]core.Point, 0, k)
	for i := 0; i < k; i++ {
		centroids = append(centroids, dataset[rng.Intn(len(dataset))])
	}
	return centroids
}

// 最远优先遍历。每次选取到已有中心最短距离最大的点，距离相同时取数据集中靠前的点
type farthestInitializer struct {
}

func (f *farthestInitializer) Init(dataset core.Dataset, k int, rng Rand) []core.Point {
	centroids := make([]core.Point, 0, k)
	centroids = append(centroids, dataset[rng.Intn(len(dataset))])

	for len(centroids) < k {
		farthest := 0
		maxDistance := -1.0
		for i, point := range dataset {
			if d := minDistance(point, centroids); d > maxDistance {
				maxDistance = d
				farthest = i
			}
		}
		centroids = append(centroids, dataset[farthest])
	}

	return centroids
}

// k-means++。以到已有中心的最短距离（非平方）为权重抽样
type kMeansPPInitializer struct {
}

func (p *kMeansPPInitializer) Init(dataset core.Dataset, k int, rng Rand) []core.Point {
	centroids := make([]core.Point, 0, k)
	centroids = append(centroids, dataset[rng.Intn(len(dataset))])

	weights := make([]float64, len(dataset))
	for len(centroids) < k {
		total := 0.0
		for i, point := range dataset {
			weights[i] = minDistance(point, centroids)
			total += weights[i]
		}

		centroids = append(centroids, dataset[weightedIndex(weights, rng.Float64()*total)])
	}

	return centroids
}

// 累加权重，返回第一个累加值大于等于target的下标。权重全为0时返回0
func weightedIndex(weights []float64, target float64) int {
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative >= target {
			return i
		}
	}
	// 浮点误差导致未能到达target
	return len(weights) - 1
}

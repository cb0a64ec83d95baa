package core

import (
	"fmt"
	"math"
)

// 二维数据点。数据集中的点生成后不再修改，按值传递
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vector() []float64 {
	return []float64{p.X, p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// 一次聚类过程中固定不变的点集
type Dataset []Point

func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	result := make(Dataset, len(d))
	copy(result, d)
	return result
}

// 显示区域的大小
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// 标记的大小。生成的点坐标需要小于边界减去此值，使标记完整显示在区域内
const MarkerMargin = 5

const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultNumPoints = 300
)

func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// 初始化中心的方法
type InitMethod string

const (
	Manual   = InitMethod("manual")
	Random   = InitMethod("random")
	Farthest = InitMethod("farthest")
	KMeansPP = InitMethod("kmeans++")
)

var InitMethods = []InitMethod{Manual, Random, Farthest, KMeansPP}

func (m InitMethod) IsValid() bool {
	for _, method := range InitMethods {
		if m == method {
			return true
		}
	}
	return false
}

const LineBreak = '\n'

const Splitter = ","

package classify

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"log"
	"os"
)

// 引擎所处的状态
type State int

const (
	StateEmpty          State = iota // 没有中心
	StateAwaitingManual              // 等待用户逐个添加手动中心
	StateReady                       // 中心已就绪，可以执行聚类步骤
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAwaitingManual:
		return "awaiting-manual"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// 引擎某一时刻的状态副本，供渲染使用
type Snapshot struct {
	State             State
	K                 int
	Method            core.InitMethod
	Dataset           core.Dataset
	Centroids         []core.Point
	PreviousCentroids []core.Point
	Assignments       []int
}

type StepResult struct {
	Initialized      bool // 本次执行的是初始化
	ConvergenceKnown bool // 是否已经执行过更新步骤，只有此时Converged才有意义
	Converged        bool
	State            State
}

type RunResult struct {
	Iterations int
	Converged  bool
}

// 聚类引擎。持有数据集、中心、上一轮中心与分配结果，所有修改都通过引擎的方法进行。
// 引擎不是并发安全的，同一时刻只能由一个调用者使用
type Engine struct {
	config      Config
	dataset     core.Dataset
	state       State
	centroids   []core.Point
	previous    []core.Point
	assignments []int
	rng         Rand
	logger      *log.Logger
}

type Option func(e *Engine)

func WithRand(rng Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(dataset core.Dataset, config Config, opts ...Option) (*Engine, error) {
	config.Complete()
	if err := config.Validate(len(dataset)); err != nil {
		return nil, err
	}

	e := &Engine{
		config:  config,
		dataset: dataset.Clone(),
		state:   StateEmpty,
		logger:  log.New(os.Stdout, "kmeans engine: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}

	return e, nil
}

// 按照配置的方法初始化中心，并清除之前所有的聚类状态。
// 手动方法下引擎进入等待状态，由AddManualCentroid添加中心
func (e *Engine) Initialize() error {
	if err := e.config.Validate(len(e.dataset)); err != nil {
		return err
	}

	if e.config.Method == core.Manual {
		e.clear()
		e.centroids = make([]core.Point, 0, e.config.K)
		e.state = StateAwaitingManual
		e.logger.Printf("等待选择%d个手动中心\n", e.config.K)
		return nil
	}

	centroids, err := Initialize(e.dataset, e.config.K, e.config.Method, e.rng)
	if err != nil {
		return errors.Wrap(err, "初始化中心出错")
	}
	e.clear()
	e.centroids = centroids
	e.state = StateReady
	e.logger.Printf("使用%s方法初始化了%d个中心\n", e.config.Method, len(centroids))
	return nil
}

// 添加一个手动中心，坐标原样使用。添加满k个后返回true，引擎进入就绪状态
func (e *Engine) AddManualCentroid(p core.Point) (bool, error) {
	if e.config.Method != core.Manual {
		return false, errors.Wrapf(ErrNotManual, "当前方法为%s", e.config.Method)
	}
	switch e.state {
	case StateReady:
		return false, ErrManualComplete
	case StateEmpty:
		if err := e.Initialize(); err != nil {
			return false, err
		}
	}

	e.centroids = append(e.centroids, p)
	if len(e.centroids) < e.config.K {
		return false, nil
	}

	e.state = StateReady
	e.logger.Printf("%d个手动中心选择完毕\n", e.config.K)
	return true, nil
}

// 分配步骤
func (e *Engine) Assign() error {
	if err := e.requireReady(); err != nil {
		return err
	}

	assignments, err := AssignClusters(e.dataset, e.centroids)
	if err != nil {
		return err
	}
	e.assignments = assignments
	return nil
}

// 中心更新步骤。更新前的中心保存到上一轮中心中
func (e *Engine) Update() error {
	if err := e.requireReady(); err != nil {
		return err
	}
	if e.assignments == nil {
		return ErrNotAssigned
	}

	previous, err := UpdateCentroids(e.dataset, e.assignments, e.centroids)
	if err != nil {
		return err
	}
	e.previous = previous
	return nil
}

func (e *Engine) Converged() (bool, error) {
	if err := e.requireReady(); err != nil {
		return false, err
	}
	return IsConverged(e.centroids, e.previous, e.config.Epsilon)
}

// 单步执行。没有中心时初始化，否则执行一次分配与更新
func (e *Engine) Step() (*StepResult, error) {
	result := &StepResult{}

	switch e.state {
	case StateAwaitingManual:
		return nil, ErrManualPending
	case StateEmpty:
		if err := e.Initialize(); err != nil {
			return nil, err
		}
		result.Initialized = true
	case StateReady:
		if err := e.Assign(); err != nil {
			return nil, err
		}
		if err := e.Update(); err != nil {
			return nil, err
		}
	}

	if e.previous != nil {
		converged, err := e.Converged()
		if err != nil {
			return nil, err
		}
		result.ConvergenceKnown = true
		result.Converged = converged
	}
	result.State = e.state

	return result, nil
}

// 迭代直到收敛。每轮更新后调用observer输出中间状态。
// MaxIterations为0时不限制轮次
func (e *Engine) Run(observer func(iteration int, snapshot *Snapshot)) (*RunResult, error) {
	if e.state == StateEmpty {
		if err := e.Initialize(); err != nil {
			return nil, err
		}
	}
	if e.state == StateAwaitingManual {
		return nil, ErrManualPending
	}

	result := &RunResult{}
	for {
		if err := e.Assign(); err != nil {
			return result, err
		}
		if err := e.Update(); err != nil {
			return result, err
		}
		result.Iterations++

		if observer != nil {
			observer(result.Iterations, e.Snapshot())
		}

		converged, err := e.Converged()
		if err != nil {
			return result, err
		}
		if converged {
			result.Converged = true
			e.logger.Printf("经过%d轮迭代后收敛\n", result.Iterations)
			return result, nil
		}

		if e.config.MaxIterations > 0 && result.Iterations >= e.config.MaxIterations {
			return result, errors.Wrapf(ErrMaxIterations, "已迭代%d轮", result.Iterations)
		}
	}
}

// 丢弃中心、分配结果与上一轮中心。手动方法下重新进入等待选择的状态
func (e *Engine) Reset() {
	e.clear()
	e.state = StateEmpty
	if e.config.Method == core.Manual {
		e.centroids = make([]core.Point, 0, e.config.K)
		e.state = StateAwaitingManual
	}
}

// 更换数据集，回到未初始化状态
func (e *Engine) SetDataset(dataset core.Dataset) error {
	if err := e.config.Validate(len(dataset)); err != nil {
		return err
	}
	e.dataset = dataset.Clone()
	e.clear()
	e.state = StateEmpty
	return nil
}

// 修改配置并重置
func (e *Engine) Configure(config Config) error {
	config.Complete()
	if err := config.Validate(len(e.dataset)); err != nil {
		return err
	}
	e.config = config
	e.Reset()
	return nil
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Dataset() core.Dataset {
	return e.dataset.Clone()
}

func (e *Engine) Centroids() []core.Point {
	return clonePoints(e.centroids)
}

func (e *Engine) PreviousCentroids() []core.Point {
	return clonePoints(e.previous)
}

func (e *Engine) Assignments() []int {
	if e.assignments == nil {
		return nil
	}
	result := make([]int, len(e.assignments))
	copy(result, e.assignments)
	return result
}

func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		State:             e.state,
		K:                 e.config.K,
		Method:            e.config.Method,
		Dataset:           e.Dataset(),
		Centroids:         e.Centroids(),
		PreviousCentroids: e.PreviousCentroids(),
		Assignments:       e.Assignments(),
	}
}

func (e *Engine) requireReady() error {
	switch e.state {
	case StateEmpty:
		return ErrNotInitialized
	case StateAwaitingManual:
		return ErrManualPending
	}
	return nil
}

func (e *Engine) clear() {
	e.centroids = nil
	e.previous = nil
	e.assignments = nil
}

func clonePoints(points []core.Point) []core.Point {
	if points == nil {
		return nil
	}
	result := make([]core.Point, len(points))
	copy(result, points)
	return result
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/internal/classify"
	"github.com/packagewjx/kmeans-visualizer/internal/datasource"
	"github.com/packagewjx/kmeans-visualizer/internal/plot"
	"github.com/packagewjx/kmeans-visualizer/internal/preprocess"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/packagewjx/kmeans-visualizer/pkg/server"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const (
	DefaultPort          = 2000
	DefaultK             = 3
	DefaultMethod        = core.Random
	DefaultMaxIterations = 1000
	DefaultRateLimit     = 20
)

type ServerConfig struct {
	Port                  uint16          // 本服务器监听端口
	Bounds                core.Bounds     // 前端显示区域大小，用于生成数据集与检查手动中心
	NumPoints             int             // 随机数据集的点数
	K                     int             // 聚类数量
	Method                core.InitMethod // 中心初始化方法
	Epsilon               float64         // 收敛阈值
	MaxIterations         int             // 迭代至收敛的最大轮次，避免请求无限占用服务器
	Seed                  int64           // 随机数种子。为0时使用当前时间
	InitialDatasetCsvFile string          // 初始数据集文件。若不为空，则读取此文件并缩放到显示区域内，否则随机生成
	RateLimit             float64         // 每秒允许的修改类请求数量
}

func (s ServerConfig) String() string {
	marshal, _ := json.Marshal(s)
	return string(marshal)
}

type Server interface {
	server.API
	Start() error
	Handler() http.Handler
}

func NewServer(config *ServerConfig) (Server, error) {
	if err := config.Complete(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	generator := datasource.NewUniformGenerator(rng)
	logger := log.New(os.Stdout, "kmeans server: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix)

	var dataset core.Dataset
	var err error
	if config.InitialDatasetCsvFile != "" {
		dataset, err = loadDataset(config.InitialDatasetCsvFile, config.Bounds)
	} else {
		dataset, err = generator.Generate(config.NumPoints, config.Bounds)
	}
	if err != nil {
		return nil, errors.Wrap(err, "准备初始数据集出错")
	}

	engine, err := classify.NewEngine(dataset, classify.Config{
		K:             config.K,
		Method:        config.Method,
		Epsilon:       config.Epsilon,
		MaxIterations: config.MaxIterations,
	}, classify.WithRand(rng), classify.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "创建聚类引擎出错")
	}

	return &serverImpl{
		config:    config,
		engine:    engine,
		generator: generator,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(config.RateLimit), int(config.RateLimit)+1),
	}, nil
}

type serverImpl struct {
	config    *ServerConfig
	generator datasource.Generator
	logger    *log.Logger
	limiter   *rate.Limiter

	// 引擎不是并发安全的，所有请求串行执行
	mu     sync.Mutex
	engine *classify.Engine
}

func (config *ServerConfig) Complete() error {
	if config.Port < 1024 {
		return fmt.Errorf("端口号应该在1024到65535之间，现在为%d", config.Port)
	}

	if config.Bounds.Width <= core.MarkerMargin || config.Bounds.Height <= core.MarkerMargin {
		return fmt.Errorf("显示区域的宽高应该大于%d，现在为%gx%g",
			core.MarkerMargin, config.Bounds.Width, config.Bounds.Height)
	}

	if config.NumPoints < 1 {
		return fmt.Errorf("数据点数量不能小于1，现在为%d", config.NumPoints)
	}

	if config.K == 0 {
		config.K = DefaultK
	}
	if config.Method == "" {
		config.Method = DefaultMethod
	}
	if config.Epsilon == 0 {
		config.Epsilon = classify.DefaultEpsilon
	}

	if config.MaxIterations == 0 {
		config.MaxIterations = DefaultMaxIterations
	} else if config.MaxIterations < 0 {
		return fmt.Errorf("最大迭代次数不能小于0，现在为%d", config.MaxIterations)
	}

	if config.RateLimit == 0 {
		config.RateLimit = DefaultRateLimit
	} else if config.RateLimit < 0 {
		return fmt.Errorf("请求速率限制不能小于0，现在为%g", config.RateLimit)
	}

	return nil
}

func loadDataset(fileName string, bounds core.Bounds) (core.Dataset, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("打开文件%s失败", fileName))
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := datasource.NewDataLoader(datasource.CSV, 0, 1).Load(f)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("读取文件%s失败", fileName))
	}
	return preprocess.Default(bounds).Preprocess(data), nil
}

func (s *serverImpl) Start() error {
	s.logger.Printf("服务器启动。配置：%v\n", s.config)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.Handler(),
	}

	// 注册信号接收器
	termSigChan := make(chan os.Signal, 1)
	signal.Notify(termSigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(termSigChan)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		s.logger.Printf("API服务器启动")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return errors.Wrap(err, "HTTP服务器启动失败")
		}
		s.logger.Printf("API服务器结束")
		return nil
	})
	g.Go(func() error {
		select {
		case <-termSigChan:
		case <-ctx.Done():
			// 服务器启动失败
			return nil
		}
		if err := srv.Shutdown(context.Background()); err != nil {
			return errors.Wrap(err, "关闭HTTP服务器失败")
		}
		return nil
	})

	return g.Wait()
}

func (s *serverImpl) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/state", getOnly(func(writer http.ResponseWriter, request *http.Request) {
		state, err := s.State()
		writeResult(writer, state, err)
	}))

	mux.HandleFunc("/dataset", postOnly(s.limited(func(writer http.ResponseWriter, request *http.Request) {
		state, err := s.NewDataset()
		writeResult(writer, state, err)
	})))

	mux.HandleFunc("/reset", postOnly(s.limited(func(writer http.ResponseWriter, request *http.Request) {
		state, err := s.Reset()
		writeResult(writer, state, err)
	})))

	mux.HandleFunc("/config", postOnly(s.limited(func(writer http.ResponseWriter, request *http.Request) {
		req := &server.ConfigRequest{}
		if err := json.NewDecoder(request.Body).Decode(req); err != nil {
			writeError(writer, errors.Wrap(server.ErrBadRequest, err.Error()))
			return
		}
		state, err := s.Configure(req)
		writeResult(writer, state, err)
	})))

	mux.HandleFunc("/centroids", postOnly(s.limited(func(writer http.ResponseWriter, request *http.Request) {
		point := core.Point{}
		if err := json.NewDecoder(request.Body).Decode(&point); err != nil {
			writeError(writer, errors.Wrap(server.ErrBadRequest, err.Error()))
			return
		}
		result, err := s.AddManualCentroid(point)
		writeResult(writer, result, err)
	})))

	mux.HandleFunc("/step", postOnly(s.limited(func(writer http.ResponseWriter, request *http.Request) {
		result, err := s.Step()
		writeResult(writer, result, err)
	})))

	mux.HandleFunc("/converge", postOnly(s.limited(func(writer http.ResponseWriter, request *http.Request) {
		result, err := s.Converge()
		writeResult(writer, result, err)
	})))

	mux.HandleFunc("/plot", getOnly(func(writer http.ResponseWriter, request *http.Request) {
		s.mu.Lock()
		snapshot := s.engine.Snapshot()
		s.mu.Unlock()

		writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := plot.RenderScatter(writer, &plot.Frame{
			Title:       fmt.Sprintf("k-means (k=%d, %s)", snapshot.K, snapshot.Method),
			Bounds:      s.config.Bounds,
			Dataset:     snapshot.Dataset,
			Centroids:   snapshot.Centroids,
			Assignments: snapshot.Assignments,
		})
		if err != nil {
			s.logger.Printf("渲染散点图失败：%v\n", err)
		}
	}))

	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("OK"))
	})

	return mux
}

// 超过速率限制的请求直接返回429
func (s *serverImpl) limited(handler http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(writer, http.StatusTooManyRequests, &server.ErrorResponse{Error: "请求过于频繁"})
			return
		}
		handler(writer, request)
	}
}

func postOnly(handler http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodPost, handler)
}

func getOnly(handler http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodGet, handler)
}

func methodOnly(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != method {
			writer.Header().Set("Allow", method)
			http.Error(writer, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		handler(writer, request)
	}
}

func writeResult(writer http.ResponseWriter, result interface{}, err error) {
	if err != nil {
		writeError(writer, err)
		return
	}
	writeJSON(writer, http.StatusOK, result)
}

func writeError(writer http.ResponseWriter, err error) {
	writeJSON(writer, statusCode(err), &server.ErrorResponse{Error: err.Error()})
}

func writeJSON(writer http.ResponseWriter, status int, v interface{}) {
	marshal, err := json.Marshal(v)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write(marshal)
}

func statusCode(err error) int {
	switch errors.Cause(err) {
	case server.ErrBadRequest, server.ErrOutOfBounds,
		classify.ErrInvalidK, classify.ErrTooManyClusters, classify.ErrUnknownMethod,
		classify.ErrInvalidEpsilon, classify.ErrInvalidIteration:
		return http.StatusBadRequest
	case classify.ErrManualPending, classify.ErrManualComplete, classify.ErrNotManual,
		classify.ErrNotInitialized, classify.ErrNotAssigned, classify.ErrNotUpdated,
		classify.ErrMaxIterations:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

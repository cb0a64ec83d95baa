package server

import (
	"github.com/packagewjx/kmeans-visualizer/internal/classify"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/packagewjx/kmeans-visualizer/pkg/server"
	"github.com/pkg/errors"
)

var _ server.API = &serverImpl{}

func (s *serverImpl) State() (*server.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state(), nil
}

func (s *serverImpl) NewDataset() (*server.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dataset, err := s.generator.Generate(s.config.NumPoints, s.config.Bounds)
	if err != nil {
		return nil, errors.Wrap(err, "生成数据集出错")
	}
	err = s.engine.SetDataset(dataset)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("生成了%d个点的新数据集\n", len(dataset))

	return s.state(), nil
}

func (s *serverImpl) Reset() (*server.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	return s.state(), nil
}

func (s *serverImpl) Configure(request *server.ConfigRequest) (*server.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config := s.engine.Config()
	config.K = request.K
	config.Method = request.Method
	err := s.engine.Configure(config)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("配置已修改：%v\n", config)

	return s.state(), nil
}

func (s *serverImpl) AddManualCentroid(point core.Point) (*server.ManualCentroidResult, error) {
	if !s.config.Bounds.Contains(point) {
		return nil, errors.Wrapf(server.ErrOutOfBounds, "坐标为%v", point)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	done, err := s.engine.AddManualCentroid(point)
	if err != nil {
		return nil, err
	}

	return &server.ManualCentroidResult{
		Done:  done,
		State: s.state(),
	}, nil
}

func (s *serverImpl) Step() (*server.StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.engine.Step()
	if err != nil {
		return nil, err
	}

	return &server.StepResult{
		Initialized:      result.Initialized,
		ConvergenceKnown: result.ConvergenceKnown,
		Converged:        result.Converged,
		State:            s.state(),
	}, nil
}

func (s *serverImpl) Converge() (*server.ConvergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := make([]*server.Frame, 0)
	result, err := s.engine.Run(func(iteration int, snapshot *classify.Snapshot) {
		frames = append(frames, &server.Frame{
			Iteration:   iteration,
			Centroids:   snapshot.Centroids,
			Assignments: snapshot.Assignments,
		})
	})
	if err != nil {
		return nil, err
	}

	return &server.ConvergeResult{
		Iterations: result.Iterations,
		Converged:  result.Converged,
		Frames:     frames,
		State:      s.state(),
	}, nil
}

// 调用者需持有锁
func (s *serverImpl) state() *server.State {
	snapshot := s.engine.Snapshot()
	return &server.State{
		State:             snapshot.State.String(),
		K:                 snapshot.K,
		Method:            snapshot.Method,
		Bounds:            s.config.Bounds,
		Dataset:           snapshot.Dataset,
		Centroids:         snapshot.Centroids,
		PreviousCentroids: snapshot.PreviousCentroids,
		Assignments:       snapshot.Assignments,
	}
}

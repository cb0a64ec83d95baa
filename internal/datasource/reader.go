package datasource

import (
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"io"
)

func NewPointSourceReader(source PointSource) DatasetReader {
	return &pointSourceReader{source: source}
}

type pointSourceReader struct {
	source PointSource
}

func (p *pointSourceReader) Read() (core.Dataset, error) {
	data := make(core.Dataset, 0, core.DefaultNumPoints)
	var point *core.Point
	var err error
	for point, err = p.source.Load(); err == nil; point, err = p.source.Load() {
		data = append(data, *point)
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "读取数据点出现问题")
	}

	return data, nil
}

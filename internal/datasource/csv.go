package datasource

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"io"
	"log"
	"strconv"
)

// 从CSV中读取点，xColumn与yColumn为坐标所在的列号，从0开始计算。
// 第一行无法解析时视为表头跳过
func NewCSVPointSource(in io.Reader, xColumn, yColumn int) PointSource {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return &csvPointSource{
		reader:  reader,
		xColumn: xColumn,
		yColumn: yColumn,
	}
}

type csvPointSource struct {
	reader     *csv.Reader
	xColumn    int
	yColumn    int
	recordRead int
}

func (c *csvPointSource) Load() (*core.Point, error) {
	for {
		record, err := c.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		} else if err != nil {
			return nil, errors.Wrap(err, "读取CSV数据出错")
		}
		c.recordRead++

		point, err := c.parse(record)
		if err != nil && c.recordRead == 1 {
			log.Printf("第1行数据无法解析，视为表头：%v", record)
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("第%d行数据有误", c.recordRead))
		}
		return point, nil
	}
}

func (c *csvPointSource) parse(record []string) (*core.Point, error) {
	if c.xColumn >= len(record) || c.yColumn >= len(record) {
		return nil, fmt.Errorf("列数为%d，不足以读取第%d与第%d列", len(record), c.xColumn, c.yColumn)
	}
	x, err := strconv.ParseFloat(record[c.xColumn], 64)
	if err != nil {
		return nil, errors.Wrap(err, "解析x坐标出错")
	}
	y, err := strconv.ParseFloat(record[c.yColumn], 64)
	if err != nil {
		return nil, errors.Wrap(err, "解析y坐标出错")
	}
	return &core.Point{X: x, Y: y}, nil
}

func NewDataLoader(format DataFormat, xColumn, yColumn int) DataFileLoader {
	switch format {
	case CSV:
		return &csvLoader{xColumn: xColumn, yColumn: yColumn}
	default:
		return nil
	}
}

type csvLoader struct {
	xColumn int
	yColumn int
}

func (c *csvLoader) Load(in io.Reader) (core.Dataset, error) {
	return NewPointSourceReader(NewCSVPointSource(in, c.xColumn, c.yColumn)).Read()
}

// 输出数据集，每行为x,y
func WriteDataset(out io.Writer, data core.Dataset, precision int) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	for i, point := range data {
		record := []string{
			strconv.FormatFloat(point.X, 'f', precision, 64),
			strconv.FormatFloat(point.Y, 'f', precision, 64),
		}
		err := writer.Write(record)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}

	return nil
}

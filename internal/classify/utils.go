package classify

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"io"
	"strconv"
)

// 输出中心，每行为x,y
func OutputResult(centers []core.Point, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	for _, center := range centers {
		record := []string{
			strconv.FormatFloat(center.X, 'f', precision, 64),
			strconv.FormatFloat(center.Y, 'f', precision, 64),
		}
		err := writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "写入数据错误")
		}
	}

	writer.Flush()
	return writer.Error()
}

// 输出每个点及其所属类别，每行为x,y,类别序号
func OutputAssignments(data core.Dataset, class []int, output io.Writer, precision int) error {
	if len(data) != len(class) {
		return errors.Wrapf(ErrAssignmentMismatch, "数据%d条，类别%d条", len(data), len(class))
	}

	writer := csv.NewWriter(output)
	for i, point := range data {
		record := []string{
			strconv.FormatFloat(point.X, 'f', precision, 64),
			strconv.FormatFloat(point.Y, 'f', precision, 64),
			strconv.Itoa(class[i]),
		}
		err := writer.Write(record)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}

	writer.Flush()
	return writer.Error()
}

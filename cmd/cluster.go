/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/internal/classify"
	"github.com/packagewjx/kmeans-visualizer/internal/datasource"
	"github.com/packagewjx/kmeans-visualizer/internal/plot"
	"github.com/packagewjx/kmeans-visualizer/internal/preprocess"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
	"log"
	"os"
)

// Flags for cluster
const (
	AlgorithmFlag       = "algorithm"
	OutputPrecisionFlag = "outputPrecision"
	AssignmentsFlag     = "assignments"
	PlotFlag            = "plot"
	NormalizeFlag       = "normalize"
	XColumnFlag         = "xColumn"
	YColumnFlag         = "yColumn"
	MaxIterationsFlag   = "max-iterations"
)

// Global Defaults
const (
	DefaultOutputPrecision = 2
)

// Flags for kmeanspp
const (
	KMeansRoundFlag = "kMeansRound"
)

var (
	algorithm       string
	outputPrecision int
	assignmentsFile string
	plotFile        string
	normalize       bool
	xColumn         int
	yColumn         int
	maxIterations   int
	kMeansRound     int
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster dataFile outputFile",
	Short: "读取数据文件聚类计算，并输出结果到新文件中",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("dataFile与outputFile不能一致")
		} else if xColumn == yColumn {
			return fmt.Errorf("x与y不能使用同一列")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		k, method, epsilon, seed, err := clusterConfig()
		if err != nil {
			return err
		}

		var algType classify.AlgorithmType
		var context interface{}
		switch classify.AlgorithmType(algorithm) {
		case classify.KMeansPPLibrary:
			algType = classify.KMeansPPLibrary
			context = &classify.KMeansPPContext{Round: kMeansRound}
		case classify.Lloyd:
			algType = classify.Lloyd
			context = &classify.LloydContext{
				Method:        method,
				Epsilon:       epsilon,
				MaxIterations: maxIterations,
				Rand:          classify.NewRand(seed),
			}
		default:
			return fmt.Errorf("未知的算法%s，可选值：%s, %s", algorithm, classify.Lloyd, classify.KMeansPPLibrary)
		}
		alg := classify.GetAlgorithm(algType)

		log.Println("读取数据中")
		data, err := loadDataFile(args[0])
		if err != nil {
			return err
		}
		bounds := core.Bounds{Width: width, Height: height}
		if normalize {
			data = preprocess.Default(bounds).Preprocess(data)
		} else {
			data = preprocess.Impute().Preprocess(data)
		}
		log.Printf("读取数据完成，共%d个点\n", len(data))

		log.Printf("运行%s算法中\n", algType)
		centers, class, err := alg.Run(data, k, context)
		if err != nil {
			return errors.Wrap(err, "聚类出错")
		}
		log.Printf("运行%s算法完成\n", algType)

		err = writeFile(args[1], func(out io.Writer) error {
			return classify.OutputResult(centers, out, outputPrecision)
		})
		if err != nil {
			return err
		}

		if assignmentsFile != "" {
			err = writeFile(assignmentsFile, func(out io.Writer) error {
				return classify.OutputAssignments(data, class, out, outputPrecision)
			})
			if err != nil {
				return err
			}
		}

		if plotFile != "" {
			err = writeFile(plotFile, func(out io.Writer) error {
				return plot.RenderScatter(out, &plot.Frame{
					Title:       fmt.Sprintf("%s (k=%d)", algType, k),
					Bounds:      bounds,
					Dataset:     data,
					Centroids:   centers,
					Assignments: class,
				})
			})
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func loadDataFile(fileName string) (core.Dataset, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("打开文件%s失败", fileName))
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := datasource.NewDataLoader(datasource.CSV, xColumn, yColumn).Load(f)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("读取文件%s失败", fileName))
	}
	return data, nil
}

func writeFile(fileName string, write func(out io.Writer) error) error {
	out, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("创建文件%s失败", fileName))
	}
	defer func() {
		_ = out.Close()
	}()

	if err = write(out); err != nil {
		return errors.Wrap(err, fmt.Sprintf("输出文件%s错误", fileName))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().StringVarP(&algorithm, AlgorithmFlag, "a", string(classify.Lloyd),
		"指定使用的算法。默认为lloyd，可选值：lloyd, kmeanspp")
	clusterCmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")
	clusterCmd.Flags().StringVar(&assignmentsFile, AssignmentsFlag, "",
		"若不为空，则将每个点及其所属类别输出到此文件")
	clusterCmd.Flags().StringVar(&plotFile, PlotFlag, "",
		"若不为空，则将聚类结果的散点图以HTML格式输出到此文件")
	clusterCmd.Flags().BoolVar(&normalize, NormalizeFlag, false,
		"是否将数据缩放到显示区域内")
	clusterCmd.Flags().Float64Var(&width, FlagWidth, core.DefaultWidth,
		"显示区域宽度")
	clusterCmd.Flags().Float64Var(&height, FlagHeight, core.DefaultHeight,
		"显示区域高度")
	clusterCmd.Flags().IntVarP(&xColumn, XColumnFlag, "x", 0,
		"x坐标所在的列号，从0开始计算")
	clusterCmd.Flags().IntVarP(&yColumn, YColumnFlag, "y", 1,
		"y坐标所在的列号，从0开始计算")

	// Flags for lloyd
	clusterCmd.Flags().IntVar(&maxIterations, MaxIterationsFlag, 0,
		"lloyd算法的最大迭代次数。为0时迭代直到收敛")

	// Flags for kmeanspp
	clusterCmd.Flags().IntVar(&kMeansRound, KMeansRoundFlag, classify.KMeansDefaultRound,
		"kmeanspp算法执行的轮次")
}

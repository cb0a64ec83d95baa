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
	"github.com/packagewjx/kmeans-visualizer/internal/datasource"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"math/rand"
	"os"
	"time"
)

const (
	FlagNumber = "number"
	FlagWidth  = "width"
	FlagHeight = "height"
)

var (
	numPoints int
	width     float64
	height    float64
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate outputFile",
	Short: "在显示区域内均匀随机生成数据集，并输出为CSV文件",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bounds := core.Bounds{Width: width, Height: height}
		seed := viper.GetInt64(FlagSeed)
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		generator := datasource.NewUniformGenerator(rand.New(rand.NewSource(seed)))
		data, err := generator.Generate(numPoints, bounds)
		if err != nil {
			return err
		}

		out, err := os.Create(args[0])
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("创建文件%s失败", args[0]))
		}
		defer func() {
			_ = out.Close()
		}()

		if err = datasource.WriteDataset(out, data, outputPrecision); err != nil {
			return errors.Wrap(err, "输出数据集失败")
		}
		log.Printf("已生成%d个点，输出到%s\n", len(data), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&numPoints, FlagNumber, "n", core.DefaultNumPoints,
		"生成的点数量")
	generateCmd.Flags().Float64Var(&width, FlagWidth, core.DefaultWidth,
		"显示区域宽度")
	generateCmd.Flags().Float64Var(&height, FlagHeight, core.DefaultHeight,
		"显示区域高度")
	generateCmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")
}

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
	"github.com/packagewjx/kmeans-visualizer/internal/server"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/spf13/cobra"
)

const (
	FlagPort        = "port"
	FlagDatasetFile = "dataset-file"
	FlagRateLimit   = "rate-limit"
)

var (
	port             uint16
	serverNumPoints  int
	serverWidth      float64
	serverHeight     float64
	serverIterations int
	datasetFile      string
	rateLimit        float64
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "K-Means演示服务器",
	Long: "启动HTTP服务器，维护一个聚类会话。浏览器可以通过接口生成新数据集、修改聚类配置、\n" +
		"点击选择手动中心、单步执行或者迭代至收敛，并在/plot查看当前状态的散点图。\n",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, method, epsilon, seed, err := clusterConfig()
		if err != nil {
			return err
		}

		server, err := server.NewServer(&server.ServerConfig{
			Port:                  port,
			Bounds:                core.Bounds{Width: serverWidth, Height: serverHeight},
			NumPoints:             serverNumPoints,
			K:                     k,
			Method:                method,
			Epsilon:               epsilon,
			MaxIterations:         serverIterations,
			Seed:                  seed,
			InitialDatasetCsvFile: datasetFile,
			RateLimit:             rateLimit,
		})
		if err != nil {
			return err
		}

		return server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().Uint16VarP(&port, FlagPort, "P", server.DefaultPort,
		"服务端口号")
	serverCmd.Flags().IntVarP(&serverNumPoints, FlagNumber, "n", core.DefaultNumPoints,
		"随机数据集的点数")
	serverCmd.Flags().Float64Var(&serverWidth, FlagWidth, core.DefaultWidth,
		"显示区域宽度")
	serverCmd.Flags().Float64Var(&serverHeight, FlagHeight, core.DefaultHeight,
		"显示区域高度")
	serverCmd.Flags().IntVar(&serverIterations, MaxIterationsFlag, server.DefaultMaxIterations,
		"迭代至收敛的最大轮次")
	serverCmd.Flags().StringVarP(&datasetFile, FlagDatasetFile, "f", "",
		"初始数据集文件。若不为空，则启动时读取此CSV文件并缩放到显示区域内，否则随机生成")
	serverCmd.Flags().Float64Var(&rateLimit, FlagRateLimit, server.DefaultRateLimit,
		"每秒允许的修改类请求数量")
}

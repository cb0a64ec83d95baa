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
	"github.com/mitchellh/go-homedir"
	"github.com/packagewjx/kmeans-visualizer/internal/classify"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"strings"
)

// Global Flags
const (
	FlagConfig  = "config"
	FlagK       = "k"
	FlagMethod  = "method"
	FlagEpsilon = "epsilon"
	FlagSeed    = "seed"
)

const envPrefix = "KMEANS"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kmeans-visualizer",
	Short: "交互式K-Means聚类演示工具",
	Long: "在二维平面上演示K-Means聚类的过程。支持手动、随机、最远点与kmeans++四种中心初始化方法，\n" +
		"可以生成随机数据集、对CSV数据文件聚类，或者启动HTTP服务器供浏览器单步执行聚类。\n",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, FlagConfig, "",
		"配置文件路径，默认为$HOME/.kmeans-visualizer.yaml")
	rootCmd.PersistentFlags().Int(FlagK, 3, "聚类数量")
	rootCmd.PersistentFlags().StringP(FlagMethod, "m", string(core.Random),
		fmt.Sprintf("中心初始化方法，可选值：%s", methodNames()))
	rootCmd.PersistentFlags().Float64(FlagEpsilon, classify.DefaultEpsilon,
		"收敛阈值。所有中心移动距离都不超过此值时视为收敛")
	rootCmd.PersistentFlags().Int64(FlagSeed, 0,
		"随机数种子。为0时使用当前时间")

	for _, name := range []string{FlagK, FlagMethod, FlagEpsilon, FlagSeed} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".kmeans-visualizer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".kmeans-visualizer")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// 从viper读取全局的聚类配置，命令行参数、环境变量与配置文件依次生效
func clusterConfig() (k int, method core.InitMethod, epsilon float64, seed int64, err error) {
	k = viper.GetInt(FlagK)
	method = core.InitMethod(viper.GetString(FlagMethod))
	epsilon = viper.GetFloat64(FlagEpsilon)
	seed = viper.GetInt64(FlagSeed)

	if !method.IsValid() {
		return 0, "", 0, 0, fmt.Errorf("未知的初始化方法%s，可选值：%s", method, methodNames())
	}
	return
}

func methodNames() string {
	names := make([]string, len(core.InitMethods))
	for i, m := range core.InitMethods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

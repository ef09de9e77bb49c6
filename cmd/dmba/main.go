// Copyright 2024 dmba Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/dmba-go/dmba/base/log"
	"github.com/dmba-go/dmba/cmd/version"
	"github.com/dmba-go/dmba/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCommand = &cobra.Command{
	Use:   "dmba",
	Short: "Data mining utilities with variable selection search.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		debug := conf.Log.Debug
		if cmd.Flags().Changed("debug") {
			debug, _ = cmd.Flags().GetBool("debug")
		}
		opts := log.OptionsFromFlags(cmd.Flags())
		if !cmd.Flags().Changed("log-path") {
			opts.Path = conf.Log.Path
		}
		if !cmd.Flags().Changed("log-max-size") {
			opts.MaxSize = conf.Log.MaxSize
		}
		if !cmd.Flags().Changed("log-max-age") {
			opts.MaxAge = conf.Log.MaxAge
		}
		if !cmd.Flags().Changed("log-max-backups") {
			opts.MaxBackups = conf.Log.MaxBackups
		}
		log.SetLoggerWithOptions(opts, debug)
		log.Logger().Debug("load config", zap.String("config", configPath), zap.Any("search", conf.Search))
		globalConfig = conf
		return nil
	},
	SilenceUsage: true,
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
	},
}

var globalConfig = config.GetDefaultConfig()

func init() {
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.AddCommand(versionCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

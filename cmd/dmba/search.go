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
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/dmba-go/dmba/base/log"
	"github.com/dmba-go/dmba/base/progress"
	"github.com/dmba-go/dmba/common/parallel"
	"github.com/dmba-go/dmba/config"
	"github.com/dmba-go/dmba/dataset"
	"github.com/dmba-go/dmba/linear"
	"github.com/dmba-go/dmba/metric"
	"github.com/dmba-go/dmba/selection"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchCommand = &cobra.Command{
	Use:   "search <dataset>",
	Short: "Select regression predictors of a dataset column.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := globalConfig.Search
		if cmd.Flags().Changed("method") {
			conf.Method, _ = cmd.Flags().GetString("method")
		}
		if cmd.Flags().Changed("direction") {
			conf.Direction, _ = cmd.Flags().GetString("direction")
		}
		if cmd.Flags().Changed("criterion") {
			conf.Criterion, _ = cmd.Flags().GetString("criterion")
		}
		if cmd.Flags().Changed("jobs") {
			conf.Jobs, _ = cmd.Flags().GetInt("jobs")
		}
		if cmd.Flags().Changed("verbose") {
			conf.Verbose, _ = cmd.Flags().GetBool("verbose")
		}
		if cmd.Flags().Changed("variables") {
			conf.Variables, _ = cmd.Flags().GetStringSlice("variables")
		}
		target, _ := cmd.Flags().GetString("target")

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()
		frame, err := loadFrame(ctx, globalConfig.Data, args[0])
		if err != nil {
			return errors.Trace(err)
		}
		return runSearch(ctx, cmd.OutOrStdout(), frame, target, conf)
	},
}

func init() {
	flags := searchCommand.Flags()
	flags.StringP("target", "t", "", "target column")
	flags.StringP("method", "m", config.MethodStepwise, "search method (exhaustive, backward, forward or stepwise)")
	flags.StringP("direction", "d", "both", "direction of stepwise search (forward, backward or both)")
	flags.String("criterion", "aic", "score of a model (aic, bic or adjr2)")
	flags.IntP("jobs", "j", 1, "number of models trained concurrently")
	flags.BoolP("verbose", "v", false, "print every round")
	flags.StringSlice("variables", nil, "candidate predictors (default all columns but the target)")
	_ = searchCommand.MarkFlagRequired("target")
	rootCommand.AddCommand(searchCommand)
}

type searchFunc func(context.Context, []string, selection.Trainer[string, *linear.Regression],
	selection.Scorer[string, *linear.Regression], *selection.Config) (*linear.Regression, []string, error)

var searchMethods = map[string]searchFunc{
	config.MethodBackward: selection.BackwardElimination[string, *linear.Regression],
	config.MethodForward:  selection.ForwardSelection[string, *linear.Regression],
	config.MethodStepwise: selection.StepwiseSelection[string, *linear.Regression],
}

// loadFrame loads a dataset, downloading it first when a mirror is configured.
func loadFrame(ctx context.Context, conf config.DataConfig, name string) (*dataset.Frame, error) {
	frame, err := dataset.LoadData(conf.Dir, name)
	if err == nil || !errors.Is(err, errors.NotFound) || conf.URL == "" {
		return frame, errors.Trace(err)
	}
	parallel.InitDownloadLimiter(conf.RateLimit)
	if _, err = dataset.Download(ctx, conf.URL, conf.Dir, name); err != nil {
		return nil, errors.Trace(err)
	}
	return dataset.LoadData(conf.Dir, name)
}

func runSearch(ctx context.Context, w io.Writer, frame *dataset.Frame, target string, conf config.SearchConfig) error {
	criterion, err := linear.ParseCriterion(conf.Criterion)
	if err != nil {
		return errors.Trace(err)
	}
	direction, err := selection.ParseDirection(conf.Direction)
	if err != nil {
		return errors.Trace(err)
	}
	variables := conf.Variables
	if len(variables) == 0 {
		variables = lo.Without(frame.Columns(), target)
	}
	problem, err := linear.NewProblem(frame, target, variables, criterion)
	if err != nil {
		return errors.Trace(err)
	}
	searchConfig := selection.NewConfig().
		SetDirection(direction).
		SetJobs(conf.Jobs).
		SetVerbose(conf.Verbose).
		SetOutput(w)

	var bar *progressbar.ProgressBar
	if !conf.Verbose {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(conf.Method),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
		defer func() { _ = bar.Finish() }()
	}
	tracer := progress.NewTracer("dmba").OnUpdate(func(p progress.Progress) {
		if bar == nil || p.Total <= 0 {
			return
		}
		bar.ChangeMax(p.Total)
		_ = bar.Set(p.Count)
	})
	ctx, span := tracer.Start(ctx, conf.Method, 0)
	log.Logger().Info("start variable selection",
		zap.String("method", conf.Method),
		zap.String("target", target),
		zap.Strings("variables", variables),
		zap.String("criterion", string(criterion)))

	switch conf.Method {
	case config.MethodExhaustive:
		results, err := selection.ExhaustiveSearch(ctx, variables, problem.Trainer(), problem.Scorer(), searchConfig)
		if err != nil {
			span.Fail(err)
			return errors.Trace(err)
		}
		span.End()
		return renderSubsets(w, results)
	default:
		search, ok := searchMethods[conf.Method]
		if !ok {
			err = errors.NotValidf("search method %q", conf.Method)
			span.Fail(err)
			return err
		}
		model, selected, err := search(ctx, variables, problem.Trainer(), problem.Scorer(), searchConfig)
		if err != nil {
			span.Fail(err)
			return errors.Trace(err)
		}
		span.End()
		return renderModel(w, frame, target, model, selected)
	}
}

func renderSubsets(w io.Writer, results []selection.SubsetResult[string, *linear.Regression]) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Size", "Score", "Variables"})
	for _, result := range results {
		if err := table.Append([]string{
			strconv.Itoa(result.Size),
			strconv.FormatFloat(result.Score, 'f', 4, 64),
			strings.Join(result.Variables, ", "),
		}); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

func renderModel(w io.Writer, frame *dataset.Frame, target string, model *linear.Regression, selected []string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Predictor", "Coefficient"})
	rows := [][]string{{"intercept", strconv.FormatFloat(model.Intercept, 'f', 6, 64)}}
	for i, name := range selected {
		rows = append(rows, []string{name, strconv.FormatFloat(model.Coefficients[i], 'f', 6, 64)})
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return errors.Trace(err)
		}
	}
	if err := table.Render(); err != nil {
		return errors.Trace(err)
	}

	y, err := frame.Float(target)
	if err != nil {
		return errors.Trace(err)
	}
	x, err := frame.Matrix(selected)
	if err != nil {
		return errors.Trace(err)
	}
	return metric.RegressionSummary(w, y, model.Predict(x))
}

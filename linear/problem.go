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
package linear

import (
	"context"
	"strings"

	"github.com/dmba-go/dmba/dataset"
	"github.com/dmba-go/dmba/metric"
	"github.com/dmba-go/dmba/selection"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

type Criterion string

const (
	AIC        Criterion = "aic"
	BIC        Criterion = "bic"
	AdjustedR2 Criterion = "adjr2"
)

func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(strings.ToLower(s)); c {
	case AIC, BIC, AdjustedR2:
		return c, nil
	default:
		return "", errors.NotValidf("criterion %q (expect aic, bic or adjr2)", s)
	}
}

// Problem is a regression of one target column on candidate predictor columns.
// Columns are parsed once and shared by all fits.
type Problem struct {
	target    []float64
	columns   map[string][]float64
	criterion Criterion
}

func NewProblem(frame *dataset.Frame, target string, predictors []string, criterion Criterion) (*Problem, error) {
	y, err := frame.Float(target)
	if err != nil {
		return nil, errors.Trace(err)
	}
	problem := &Problem{
		target:    y,
		columns:   make(map[string][]float64, len(predictors)),
		criterion: criterion,
	}
	for _, name := range predictors {
		if name == target {
			return nil, errors.NotValidf("target %q as predictor", target)
		}
		if problem.columns[name], err = frame.Float(name); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return problem, nil
}

func (p *Problem) design(variables []string) ([][]float64, error) {
	for _, v := range variables {
		if _, ok := p.columns[v]; !ok {
			return nil, errors.NotFoundf("predictor %q", v)
		}
	}
	return lo.Times(len(p.target), func(i int) []float64 {
		return lo.Map(variables, func(v string, _ int) float64 {
			return p.columns[v][i]
		})
	}), nil
}

// Train fits a regression on the given predictors.
func (p *Problem) Train(_ context.Context, variables []string) (*Regression, error) {
	x, err := p.design(variables)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return Fit(x, p.target)
}

// Score rates a regression by the configured criterion, lower being better.
// Adjusted R² is negated.
func (p *Problem) Score(_ context.Context, model *Regression, variables []string) (float64, error) {
	x, err := p.design(variables)
	if err != nil {
		return 0, errors.Trace(err)
	}
	predictions := model.Predict(x)
	df := metric.DegreesOfFreedom(len(model.Coefficients))
	switch p.criterion {
	case AIC:
		return metric.AICScore(p.target, predictions, df), nil
	case BIC:
		return metric.BICScore(p.target, predictions, df), nil
	case AdjustedR2:
		return -metric.AdjustedR2Score(p.target, predictions, len(model.Coefficients)), nil
	default:
		return 0, errors.NotValidf("criterion %q", p.criterion)
	}
}

func (p *Problem) Trainer() selection.Trainer[string, *Regression] {
	return p.Train
}

func (p *Problem) Scorer() selection.Scorer[string, *Regression] {
	return p.Score
}

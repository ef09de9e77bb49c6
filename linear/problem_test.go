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
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/dmba-go/dmba/dataset"
	"github.com/dmba-go/dmba/selection"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthetic builds y = 3 + 2*x1 - x2 + noise with an unrelated column x3.
func synthetic(t *testing.T) *dataset.Frame {
	rng := rand.New(rand.NewSource(0))
	var builder strings.Builder
	builder.WriteString("x1,x2,x3,label,y\n")
	for i := 0; i < 200; i++ {
		x1, x2, x3 := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		y := 3 + 2*x1 - x2 + 0.1*rng.NormFloat64()
		_, _ = fmt.Fprintf(&builder, "%v,%v,%v,class%d,%v\n", x1, x2, x3, i%2, y)
	}
	frame, err := dataset.ReadCSV(strings.NewReader(builder.String()))
	require.NoError(t, err)
	return frame
}

func TestParseCriterion(t *testing.T) {
	c, err := ParseCriterion("AIC")
	assert.NoError(t, err)
	assert.Equal(t, AIC, c)
	c, err = ParseCriterion("bic")
	assert.NoError(t, err)
	assert.Equal(t, BIC, c)
	c, err = ParseCriterion("adjr2")
	assert.NoError(t, err)
	assert.Equal(t, AdjustedR2, c)
	_, err = ParseCriterion("r2")
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestNewProblem(t *testing.T) {
	frame := synthetic(t)
	_, err := NewProblem(frame, "y", []string{"x1", "label"}, AIC)
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewProblem(frame, "y", []string{"x1", "y"}, AIC)
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewProblem(frame, "z", []string{"x1"}, AIC)
	assert.True(t, errors.Is(err, errors.NotFound))

	problem, err := NewProblem(frame, "y", []string{"x1"}, AIC)
	require.NoError(t, err)
	_, err = problem.Train(context.Background(), []string{"x2"})
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestProblem_Selection(t *testing.T) {
	frame := synthetic(t)
	predictors := []string{"x1", "x2", "x3"}
	for _, criterion := range []Criterion{AIC, BIC, AdjustedR2} {
		problem, err := NewProblem(frame, "y", predictors, criterion)
		require.NoError(t, err)

		results, err := selection.ExhaustiveSearch(context.Background(), predictors, problem.Trainer(), problem.Scorer(), nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, []string{"x1"}, results[0].Variables, criterion)
		assert.Equal(t, []string{"x1", "x2"}, results[1].Variables, criterion)
		assert.InDelta(t, 2.0, results[1].Model.Coefficients[0], 0.1)
		assert.InDelta(t, -1.0, results[1].Model.Coefficients[1], 0.1)

		_, chosen, err := selection.ForwardSelection(context.Background(), predictors, problem.Trainer(), problem.Scorer(), nil)
		require.NoError(t, err)
		assert.Subset(t, chosen, []string{"x1", "x2"}, criterion)

		model, chosen, err := selection.BackwardElimination(context.Background(), predictors, problem.Trainer(), problem.Scorer(),
			selection.NewConfig().SetJobs(2))
		require.NoError(t, err)
		assert.Subset(t, chosen, []string{"x1", "x2"}, criterion)
		assert.Len(t, model.Coefficients, len(chosen))

		_, chosen, err = selection.StepwiseSelection(context.Background(), predictors, problem.Trainer(), problem.Scorer(), nil)
		require.NoError(t, err)
		assert.Subset(t, chosen, []string{"x1", "x2"}, criterion)
	}
}

func TestProblem_ScoreOrdering(t *testing.T) {
	frame := synthetic(t)
	problem, err := NewProblem(frame, "y", []string{"x1", "x2", "x3"}, AdjustedR2)
	require.NoError(t, err)
	score := func(variables []string) float64 {
		model, err := problem.Train(context.Background(), variables)
		require.NoError(t, err)
		s, err := problem.Score(context.Background(), model, variables)
		require.NoError(t, err)
		return s
	}
	// a constant model explains nothing
	assert.InDelta(t, 0.0, score(nil), 1e-9)
	assert.Less(t, score([]string{"x1", "x2"}), score([]string{"x1"}))
	assert.Less(t, score([]string{"x1"}), score([]string{"x3"}))
}

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
package selection

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// interactionScore is the weight sum minus a tenth of the weight product.
func interactionScore(weights map[string]float64) Scorer[string, string] {
	return func(_ context.Context, _ string, variables []string) (float64, error) {
		sum, prod := 0.0, 1.0
		for _, v := range variables {
			sum += weights[v]
			prod *= weights[v]
		}
		return sum - 0.1*prod, nil
	}
}

func TestStepwiseSelection(t *testing.T) {
	variables := []string{"a", "b", "c"}
	score := interactionScore(map[string]float64{"a": -4, "b": -2, "c": 3})
	for _, direction := range []Direction{Both, Forward, Backward} {
		model, chosen, err := StepwiseSelection(context.Background(), variables, namedModel, score,
			NewConfig().SetDirection(direction))
		assert.NoError(t, err, direction.String())
		assert.Equal(t, []string{"a", "b"}, chosen, direction.String())
		assert.Equal(t, "Model-ab", model, direction.String())
	}
	// unknown directions behave like both
	_, chosen, err := StepwiseSelection(context.Background(), variables, namedModel, score,
		NewConfig().SetDirection(Direction(-1)))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, chosen)
}

func TestStepwiseSelection_Verbose(t *testing.T) {
	var buf bytes.Buffer
	variables := []string{"a", "b", "c"}
	score := interactionScore(map[string]float64{"a": -4, "b": -2, "c": 3})
	_, _, err := StepwiseSelection(context.Background(), variables, namedModel, score,
		NewConfig().SetDirection(Backward).SetVerbose(true).SetOutput(&buf))
	assert.NoError(t, err)
	assert.Equal(t, "Variables: a, b, c\n"+
		"Start: score=-5.40\n"+
		"Step: score=-6.80, remove c\n"+
		"Step: score=-6.80, unchanged\n", buf.String())
}

func TestStepwiseSelection_RemovesAfterAdding(t *testing.T) {
	// c is the best single variable but becomes useless once a and b are in
	score := func(_ context.Context, _ string, variables []string) (float64, error) {
		set := make(map[string]bool)
		for _, v := range variables {
			set[v] = true
		}
		s := 0.0
		if set["c"] {
			s -= 5
		}
		if set["a"] {
			s -= 3
		}
		if set["b"] {
			s -= 3
		}
		if set["a"] && set["b"] {
			s -= 4
		}
		if set["a"] && set["b"] && set["c"] {
			s += 6
		}
		return s, nil
	}
	variables := []string{"a", "b", "c"}
	_, chosen, err := StepwiseSelection(context.Background(), variables, namedModel, score, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, chosen)

	// forward selection cannot drop c
	_, chosen, err = ForwardSelection(context.Background(), variables, namedModel, score, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, chosen)
}

func TestStepwiseSelection_MatchesSingleDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	variables := []string{"a", "b", "c", "d", "e", "f"}
	for trial := 0; trial < 20; trial++ {
		weights := make(map[string]float64)
		for _, v := range variables {
			weights[v] = rng.NormFloat64()
		}
		score := weightSum(weights, 1)

		expectedModel, expected, err := ForwardSelection(context.Background(), variables, namedModel, score, nil)
		assert.NoError(t, err)
		model, chosen, err := StepwiseSelection(context.Background(), variables, namedModel, score,
			NewConfig().SetDirection(Forward))
		assert.NoError(t, err)
		assert.Equal(t, expected, chosen)
		assert.Equal(t, expectedModel, model)

		expectedModel, expected, err = BackwardElimination(context.Background(), variables, namedModel, score, nil)
		assert.NoError(t, err)
		model, chosen, err = StepwiseSelection(context.Background(), variables, namedModel, score,
			NewConfig().SetDirection(Backward).SetJobs(4))
		assert.NoError(t, err)
		if len(expected) > 1 {
			assert.Equal(t, expected, chosen)
			assert.Equal(t, expectedModel, model)
		}
	}
}

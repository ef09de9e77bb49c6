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
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	x := [][]float64{{0, 1}, {1, 0}, {2, 3}, {3, 1}, {4, 5}, {5, 2}}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 1 + 2*row[0] - 3*row[1]
	}
	model, err := Fit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, model.Intercept, 1e-9)
	assert.InDeltaSlice(t, []float64{2, -3}, model.Coefficients, 1e-9)
	assert.InDeltaSlice(t, y, model.Predict(x), 1e-9)
}

func TestFit_Constant(t *testing.T) {
	x := [][]float64{{}, {}, {}, {}}
	model, err := Fit(x, []float64{1, 2, 3, 6})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, model.Intercept, 1e-12)
	assert.Empty(t, model.Coefficients)
	assert.InDeltaSlice(t, []float64{3, 3}, model.Predict([][]float64{{}, {}}), 1e-12)
}

func TestFit_Invalid(t *testing.T) {
	_, err := Fit([][]float64{{1}}, []float64{1, 2})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = Fit([][]float64{{1, 2}, {3}, {4, 5}, {6, 7}}, []float64{1, 2, 3, 4})
	assert.True(t, errors.Is(err, errors.NotValid))
	// more coefficients than rows
	_, err = Fit([][]float64{{1, 2}, {3, 4}}, []float64{1, 2})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = Fit(nil, nil)
	assert.True(t, errors.Is(err, errors.NotValid))
}

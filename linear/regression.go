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
	"github.com/dmba-go/dmba/base/log"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Regression is an ordinary least squares model with intercept.
type Regression struct {
	Intercept    float64
	Coefficients []float64
}

// Fit solves the least squares problem for rows of x. A model without features
// predicts the mean of y.
func Fit(x [][]float64, y []float64) (*Regression, error) {
	n := len(y)
	if len(x) != n {
		return nil, errors.NotValidf("%d rows and %d targets", len(x), n)
	}
	p := 0
	if n > 0 {
		p = len(x[0])
	}
	if n < p+1 {
		return nil, errors.NotValidf("%d rows for %d coefficients", n, p+1)
	}
	design := mat.NewDense(n, p+1, nil)
	for i, row := range x {
		if len(row) != p {
			return nil, errors.NotValidf("row %d has %d values, expect %d", i, len(row), p)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	var beta mat.VecDense
	if err := beta.SolveVec(design, mat.NewVecDense(n, y)); err != nil {
		var condition mat.Condition
		if !errors.As(err, &condition) {
			return nil, errors.Trace(err)
		}
		log.Logger().Warn("ill-conditioned least squares problem", zap.Error(err))
	}
	model := &Regression{
		Intercept:    beta.AtVec(0),
		Coefficients: make([]float64, p),
	}
	for j := range model.Coefficients {
		model.Coefficients[j] = beta.AtVec(j + 1)
	}
	return model, nil
}

func (r *Regression) Predict(x [][]float64) []float64 {
	predictions := make([]float64, len(x))
	for i, row := range x {
		predictions[i] = r.Intercept
		for j, v := range row {
			predictions[i] += r.Coefficients[j] * v
		}
	}
	return predictions
}

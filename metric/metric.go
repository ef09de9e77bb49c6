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
package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DegreesOfFreedom of a linear model with numCoefficients slopes and an intercept.
func DegreesOfFreedom(numCoefficients int) int {
	return numCoefficients + 1
}

// RSquared is the coefficient of determination.
func RSquared(yTrue, yPred []float64) float64 {
	return stat.RSquaredFrom(yPred, yTrue, nil)
}

// AdjustedR2Score corrects R² for the number of coefficients. It is 0 when the
// model has too many coefficients for the number of observations.
func AdjustedR2Score(yTrue, yPred []float64, numCoefficients int) float64 {
	n := len(yPred)
	p := numCoefficients
	if p >= n-1 {
		return 0
	}
	r2 := RSquared(yTrue, yPred)
	return 1 - (1-r2)*float64(n-1)/float64(n-p-1)
}

// SSE is the sum of squared residuals.
func SSE(yTrue, yPred []float64) float64 {
	residuals := make([]float64, len(yTrue))
	floats.SubTo(residuals, yTrue, yPred)
	return floats.Dot(residuals, residuals)
}

// AICScore is the Akaike information criterion of a Gaussian model with df
// degrees of freedom.
func AICScore(yTrue, yPred []float64, df int) float64 {
	n := float64(len(yPred))
	sse := SSE(yTrue, yPred)
	constant := n + n*math.Log(2*math.Pi)
	return n*math.Log(sse/n) + constant + 2*float64(df+1)
}

// BICScore is the Schwarz Bayesian information criterion.
func BICScore(yTrue, yPred []float64, df int) float64 {
	n := float64(len(yPred))
	aic := AICScore(yTrue, yPred, df)
	return aic - 2*float64(df+1) + math.Log(n)*float64(df+1)
}

// RMSE is the root mean squared error.
func RMSE(yTrue, yPred []float64) float64 {
	return math.Sqrt(SSE(yTrue, yPred) / float64(len(yTrue)))
}

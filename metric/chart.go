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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LiftChart groups predictions sorted by descending probability into deciles and
// returns the mean of each decile divided by the overall mean.
func LiftChart(predicted []float64) []float64 {
	if len(predicted) == 0 {
		return nil
	}
	sums := make([]float64, 10)
	counts := make([]float64, 10)
	for i, p := range predicted {
		group := 10 * i / len(predicted)
		sums[group] += p
		counts[group]++
	}
	overall := stat.Mean(predicted, nil)
	var lift []float64
	for group := range sums {
		if counts[group] > 0 {
			lift = append(lift, sums[group]/counts[group]/overall)
		}
	}
	return lift
}

// GainsChart returns cumulative gains with a leading zero, so that element i is
// the gain of the first i records.
func GainsChart(gains []float64) []float64 {
	cumulative := make([]float64, len(gains)+1)
	if len(gains) > 0 {
		floats.CumSum(cumulative[1:], gains)
	}
	return cumulative
}

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
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RegressionSummary prints mean error, RMSE and MAE. Percentage errors are added
// when no actual value is zero.
func RegressionSummary(w io.Writer, yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return errors.NotValidf("%d actual values and %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return errors.NotValidf("empty values")
	}
	residuals := make([]float64, len(yTrue))
	floats.SubTo(residuals, yTrue, yPred)
	absResiduals := lo.Map(residuals, func(r float64, _ int) float64 { return math.Abs(r) })
	metrics := []lo.Tuple2[string, float64]{
		{A: "Mean Error (ME)", B: stat.Mean(residuals, nil)},
		{A: "Root Mean Squared Error (RMSE)", B: RMSE(yTrue, yPred)},
		{A: "Mean Absolute Error (MAE)", B: stat.Mean(absResiduals, nil)},
	}
	if lo.EveryBy(yTrue, func(y float64) bool { return y != 0 }) {
		ratios := make([]float64, len(yTrue))
		floats.DivTo(ratios, residuals, yTrue)
		absRatios := lo.Map(ratios, func(r float64, _ int) float64 { return math.Abs(r) })
		metrics = append(metrics,
			lo.Tuple2[string, float64]{A: "Mean Percentage Error (MPE)", B: 100 * stat.Mean(ratios, nil)},
			lo.Tuple2[string, float64]{A: "Mean Absolute Percentage Error (MAPE)", B: 100 * stat.Mean(absRatios, nil)},
		)
	}
	width := lo.Max(lo.Map(metrics, func(m lo.Tuple2[string, float64], _ int) int { return len(m.A) }))
	if _, err := fmt.Fprint(w, "\nRegression statistics\n\n"); err != nil {
		return errors.Trace(err)
	}
	for _, m := range metrics {
		if _, err := fmt.Fprintf(w, "%*s : %.4f\n", width, m.A, m.B); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// ConfusionMatrix counts predictions per actual class. Rows are actual classes,
// columns are predicted classes, both in ascending label order.
func ConfusionMatrix(yTrue, yPred []int) ([][]int, []int) {
	labels := mapset.NewThreadUnsafeSet(yTrue...)
	labels.Append(yPred...)
	sorted := labels.ToSlice()
	sort.Ints(sorted)
	index := make(map[int]int, len(sorted))
	for i, label := range sorted {
		index[label] = i
	}
	matrix := make([][]int, len(sorted))
	for i := range matrix {
		matrix[i] = make([]int, len(sorted))
	}
	for i := range yTrue {
		matrix[index[yTrue[i]]][index[yPred[i]]]++
	}
	return matrix, sorted
}

// Accuracy is the fraction of correct predictions.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ClassificationSummary prints the accuracy and the confusion matrix. Class names
// default to the class labels.
func ClassificationSummary(w io.Writer, yTrue, yPred []int, classNames []string) error {
	if len(yTrue) != len(yPred) {
		return errors.NotValidf("%d actual values and %d predictions", len(yTrue), len(yPred))
	}
	matrix, labels := ConfusionMatrix(yTrue, yPred)
	names := classNames
	if names == nil {
		names = lo.Map(labels, func(label, _ int) string { return strconv.Itoa(label) })
	}
	if len(names) != len(labels) {
		return errors.NotValidf("%d class names for %d classes", len(names), len(labels))
	}
	cells := lo.Map(matrix, func(row []int, _ int) []string {
		return lo.Map(row, func(count, _ int) string { return strconv.Itoa(count) })
	})

	const prediction, actual = "Prediction", "Actual"
	labelWidth := lo.Max(lo.Map(names, func(s string, _ int) int { return len(s) }))
	cellWidth := labelWidth
	for _, row := range cells {
		for _, cell := range row {
			cellWidth = max(cellWidth, len(cell))
		}
	}
	cellWidth++
	labelWidth = max(labelWidth, len(actual))

	if _, err := fmt.Fprintf(w, "Confusion Matrix (Accuracy %.4f)\n\n", Accuracy(yTrue, yPred)); err != nil {
		return errors.Trace(err)
	}
	if _, err := fmt.Fprintf(w, "%*s %s\n", labelWidth, " ", prediction); err != nil {
		return errors.Trace(err)
	}
	writeRow := func(label string, row []string) error {
		line := fmt.Sprintf("%*s", labelWidth, label)
		for _, cell := range row {
			line += fmt.Sprintf("%*s", cellWidth, cell)
		}
		_, err := fmt.Fprintln(w, line)
		return errors.Trace(err)
	}
	if err := writeRow(actual, names); err != nil {
		return err
	}
	for i, row := range cells {
		if err := writeRow(names[i], row); err != nil {
			return err
		}
	}
	return nil
}

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
	"context"

	"github.com/dmba-go/dmba/base/log"
	"github.com/dmba-go/dmba/base/progress"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/combin"
)

// ExhaustiveSearch evaluates every subset of variables and returns the best subset
// for each size from 1 to len(variables). Subsets keep the relative order of
// variables and, on equal scores, the first subset enumerated wins. The number of
// trained models grows as 2^len(variables).
func ExhaustiveSearch[V comparable, M any](ctx context.Context, variables []V, train Trainer[V, M], score Scorer[V, M],
	config *Config) ([]SubsetResult[V, M], error) {
	config = config.LoadDefaultIfNil()
	if err := validateVariables(variables); err != nil {
		return nil, errors.Trace(err)
	}
	total := 0
	for k := 1; k <= len(variables); k++ {
		total += combin.Binomial(len(variables), k)
	}
	ctx, span := progress.Start(ctx, "ExhaustiveSearch", total)
	config.printVariables(names(variables))

	result := make([]SubsetResult[V, M], 0, len(variables))
	for k := 1; k <= len(variables); k++ {
		combinations := combin.Combinations(len(variables), k)
		candidates := make([]Candidate[V, M], len(combinations))
		for i, indices := range combinations {
			candidates[i].Variables = lo.Map(indices, func(index, _ int) V {
				return variables[index]
			})
		}
		if err := evaluateAll(ctx, train, score, candidates, config.Jobs); err != nil {
			span.Fail(err)
			return nil, errors.Trace(err)
		}
		span.Add(len(candidates))

		best := candidates[argMin(len(candidates), func(i int) float64 {
			return candidates[i].Score
		})]
		result = append(result, SubsetResult[V, M]{
			Size:      k,
			Variables: best.Variables,
			Score:     best.Score,
			Model:     best.Model,
		})
		log.Logger().Debug("exhaustive search",
			zap.Int("size", k),
			zap.Int("subsets", len(candidates)),
			zap.Strings("variables", names(best.Variables)),
			zap.Float64("score", best.Score))
		config.printf("Size %d: score=%.2f, %v", k, best.Score, names(best.Variables))
	}
	span.End()
	return result, nil
}

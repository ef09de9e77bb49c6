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
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dmba-go/dmba/base/log"
	"github.com/dmba-go/dmba/base/progress"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// StepwiseSelection adds and/or removes one variable per round, depending on
// config.Direction. Searches allowing forward moves start from no variables,
// backward-only searches start from all variables. Additions and removals compete
// in the same round and the search stops once no move improves the score.
func StepwiseSelection[V comparable, M any](ctx context.Context, variables []V, train Trainer[V, M], score Scorer[V, M],
	config *Config) (M, []V, error) {
	config = config.LoadDefaultIfNil()
	return climb(ctx, variables, train, score, config, climbOptions{
		name:     "StepwiseSelection",
		forward:  config.Direction.forward(),
		backward: config.Direction.backward(),
	})
}

type climbOptions struct {
	name     string
	forward  bool
	backward bool
	// floor stops the search once the incumbent has at most this many
	// variables. Zero disables it.
	floor int
}

func climb[V comparable, M any](ctx context.Context, variables []V, train Trainer[V, M], score Scorer[V, M],
	config *Config, opts climbOptions) (M, []V, error) {
	var zero M
	if err := validateVariables(variables); err != nil {
		return zero, nil, errors.Trace(err)
	}
	var start []V
	if !opts.forward {
		start = slices.Clone(variables)
	}
	ctx, span := progress.Start(ctx, opts.name, len(variables))
	incumbent, err := evaluate(ctx, train, score, start)
	if err != nil {
		span.Fail(err)
		return zero, nil, errors.Trace(err)
	}
	config.printVariables(names(variables))
	if len(incumbent.Variables) == 0 {
		config.printf("Start: score=%.2f, constant", incumbent.Score)
	} else {
		config.printf("Start: score=%.2f", incumbent.Score)
	}

	for round := 1; opts.floor == 0 || len(incumbent.Variables) > opts.floor; round++ {
		steps := []Step[V, M]{{Candidate: incumbent, Action: Unchanged}}
		if opts.forward {
			included := mapset.NewThreadUnsafeSet(incumbent.Variables...)
			for _, v := range variables {
				if included.Contains(v) {
					continue
				}
				steps = append(steps, Step[V, M]{
					Candidate: Candidate[V, M]{Variables: append(slices.Clone(incumbent.Variables), v)},
					Action:    Add,
					Variable:  v,
				})
			}
		}
		if opts.backward {
			for _, v := range incumbent.Variables {
				steps = append(steps, Step[V, M]{
					Candidate: Candidate[V, M]{Variables: lo.Without(incumbent.Variables, v)},
					Action:    Remove,
					Variable:  v,
				})
			}
		}

		// the incumbent is already scored
		moves := lo.Map(steps[1:], func(step Step[V, M], _ int) Candidate[V, M] {
			return step.Candidate
		})
		if err := evaluateAll(ctx, train, score, moves, config.Jobs); err != nil {
			span.Fail(err)
			return zero, nil, errors.Trace(err)
		}
		for i := range moves {
			steps[i+1].Candidate = moves[i]
		}

		best := steps[argMin(len(steps), func(i int) float64 {
			return steps[i].Score
		})]
		span.Add(1)
		log.Logger().Debug(opts.name,
			zap.Int("round", round),
			zap.Int("candidates", len(steps)),
			zap.String("action", best.describe()),
			zap.Float64("score", best.Score))
		config.printf("Step: score=%.2f, %s", best.Score, best.describe())
		if best.Action == Unchanged {
			break
		}
		incumbent = best.Candidate
	}
	span.End()
	log.Logger().Info("variable selection completed",
		zap.String("method", opts.name),
		zap.Strings("variables", names(incumbent.Variables)),
		zap.Float64("score", incumbent.Score))
	return incumbent.Model, incumbent.Variables, nil
}

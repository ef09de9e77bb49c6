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
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dmba-go/dmba/common/parallel"
	"github.com/juju/errors"
)

// Trainer fits a model on a subset of variables. It must accept the empty subset.
type Trainer[V comparable, M any] func(ctx context.Context, variables []V) (M, error)

// Scorer scores a model trained on variables. Lower scores are better.
type Scorer[V comparable, M any] func(ctx context.Context, model M, variables []V) (float64, error)

// Candidate is a trained and scored variable subset.
type Candidate[V comparable, M any] struct {
	Variables []V
	Model     M
	Score     float64
}

// SubsetResult is the best subset of a given size found by ExhaustiveSearch.
type SubsetResult[V comparable, M any] struct {
	Size      int
	Variables []V
	Score     float64
	Model     M
}

type Action int

const (
	Unchanged Action = iota
	Add
	Remove
)

func (a Action) String() string {
	switch a {
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return "unchanged"
	}
}

// Step is a candidate move of one round. Variable is the zero value for Unchanged.
type Step[V comparable, M any] struct {
	Candidate[V, M]
	Action   Action
	Variable V
}

func (s *Step[V, M]) describe() string {
	if s.Action == Unchanged {
		return s.Action.String()
	}
	return fmt.Sprintf("%v %v", s.Action, s.Variable)
}

type Direction int

const (
	Both Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "both"
	}
}

// forward reports whether variables may be added. Unknown values behave like Both.
func (d Direction) forward() bool {
	return d != Backward
}

// backward reports whether variables may be removed. Unknown values behave like Both.
func (d Direction) backward() bool {
	return d != Forward
}

// ParseDirection parses forward, backward or both, ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "both", "":
		return Both, nil
	default:
		return Both, errors.NotValidf("direction %q (expect forward, backward or both)", s)
	}
}

// Config controls a search. The zero value is not usable, use NewConfig.
type Config struct {
	// Direction of stepwise selection.
	Direction Direction
	// Jobs is the number of candidates of a round evaluated concurrently.
	Jobs int
	// Verbose prints one line per round to Output.
	Verbose bool
	Output  io.Writer
}

func NewConfig() *Config {
	return &Config{
		Direction: Both,
		Jobs:      1,
		Output:    os.Stdout,
	}
}

func (config *Config) SetDirection(direction Direction) *Config {
	config.Direction = direction
	return config
}

func (config *Config) SetJobs(jobs int) *Config {
	config.Jobs = jobs
	return config
}

func (config *Config) SetVerbose(verbose bool) *Config {
	config.Verbose = verbose
	return config
}

func (config *Config) SetOutput(w io.Writer) *Config {
	config.Output = w
	return config
}

func (config *Config) LoadDefaultIfNil() *Config {
	if config == nil {
		return NewConfig()
	}
	return config
}

func (config *Config) printf(format string, args ...any) {
	if !config.Verbose || config.Output == nil {
		return
	}
	_, _ = fmt.Fprintf(config.Output, format+"\n", args...)
}

func (config *Config) printVariables(variables []string) {
	config.printf("Variables: %s", strings.Join(variables, ", "))
}

func validateVariables[V comparable](variables []V) error {
	seen := mapset.NewThreadUnsafeSetWithSize[V](len(variables))
	for _, v := range variables {
		if !seen.Add(v) {
			return errors.NotValidf("duplicate variable %v", v)
		}
	}
	return nil
}

func names[V comparable](variables []V) []string {
	result := make([]string, len(variables))
	for i, v := range variables {
		result[i] = fmt.Sprint(v)
	}
	return result
}

// evaluate trains and scores one subset. The trainer gets its own copy of the
// subset so that it cannot alias the candidate.
func evaluate[V comparable, M any](ctx context.Context, train Trainer[V, M], score Scorer[V, M], variables []V) (Candidate[V, M], error) {
	variables = slices.Clone(variables)
	if variables == nil {
		variables = []V{}
	}
	model, err := train(ctx, slices.Clone(variables))
	if err != nil {
		return Candidate[V, M]{}, errors.Trace(err)
	}
	s, err := score(ctx, model, variables)
	if err != nil {
		return Candidate[V, M]{}, errors.Trace(err)
	}
	return Candidate[V, M]{Variables: variables, Model: model, Score: s}, nil
}

// evaluateAll fills in the model and score of every candidate. Candidates are
// independent so they may run concurrently; results stay index-addressed.
func evaluateAll[V comparable, M any](ctx context.Context, train Trainer[V, M], score Scorer[V, M], candidates []Candidate[V, M], jobs int) error {
	return parallel.Parallel(ctx, len(candidates), jobs, func(_, jobId int) error {
		c, err := evaluate(ctx, train, score, candidates[jobId].Variables)
		if err != nil {
			return err
		}
		candidates[jobId] = c
		return nil
	})
}

// argMin returns the index of the first strictly lowest score.
func argMin(n int, score func(i int) float64) int {
	best := 0
	for i := 1; i < n; i++ {
		if score(i) < score(best) {
			best = i
		}
	}
	return best
}

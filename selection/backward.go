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

import "context"

// BackwardElimination starts from a model on all variables and removes one
// variable per round while that lowers the score. At least one variable is
// always kept.
func BackwardElimination[V comparable, M any](ctx context.Context, variables []V, train Trainer[V, M], score Scorer[V, M],
	config *Config) (M, []V, error) {
	return climb(ctx, variables, train, score, config.LoadDefaultIfNil(), climbOptions{
		name:     "BackwardElimination",
		backward: true,
		floor:    1,
	})
}

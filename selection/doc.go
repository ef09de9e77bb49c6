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
// Package selection implements greedy and exhaustive variable selection around
// caller supplied model training and scoring functions.
//
// Four searches are provided:
//
//   - ExhaustiveSearch evaluates every subset and reports the best one per size.
//   - BackwardElimination starts from all variables and removes one per round.
//   - ForwardSelection starts from no variables and adds one per round.
//   - StepwiseSelection lets additions and removals compete in every round.
//
// A Trainer fits a model for a subset of variables and a Scorer rates it, lower
// being better (for example AIC or BIC). The searches never inspect models. Greedy
// searches move to the best candidate of a round only if it scores strictly lower
// than the incumbent, so the incumbent score never increases. The first error
// returned by a collaborator aborts the search.
//
// Candidates of a round are independent and are evaluated concurrently when
// Config.Jobs is greater than one. Ties are always resolved in enumeration order,
// so results do not depend on the number of jobs.
package selection

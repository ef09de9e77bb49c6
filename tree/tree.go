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
package tree

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Leaf marks a missing child.
const Leaf = -1

// Tree is a fitted binary decision tree stored as parallel arrays indexed by
// node id, node 0 being the root. Sample goes to ChildrenLeft[i] when feature
// Feature[i] is at most Threshold[i]. Value[i] holds per output class counts.
type Tree struct {
	ChildrenLeft  []int
	ChildrenRight []int
	Feature       []int
	Threshold     []float64
	Value         [][][]float64
}

func (t *Tree) NodeCount() int {
	return len(t.ChildrenLeft)
}

func (t *Tree) IsLeaf(node int) bool {
	return t.ChildrenLeft[node] == t.ChildrenRight[node]
}

// Validate checks that arrays agree in length and that every child id follows
// its parent.
func (t *Tree) Validate() error {
	n := t.NodeCount()
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.NotValidf("tree arrays of different length")
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if (left == Leaf) != (right == Leaf) {
			return errors.NotValidf("node %d with a single child", i)
		}
		for _, child := range []int{left, right} {
			if child != Leaf && (child <= i || child >= n) {
				return errors.NotValidf("child %d of node %d", child, i)
			}
		}
	}
	return nil
}

// Depths returns the depth of every node reachable from the root.
func (t *Tree) Depths() []int {
	depths := make([]int, t.NodeCount())
	if t.NodeCount() == 0 {
		return depths
	}
	type entry struct{ node, parentDepth int }
	stack := []entry{{0, -1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		depths[e.node] = e.parentDepth + 1
		if !t.IsLeaf(e.node) {
			stack = append(stack, entry{t.ChildrenLeft[e.node], e.parentDepth + 1})
			stack = append(stack, entry{t.ChildrenRight[e.node], e.parentDepth + 1})
		}
	}
	return depths
}

func (t *Tree) reachable() []bool {
	seen := make([]bool, t.NodeCount())
	if t.NodeCount() == 0 {
		return seen
	}
	stack := []int{0}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[node] {
			continue
		}
		seen[node] = true
		if !t.IsLeaf(node) {
			stack = append(stack, t.ChildrenLeft[node], t.ChildrenRight[node])
		}
	}
	return seen
}

// TextDecisionTree renders one line per node, indented by depth. Leaf values are
// shown as class ratios rounded to three digits when asRatio is set.
func TextDecisionTree(t *Tree, indent string, asRatio bool) (string, error) {
	if err := t.Validate(); err != nil {
		return "", errors.Trace(err)
	}
	depths := t.Depths()
	lines := make([]string, t.NodeCount())
	for i := range lines {
		common := fmt.Sprintf("%snode=%d", strings.Repeat(indent, depths[i]), i)
		if t.IsLeaf(i) {
			value := t.Value[i]
			if asRatio {
				value = lo.Map(value, func(counts []float64, _ int) []float64 {
					total := lo.Sum(counts)
					return lo.Map(counts, func(c float64, _ int) float64 {
						return math.Round(c/total*1000) / 1000
					})
				})
			}
			lines[i] = fmt.Sprintf("%s leaf node: %s", common, formatValue(value))
		} else {
			lines[i] = fmt.Sprintf("%s test node: go to node %d if %d <= %s else to node %d",
				common, t.ChildrenLeft[i], t.Feature[i], formatFloat(t.Threshold[i]), t.ChildrenRight[i])
		}
	}
	return strings.Join(lines, "\n"), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRow(row []float64) string {
	return "[" + strings.Join(lo.Map(row, func(v float64, _ int) string { return formatFloat(v) }), ", ") + "]"
}

func formatValue(value [][]float64) string {
	return "[" + strings.Join(lo.Map(value, func(row []float64, _ int) string { return formatRow(row) }), ", ") + "]"
}

// DotOptions control WriteDot. Names fall back to X[i] and class indices.
type DotOptions struct {
	FeatureNames []string
	ClassNames   []string
	// MaxDepth limits the rendered depth. Zero renders the whole tree.
	MaxDepth int
	// Rotate lays the tree out left to right.
	Rotate bool
}

// WriteDot writes the tree in Graphviz DOT format.
func WriteDot(w io.Writer, t *Tree, opts DotOptions) error {
	if err := t.Validate(); err != nil {
		return errors.Trace(err)
	}
	featureName := func(f int) string {
		if f >= 0 && f < len(opts.FeatureNames) {
			return opts.FeatureNames[f]
		}
		return fmt.Sprintf("X[%d]", f)
	}
	className := func(c int) string {
		if c < len(opts.ClassNames) {
			return opts.ClassNames[c]
		}
		return strconv.Itoa(c)
	}
	var b strings.Builder
	b.WriteString("digraph Tree {\n")
	b.WriteString("node [shape=box, style=\"filled, rounded\", fontname=\"helvetica\"] ;\n")
	if opts.Rotate {
		b.WriteString("rankdir=LR ;\n")
	}
	depths, reachable := t.Depths(), t.reachable()
	for i := 0; i < t.NodeCount(); i++ {
		if !reachable[i] {
			continue
		}
		if opts.MaxDepth > 0 && depths[i] > opts.MaxDepth {
			continue
		}
		var label []string
		if !t.IsLeaf(i) {
			label = append(label, fmt.Sprintf("%s <= %s", featureName(t.Feature[i]), formatFloat(t.Threshold[i])))
		}
		if len(t.Value[i]) > 0 {
			counts := t.Value[i][0]
			label = append(label, "value = "+formatRow(counts))
			if len(counts) > 1 {
				label = append(label, "class = "+className(argMax(counts)))
			}
		}
		fmt.Fprintf(&b, "%d [label=\"%s\"] ;\n", i, escape(strings.Join(label, "\\n")))
		if !t.IsLeaf(i) && (opts.MaxDepth == 0 || depths[i] < opts.MaxDepth) {
			fmt.Fprintf(&b, "%d -> %d [labeldistance=2.5, labelangle=45, headlabel=\"True\"] ;\n", i, t.ChildrenLeft[i])
			fmt.Fprintf(&b, "%d -> %d [labeldistance=2.5, labelangle=-45, headlabel=\"False\"] ;\n", i, t.ChildrenRight[i])
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return errors.Trace(err)
}

func argMax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

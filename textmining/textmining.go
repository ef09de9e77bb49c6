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
package textmining

import (
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize splits a document into lower-cased words of two or more characters.
func Tokenize(document string) []string {
	return tokenPattern.FindAllString(strings.ToLower(document), -1)
}

// CountTerms builds a term-document matrix. Terms are sorted and counts[i][j]
// is the number of occurrences of terms[i] in documents[j].
func CountTerms(documents []string) ([]string, [][]int) {
	tokens := lo.Map(documents, func(document string, _ int) []string {
		return Tokenize(document)
	})
	vocabulary := mapset.NewThreadUnsafeSet[string]()
	for _, words := range tokens {
		vocabulary.Append(words...)
	}
	terms := vocabulary.ToSlice()
	slices.Sort(terms)
	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	counts := lo.Times(len(terms), func(_ int) []int {
		return make([]int, len(documents))
	})
	for j, words := range tokens {
		for _, word := range words {
			counts[index[word]][j]++
		}
	}
	return terms, counts
}

// PrintTermDocumentMatrix renders one row per term and one column per document,
// documents being labelled S1..Sn.
func PrintTermDocumentMatrix(w io.Writer, terms []string, counts [][]int) error {
	if len(terms) != len(counts) {
		return errors.NotValidf("%d terms with %d count rows", len(terms), len(counts))
	}
	numDocuments := 0
	if len(counts) > 0 {
		numDocuments = len(counts[0])
	}
	header := append([]string{""}, lo.Map(lo.Range(numDocuments), func(j int, _ int) string {
		return "S" + strconv.Itoa(j+1)
	})...)
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for i, term := range terms {
		if len(counts[i]) != numDocuments {
			return errors.NotValidf("term %q with %d counts", term, len(counts[i]))
		}
		row := append([]string{term}, lo.Map(counts[i], func(c int, _ int) string {
			return strconv.Itoa(c)
		})...)
		if err := table.Append(row); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(table.Render())
}

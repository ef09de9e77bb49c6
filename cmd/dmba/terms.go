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
package main

import (
	"os"

	"github.com/dmba-go/dmba/textmining"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

var termsCommand = &cobra.Command{
	Use:   "terms <file>...",
	Short: "Print the term-document matrix of text files.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		documents, err := readDocuments(args)
		if err != nil {
			return errors.Trace(err)
		}
		terms, counts := textmining.CountTerms(documents)
		return textmining.PrintTermDocumentMatrix(cmd.OutOrStdout(), terms, counts)
	},
}

func init() {
	rootCommand.AddCommand(termsCommand)
}

func readDocuments(paths []string) ([]string, error) {
	documents := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("document %s", path)
			}
			return nil, errors.Trace(err)
		}
		documents = append(documents, string(data))
	}
	return documents, nil
}

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
package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/dmba-go/dmba/common/util"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Frame is a table of named columns read from CSV. Cells are kept as text and
// converted on access.
type Frame struct {
	columns []string
	index   map[string]int
	cells   [][]string // column-major
}

// ReadCSV reads a CSV table whose first row holds the column names.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NotValidf("CSV without header")
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	frame, err := newFrame(lo.Map(header, func(name string, _ int) string {
		return strings.TrimSpace(name)
	}))
	if err != nil {
		return nil, errors.Trace(err)
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		for i, cell := range row {
			frame.cells[i] = append(frame.cells[i], cell)
		}
	}
	return frame, nil
}

func newFrame(columns []string) (*Frame, error) {
	frame := &Frame{
		columns: columns,
		index:   make(map[string]int, len(columns)),
		cells:   make([][]string, len(columns)),
	}
	for i, name := range columns {
		if _, exist := frame.index[name]; exist {
			return nil, errors.NotValidf("duplicate column %q", name)
		}
		frame.index[name] = i
	}
	return frame, nil
}

func (f *Frame) Columns() []string {
	return f.columns
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.cells) == 0 {
		return 0
	}
	return len(f.cells[0])
}

func (f *Frame) Has(column string) bool {
	_, ok := f.index[column]
	return ok
}

func (f *Frame) Strings(column string) ([]string, error) {
	i, ok := f.index[column]
	if !ok {
		return nil, errors.NotFoundf("column %q", column)
	}
	return f.cells[i], nil
}

// Float parses a numeric column.
func (f *Frame) Float(column string) ([]float64, error) {
	cells, err := f.Strings(column)
	if err != nil {
		return nil, errors.Trace(err)
	}
	values := make([]float64, len(cells))
	for row, cell := range cells {
		values[row], err = util.ParseFloat[float64](cell)
		if err != nil {
			return nil, errors.NotValidf("value %q in row %d of column %q", cell, row+1, column)
		}
	}
	return values, nil
}

// Matrix returns the given numeric columns row by row.
func (f *Frame) Matrix(columns []string) ([][]float64, error) {
	matrix := make([][]float64, f.Len())
	for i := range matrix {
		matrix[i] = make([]float64, len(columns))
	}
	for j, column := range columns {
		values, err := f.Float(column)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for i, v := range values {
			matrix[i][j] = v
		}
	}
	return matrix, nil
}

// Codes encodes a categorical column as integers.
func (f *Frame) Codes(column string) ([]int, *LabelDict, error) {
	cells, err := f.Strings(column)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	dict := NewLabelDict()
	return lo.Map(cells, func(cell string, _ int) int {
		return dict.Code(cell)
	}), dict, nil
}

// Select returns a frame sharing the cells of the given columns.
func (f *Frame) Select(columns []string) (*Frame, error) {
	frame, err := newFrame(columns)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for i, column := range columns {
		if frame.cells[i], err = f.Strings(column); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return frame, nil
}

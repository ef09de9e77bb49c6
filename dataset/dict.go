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

// LabelDict assigns consecutive codes to category labels in order of first
// appearance and counts how often each label is seen.
type LabelDict struct {
	codes  map[string]int
	labels []string
	counts []int
}

func NewLabelDict() *LabelDict {
	return &LabelDict{codes: map[string]int{}}
}

func (d *LabelDict) Count() int {
	return len(d.labels)
}

// Code returns the code of label, adding it if needed, and counts it.
func (d *LabelDict) Code(label string) int {
	if code, ok := d.codes[label]; ok {
		d.counts[code]++
		return code
	}
	code := len(d.labels)
	d.codes[label] = code
	d.labels = append(d.labels, label)
	d.counts = append(d.counts, 1)
	return code
}

func (d *LabelDict) Label(code int) (string, bool) {
	if code < 0 || code >= len(d.labels) {
		return "", false
	}
	return d.labels[code], true
}

// Labels in code order.
func (d *LabelDict) Labels() []string {
	return d.labels
}

func (d *LabelDict) Freq(code int) int {
	if code < 0 || code >= len(d.counts) {
		return 0
	}
	return d.counts[code]
}

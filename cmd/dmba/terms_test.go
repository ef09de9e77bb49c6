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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocuments(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("this is the first sentence"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("this is a second sentence"), 0644))
	documents, err := readDocuments([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, []string{"this is the first sentence", "this is a second sentence"}, documents)

	_, err = readDocuments([]string{filepath.Join(dir, "missing.txt")})
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCommand.SetOut(&buf)
	versionCommand.Run(versionCommand, nil)
	assert.Contains(t, buf.String(), "Version:")
	assert.Contains(t, buf.String(), "Go version:")
}

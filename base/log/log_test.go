// Copyright 2022 dmba Project Authors
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

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	temp := t.TempDir()
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flagSet)
	err := flagSet.Parse([]string{"--log-path", filepath.Join(temp, "dmba.log"), "--log-max-size", "10"})
	assert.NoError(t, err)

	opts := OptionsFromFlags(flagSet)
	assert.Equal(t, filepath.Join(temp, "dmba.log"), opts.Path)
	assert.Equal(t, 10, opts.MaxSize)

	// debug logger writes to file
	SetLogger(flagSet, true)
	Logger().Debug("debug message")
	_, err = os.Stat(filepath.Join(temp, "dmba.log"))
	assert.NoError(t, err)

	// production logger
	SetLogger(flagSet, false)
	Logger().Info("info message")
	data, err := os.ReadFile(filepath.Join(temp, "dmba.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "debug message")
	assert.Contains(t, string(data), "info message")
}

func TestOptionsFromFlagsWithoutPath(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flagSet)
	assert.NoError(t, flagSet.Parse(nil))
	opts := OptionsFromFlags(flagSet)
	assert.Empty(t, opts.Path)
	assert.Equal(t, 100, opts.MaxSize)
}

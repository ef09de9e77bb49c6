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
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configText = `
[data]
dir = "/tmp/dmba"
url = "http://localhost:8080/datasets"
rate_limit = 1048576

[search]
method = "exhaustive"
direction = "Forward"
criterion = "bic"
jobs = 4
verbose = true
variables = ["LSTAT", "RM", "CRIM"]

[log]
path = "/tmp/dmba.log"
max_size = 10
max_age = 7
max_backups = 3
debug = true
`

func TestUnmarshal(t *testing.T) {
	v := viper.New()
	setDefault(v)
	v.SetConfigType("toml")
	err := v.ReadConfig(strings.NewReader(configText))
	require.NoError(t, err)
	config, err := unmarshal(v)
	require.NoError(t, err)

	// [data]
	assert.Equal(t, "/tmp/dmba", config.Data.Dir)
	assert.Equal(t, "http://localhost:8080/datasets", config.Data.URL)
	assert.Equal(t, int64(1048576), config.Data.RateLimit)
	// [search]
	assert.Equal(t, MethodExhaustive, config.Search.Method)
	assert.Equal(t, "forward", config.Search.Direction)
	assert.Equal(t, "bic", config.Search.Criterion)
	assert.Equal(t, 4, config.Search.Jobs)
	assert.True(t, config.Search.Verbose)
	assert.Equal(t, []string{"LSTAT", "RM", "CRIM"}, config.Search.Variables)
	// [log]
	assert.Equal(t, "/tmp/dmba.log", config.Log.Path)
	assert.Equal(t, 10, config.Log.MaxSize)
	assert.Equal(t, 7, config.Log.MaxAge)
	assert.Equal(t, 3, config.Log.MaxBackups)
	assert.True(t, config.Log.Debug)
}

func TestDefaultConfig(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig().Data.Dir, config.Data.Dir)
	assert.Empty(t, config.Data.URL)
	assert.Zero(t, config.Data.RateLimit)
	assert.Equal(t, MethodStepwise, config.Search.Method)
	assert.Equal(t, "both", config.Search.Direction)
	assert.Equal(t, "aic", config.Search.Criterion)
	assert.Equal(t, 1, config.Search.Jobs)
	assert.False(t, config.Search.Verbose)
	assert.Empty(t, config.Search.Variables)
	assert.Equal(t, 100, config.Log.MaxSize)
	assert.False(t, config.Log.Debug)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(configText), 0644)
	require.NoError(t, err)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MethodExhaustive, config.Search.Method)
	assert.Equal(t, 4, config.Search.Jobs)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestBindEnv(t *testing.T) {
	t.Setenv("DMBA_DATA_DIR", "/data")
	t.Setenv("DMBA_SEARCH_METHOD", "backward")
	t.Setenv("DMBA_SEARCH_JOBS", "8")
	t.Setenv("DMBA_SEARCH_VERBOSE", "true")
	t.Setenv("DMBA_SEARCH_VARIABLES", "a,b,c")
	t.Setenv("DMBA_LOG_DEBUG", "true")
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/data", config.Data.Dir)
	assert.Equal(t, MethodBackward, config.Search.Method)
	assert.Equal(t, 8, config.Search.Jobs)
	assert.True(t, config.Search.Verbose)
	assert.Equal(t, []string{"a", "b", "c"}, config.Search.Variables)
	assert.True(t, config.Log.Debug)
}

func TestValidate(t *testing.T) {
	config := GetDefaultConfig()
	assert.NoError(t, config.Validate())

	config.Search.Method = "random"
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	config = GetDefaultConfig()
	config.Search.Jobs = 0
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	config = GetDefaultConfig()
	config.Search.Criterion = "mse"
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	config = GetDefaultConfig()
	config.Data.URL = "not a url"
	assert.True(t, errors.Is(config.Validate(), errors.NotValid))

	t.Setenv("DMBA_SEARCH_DIRECTION", "sideways")
	_, err := LoadConfig("")
	assert.True(t, errors.Is(err, errors.NotValid))
}

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

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

const (
	MethodExhaustive = "exhaustive"
	MethodBackward   = "backward"
	MethodForward    = "forward"
	MethodStepwise   = "stepwise"
)

// Config is the configuration for dmba.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
}

// DataConfig is the configuration for dataset loading.
type DataConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
	URL string `mapstructure:"url" validate:"omitempty,url"`
	// RateLimit caps download speed in bytes per second. Zero means unlimited.
	RateLimit int64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// SearchConfig is the configuration for variable selection.
type SearchConfig struct {
	Method    string   `mapstructure:"method" validate:"oneof=exhaustive backward forward stepwise"`
	Direction string   `mapstructure:"direction" validate:"oneof=forward backward both"`
	Criterion string   `mapstructure:"criterion" validate:"oneof=aic bic adjr2"`
	Jobs      int      `mapstructure:"jobs" validate:"gte=1"`
	Verbose   bool     `mapstructure:"verbose"`
	Variables []string `mapstructure:"variables"`
}

// LogConfig is the configuration for the rotating log file.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	Debug      bool   `mapstructure:"debug"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dmba", "dataset")
	}
	return filepath.Join(home, ".dmba", "dataset")
}

func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: defaultDataDir(),
		},
		Search: SearchConfig{
			Method:    MethodStepwise,
			Direction: "both",
			Criterion: "aic",
			Jobs:      1,
		},
		Log: LogConfig{
			MaxSize:    100,
			MaxAge:     0,
			MaxBackups: 0,
		},
	}
}

func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "invalid config")
	}
	return nil
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [data]
	v.SetDefault("data.dir", defaultConfig.Data.Dir)
	v.SetDefault("data.url", defaultConfig.Data.URL)
	v.SetDefault("data.rate_limit", defaultConfig.Data.RateLimit)
	// [search]
	v.SetDefault("search.method", defaultConfig.Search.Method)
	v.SetDefault("search.direction", defaultConfig.Search.Direction)
	v.SetDefault("search.criterion", defaultConfig.Search.Criterion)
	v.SetDefault("search.jobs", defaultConfig.Search.Jobs)
	v.SetDefault("search.verbose", defaultConfig.Search.Verbose)
	v.SetDefault("search.variables", defaultConfig.Search.Variables)
	// [log]
	v.SetDefault("log.path", defaultConfig.Log.Path)
	v.SetDefault("log.max_size", defaultConfig.Log.MaxSize)
	v.SetDefault("log.max_age", defaultConfig.Log.MaxAge)
	v.SetDefault("log.max_backups", defaultConfig.Log.MaxBackups)
	v.SetDefault("log.debug", defaultConfig.Log.Debug)
}

type configBinding struct {
	key string
	env string
}

func bindEnv(v *viper.Viper) error {
	bindings := []configBinding{
		{"data.dir", "DMBA_DATA_DIR"},
		{"data.url", "DMBA_DATA_URL"},
		{"data.rate_limit", "DMBA_DATA_RATE_LIMIT"},
		{"search.method", "DMBA_SEARCH_METHOD"},
		{"search.direction", "DMBA_SEARCH_DIRECTION"},
		{"search.criterion", "DMBA_SEARCH_CRITERION"},
		{"search.jobs", "DMBA_SEARCH_JOBS"},
		{"search.verbose", "DMBA_SEARCH_VERBOSE"},
		{"search.variables", "DMBA_SEARCH_VARIABLES"},
		{"log.path", "DMBA_LOG_PATH"},
		{"log.max_size", "DMBA_LOG_MAX_SIZE"},
		{"log.max_age", "DMBA_LOG_MAX_AGE"},
		{"log.max_backups", "DMBA_LOG_MAX_BACKUPS"},
		{"log.debug", "DMBA_LOG_DEBUG"},
	}
	for _, binding := range bindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a TOML, YAML or JSON file. An empty path
// loads defaults and environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	if err := bindEnv(v); err != nil {
		return nil, errors.Trace(err)
	}
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	conf.Search.Method = strings.ToLower(conf.Search.Method)
	conf.Search.Direction = strings.ToLower(conf.Search.Direction)
	conf.Search.Criterion = strings.ToLower(conf.Search.Criterion)
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

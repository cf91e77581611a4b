// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package soak

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/solarisdb/lrucache/golibs/config"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Config defines the soak run configuration
	Config struct {
		// Capacity is the cache capacity
		Capacity int `json:"capacity"`
		// Shards is the number of the cache shards. 0 means the plain (not sharded) cache
		Shards int `json:"shards"`
		// Workers is the number of goroutines running Put() and Get() concurrently
		Workers int `json:"workers"`
		// Keys is the size of the keys space, the workers use keys "k0" ... "k<Keys-1>"
		Keys int `json:"keys"`
		// Duration is how long the run lasts, in time.ParseDuration() format
		Duration string `json:"duration"`
	}
)

// EnvPrefix is the prefix of the environment variables which are applied to Config,
// for example LRUCACHE_WORKERS=16
const EnvPrefix = "LRUCACHE"

// GetDefaultConfig returns the default soak config
func GetDefaultConfig() *Config {
	return &Config{
		Capacity: 3,
		Workers:  8,
		Keys:     5,
		Duration: "1s",
	}
}

// BuildConfig builds the config from the defaults, the cfgFile (may be empty) and the
// environment variables, in the order, so the latter ones overwrite the former ones.
func BuildConfig(cfgFile string) (*Config, error) {
	log := logging.NewLogger("soak.ConfigBuilder")
	log.Infof("trying to build config. cfgFile=%s", cfgFile)
	e := config.NewEnricher(*GetDefaultConfig())
	fe := config.NewEnricher(Config{})
	if err := fe.LoadFromFile(cfgFile); err != nil {
		return nil, fmt.Errorf("could not read data from the file %s: %w", cfgFile, err)
	}
	// overwrite default
	_ = e.ApplyOther(fe)
	_ = e.ApplyEnvVariables(EnvPrefix, "_")
	cfg := e.Value()
	return &cfg, nil
}

// Validate checks the config values
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity=%d must be positive: %w", c.Capacity, errors.ErrInvalid)
	}
	if c.Shards < 0 || c.Shards > c.Capacity {
		return fmt.Errorf("shards=%d must be in [0..%d]: %w", c.Shards, c.Capacity, errors.ErrInvalid)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers=%d must be positive: %w", c.Workers, errors.ErrInvalid)
	}
	if c.Keys < 1 {
		return fmt.Errorf("keys=%d must be positive: %w", c.Keys, errors.ErrInvalid)
	}
	if _, err := c.GetDuration(); err != nil {
		return err
	}
	return nil
}

// GetDuration returns Duration as time.Duration
func (c *Config) GetDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Duration)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q: %v: %w", c.Duration, err, errors.ErrInvalid)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration=%s must be positive: %w", d, errors.ErrInvalid)
	}
	return d, nil
}

// String implements fmt.Stringify interface in a pretty console form
func (c *Config) String() string {
	b, _ := json.MarshalIndent(*c, "", "  ")
	return string(b)
}

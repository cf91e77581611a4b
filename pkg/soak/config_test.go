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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

func TestBuildConfig_Default(t *testing.T) {
	cfg, err := BuildConfig("")
	assert.Nil(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.Nil(t, cfg.Validate())
}

func TestBuildConfig_FileAndEnv(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "soak.yaml")
	assert.Nil(t, os.WriteFile(fn, []byte("capacity: 100\nshards: 4\nduration: 2s\n"), 0o644))
	t.Setenv("LRUCACHE_WORKERS", "16")

	cfg, err := BuildConfig(fn)
	assert.Nil(t, err)
	assert.Equal(t, &Config{Capacity: 100, Shards: 4, Workers: 16, Keys: 5, Duration: "2s"}, cfg)
	d, err := cfg.GetDuration()
	assert.Nil(t, err)
	assert.Equal(t, 2*time.Second, d)

	_, err = BuildConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, errors.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	for _, cfg := range []Config{
		{Capacity: 0, Workers: 1, Keys: 1, Duration: "1s"},
		{Capacity: 3, Shards: 4, Workers: 1, Keys: 1, Duration: "1s"},
		{Capacity: 3, Shards: -1, Workers: 1, Keys: 1, Duration: "1s"},
		{Capacity: 3, Workers: 0, Keys: 1, Duration: "1s"},
		{Capacity: 3, Workers: 1, Keys: 0, Duration: "1s"},
		{Capacity: 3, Workers: 1, Keys: 1, Duration: "soon"},
		{Capacity: 3, Workers: 1, Keys: 1, Duration: "0s"},
	} {
		assert.ErrorIs(t, cfg.Validate(), errors.ErrInvalid, "%s", cfg.String())
	}
}

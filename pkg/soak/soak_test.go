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
	"context"
	"testing"
	"time"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	cfg := &Config{Capacity: 3, Workers: 4, Keys: 5, Duration: "100ms"}
	rep, err := Run(context.Background(), cfg)
	assert.Nil(t, err)
	assert.NotEmpty(t, rep.RunID)
	assert.LessOrEqual(t, rep.Size, 3)
	assert.Equal(t, 3, rep.Capacity)
	assert.Greater(t, rep.Stats.Puts, int64(0))
	assert.Equal(t, rep.Stats.Puts, rep.Stats.Gets)
	assert.Equal(t, rep.Stats.Gets-rep.Stats.Hits, rep.Misses())
	assert.True(t, rep.Elapsed >= 100*time.Millisecond)
}

func TestRun_Sharded(t *testing.T) {
	cfg := &Config{Capacity: 8, Shards: 2, Workers: 4, Keys: 20, Duration: "50ms"}
	rep, err := Run(context.Background(), cfg)
	assert.Nil(t, err)
	assert.LessOrEqual(t, rep.Size, 8)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	start := time.Now()
	rep, err := Run(ctx, &Config{Capacity: 3, Workers: 2, Keys: 5, Duration: "1m"})
	assert.Nil(t, err)
	assert.True(t, time.Since(start) < time.Minute)
	assert.LessOrEqual(t, rep.Size, 3)
}

func TestRun_Invalid(t *testing.T) {
	_, err := Run(context.Background(), &Config{Capacity: 0, Workers: 1, Keys: 1, Duration: "1s"})
	assert.ErrorIs(t, err, errors.ErrInvalid)
}

func TestWorkload_ShutdownTwice(t *testing.T) {
	store, err := NewStore(GetDefaultConfig())
	assert.Nil(t, err)
	wl := NewWorkload(2, 5)
	wl.Store = store
	assert.Nil(t, wl.Init(context.Background()))
	time.Sleep(10 * time.Millisecond)
	wl.Shutdown()
	wl.Shutdown()
	st := wl.Stats()
	assert.Greater(t, st.Puts, int64(0))
	// every Get() follows the Put() of the same key, but may miss if other workers evicted it
	assert.LessOrEqual(t, st.Hits, st.Gets)
	assert.Nil(t, store.Check())
}

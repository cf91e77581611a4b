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
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrange/linker"
	ctxutil "github.com/solarisdb/lrucache/golibs/context"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
	"github.com/solarisdb/lrucache/golibs/ulidutils"
	"github.com/solarisdb/lrucache/pkg/version"
)

// Report describes the soak run results
type Report struct {
	RunID    string
	Stats    Stats
	Size     int
	Capacity int
	Elapsed  time.Duration
}

// Misses returns the number of Get() calls which didn't find the key
func (r Report) Misses() int64 {
	return r.Stats.Gets - r.Stats.Hits
}

// String implements fmt.Stringer
func (r Report) String() string {
	return fmt.Sprintf("run=%s elapsed=%s puts=%d gets=%d hits=%d misses=%d size=%d capacity=%d",
		r.RunID, r.Elapsed, r.Stats.Puts, r.Stats.Gets, r.Stats.Hits, r.Misses(), r.Size, r.Capacity)
}

// Run is an entry point of the soak run. It builds the cache and the workload by cfg, runs the
// workload for the configured duration or until ctx is closed, and then verifies that the cache
// is consistent and its size doesn't exceed the capacity.
func Run(ctx context.Context, cfg *Config) (Report, error) {
	log := logging.NewLogger("soak")
	rep := Report{RunID: ulidutils.NewID()}
	log.Infof("starting soak run %s: %s", rep.RunID, version.BuildVersionString())

	if err := cfg.Validate(); err != nil {
		return rep, err
	}
	d, _ := cfg.GetDuration()
	log.Infof("config: %s", spew.Sprint(cfg))
	defer log.Infof("soak run %s is over", rep.RunID)

	store, err := NewStore(cfg)
	if err != nil {
		return rep, err
	}
	wl := NewWorkload(cfg.Workers, cfg.Keys)

	inj := linker.New()
	inj.Register(linker.Component{Name: "cache", Value: store})
	inj.Register(linker.Component{Name: "", Value: wl})

	start := time.Now()
	inj.Init(ctx)
	if err := ctxutil.Sleep(ctx, d); err != nil {
		log.Warnf("the run is interrupted: %v", err)
	}
	inj.Shutdown()
	rep.Elapsed = time.Since(start)

	rep.Stats = wl.Stats()
	rep.Size = store.Size()
	rep.Capacity = store.Capacity()
	log.Infof("%s", rep)

	if rep.Size > rep.Capacity {
		return rep, fmt.Errorf("the cache size=%d exceeds the capacity=%d: %w", rep.Size, rep.Capacity, errors.ErrInternal)
	}
	if err := store.Check(); err != nil {
		return rep, fmt.Errorf("the cache is inconsistent after the run: %w", err)
	}
	return rep, nil
}

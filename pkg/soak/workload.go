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
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/logrange/linker"
	"github.com/solarisdb/lrucache/golibs/container/lru"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Store is the cache the workload runs against
	Store interface {
		Get(k string) (int, bool)
		Put(k string, v int)
		Size() int
		Capacity() int
		Check() error
	}

	// Workload runs the workers, which Put() and Get() the keys of a small keys space concurrently.
	// The workers are started by Init() and stopped by Shutdown(), so the linker controls the
	// Workload lifecycle.
	Workload struct {
		// Store is the cache under the load
		Store Store `inject:"cache"`

		workers int
		keys    int
		logger  logging.Logger
		done    chan struct{}
		wg      sync.WaitGroup
		puts    atomic.Int64
		gets    atomic.Int64
		hits    atomic.Int64
	}

	// Stats contains the workload counters
	Stats struct {
		Puts int64
		Gets int64
		Hits int64
	}
)

var _ linker.Initializer = (*Workload)(nil)
var _ linker.Shutdowner = (*Workload)(nil)

// NewStore creates the cache by the config: the plain Cache if cfg.Shards is 0, or the ShardedCache otherwise
func NewStore(cfg *Config) (Store, error) {
	if cfg.Shards == 0 {
		c, err := lru.NewCache[string, int](cfg.Capacity, nil)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	sc, err := lru.NewShardedCache[string, int](cfg.Capacity, cfg.Shards, lru.StringHash, nil)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// NewWorkload creates the Workload with the number of workers and the keys space size
func NewWorkload(workers, keys int) *Workload {
	w := new(Workload)
	w.workers = workers
	w.keys = keys
	w.logger = logging.NewLogger("soak.Workload")
	w.done = make(chan struct{})
	return w
}

// Init starts the workers. It is part of linker.Initializer
func (w *Workload) Init(ctx context.Context) error {
	w.logger.Infof("starting %d workers over %d keys, cache capacity=%d", w.workers, w.keys, w.Store.Capacity())
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(i)
	}
	return nil
}

// Shutdown stops the workers and waits until they are over. It is part of linker.Shutdowner
func (w *Workload) Shutdown() {
	select {
	case <-w.done:
		return
	default:
	}
	close(w.done)
	w.wg.Wait()
	w.logger.Infof("all workers are stopped: %+v", w.Stats())
}

// Stats returns the current counters
func (w *Workload) Stats() Stats {
	return Stats{Puts: w.puts.Load(), Gets: w.gets.Load(), Hits: w.hits.Load()}
}

func (w *Workload) run(id int) {
	defer w.wg.Done()
	for i := id; ; i += w.workers {
		select {
		case <-w.done:
			return
		default:
		}
		k := "k" + strconv.Itoa(i%w.keys)
		w.Store.Put(k, i)
		w.puts.Add(1)
		if _, ok := w.Store.Get(k); ok {
			w.hits.Add(1)
		}
		w.gets.Add(1)
	}
}

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

package lru

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/solarisdb/lrucache/golibs/errors"
)

type (
	// ShardedCache splits the keys space between N independent Cache objects (shards) by the
	// key hash. Each shard has its own lock, so operations on different shards don't contend.
	// The LRU discipline is exact within a shard only: an element may be evicted from a full
	// shard while less recently used elements stay in the other shards.
	ShardedCache[K comparable, V any] struct {
		shards   []*Cache[K, V]
		hashF    HashF[K]
		capacity int
	}

	// HashF calculates the key hash which is used for selecting the shard
	HashF[K any] func(k K) uint64
)

// StringHash is the HashF for the string keys
func StringHash(k string) uint64 {
	return xxhash.Sum64String(k)
}

// BytesHash is the HashF for the keys which can be represented as []byte
func BytesHash(k []byte) uint64 {
	return xxhash.Sum64(k)
}

// NewShardedCache creates the ShardedCache with the total capacity split between the shards.
// The shards capacities are sum up exactly to the capacity. The capacity must not be less than
// the number of shards.
func NewShardedCache[K comparable, V any](capacity, shards int, hashF HashF[K], onDeleteF OnDeleteElemF[K, V]) (*ShardedCache[K, V], error) {
	if shards < 1 {
		return nil, fmt.Errorf("NewShardedCache(): the shards=%d, but it cannot be less than 1: %w", shards, errors.ErrInvalid)
	}
	if capacity < shards {
		return nil, fmt.Errorf("NewShardedCache(): the capacity=%d cannot be less than shards=%d: %w", capacity, shards, errors.ErrInvalid)
	}
	if hashF == nil {
		return nil, fmt.Errorf("NewShardedCache(): hashF must not be nil: %w", errors.ErrInvalid)
	}
	sc := new(ShardedCache[K, V])
	sc.shards = make([]*Cache[K, V], shards)
	sc.hashF = hashF
	sc.capacity = capacity
	base, rem := capacity/shards, capacity%shards
	for i := range sc.shards {
		sz := base
		if i < rem {
			sz++
		}
		c, err := NewCache[K, V](sz, onDeleteF)
		if err != nil {
			return nil, err
		}
		sc.shards[i] = c
	}
	return sc, nil
}

// Get returns the value for k from its shard (see Cache.Get)
func (sc *ShardedCache[K, V]) Get(k K) (V, bool) {
	return sc.shard(k).Get(k)
}

// Put stores v for k in its shard (see Cache.Put)
func (sc *ShardedCache[K, V]) Put(k K, v V) {
	sc.shard(k).Put(k, v)
}

// Remove deletes k from its shard (see Cache.Remove)
func (sc *ShardedCache[K, V]) Remove(k K) bool {
	return sc.shard(k).Remove(k)
}

// Contains checks whether k is in its shard (see Cache.Contains)
func (sc *ShardedCache[K, V]) Contains(k K) bool {
	return sc.shard(k).Contains(k)
}

// GetOrCreate returns or creates the element in its shard (see Cache.GetOrCreate)
func (sc *ShardedCache[K, V]) GetOrCreate(k K, createNewF CreatePoolElemF[K, V]) (V, error) {
	return sc.shard(k).GetOrCreate(k, createNewF)
}

// Size returns the sum of the shards sizes. The shards are not locked together, so
// under concurrent modifications the result is not a point-in-time value of the whole cache.
func (sc *ShardedCache[K, V]) Size() int {
	res := 0
	for _, c := range sc.shards {
		res += c.Size()
	}
	return res
}

// Capacity returns the total capacity of the shards
func (sc *ShardedCache[K, V]) Capacity() int {
	return sc.capacity
}

// Clear removes all the elements shard by shard and returns the number of removed elements
func (sc *ShardedCache[K, V]) Clear() int {
	res := 0
	for _, c := range sc.shards {
		res += c.Clear()
	}
	return res
}

// Check verifies every shard and that each element is placed into the shard of its key
func (sc *ShardedCache[K, V]) Check() error {
	for i, c := range sc.shards {
		if err := c.Check(); err != nil {
			return fmt.Errorf("shard %d: %w", i, err)
		}
		for _, k := range c.Keys() {
			if sc.shardIdx(k) != i {
				return fmt.Errorf("the key=%v is found in shard %d, but belongs to %d: %w", k, i, sc.shardIdx(k), errors.ErrInternal)
			}
		}
	}
	return nil
}

func (sc *ShardedCache[K, V]) shard(k K) *Cache[K, V] {
	return sc.shards[sc.shardIdx(k)]
}

func (sc *ShardedCache[K, V]) shardIdx(k K) int {
	return int(sc.hashF(k) % uint64(len(sc.shards)))
}

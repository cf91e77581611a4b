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
	"sync"

	"github.com/solarisdb/lrucache/golibs/errors"
)

type (
	// Cache implements container with limited size capacity and LRU (Least Recently Used) pull out discipline.
	//
	// All the Cache operations are serialized by one exclusive lock. Get() is not a read-only
	// operation for the container, because a hit promotes the found element to the head of
	// the recency list, so a shared (reader) lock would not protect the list from the concurrent
	// promotions. Use ShardedCache if the lock contention matters more than the strict LRU order.
	Cache[K comparable, V any] struct {
		lock      sync.Mutex
		capacity  int
		index     map[K]int
		items     *recencyList[K, V]
		inflight  map[K]chan struct{}
		onDeleteF OnDeleteElemF[K, V]
	}

	// CreatePoolElemF function type for creating new cache elements (see Cache.GetOrCreate)
	CreatePoolElemF[K any, V any] func(k K) (V, error)

	// OnDeleteElemF is called for every element which leaves the cache because of eviction,
	// Remove() or Clear(). The function is called while the cache lock is held, so it must
	// not call the cache methods.
	OnDeleteElemF[K any, V any] func(k K, v V)
)

// maxPrealloc limits the initial arena allocation for big capacities
const maxPrealloc = 1024

// NewCache creates new Cache object. It expects the maximum cache size (capacity), which must be
// positive, and an optional onDeleteF function which may be nil.
func NewCache[K comparable, V any](capacity int, onDeleteF OnDeleteElemF[K, V]) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("NewCache(): the capacity=%d, but it cannot be less than 1: %w", capacity, errors.ErrInvalid)
	}
	c := new(Cache[K, V])
	c.capacity = capacity
	c.index = make(map[K]int, min(capacity, maxPrealloc))
	c.items = newRecencyList[K, V](min(capacity+1, maxPrealloc))
	c.inflight = make(map[K]chan struct{})
	c.onDeleteF = onDeleteF
	return c, nil
}

// Get returns the value for the key k and true, if the value is found. A hit makes the
// element the most recently used one.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.get(k)
}

// Put stores the value v by the key k. If the key is already in the cache its value is
// replaced and the element becomes the most recently used. Otherwise, the new element is added,
// and if the cache size exceeds the capacity, the least recently used element is evicted.
func (c *Cache[K, V]) Put(k K, v V) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.put(k, v)
}

// Remove deletes the element by key k. It returns true if the element
// was in the collection and false if it was not found
func (c *Cache[K, V]) Remove(k K) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	idx, ok := c.index[k]
	if !ok {
		return false
	}
	c.delete(idx)
	return true
}

// Contains returns whether the key k is in the cache. The recency order is not changed.
// The result may be stale as soon as the function returns.
func (c *Cache[K, V]) Contains(k K) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, ok := c.index[k]
	return ok
}

// Size returns the number of elements in the cache. The result may be stale as soon
// as the function returns.
func (c *Cache[K, V]) Size() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.index)
}

// Capacity returns the maximum number of elements the cache can hold
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Clear cleans up the cache removing all elements. The function will return number of the elements deleted.
// onDeleteF is called for the elements from the least recently used to the most recently used one.
func (c *Cache[K, V]) Clear() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	removed := len(c.index)
	if c.onDeleteF != nil {
		for idx := c.items.tail; idx != noSlot; {
			e := c.items.get(idx)
			c.onDeleteF(e.key, e.val)
			idx = e.newer
		}
	}
	c.index = make(map[K]int, min(c.capacity, maxPrealloc))
	c.items.reset()
	return removed
}

// Keys returns the keys of the cache from the most recently used to the least recently used one
func (c *Cache[K, V]) Keys() []K {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := make([]K, 0, len(c.index))
	for idx := c.items.head; idx != noSlot; {
		e := c.items.get(idx)
		res = append(res, e.key)
		idx = e.older
	}
	return res
}

// GetOrCreate returns an existing cache element or creates the new one by its key via createNewF.
// Only one goroutine calls createNewF for a key at a time, the others wait for the result. The
// function createNewF is called without holding the cache lock. If createNewF returns an error,
// nothing is stored and the error is returned. If the key was Put() while createNewF was running,
// the stored value is kept and returned.
func (c *Cache[K, V]) GetOrCreate(k K, createNewF CreatePoolElemF[K, V]) (V, error) {
	if createNewF == nil {
		return *new(V), fmt.Errorf("GetOrCreate(): createNewF must not be nil: %w", errors.ErrInvalid)
	}
	for {
		c.lock.Lock()
		if v, ok := c.get(k); ok {
			c.lock.Unlock()
			return v, nil
		}
		ch, watcher := c.inflight[k]
		if !watcher {
			ch = make(chan struct{})
			c.inflight[k] = ch
		}
		c.lock.Unlock()

		// if watcher is true, another goroutine is creating the element already,
		// so wait for the result instead of requesting new value.
		if watcher {
			<-ch
			continue
		}

		v, err := c.create(k, createNewF)

		c.lock.Lock()
		close(ch)
		delete(c.inflight, k)
		if err == nil {
			if sv, ok := c.get(k); ok {
				v = sv
			} else {
				c.put(k, v)
			}
		}
		c.lock.Unlock()

		return v, err
	}
}

// create calls createNewF and turns its panic into an error, so the waiters are released
func (c *Cache[K, V]) create(k K, createNewF CreatePoolElemF[K, V]) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("GetOrCreate(): createNewF panicked for key=%v: %v: %w", k, r, errors.ErrInternal)
		}
	}()
	return createNewF(k)
}

// Check verifies the cache structure: every indexed element is reachable in the recency list
// and vice versa, the links are consistent and the size doesn't exceed the capacity. It returns
// nil if the cache is consistent, or ErrInternal describing the first violation found.
func (c *Cache[K, V]) Check() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.check()
}

// String implements fmt.Stringer
func (c *Cache[K, V]) String() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return fmt.Sprintf("{capacity: %d, size: %d, inflight: %d}", c.capacity, len(c.index), len(c.inflight))
}

func (c *Cache[K, V]) get(k K) (V, bool) {
	idx, ok := c.index[k]
	if !ok {
		return *new(V), false
	}
	c.items.moveToHead(idx)
	return c.items.get(idx).val, true
}

func (c *Cache[K, V]) put(k K, v V) {
	if idx, ok := c.index[k]; ok {
		c.items.get(idx).val = v
		c.items.moveToHead(idx)
		return
	}
	c.index[k] = c.items.pushHead(k, v)
	if len(c.index) > c.capacity {
		c.delete(c.items.tail)
	}
}

// delete removes the element idx from the list and the index together
func (c *Cache[K, V]) delete(idx int) {
	k, v := c.items.remove(idx)
	delete(c.index, k)
	if c.onDeleteF != nil {
		c.onDeleteF(k, v)
	}
}

func (c *Cache[K, V]) check() error {
	l := c.items
	if len(c.index) != l.len {
		return fmt.Errorf("index size=%d, but list length=%d: %w", len(c.index), l.len, errors.ErrInternal)
	}
	if len(c.index) > c.capacity {
		return fmt.Errorf("size=%d exceeds capacity=%d: %w", len(c.index), c.capacity, errors.ErrInternal)
	}
	if (l.head == noSlot) != (l.tail == noSlot) {
		return fmt.Errorf("head=%d and tail=%d must be both present or both absent: %w", l.head, l.tail, errors.ErrInternal)
	}
	if l.head == noSlot {
		if len(c.index) != 0 {
			return fmt.Errorf("the list is empty, but index has %d elements: %w", len(c.index), errors.ErrInternal)
		}
		return nil
	}
	if l.get(l.head).newer != noSlot {
		return fmt.Errorf("head=%d has newer link: %w", l.head, errors.ErrInternal)
	}

	cnt := 0
	prev := noSlot
	for idx := l.head; idx != noSlot; idx = l.get(idx).older {
		// more steps than elements means a cycle
		if cnt >= len(c.index) {
			return fmt.Errorf("the list has more than %d reachable elements: %w", len(c.index), errors.ErrInternal)
		}
		e := l.get(idx)
		if e.newer != prev {
			return fmt.Errorf("slot=%d has newer=%d, but expected %d: %w", idx, e.newer, prev, errors.ErrInternal)
		}
		if ii, ok := c.index[e.key]; !ok || ii != idx {
			return fmt.Errorf("the key=%v in slot=%d is not indexed properly (index has %d, %t): %w", e.key, idx, ii, ok, errors.ErrInternal)
		}
		prev = idx
		cnt++
	}
	if prev != l.tail {
		return fmt.Errorf("the last reachable slot=%d, but tail=%d: %w", prev, l.tail, errors.ErrInternal)
	}
	if cnt != len(c.index) {
		return fmt.Errorf("reachable elements=%d, but index size=%d: %w", cnt, len(c.index), errors.ErrInternal)
	}
	return nil
}

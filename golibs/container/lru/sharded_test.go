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
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewShardedCache(t *testing.T) {
	_, err := NewShardedCache[string, int](10, 0, StringHash, nil)
	assert.ErrorIs(t, err, errors.ErrInvalid)
	_, err = NewShardedCache[string, int](3, 4, StringHash, nil)
	assert.ErrorIs(t, err, errors.ErrInvalid)
	_, err = NewShardedCache[string, int](10, 2, nil, nil)
	assert.ErrorIs(t, err, errors.ErrInvalid)

	sc, err := NewShardedCache[string, int](10, 4, StringHash, nil)
	assert.Nil(t, err)
	assert.Equal(t, 10, sc.Capacity())
	caps := []int{}
	total := 0
	for _, c := range sc.shards {
		caps = append(caps, c.Capacity())
		total += c.Capacity()
	}
	assert.Equal(t, []int{3, 3, 2, 2}, caps)
	assert.Equal(t, 10, total)
}

func TestShardedCache_Operations(t *testing.T) {
	deleted := 0
	sc, err := NewShardedCache[string, int](100, 4, StringHash, func(k string, v int) { deleted++ })
	assert.Nil(t, err)

	for i := 0; i < 50; i++ {
		sc.Put("k"+strconv.Itoa(i), i)
	}
	assert.Equal(t, 50, sc.Size())
	for i := 0; i < 50; i++ {
		v, ok := sc.Get("k" + strconv.Itoa(i))
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.True(t, sc.Contains("k7"))
	assert.True(t, sc.Remove("k7"))
	assert.False(t, sc.Remove("k7"))
	assert.False(t, sc.Contains("k7"))
	assert.Equal(t, 1, deleted)

	v, err := sc.GetOrCreate("k7", func(k string) (int, error) { return 77, nil })
	assert.Nil(t, err)
	assert.Equal(t, 77, v)
	assert.Nil(t, sc.Check())

	assert.Equal(t, 50, sc.Clear())
	assert.Equal(t, 0, sc.Size())
	assert.Equal(t, 51, deleted)
}

func TestShardedCache_Bound(t *testing.T) {
	sc, _ := NewShardedCache[int, int](16, 4, func(k int) uint64 { return uint64(k) }, nil)
	for i := 0; i < 1000; i++ {
		sc.Put(i, i)
		assert.LessOrEqual(t, sc.Size(), 16)
	}
	// the identity hash fills every shard evenly, so the last 16 keys stay
	assert.Equal(t, 16, sc.Size())
	for i := 1000 - 16; i < 1000; i++ {
		assert.True(t, sc.Contains(i))
	}
	assert.Nil(t, sc.Check())
}

func TestShardedCache_Concurrent(t *testing.T) {
	sc, _ := NewShardedCache[string, int](8, 4, StringHash, nil)
	done := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; ; i++ {
				select {
				case <-done:
					return
				default:
				}
				k := "k" + strconv.Itoa(i%20)
				sc.Put(k, i)
				sc.Get(k)
				if i%50 == 0 {
					sc.Remove(k)
				}
			}
		}(w)
	}
	time.Sleep(100 * time.Millisecond)
	close(done)
	wg.Wait()
	assert.LessOrEqual(t, sc.Size(), 8)
	assert.Nil(t, sc.Check())
}

func TestStringHash(t *testing.T) {
	assert.Equal(t, StringHash("abc"), StringHash("abc"))
	assert.Equal(t, StringHash("abc"), BytesHash([]byte("abc")))
	assert.NotEqual(t, StringHash("abc"), StringHash("abd"))
}

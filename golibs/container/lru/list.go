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

// noSlot marks an absent link or an empty head/tail
const noSlot = -1

type (
	// entry is a cache record. newer points toward the head (most recently used),
	// older points toward the tail (least recently used). Both are slot ids
	// in the recencyList arena, so no entry owns another one.
	entry[K comparable, V any] struct {
		key   K
		val   V
		newer int
		older int
	}

	// recencyList is a doubly-linked list of entries kept in a slice. Entries are
	// addressed by their slot id, which stays stable while the entry is in the
	// list. Released slots are recycled by the next push.
	recencyList[K comparable, V any] struct {
		slots []entry[K, V]
		free  []int
		head  int
		tail  int
		len   int
	}
)

func newRecencyList[K comparable, V any](sizeHint int) *recencyList[K, V] {
	l := new(recencyList[K, V])
	l.slots = make([]entry[K, V], 0, sizeHint)
	l.head, l.tail = noSlot, noSlot
	return l
}

// pushHead places new entry (k, v) at the head and returns its slot id
func (l *recencyList[K, V]) pushHead(k K, v V) int {
	var idx int
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.slots = append(l.slots, entry[K, V]{})
		idx = len(l.slots) - 1
	}
	e := &l.slots[idx]
	e.key, e.val = k, v
	l.linkHead(idx)
	l.len++
	return idx
}

// moveToHead promotes the entry idx. It is no-op for the head itself.
func (l *recencyList[K, V]) moveToHead(idx int) {
	if l.head == idx {
		return
	}
	l.unlink(idx)
	l.linkHead(idx)
}

// remove unlinks the entry idx, releases its slot and returns the stored key and value
func (l *recencyList[K, V]) remove(idx int) (K, V) {
	l.unlink(idx)
	e := &l.slots[idx]
	k, v := e.key, e.val
	// zero the slot so the arena doesn't keep the key and value reachable
	*e = entry[K, V]{newer: noSlot, older: noSlot}
	l.free = append(l.free, idx)
	l.len--
	return k, v
}

// reset drops all entries and the arena
func (l *recencyList[K, V]) reset() {
	l.slots = nil
	l.free = nil
	l.head, l.tail = noSlot, noSlot
	l.len = 0
}

func (l *recencyList[K, V]) get(idx int) *entry[K, V] {
	return &l.slots[idx]
}

func (l *recencyList[K, V]) linkHead(idx int) {
	e := &l.slots[idx]
	e.newer = noSlot
	e.older = l.head
	if l.head != noSlot {
		l.slots[l.head].newer = idx
	} else {
		l.tail = idx
	}
	l.head = idx
}

func (l *recencyList[K, V]) unlink(idx int) {
	e := &l.slots[idx]
	if e.newer != noSlot {
		l.slots[e.newer].older = e.older
	} else {
		l.head = e.older
	}
	if e.older != noSlot {
		l.slots[e.older].newer = e.newer
	} else {
		l.tail = e.newer
	}
	e.newer, e.older = noSlot, noSlot
}

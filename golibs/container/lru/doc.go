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

/*
Package lru contains the containers with limited size capacity and LRU
(Least Recently Used) pull out discipline. The containers use golang generics,
so they can be instantiated for different key and value types.

Cache keeps the elements in a slice-backed doubly-linked list (the recency list),
where the links are slot indexes rather than pointers, and an index map from the
key to the slot. The most recently used element is the list head, the least
recently used one is the tail and it is evicted first. Both structures are modified
under one exclusive lock, so the operations are linearizable.

ShardedCache distributes keys between several Cache objects by the key hash. It
reduces the lock contention, but the LRU order is kept per shard only.
*/
package lru

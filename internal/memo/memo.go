// Package memo provides a sharded, bounded memo table for compiled
// programs keyed by their fingerprint.
//
// Each of the 16 shards holds its own lock and LRU order, so compilations
// of unrelated expressions rarely contend. Failed computations are never
// stored.
package memo

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// Shards is the number of independently locked shards. Power of 2.
	Shards = 16

	// DefaultCapacity is the per-shard entry limit used when none is given.
	DefaultCapacity = 64

	shardMask = Shards - 1
)

// Stats is a snapshot of table counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Table is a concurrency-safe LRU memo table with string keys.
type Table[V any] struct {
	shards   [Shards]shard[V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	order   list[V]
}

// New returns a table holding at most capacity entries per shard.
// Non-positive capacities select DefaultCapacity.
func New[V any](capacity int) *Table[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	t := &Table[V]{capacity: capacity}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*entry[V])
		t.shards[i].order.init()
	}
	return t
}

// Hash is the FNV-1a hash used for shard selection.
func Hash(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key)) // never fails
	return h.Sum64()
}

func (t *Table[V]) shardFor(key string) *shard[V] {
	return &t.shards[Hash(key)&shardMask]
}

// Get returns the value stored under key and marks it recently used.
func (t *Table[V]) Get(key string) (V, bool) {
	s := t.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		s.order.moveToFront(e)
	}
	s.mu.Unlock()

	if !ok {
		t.misses.Add(1)
		var zero V
		return zero, false
	}
	t.hits.Add(1)
	return e.value, true
}

// Put stores value under key, evicting the least recently used entries of
// the shard when it is full.
func (t *Table[V]) Put(key string, value V) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	t.putLocked(s, key, value)
}

func (t *Table[V]) putLocked(s *shard[V], key string, value V) {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.order.moveToFront(e)
		return
	}
	for s.order.len >= t.capacity {
		old := s.order.back()
		s.order.remove(old)
		delete(s.entries, old.key)
		t.evictions.Add(1)
	}
	e := &entry[V]{key: key, value: value}
	s.order.pushFront(e)
	s.entries[key] = e
}

// Do returns the value stored under key, computing and storing it on a
// miss. compute runs under the shard lock, so concurrent callers asking for
// the same key compute it once. hit reports whether the value came from the
// table. Errors from compute are returned and not stored.
func (t *Table[V]) Do(key string, compute func() (V, error)) (value V, hit bool, err error) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.order.moveToFront(e)
		t.hits.Add(1)
		return e.value, true, nil
	}
	t.misses.Add(1)

	value, err = compute()
	if err != nil {
		var zero V
		return zero, false, err
	}
	t.putLocked(s, key, value)
	return value, false, nil
}

// Delete removes key and reports whether it was present.
func (t *Table[V]) Delete(key string) bool {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.order.remove(e)
	delete(s.entries, key)
	return true
}

// Clear removes every entry. Counters are kept.
func (t *Table[V]) Clear() {
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		s.entries = make(map[string]*entry[V])
		s.order.init()
		s.mu.Unlock()
	}
}

// Len returns the number of stored entries.
func (t *Table[V]) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Capacity returns the per-shard entry limit.
func (t *Table[V]) Capacity() int { return t.capacity }

// Stats returns the current counters.
func (t *Table[V]) Stats() Stats {
	return Stats{
		Len:       t.Len(),
		Hits:      t.hits.Load(),
		Misses:    t.misses.Load(),
		Evictions: t.evictions.Load(),
	}
}

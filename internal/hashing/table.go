package hashing

import (
	"sync"
	"sync/atomic"
)

// Table caches perft node counts by position key and remaining depth. It
// is safe for concurrent use.
type Table struct {
	mu          sync.RWMutex
	entries     map[entryKey]uint64
	maxCapacity int
	hits        atomic.Uint64
	misses      atomic.Uint64
}

type entryKey struct {
	hash  uint64
	depth int
}

// NewTable creates a table. maxCapacity of 0 means unlimited capacity;
// stores beyond the limit are dropped.
func NewTable(maxCapacity int) *Table {
	return &Table{
		entries:     make(map[entryKey]uint64),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the stored count for the position at depth.
func (t *Table) Lookup(hash uint64, depth int) (uint64, bool) {
	t.mu.RLock()
	nodes, ok := t.entries[entryKey{hash, depth}]
	t.mu.RUnlock()

	if ok {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	return nodes, ok
}

// Store records the count for the position at depth.
func (t *Table) Store(hash uint64, depth int, nodes uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isFull() {
		return
	}
	t.entries[entryKey{hash, depth}] = nodes
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Hits returns the number of successful lookups.
func (t *Table) Hits() uint64 {
	return t.hits.Load()
}

// Misses returns the number of failed lookups.
func (t *Table) Misses() uint64 {
	return t.misses.Load()
}

func (t *Table) isFull() bool {
	return t.maxCapacity > 0 && len(t.entries) >= t.maxCapacity
}

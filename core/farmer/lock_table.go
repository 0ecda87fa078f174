package farmer

import (
	"sort"
	"sync"
)

// lockTable gives exclusive access to records by key.
// Entries live only while someone holds or waits for them.
type lockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{
		entries: map[string]*lockEntry{},
	}
}

// Lock locks every key in order and returns the function releasing them
func (lt *lockTable) Lock(keys ...string) func() {
	sorted := make([]string, 0, len(keys))
	seen := map[string]bool{}
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		lt.acquire(k).Lock()
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			lt.release(sorted[i])
		}
	}
}

func (lt *lockTable) acquire(key string) *lockEntry {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	e, has := lt.entries[key]
	if !has {
		e = &lockEntry{}
		lt.entries[key] = e
	}
	e.refs++
	return e
}

func (lt *lockTable) release(key string) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	e := lt.entries[key]
	e.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(lt.entries, key)
	}
}

func (lt *lockTable) size() int {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	return len(lt.entries)
}

// Package keylock provides mutual exclusion per string key. Store adapters
// use it to serialize read-modify-write cycles on the same record while
// letting writers on different records proceed in parallel.
package keylock

import "sync"

// KeyedMutex provides an independent mutex per key. Lock entries are
// reference counted and dropped once the last waiter releases.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*lockEntry),
	}
}

// Lock blocks until the key is exclusively held by the caller.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &lockEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the key. Must only be called by the current holder.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	entry := k.entries[key]
	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}

// Package keylock provides mutual exclusion keyed by string.
//
// The create path must run its check-then-act against the idempotency ledger
// as one critical section per idempotency key, and status updates must apply
// their read-modify-write as one critical section per order identifier.
// KeyedMutex provides exactly that: callers locking different keys never block
// each other, callers locking the same key are serialized.
package keylock

import "sync"

// KeyedMutex is a registry of mutexes addressed by key.
// Entries are reference counted and removed again once the last holder
// releases, so the registry does not grow with the key space.
//
// The zero value is not usable; create instances with New.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*lockEntry),
	}
}

// Lock acquires the mutex for the key, blocking while another goroutine
// holds it. Locks for distinct keys are independent.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex for the key. It must only be called by a
// goroutine that currently holds the key's lock.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unlocked key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}

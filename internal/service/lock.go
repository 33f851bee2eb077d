package service

import "sync"

// keyedMutex provides per-key mutual exclusion. The recommendation engine
// uses it to serialize concurrent runs for the same group so two refreshes
// cannot interleave their read-compute-write sequences.
//
// Mutexes are never removed; the number of groups a single instance serves
// keeps the map small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

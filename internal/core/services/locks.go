package services

import "sync"

// namedLocks hands out one mutex per key. Entries are reference counted and
// dropped when no goroutine holds or waits on them.
type namedLocks struct {
	mu    sync.Mutex
	locks map[string]*namedLock
}

type namedLock struct {
	mu   sync.Mutex
	refs int
}

func newNamedLocks() *namedLocks {
	return &namedLocks{locks: make(map[string]*namedLock)}
}

// lock blocks until key is held and returns the matching unlock.
func (l *namedLocks) lock(key string) func() {
	l.mu.Lock()
	nl, ok := l.locks[key]
	if !ok {
		nl = &namedLock{}
		l.locks[key] = nl
	}
	nl.refs++
	l.mu.Unlock()

	nl.mu.Lock()

	return func() {
		nl.mu.Unlock()

		l.mu.Lock()
		nl.refs--
		if nl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live entries.
func (l *namedLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

package recorder

import "sync"

// sessionLocks hands out one mutex per session id so that load-mutate-save
// sequences on the mapping and packaging runs never interleave for the same
// session. Locks are never reclaimed; sessions are short-lived and the
// per-entry cost is a mutex.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *sessionLocks) get(sessionID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[sessionID] = lock
	}
	return lock
}

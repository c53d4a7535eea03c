package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// entry is a live server-side session: the user it belongs to and the last
// time it was used, for the inactivity timeout.
type entry struct {
	userId   int
	lastSeen time.Time
}

// Registry is the server-side session store of the session-login mode. Keys
// are unguessable random identifiers; only the key travels to the client.
// Concurrent invalidate/read of one key is best-effort, not a guaranteed
// critical section.
type Registry struct {
	sync.RWMutex
	entries     map[string]entry
	maxInactive time.Duration
}

// NewRegistry creates a registry whose sessions expire after maxInactive
// without use.
func NewRegistry(maxInactive time.Duration) *Registry {
	return &Registry{
		entries:     make(map[string]entry),
		maxInactive: maxInactive,
	}
}

// Start creates a session for the user under a fresh random key and returns
// the key.
func (r *Registry) Start(userId int) string {
	key := uuid.NewString()

	r.Lock()
	defer r.Unlock()
	r.entries[key] = entry{userId: userId, lastSeen: time.Now()}
	return key
}

// Get returns the user id stored under key. A hit refreshes the inactivity
// deadline; an expired entry is dropped and reported as absent.
func (r *Registry) Get(key string) (int, bool) {
	r.Lock()
	defer r.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return 0, false
	}
	if time.Since(e.lastSeen) > r.maxInactive {
		delete(r.entries, key)
		return 0, false
	}

	e.lastSeen = time.Now()
	r.entries[key] = e
	return e.userId, true
}

// Invalidate destroys the session under key, if any.
func (r *Registry) Invalidate(key string) {
	r.Lock()
	defer r.Unlock()
	delete(r.entries, key)
}

// RemoveExpired drops every session past its inactivity deadline. Run
// periodically so abandoned sessions do not accumulate.
func (r *Registry) RemoveExpired() {
	r.Lock()
	defer r.Unlock()

	now := time.Now()
	for key, e := range r.entries {
		if now.Sub(e.lastSeen) > r.maxInactive {
			delete(r.entries, key)
		}
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.entries)
}

package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zieg12345/clientsearchinfo/config"
)

// SessionStore owns all live sessions. Each session's table and
// diagnostics log exist from first contact until the session is evicted
// or expires idle; there is no storage behind it.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int           // maximum live sessions, 0 = unlimited
	idleExpire  time.Duration // idle time before a session is dropped
}

// NewSessionStore creates a store sized from configuration. No global
// instance: the store is built in main and handed to the middleware.
func NewSessionStore(cfg *config.StoreConfig) *SessionStore {
	maxSessions := cfg.MaxSessions
	if maxSessions < 0 {
		maxSessions = 0
	}
	store := &SessionStore{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		idleExpire:  time.Duration(cfg.IdleExpireMinutes) * time.Minute,
	}
	slog.Info("session store initialized",
		"max_sessions", maxSessions,
		"idle_expire", store.idleExpire,
	)
	return store
}

// Create mints a new session with a fresh ID.
func (st *SessionStore) Create() *Session {
	sess := newSession(uuid.New().String())

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID] = sess
	st.evictLocked()

	return sess
}

// Get returns the session for id, refreshing its idle timer. Unknown
// and idle-expired sessions return nil; callers mint a new one.
func (st *SessionStore) Get(id string) *Session {
	now := time.Now()

	st.mu.RLock()
	sess := st.sessions[id]
	st.mu.RUnlock()

	if sess == nil {
		return nil
	}

	if st.idleExpire > 0 && now.Sub(sess.seenAt()) > st.idleExpire {
		st.Delete(id)
		return nil
	}

	sess.touch(now)
	return sess
}

// Delete removes a session outright.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// evictLocked drops the least recently seen sessions once the cap is
// exceeded. Must be called with the store lock held.
func (st *SessionStore) evictLocked() {
	if st.maxSessions <= 0 {
		return
	}
	if len(st.sessions) <= st.maxSessions {
		return
	}

	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].seenAt().Before(sessions[j].seenAt())
	})

	removeCount := len(sessions) - st.maxSessions
	for i := 0; i < removeCount; i++ {
		slog.Info("evicting idle session",
			"session_id", sessions[i].ID,
			"last_seen", sessions[i].seenAt(),
		)
		delete(st.sessions, sessions[i].ID)
	}
}

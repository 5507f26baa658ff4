package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/editor"
)

// EditSession owns one in-memory document store with its undo history.
// All access to the store goes through Do, which serializes edits so the
// single-writer assumption of the editor package holds even when HTTP
// requests for the same session race.
type EditSession struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	ResumeID uuid.UUID

	mu       sync.Mutex
	store    *editor.Store
	lastUsed time.Time
}

// Do runs fn with exclusive access to the session's store.
func (s *EditSession) Do(fn func(st *editor.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.store)
}

// SessionRegistry tracks live editing sessions. Sessions idle longer than
// the TTL are removed by the sweeper; their unsaved edits are lost, same as
// closing a browser tab.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*EditSession
	ttl      time.Duration

	// historyLimit caps undo depth of new sessions. Zero means unbounded.
	historyLimit int

	sweepTicker *time.Ticker
	sweepStop   chan struct{}
}

// DefaultSessionTTL is how long an idle session survives before the
// sweeper reclaims it.
const DefaultSessionTTL = 30 * time.Minute

// NewSessionRegistry creates a registry. A zero ttl uses DefaultSessionTTL.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*EditSession),
		ttl:      ttl,
	}
}

// SetHistoryLimit caps the undo depth of sessions opened afterward.
func (r *SessionRegistry) SetHistoryLimit(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.historyLimit = n
}

// Open creates a session seeded with the given document.
func (r *SessionRegistry) Open(userID, resumeID uuid.UUID, doc *document.ResumeDocument) *EditSession {
	r.mu.RLock()
	limit := r.historyLimit
	r.mu.RUnlock()

	store := editor.NewStore()
	store.SetHistoryLimit(limit)
	store.ReplaceDocument(doc)

	session := &EditSession{
		ID:       uuid.New(),
		UserID:   userID,
		ResumeID: resumeID,
		store:    store,
		lastUsed: time.Now(),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

// Get returns the session with the given ID, if it exists.
func (r *SessionRegistry) Get(id uuid.UUID) (*EditSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Close removes a session. Returns false if it did not exist.
func (r *SessionRegistry) Close(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle past the TTL and returns how many were removed.
func (r *SessionRegistry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		session.mu.Lock()
		idle := session.lastUsed.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper launches a background goroutine that sweeps at the given
// interval until StopSweeper is called.
func (r *SessionRegistry) StartSweeper(interval time.Duration) {
	r.sweepTicker = time.NewTicker(interval)
	r.sweepStop = make(chan struct{})
	go func() {
		for {
			select {
			case <-r.sweepTicker.C:
				r.Sweep(time.Now())
			case <-r.sweepStop:
				return
			}
		}
	}()
}

// StopSweeper terminates the sweeper goroutine.
func (r *SessionRegistry) StopSweeper() {
	if r.sweepTicker != nil {
		r.sweepTicker.Stop()
		close(r.sweepStop)
	}
}

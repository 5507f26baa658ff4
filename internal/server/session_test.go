package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/editor"
)

func TestSessionRegistryOpenGetClose(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	userID := uuid.New()
	resumeID := uuid.New()

	session := reg.Open(userID, resumeID, document.New("Test", "modern"))
	require.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, resumeID, session.ResumeID)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = reg.Get(uuid.New())
	assert.False(t, ok)

	assert.True(t, reg.Close(session.ID))
	assert.False(t, reg.Close(session.ID), "double close")
	assert.Equal(t, 0, reg.Len())
}

func TestSessionSeededWithDocument(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	doc := document.New("Seeded", "classic")
	session := reg.Open(uuid.New(), uuid.New(), doc)

	session.Do(func(st *editor.Store) {
		assert.Equal(t, "Seeded", st.Document().Title)
		assert.Equal(t, "classic", st.Document().TemplateID)
		assert.False(t, st.CanUndo(), "opening is not an edit")
	})
}

func TestSessionSweepRemovesIdle(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	idle := reg.Open(uuid.New(), uuid.New(), document.New("Idle", "modern"))
	fresh := reg.Open(uuid.New(), uuid.New(), document.New("Fresh", "modern"))

	idle.mu.Lock()
	idle.lastUsed = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	removed := reg.Sweep(time.Now())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, reg.Len())

	_, ok := reg.Get(idle.ID)
	assert.False(t, ok)
	_, ok = reg.Get(fresh.ID)
	assert.True(t, ok)
}

func TestSessionDoRefreshesIdleClock(t *testing.T) {
	reg := NewSessionRegistry(time.Minute)
	session := reg.Open(uuid.New(), uuid.New(), document.New("Busy", "modern"))

	session.mu.Lock()
	session.lastUsed = time.Now().Add(-2 * time.Minute)
	session.mu.Unlock()

	session.Do(func(st *editor.Store) {})

	assert.Equal(t, 0, reg.Sweep(time.Now()), "touched session survives")
}

func TestSessionRegistryZeroTTLUsesDefault(t *testing.T) {
	reg := NewSessionRegistry(0)
	assert.Equal(t, DefaultSessionTTL, reg.ttl)
}

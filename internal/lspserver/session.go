package lspserver

import (
	"sync"

	"github.com/google/uuid"
)

// SessionTracker assigns a stable session ID to each open document URI, so
// log lines and diagnostics for the same editor buffer can be correlated
// across didOpen/didChange/didSave/didClose without re-deriving it from the
// URI string each time.
type SessionTracker struct {
	sessions map[string]string
	mu       sync.RWMutex
}

// NewSessionTracker creates an empty SessionTracker.
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{sessions: make(map[string]string)}
}

// Open assigns a new session ID to uri, replacing any prior one (a reopen
// after close starts a fresh session).
func (st *SessionTracker) Open(uri string) string {
	id := uuid.NewString()

	st.mu.Lock()
	st.sessions[uri] = id
	st.mu.Unlock()

	return id
}

// ID returns the current session ID for uri, if one is open.
func (st *SessionTracker) ID(uri string) (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	id, ok := st.sessions[uri]

	return id, ok
}

// Close drops the session for uri.
func (st *SessionTracker) Close(uri string) {
	st.mu.Lock()
	delete(st.sessions, uri)
	st.mu.Unlock()
}

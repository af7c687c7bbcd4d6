package drag

import (
	"sort"
	"sync"
)

// Manager owns one Session per scope.
type Manager struct {
	mu       sync.Mutex
	opts     Options
	sessions map[string]*Session
}

// NewManager creates a manager whose sessions share opts.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for scope, creating it on first use.
func (m *Manager) Session(scope string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[scope]
	if !ok {
		s = NewSession(scope, m.opts)
		m.sessions[scope] = s
	}
	return s
}

// Attach records a card region in scope.
func (m *Manager) Attach(scope, id string, r Rect) {
	m.Session(scope).Attach(id, r)
}

// Detach removes a card region from scope.
func (m *Manager) Detach(scope, id string) {
	m.Session(scope).Detach(id)
}

// Scopes lists scopes with a session, sorted.
func (m *Manager) Scopes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sessions))
	for scope := range m.sessions {
		out = append(out, scope)
	}
	sort.Strings(out)
	return out
}

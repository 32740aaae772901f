package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/pkg/logger"
)

// Manager owns every live session
// ⭐ SSOT: sessions are created and evicted here only
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	store       *dataset.Store
	maxSessions int
	logger      *logger.Logger
	now         func() time.Time
}

// NewManager creates a session manager; maxSessions <= 0 means unlimited
func NewManager(store *dataset.Store, maxSessions int, log *logger.Logger) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		store:       store,
		maxSessions: maxSessions,
		logger:      log,
		now:         time.Now,
	}
}

// Create starts an empty roster named name
func (m *Manager) Create(name string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("%w: %d", ErrTooManySessions, m.maxSessions)
	}

	s := newSession(uuid.NewString(), name, m.store, m.now)
	m.sessions[s.ID] = s

	m.logger.WithFields(map[string]interface{}{
		"session_id": s.ID,
		"team":       name,
		"live":       len(m.sessions),
	}).Debug("Session created")
	return s, nil
}

// Get returns a live session
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete closes and forgets a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.close()
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanIdle evicts sessions whose last mutation is older than ttl
func (m *Manager) CleanIdle(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	live := len(m.sessions)
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
	}

	if len(idle) > 0 {
		m.logger.WithFields(map[string]interface{}{
			"evicted": len(idle),
			"live":    live,
			"ttl":     ttl.String(),
		}).Info("Idle sessions evicted")
	}
	return len(idle)
}

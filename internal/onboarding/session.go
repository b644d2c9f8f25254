// Package onboarding keeps one business-hours form session per company and
// moves it between the form state and the onboarding API.
package onboarding

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/hours"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// Session is the open business-hours form of one company.
type Session struct {
	CompanyID string
	Timezone  string
	StartedAt time.Time

	// lastActive is read and written without mu.
	lastActive atomic.Int64

	manager *hours.Manager
	payload model.WeeklyScheduleWire
	loaded  bool
	mu      sync.Mutex
}

// NewSession creates a session holding the default schedule.
func NewSession(companyID string) *Session {
	now := time.Now()
	s := &Session{
		CompanyID: companyID,
		StartedAt: now,
	}
	s.lastActive.Store(now.UnixNano())
	s.manager = hours.NewManager(hours.WithChangeListener(s.onChange))
	s.payload = s.manager.ToAPIPayload()
	return s
}

// onChange runs under s.mu, inside Edit or reconcile.
func (s *Session) onChange(w model.WeeklyScheduleWire) {
	s.payload = w
	s.touch()
}

// Edit runs fn against the form state while holding the session lock.
func (s *Session) Edit(fn func(m *hours.Manager) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.manager)
}

// View runs fn against the form state read-only.
func (s *Session) View(fn func(m *hours.Manager)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.manager)
}

// Payload returns the wire payload derived from the latest mutation.
func (s *Session) Payload() model.WeeklyScheduleWire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload
}

// Loaded reports whether the server schedule has been reconciled into the session.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// UpdatedAt returns the time of the last edit or access.
func (s *Session) UpdatedAt() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// IsExpired checks if the session has been idle longer than timeout.
func (s *Session) IsExpired(timeout time.Duration) bool {
	return time.Since(s.UpdatedAt()) > timeout
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// SessionStore manages form sessions.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	timeout  time.Duration
}

// NewSessionStore creates a new session store.
func NewSessionStore(timeout time.Duration) *SessionStore {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		timeout:  timeout,
	}
}

// Get returns the session of a company, or nil.
func (ss *SessionStore) Get(companyID string) *Session {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.sessions[companyID]
}

// GetOrCreate returns the live session or replaces an expired one.
func (ss *SessionStore) GetOrCreate(companyID string) *Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	session, ok := ss.sessions[companyID]
	if ok && !session.IsExpired(ss.timeout) {
		session.touch()
		return session
	}

	session = NewSession(companyID)
	ss.sessions[companyID] = session
	return session
}

// Delete removes a session.
func (ss *SessionStore) Delete(companyID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, companyID)
}

// Len returns the number of sessions.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// Cleanup removes expired sessions.
func (ss *SessionStore) Cleanup() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for companyID, session := range ss.sessions {
		if session.IsExpired(ss.timeout) {
			delete(ss.sessions, companyID)
			removed++
		}
	}
	return removed
}

// Package bot wires routing, fetching, and composition into chat turns.
package bot

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openhill/hillbot/internal/domain"
)

// SessionStore keeps conversation state between turns.
type SessionStore interface {
	// GetOrCreate returns the session for id, creating it if absent.
	// An empty id creates a session with a fresh identifier.
	GetOrCreate(id string) *domain.Session
	// Append adds a message to the session's history.
	Append(id string, msg domain.Message)
	// History returns a copy of the session's messages, or nil if the
	// session does not exist.
	History(id string) []domain.Message
	// Clear resets the session to just its system prompt.
	Clear(id string)
	// List returns all known session ids.
	List() []string
}

// MemorySessionStore holds sessions in memory. State does not survive a
// restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) GetOrCreate(id string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return copySession(sess)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	sess := &domain.Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: systemPrompt, Timestamp: now},
		},
	}
	s.sessions[id] = sess
	return copySession(sess)
}

func (s *MemorySessionStore) Append(id string, msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = s.now()
}

func (s *MemorySessionStore) History(id string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	out := make([]domain.Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out
}

func (s *MemorySessionStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	now := s.now()
	sess.Messages = []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt, Timestamp: now},
	}
	sess.UpdatedAt = now
}

func (s *MemorySessionStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copySession(sess *domain.Session) *domain.Session {
	out := *sess
	out.Messages = make([]domain.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return &out
}

package state

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrStateNotFound   = errors.New("session state not found")
	ErrNilSessionState = errors.New("session state is nil")
	ErrInvalidSession  = errors.New("session id is empty")
)

// Store is the session registry used by the orchestrator.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, st *Session) error
	Delete(ctx context.Context, sessionID string) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory. Only the index is guarded;
// each session is mutated under its own lock.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := sessionKey(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[key]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st, nil
}

func (s *MemoryStore) Save(ctx context.Context, st *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st == nil {
		return ErrNilSessionState
	}
	key, err := sessionKey(st.ID)
	if err != nil {
		return err
	}
	if st.Transcript == nil {
		st.Transcript = NewTranscript()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = st
	return nil
}

// Delete drops the session and with it the transcript.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := sessionKey(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func sessionKey(sessionID string) (string, error) {
	key := strings.TrimSpace(sessionID)
	if key == "" {
		return "", ErrInvalidSession
	}
	return key, nil
}

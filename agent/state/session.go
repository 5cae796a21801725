package state

import (
	"sync"
	"time"
)

// Session owns one transcript. Turns on a session must be serialized with
// Lock/Unlock; different sessions share nothing.
type Session struct {
	ID         string
	Transcript *Transcript
	CreatedAt  time.Time
	UpdatedAt  time.Time

	mu sync.Mutex
}

func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		ID:         sessionID,
		Transcript: NewTranscript(),
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
}

func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

func (s *Session) Append(e Entry, now time.Time) {
	s.Transcript.Append(e)
	s.Touch(now)
}

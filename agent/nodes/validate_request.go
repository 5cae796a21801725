package orchestratornode

import (
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

// ApologyReply is returned when the generator cannot be reached. The turn is
// abandoned but everything already appended stays in the transcript.
const ApologyReply = "I'm sorry, I encountered an issue connecting to my base camp. Can you try again in a moment? 🏔️"

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

// GraphState is threaded through the turn graph. Session must be held
// locked by the caller for the whole turn.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session  *statex.Session
	Response *schema.Message

	Aborted bool
	Reply   string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}

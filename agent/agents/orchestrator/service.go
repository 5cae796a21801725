package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
	nodex "github.com/tanpawarit/sierra-outfitters-agent/agent/nodes"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

const ApologyReply = nodex.ApologyReply

type Config struct {
	Logger zerolog.Logger
	Now    func() time.Time
}

// Orchestrator runs conversation turns: it decides between a direct reply and
// tool dispatch, and keeps each session's transcript in order.
type Orchestrator struct {
	store     statex.Store
	generator contractx.Generator
	tools     contractx.ToolExecutor

	graphRunner compose.Runnable[*nodex.GraphState, nodex.GraphOutput]

	createMu sync.Mutex
	logger   zerolog.Logger
	now      func() time.Time
}

func New(
	store statex.Store,
	generator contractx.Generator,
	tools contractx.ToolExecutor,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if tools == nil {
		return nil, errors.New("tool executor is required")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	o := &Orchestrator{
		store:     store,
		generator: generator,
		tools:     tools,
		logger:    cfg.Logger,
		now:       now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage processes one user utterance. Generator and tool failures are
// answered with a reply, not an error; errors are reserved for invalid input
// and session store faults.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	in, err := nodex.ValidateRequest(nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	}, o.now)
	if err != nil {
		return "", err
	}

	sess, err := o.session(ctx, in.SessionID, in.Now)
	if err != nil {
		return "", err
	}
	sess.Lock()
	defer sess.Unlock()
	in.Session = sess

	o.logger.Info().Str("session_id", in.SessionID).Str("message", truncate(in.Text, 50)).Msg("processing user message")

	out, err := o.graphRunner.Invoke(ctx, in)
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// StartSession opens a session with the assistant greeting as its first
// transcript entry.
func (o *Orchestrator) StartSession(ctx context.Context, sessionID string, greeting string) error {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return ErrInvalidSession
	}
	now := o.now().UTC()
	sess, err := o.session(ctx, id, now)
	if err != nil {
		return err
	}
	if greeting = strings.TrimSpace(greeting); greeting == "" {
		return nil
	}

	sess.Lock()
	defer sess.Unlock()
	sess.Append(statex.AssistantMessage{Text: greeting}, now)
	return nil
}

// EndSession discards the session and its transcript.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	o.logger.Info().Str("session_id", sessionID).Msg("session ended")
	return o.store.Delete(ctx, strings.TrimSpace(sessionID))
}

// Transcript returns a copy of the session's entries.
func (o *Orchestrator) Transcript(ctx context.Context, sessionID string) ([]statex.Entry, error) {
	sess, err := o.store.Load(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return sess.Transcript.Entries(), nil
}

func (o *Orchestrator) session(ctx context.Context, sessionID string, now time.Time) (*statex.Session, error) {
	o.createMu.Lock()
	defer o.createMu.Unlock()

	sess, err := nodex.LoadOrCreateSession(ctx, o.store, sessionID, now)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return sess, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

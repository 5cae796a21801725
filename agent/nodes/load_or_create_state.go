package orchestratornode

import (
	"context"
	"errors"
	"time"

	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

// LoadOrCreateSession returns the stored session or registers a new one.
// Callers serialize concurrent creation of the same id.
func LoadOrCreateSession(ctx context.Context, store statex.Store, sessionID string, now time.Time) (*statex.Session, error) {
	st, err := store.Load(ctx, sessionID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	st = statex.NewSession(sessionID, now)
	if err := store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

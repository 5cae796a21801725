package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const (
	NodeFinalizeDirect = "finalize_direct"
	NodeDispatchTools  = "dispatch_tools"
)

// Generate asks the generator for the first response of the turn. A
// generator fault aborts the turn without an error so the caller still gets
// a reply.
func Generate(ctx context.Context, in *GraphState, gen contractx.Generator, logger zerolog.Logger) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph state has no session", contractx.ErrValidation)
	}

	msg, err := gen.Generate(ctx, in.Session.Transcript.Messages())
	if err != nil {
		logger.Error().Err(err).Str("session_id", in.SessionID).Msg("initial generator call failed")
		in.Aborted = true
		in.Reply = ApologyReply
		return in, nil
	}

	in.Response = msg
	return in, nil
}

// RouteAfterGenerate picks the direct reply path unless tools were requested.
func RouteAfterGenerate(in *GraphState) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Aborted || in.Response == nil || len(in.Response.ToolCalls) == 0 {
		return NodeFinalizeDirect, nil
	}
	return NodeDispatchTools, nil
}

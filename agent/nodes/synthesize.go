package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

// Synthesize sends the transcript, now holding the tool results, back to the
// generator for the final reply. On failure no assistant entry is recorded.
func Synthesize(ctx context.Context, in *GraphState, gen contractx.Generator, logger zerolog.Logger) (GraphOutput, error) {
	if in == nil || in.Session == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state has no session", contractx.ErrValidation)
	}

	msg, err := gen.Generate(ctx, in.Session.Transcript.Messages())
	if err != nil {
		logger.Error().Err(err).Str("session_id", in.SessionID).Msg("final generator call failed")
		return GraphOutput{Reply: ApologyReply}, nil
	}

	content := msg.Content
	if strings.TrimSpace(content) == "" {
		// Only another tool request came back; it is not executed.
		logger.Warn().Str("session_id", in.SessionID).Int("tool_calls", len(msg.ToolCalls)).Msg("final generator call returned no text")
		return GraphOutput{Reply: ApologyReply}, nil
	}

	in.Session.Append(statex.AssistantMessage{Text: content}, in.Now)
	return GraphOutput{Reply: content}, nil
}

package orchestratornode

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

// DispatchTools records the tool request and runs every call in the order the
// generator emitted it, appending one result record per call.
func DispatchTools(ctx context.Context, in *GraphState, tools contractx.ToolExecutor, logger zerolog.Logger) (*GraphState, error) {
	if in == nil || in.Session == nil || in.Response == nil {
		return nil, fmt.Errorf("%w: graph state has no tool request", contractx.ErrValidation)
	}

	calls := append([]schema.ToolCall(nil), in.Response.ToolCalls...)
	logger.Info().Str("session_id", in.SessionID).Int("tool_calls", len(calls)).Msg("tool calls requested")

	in.Session.Append(statex.ToolInvocation{
		Content: in.Response.Content,
		Calls:   calls,
	}, in.Now)

	for _, call := range calls {
		result := tools.Execute(ctx, call)
		in.Session.Append(statex.ToolResultRecord{
			CallID:   call.ID,
			ToolName: call.Function.Name,
			Payload:  encodeResult(result),
		}, in.Now)
	}
	return in, nil
}

func encodeResult(result contractx.ToolResult) string {
	if result == nil {
		result = contractx.Fault(contractx.ErrToolFault, "Sorry, I encountered an issue while processing your request. Can you try again? 🏔️")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		base := result.Base()
		raw, _ = json.Marshal(contractx.Outcome{
			Success:           false,
			Error:             err.Error(),
			FormattedResponse: base.FormattedResponse,
		})
	}
	return string(raw)
}

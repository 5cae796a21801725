package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

func FinalizeDirect(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Aborted || in.Response == nil {
		return GraphOutput{Reply: ApologyReply}, nil
	}

	content := in.Response.Content
	in.Session.Append(statex.AssistantMessage{Text: content}, in.Now)
	return GraphOutput{Reply: content}, nil
}

package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
)

func AppendUserMessage(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph state has no session", contractx.ErrValidation)
	}
	in.Session.Append(statex.UserMessage{Text: in.Text}, in.Now)
	return in, nil
}

package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Generator is the external text-generation boundary. It receives the ordered
// transcript (without the system instruction) and returns either free text or
// tool call requests.
type Generator interface {
	Generate(ctx context.Context, transcript []*schema.Message) (*schema.Message, error)
}

// ToolExecutor runs one tool call requested by the generator. Failures are
// reported inside the returned result, never as an error.
type ToolExecutor interface {
	Execute(ctx context.Context, call schema.ToolCall) ToolResult
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"maps"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const transcriptKey = "transcript"

var _ contractx.Generator = (*Generator)(nil)

// Generator sends the system instruction followed by the transcript to a
// tool-bound chat model.
type Generator struct {
	runner compose.Runnable[map[string]any, *schema.Message]
	vars   map[string]any
}

func NewGenerator(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	vars map[string]any,
	tools []*schema.ToolInfo,
) (*Generator, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if systemPrompt == "" {
		return nil, contractx.ErrPromptMissing
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileGenerateGraph(ctx, toolModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile generate graph: %v", contractx.ErrModelInvoke, err)
	}

	return &Generator{
		runner: runner,
		vars:   maps.Clone(vars),
	}, nil
}

func (g *Generator) Generate(ctx context.Context, transcript []*schema.Message) (*schema.Message, error) {
	input := make(map[string]any, len(g.vars)+1)
	maps.Copy(input, g.vars)
	input[transcriptKey] = transcript

	msg, err := g.runner.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty model response", contractx.ErrModelInvoke)
	}
	return msg, nil
}

func compileGenerateGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	if chatModel == nil {
		return nil, errors.New("nil chat model")
	}

	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder(transcriptKey, false),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add generate prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add generate model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add generate edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add generate edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add generate edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("llm.generate_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile generate graph: %w", err)
	}
	return runner, nil
}

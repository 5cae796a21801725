package state

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// Entry is one transcript record. The set of implementations is closed:
// UserMessage, AssistantMessage, ToolInvocation and ToolResultRecord.
type Entry interface {
	isEntry()
}

type UserMessage struct {
	Text string
}

// AssistantMessage is a natural-language reply. Text may be empty.
type AssistantMessage struct {
	Text string
}

// ToolInvocation records the generator turn that requested tool calls, kept
// verbatim so the generator can see its own request on the next call.
type ToolInvocation struct {
	Content string
	Calls   []schema.ToolCall
}

// ToolResultRecord wraps exactly one serialized tool result.
type ToolResultRecord struct {
	CallID   string
	ToolName string
	Payload  string
}

func (UserMessage) isEntry()      {}
func (AssistantMessage) isEntry() {}
func (ToolInvocation) isEntry()   {}
func (ToolResultRecord) isEntry() {}

// Transcript is the append-only conversation log of one session.
type Transcript struct {
	entries []Entry
}

func NewTranscript() *Transcript {
	return &Transcript{entries: make([]Entry, 0, 16)}
}

func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
}

func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the log in order.
func (t *Transcript) Entries() []Entry {
	if t == nil {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}

// Messages converts the log into the generator wire shape.
func (t *Transcript) Messages() []*schema.Message {
	if t == nil {
		return nil
	}
	msgs := make([]*schema.Message, 0, len(t.entries))
	for _, e := range t.entries {
		msgs = append(msgs, toMessage(e))
	}
	return msgs
}

func toMessage(e Entry) *schema.Message {
	switch v := e.(type) {
	case UserMessage:
		return schema.UserMessage(v.Text)
	case AssistantMessage:
		return schema.AssistantMessage(v.Text, nil)
	case ToolInvocation:
		return schema.AssistantMessage(v.Content, append([]schema.ToolCall(nil), v.Calls...))
	case ToolResultRecord:
		return &schema.Message{
			Role:       schema.Tool,
			Content:    v.Payload,
			ToolCallID: v.CallID,
			ToolName:   v.ToolName,
		}
	default:
		panic(fmt.Sprintf("state: unhandled transcript entry %T", e))
	}
}

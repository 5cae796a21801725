package contract

// ToolResult is implemented by every business tool result.
type ToolResult interface {
	Base() Outcome
}

// Outcome holds the fields shared by all tool results. It is embedded in the
// tool specific result types so that JSON encoding flattens it.
type Outcome struct {
	Success           bool   `json:"success"`
	Error             string `json:"error,omitempty"`
	FormattedResponse string `json:"formatted_response"`
}

func (o Outcome) Base() Outcome {
	return o
}

// Failure builds an unsuccessful outcome.
func Failure(formattedResponse string) Outcome {
	return Outcome{Success: false, FormattedResponse: formattedResponse}
}

// Fault builds an unsuccessful outcome carrying an error detail.
func Fault(err error, formattedResponse string) Outcome {
	out := Outcome{Success: false, FormattedResponse: formattedResponse}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

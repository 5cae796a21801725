package contract

import "errors"

var (
	ErrModelInvoke            = errors.New("model invoke failed")
	ErrValidation             = errors.New("validation failed")
	ErrPromptMissing          = errors.New("required prompt is missing")
	ErrMalformedToolArguments = errors.New("malformed tool arguments")
	ErrUnknownTool            = errors.New("unknown tool")
	ErrToolFault              = errors.New("tool execution failed")
)

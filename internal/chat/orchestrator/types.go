package orchestrator

import "mcp-chat-client/internal/model"

// TurnInput is one user submission.
type TurnInput struct {
	Message     string
	LLMConfigID *int64
}

// TurnResult reports how a turn ended. Recovered marks turns that ended
// through the error-recovery path; the conversation is intact either way.
type TurnResult struct {
	TurnID       string
	FinalMessage model.ChatMessage
	ToolCalls    []model.ToolCall
	Recovered    bool
}

// OutcomeKind tags a decoded tool result.
type OutcomeKind int

const (
	// OutcomeEmpty means the tool produced nothing extractable.
	OutcomeEmpty OutcomeKind = iota
	// OutcomeProtocolError is an error object embedded in an otherwise
	// successful response.
	OutcomeProtocolError
	// OutcomeTextContent is a content list of typed text segments.
	OutcomeTextContent
	// OutcomeStructuredContent is an explicit structured-content field.
	OutcomeStructuredContent
	// OutcomeRawObject is any other non-empty payload.
	OutcomeRawObject
)

// ToolOutcome is the normalized form of a backend tool result. Every
// downstream decision switches on Kind; nothing re-inspects raw shapes.
type ToolOutcome struct {
	Kind       OutcomeKind
	Text       string // joined text (TextContent) or short error (ProtocolError)
	Structured any    // payload for StructuredContent and RawObject
}

// Usable reports whether the outcome carries content worth sending back
// to the model.
func (o ToolOutcome) Usable() bool {
	switch o.Kind {
	case OutcomeTextContent, OutcomeStructuredContent, OutcomeRawObject:
		return true
	default:
		return false
	}
}

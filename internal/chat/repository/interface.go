package repository

import "mcp-chat-client/internal/model"

// History is the append-only conversation log. Messages are never
// deleted within a conversation; tool-call bookkeeping is patched in
// place by message id so the UI surface reflects per-tool progress.
type History interface {
	// Append adds a message to the log.
	Append(msg model.ChatMessage)

	// Messages returns a copy of the log in append order.
	Messages() []model.ChatMessage

	// PatchToolCalls replaces a message's tool_calls field by message id.
	PatchToolCalls(messageID string, calls []model.ToolCall) bool

	// UpdateToolCall writes one call's status and result through to the
	// log immediately (not batched).
	UpdateToolCall(messageID, callID string, status model.ToolCallStatus, result any) bool

	// Reset clears the conversation.
	Reset()
}

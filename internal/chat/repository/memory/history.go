// Package memory holds the in-process conversation log.
package memory

import (
	"sync"

	"mcp-chat-client/internal/chat/repository"
	"mcp-chat-client/internal/model"
)

type history struct {
	mu       sync.Mutex
	messages []model.ChatMessage
}

// New creates an empty in-memory history.
func New() repository.History {
	return &history{}
}

func (h *history) Append(msg model.ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
}

func (h *history) Messages() []model.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]model.ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *history) PatchToolCalls(messageID string, calls []model.ToolCall) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.messages {
		if h.messages[i].ID == messageID {
			h.messages[i].ToolCalls = calls
			return true
		}
	}
	return false
}

func (h *history) UpdateToolCall(messageID, callID string, status model.ToolCallStatus, result any) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.messages {
		if h.messages[i].ID != messageID {
			continue
		}
		for j := range h.messages[i].ToolCalls {
			if h.messages[i].ToolCalls[j].ID == callID {
				h.messages[i].ToolCalls[j].Status = status
				h.messages[i].ToolCalls[j].Result = result
				return true
			}
		}
		return false
	}
	return false
}

func (h *history) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

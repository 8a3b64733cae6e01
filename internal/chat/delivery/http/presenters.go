package http

import (
	"time"

	"mcp-chat-client/internal/chat/orchestrator"
	"mcp-chat-client/internal/model"
)

// --- Request DTOs ---

type turnReq struct {
	Message     string `json:"message" binding:"required"`
	LLMConfigID *int64 `json:"llm_config_id"`
}

func (r turnReq) toInput() orchestrator.TurnInput {
	return orchestrator.TurnInput{
		Message:     r.Message,
		LLMConfigID: r.LLMConfigID,
	}
}

// --- Response DTOs ---

type toolCallResp struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Status     string         `json:"status"`
	Result     any            `json:"result,omitempty"`
}

type messageResp struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	ToolCalls []toolCallResp `json:"tool_calls,omitempty"`
}

func newToolCallResp(call model.ToolCall) toolCallResp {
	return toolCallResp{
		ID:         call.ID,
		Name:       call.Name,
		Parameters: call.Parameters,
		Status:     string(call.Status),
		Result:     call.Result,
	}
}

func newMessageResp(msg model.ChatMessage) messageResp {
	calls := make([]toolCallResp, len(msg.ToolCalls))
	for i, call := range msg.ToolCalls {
		calls[i] = newToolCallResp(call)
	}
	if len(calls) == 0 {
		calls = nil
	}
	return messageResp{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		ToolCalls: calls,
	}
}

type turnResp struct {
	TurnID    string         `json:"turn_id"`
	Message   messageResp    `json:"message"`
	ToolCalls []toolCallResp `json:"tool_calls,omitempty"`
	Recovered bool           `json:"recovered"`
}

func (h *handler) newTurnResp(out *orchestrator.TurnResult) turnResp {
	calls := make([]toolCallResp, len(out.ToolCalls))
	for i, call := range out.ToolCalls {
		calls[i] = newToolCallResp(call)
	}
	if len(calls) == 0 {
		calls = nil
	}
	return turnResp{
		TurnID:    out.TurnID,
		Message:   newMessageResp(out.FinalMessage),
		ToolCalls: calls,
		Recovered: out.Recovered,
	}
}

type listResp struct {
	Messages []messageResp `json:"messages"`
	Total    int           `json:"total"`
}

func (h *handler) newListResp(msgs []model.ChatMessage) listResp {
	out := make([]messageResp, len(msgs))
	for i, m := range msgs {
		out[i] = newMessageResp(m)
	}
	return listResp{Messages: out, Total: len(out)}
}

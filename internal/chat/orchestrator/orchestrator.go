package orchestrator

import (
	"context"
	"strings"
	"time"

	"mcp-chat-client/internal/model"
	"mcp-chat-client/pkg/backend"
	"mcp-chat-client/pkg/notify"

	"github.com/google/uuid"
)

// ProcessTurn runs one conversation turn to completion. It always leaves
// the conversation in a consistent state: the user message is appended
// first, and every exit path (including failures) appends a terminal
// assistant message, except for input validation errors which mutate
// nothing and are returned to the caller.
func (o *Orchestrator) ProcessTurn(ctx context.Context, in TurnInput) (*TurnResult, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, ErrEmptyMessage
	}
	llmConfigID := in.LLMConfigID
	if llmConfigID == nil {
		llmConfigID = o.cfg.LLMConfigID
	}
	if llmConfigID == nil {
		return nil, ErrNoModelConfig
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTurnInFlight
	}
	defer o.inFlight.Store(false)

	turnID := uuid.NewString()
	token := o.resources.ManagedCancel(ctx, "chat turn "+turnID)
	defer o.resources.Unregister(ctx, token)

	prior := sanitizeHistory(o.history.Messages())
	userMsg := model.NewChatMessage(model.RoleUser, in.Message)
	o.appendSafe(ctx, userMsg)

	o.l.Info(ctx, "turn started", "turn_id", turnID)

	resp, err := o.api.Chat(ctx, backend.ChatRequest{
		Message:             in.Message,
		ConversationHistory: prior,
		LLMConfigID:         llmConfigID,
	})
	if err != nil {
		// The first send gets one generic fallback; the classified
		// network, timeout and parse messages are reserved for the
		// exhausted synthesis retry.
		o.l.Error(ctx, "initial chat request failed", "turn_id", turnID, "error", err.Error())
		return o.recoverTurn(ctx, turnID, msgChatFailed), nil
	}

	if len(resp.ToolCalls) == 0 {
		content := resp.Response
		if strings.TrimSpace(content) == "" {
			content = msgEmptyFinal
		}
		final := model.NewChatMessage(model.RoleAssistant, content)
		o.appendSafe(ctx, final)
		return &TurnResult{TurnID: turnID, FinalMessage: final}, nil
	}

	calls := make([]model.ToolCall, 0, len(resp.ToolCalls))
	for _, spec := range resp.ToolCalls {
		calls = append(calls, model.ToolCall{
			ID:         spec.ID,
			Name:       spec.Name,
			Parameters: spec.Arguments,
			Status:     model.ToolCallPending,
		})
	}
	assistantMsg := model.NewChatMessage(model.RoleAssistant, resp.Response)
	assistantMsg.ToolCalls = calls
	o.appendSafe(ctx, assistantMsg)

	executed := o.executeToolCalls(ctx, token, assistantMsg.ID, calls)

	usable := make([]executedCall, 0, len(executed))
	for _, ec := range executed {
		if ec.call.Status == model.ToolCallCompleted && ec.outcome.Usable() {
			usable = append(usable, ec)
		}
	}
	if len(usable) == 0 {
		o.l.Warn(ctx, "no usable tool results", "turn_id", turnID, "tool_calls", len(executed))
		final := model.NewChatMessage(model.RoleAssistant, msgAllToolsFailed)
		o.appendSafe(ctx, final)
		return &TurnResult{TurnID: turnID, FinalMessage: final, ToolCalls: o.currentCalls(assistantMsg.ID)}, nil
	}

	followUp := buildFollowUp(prior, in.Message, resp.Response, usable, llmConfigID)
	finalResp, err := o.chatWithRetry(ctx, followUp)
	if err != nil {
		o.l.Error(ctx, "synthesis request failed", "turn_id", turnID, "error", err.Error())
		return o.recoverTurn(ctx, turnID, failureMessage(err)), nil
	}

	content := finalResp.Response
	if len(finalResp.ToolCalls) > 0 {
		// Tools were excluded; any invocation requests here are a model
		// fault and are dropped rather than executed.
		o.l.Warn(ctx, "synthesis response requested tools", "turn_id", turnID, "count", len(finalResp.ToolCalls))
		if strings.TrimSpace(content) == "" {
			content = msgUnexpectedToolCalls
		}
	}
	if strings.TrimSpace(content) == "" {
		content = msgEmptyFinal
	}

	final := model.NewChatMessage(model.RoleAssistant, content)
	o.appendSafe(ctx, final)
	o.l.Info(ctx, "turn completed", "turn_id", turnID, "tool_calls", len(executed), "usable", len(usable))
	return &TurnResult{TurnID: turnID, FinalMessage: final, ToolCalls: o.currentCalls(assistantMsg.ID)}, nil
}

// chatWithRetry issues the synthesis request with a bounded retry and a
// fixed backoff. It never retries past finalAttempts.
func (o *Orchestrator) chatWithRetry(ctx context.Context, req backend.ChatRequest) (*backend.ChatResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= finalAttempts; attempt++ {
		resp, err := o.api.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == finalAttempts {
			break
		}
		o.l.Warn(ctx, "synthesis attempt failed, retrying",
			"attempt", attempt,
			"backoff", o.cfg.RetryBackoff.String(),
			"error", err.Error(),
		)
		select {
		case <-time.After(o.cfg.RetryBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// recoverTurn ends a failed turn with a terminal assistant message and a
// notification. The returned result is marked recovered so callers can
// distinguish it without re-parsing message text.
func (o *Orchestrator) recoverTurn(ctx context.Context, turnID, message string) *TurnResult {
	final := model.NewChatMessage(model.RoleAssistant, message)
	o.appendSafe(ctx, final)
	o.notifier.Notify(ctx, notify.SeverityError, message)
	return &TurnResult{TurnID: turnID, FinalMessage: final, Recovered: true}
}

// appendSafe appends to the conversation with a cascading fallback: if the
// store panics, a simpler plain message is attempted; if that also fails
// the text goes out through the notifier so the user still sees something.
func (o *Orchestrator) appendSafe(ctx context.Context, msg model.ChatMessage) {
	if o.tryAppend(msg) {
		return
	}
	o.l.Error(ctx, "history append failed", "message_id", msg.ID)
	plain := model.NewChatMessage(msg.Role, msg.Content)
	if o.tryAppend(plain) {
		return
	}
	o.notifier.Notify(ctx, notify.SeverityError, msg.Content)
}

func (o *Orchestrator) tryAppend(msg model.ChatMessage) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	o.history.Append(msg)
	return true
}

// currentCalls reads back the tool calls of a message, reflecting the
// statuses written through during execution.
func (o *Orchestrator) currentCalls(messageID string) []model.ToolCall {
	for _, m := range o.history.Messages() {
		if m.ID == messageID {
			return m.ToolCalls
		}
	}
	return nil
}

// failureMessage maps a transport error onto one of the fixed fallback
// sentences shown to the user.
func failureMessage(err error) string {
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "deadline") || strings.Contains(s, "timeout") || strings.Contains(s, "timed out"):
		return msgTimeoutFallback
	case strings.Contains(s, "connection") || strings.Contains(s, "dial") || strings.Contains(s, "no such host") || strings.Contains(s, "network"):
		return msgNetworkFallback
	case strings.Contains(s, "unmarshal") || strings.Contains(s, "decode") || strings.Contains(s, "parse") || strings.Contains(s, "json"):
		return msgParseFallback
	default:
		return msgGenericFallback
	}
}

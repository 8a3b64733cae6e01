package orchestrator

import (
	"context"
	"strings"
	"time"

	"mcp-chat-client/internal/lifecycle"
	"mcp-chat-client/internal/model"
	"mcp-chat-client/pkg/backend"
)

// executeToolCalls runs the calls strictly in order. A failure never stops
// the loop: the failing call is marked terminal and execution moves on.
// Between calls the loop checks for cancellation; once cancelled, remaining
// calls are marked without being sent. Every status change is written
// through to the conversation immediately.
func (o *Orchestrator) executeToolCalls(ctx context.Context, token *lifecycle.CancelToken, messageID string, calls []model.ToolCall) []executedCall {
	out := make([]executedCall, 0, len(calls))
	cancelled := false

	for i, call := range calls {
		if !cancelled && i > 0 && o.cfg.InterToolDelay > 0 {
			select {
			case <-time.After(o.cfg.InterToolDelay):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil || token.Cancelled() {
			cancelled = true
		}
		if cancelled {
			call.Status = model.ToolCallError
			call.Result = msgToolCancelled
			o.history.UpdateToolCall(messageID, call.ID, call.Status, call.Result)
			out = append(out, executedCall{call: call})
			continue
		}

		o.history.UpdateToolCall(messageID, call.ID, model.ToolCallRunning, nil)
		ec := o.executeOne(ctx, call)
		o.history.UpdateToolCall(messageID, ec.call.ID, ec.call.Status, ec.call.Result)
		out = append(out, ec)
	}
	return out
}

// executeOne resolves and invokes a single call, retrying once with
// corrected parameters when the failure reads like a validation error.
func (o *Orchestrator) executeOne(ctx context.Context, call model.ToolCall) executedCall {
	res, found, err := o.disc.Resolve(ctx, call.Name)
	if err != nil {
		o.l.Error(ctx, "tool resolution failed", "tool", call.Name, "error", err.Error())
		call.Status = model.ToolCallError
		call.Result = err.Error()
		return executedCall{call: call}
	}
	if !found {
		o.l.Warn(ctx, "tool not available", "tool", call.Name)
		call.Status = model.ToolCallError
		call.Result = msgToolNotFound
		return executedCall{call: call}
	}

	resp, err := o.invoke(ctx, res.ServerID, call.Name, call.Parameters)
	if err != nil {
		call.Status = model.ToolCallError
		call.Result = err.Error()
		return executedCall{call: call}
	}

	if !resp.Success && looksLikeValidationError(resp.Error) {
		if corr := o.corr.Analyze(resp.Error, call.Parameters); corr != nil {
			o.l.Info(ctx, "retrying tool call with corrected parameters",
				"tool", call.Name,
				"correction", corr.Applied,
				"confidence", corr.Confidence,
			)
			if retried, rerr := o.invoke(ctx, res.ServerID, call.Name, corr.Corrected); rerr == nil && retried.Success {
				resp = retried
				call.Parameters = corr.Corrected
			}
		}
	}

	if !resp.Success {
		o.l.Warn(ctx, "tool call failed", "tool", call.Name, "error", resp.Error)
		call.Status = model.ToolCallError
		call.Result = resp.Error
		return executedCall{call: call}
	}

	call.Status = model.ToolCallCompleted
	call.Result = resp.Result
	outcome := DecodeToolResult(resp.Result)
	return executedCall{call: call, outcome: outcome, body: renderOutcome(outcome)}
}

// invoke sends the call with its own deadline so one slow tool cannot
// stall the whole turn.
func (o *Orchestrator) invoke(ctx context.Context, serverID int64, name string, params map[string]any) (*backend.CallToolResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.ToolCallTimeout)
	defer cancel()
	return o.api.CallTool(callCtx, backend.CallToolRequest{
		ToolName:   name,
		Parameters: params,
		ServerID:   serverID,
	})
}

func looksLikeValidationError(msg string) bool {
	s := strings.ToLower(msg)
	return strings.Contains(s, "invalid") ||
		strings.Contains(s, "required") ||
		strings.Contains(s, "expected") ||
		strings.Contains(s, "unknown field") ||
		strings.Contains(s, "validation")
}

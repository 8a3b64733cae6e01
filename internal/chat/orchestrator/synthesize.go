package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"mcp-chat-client/internal/model"
	"mcp-chat-client/pkg/backend"
)

// renderOutcome turns a decoded tool result into the text body of a
// tool-role message.
func renderOutcome(o ToolOutcome) string {
	switch o.Kind {
	case OutcomeProtocolError:
		return "Tool error: " + o.Text
	case OutcomeTextContent:
		return summarizeIndices(o.Text)
	case OutcomeStructuredContent:
		return compactJSON(o.Structured)
	case OutcomeRawObject:
		return truncate(compactJSON(o.Structured), maxToolContentChars)
	default:
		return ""
	}
}

type indexListing struct {
	Indices []struct {
		Index  string `json:"index"`
		Status string `json:"status"`
	} `json:"indices"`
}

// summarizeIndices rewrites an Elasticsearch index listing into a short
// readable summary. Anything that is not such a listing passes through
// unchanged.
func summarizeIndices(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return text
	}
	var listing indexListing
	if err := json.Unmarshal([]byte(trimmed), &listing); err != nil || len(listing.Indices) == 0 {
		return text
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d Elasticsearch indices:", len(listing.Indices))
	for _, idx := range listing.Indices {
		fmt.Fprintf(&b, "\n- %s (status: %s)", idx.Index, idx.Status)
	}
	return b.String()
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + truncationMarker
}

// sanitizeHistory converts stored messages to the wire form the backend
// accepts. Prior tool invocations are transmitted as id, name and
// arguments; local status and result bookkeeping is stripped. Blank
// messages carrying no invocations are skipped.
func sanitizeHistory(msgs []model.ChatMessage) []backend.ChatHistoryMessage {
	out := make([]backend.ChatHistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" && len(m.ToolCalls) == 0 {
			continue
		}
		entry := backend.ChatHistoryMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
		for _, call := range m.ToolCalls {
			entry.ToolCalls = append(entry.ToolCalls, backend.ToolCallSpec{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: call.Parameters,
			})
		}
		out = append(out, entry)
	}
	return out
}

// executedCall pairs a finished tool call with its rendered outcome.
type executedCall struct {
	call    model.ToolCall
	outcome ToolOutcome
	body    string
}

// buildFollowUp assembles the synthesis request: the prior conversation,
// the user message, an assistant message carrying only the usable
// invocations, one tool message per usable result, and a closing
// instruction. Tools are excluded so the model must answer in prose.
func buildFollowUp(prior []backend.ChatHistoryMessage, userMessage, assistantPreamble string, usable []executedCall, llmConfigID *int64) backend.ChatRequest {
	history := make([]backend.ChatHistoryMessage, 0, len(prior)+len(usable)+2)
	history = append(history, prior...)
	history = append(history, backend.ChatHistoryMessage{Role: "user", Content: userMessage})

	specs := make([]backend.ToolCallSpec, 0, len(usable))
	for _, ec := range usable {
		specs = append(specs, backend.ToolCallSpec{
			ID:        ec.call.ID,
			Name:      ec.call.Name,
			Arguments: ec.call.Parameters,
		})
	}
	history = append(history, backend.ChatHistoryMessage{
		Role:      "assistant",
		Content:   assistantPreamble,
		ToolCalls: specs,
	})
	for _, ec := range usable {
		history = append(history, backend.ChatHistoryMessage{
			Role:       "tool",
			Content:    ec.body,
			ToolCallID: ec.call.ID,
		})
	}

	return backend.ChatRequest{
		Message:             synthesisInstruction,
		ConversationHistory: history,
		LLMConfigID:         llmConfigID,
		ExcludeTools:        true,
	}
}

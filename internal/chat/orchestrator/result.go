package orchestrator

import (
	"fmt"
	"strings"
)

// DecodeToolResult normalizes the payload of a successful tool call into a
// tagged ToolOutcome. Backends wrap results inconsistently (sometimes under
// a "result" envelope, sometimes bare), so the decoder unwraps one envelope
// level before classifying.
func DecodeToolResult(raw any) ToolOutcome {
	raw = unwrapEnvelope(raw)
	if raw == nil {
		return ToolOutcome{Kind: OutcomeEmpty}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		if s, ok := raw.(string); ok {
			if strings.TrimSpace(s) == "" {
				return ToolOutcome{Kind: OutcomeEmpty}
			}
			return ToolOutcome{Kind: OutcomeTextContent, Text: s}
		}
		return ToolOutcome{Kind: OutcomeRawObject, Structured: raw}
	}

	if msg, ok := protocolError(obj); ok {
		return ToolOutcome{Kind: OutcomeProtocolError, Text: msg}
	}

	if _, hasContent := obj["content"].([]any); hasContent {
		text := textContent(obj)
		if strings.TrimSpace(text) == "" {
			return ToolOutcome{Kind: OutcomeEmpty}
		}
		return ToolOutcome{Kind: OutcomeTextContent, Text: text}
	}

	for _, key := range []string{"structuredContent", "structured_content"} {
		if v, ok := obj[key]; ok && v != nil {
			return ToolOutcome{Kind: OutcomeStructuredContent, Structured: v}
		}
	}

	if len(obj) == 0 {
		return ToolOutcome{Kind: OutcomeEmpty}
	}
	return ToolOutcome{Kind: OutcomeRawObject, Structured: obj}
}

// unwrapEnvelope peels a single {"result": {...}} wrapper when present.
func unwrapEnvelope(raw any) any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	inner, ok := obj["result"]
	if !ok {
		return raw
	}
	// An error sitting next to the result still wins.
	if _, hasErr := obj["error"]; hasErr {
		return raw
	}
	return inner
}

// protocolError detects JSON-RPC style error objects delivered inside a
// transport-level success.
func protocolError(obj map[string]any) (string, bool) {
	errVal, ok := obj["error"]
	if !ok || errVal == nil {
		return "", false
	}
	if _, isRPC := obj["jsonrpc"]; !isRPC {
		// A bare "error" key only counts when it looks like an error
		// object, not arbitrary data that happens to use the name.
		if _, isObj := errVal.(map[string]any); !isObj {
			if s, isStr := errVal.(string); isStr {
				return s, true
			}
			return "", false
		}
	}
	switch e := errVal.(type) {
	case map[string]any:
		if msg, ok := e["message"].(string); ok && msg != "" {
			if code, ok := e["code"]; ok {
				return fmt.Sprintf("%v: %s", code, msg), true
			}
			return msg, true
		}
		return fmt.Sprintf("%v", e), true
	case string:
		return e, true
	default:
		return fmt.Sprintf("%v", e), true
	}
}

// textContent joins the text segments of a typed content list.
func textContent(obj map[string]any) string {
	list, _ := obj["content"].([]any)
	var parts []string
	for _, item := range list {
		seg, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if t, _ := seg["type"].(string); t != "text" {
			continue
		}
		if text, ok := seg["text"].(string); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

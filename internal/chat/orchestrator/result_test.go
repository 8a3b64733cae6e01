package orchestrator

import (
	"strings"
	"testing"
)

func TestDecodeToolResult(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		kind   OutcomeKind
		usable bool
	}{
		{
			name:   "nil result",
			raw:    nil,
			kind:   OutcomeEmpty,
			usable: false,
		},
		{
			name:   "empty object",
			raw:    map[string]any{},
			kind:   OutcomeEmpty,
			usable: false,
		},
		{
			name: "jsonrpc error",
			raw: map[string]any{
				"jsonrpc": "2.0",
				"error":   map[string]any{"code": float64(-32602), "message": "Invalid params"},
			},
			kind:   OutcomeProtocolError,
			usable: false,
		},
		{
			name:   "bare error object",
			raw:    map[string]any{"error": map[string]any{"message": "boom"}},
			kind:   OutcomeProtocolError,
			usable: false,
		},
		{
			name: "error key holding plain data is not an error",
			raw:  map[string]any{"error": float64(0), "rows": []any{"a"}},
			kind: OutcomeRawObject,
			// A numeric "error" field is a data column, not a failure.
			usable: true,
		},
		{
			name: "text content",
			raw: map[string]any{"content": []any{
				map[string]any{"type": "text", "text": "hello"},
				map[string]any{"type": "text", "text": "world"},
			}},
			kind:   OutcomeTextContent,
			usable: true,
		},
		{
			name:   "content list with no text segments",
			raw:    map[string]any{"content": []any{map[string]any{"type": "image"}}},
			kind:   OutcomeEmpty,
			usable: false,
		},
		{
			name:   "structured content",
			raw:    map[string]any{"structuredContent": map[string]any{"count": float64(3)}},
			kind:   OutcomeStructuredContent,
			usable: true,
		},
		{
			name:   "snake case structured content",
			raw:    map[string]any{"structured_content": []any{"x"}},
			kind:   OutcomeStructuredContent,
			usable: true,
		},
		{
			name:   "raw object",
			raw:    map[string]any{"took": float64(12), "hits": float64(4)},
			kind:   OutcomeRawObject,
			usable: true,
		},
		{
			name:   "plain string",
			raw:    "done",
			kind:   OutcomeTextContent,
			usable: true,
		},
		{
			name:   "blank string",
			raw:    "   ",
			kind:   OutcomeEmpty,
			usable: false,
		},
		{
			name: "result envelope is unwrapped",
			raw: map[string]any{"result": map[string]any{"content": []any{
				map[string]any{"type": "text", "text": "wrapped"},
			}}},
			kind:   OutcomeTextContent,
			usable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeToolResult(tt.raw)
			if got.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Usable() != tt.usable {
				t.Fatalf("usable = %v, want %v", got.Usable(), tt.usable)
			}
		})
	}
}

func TestDecodeToolResult_TextJoin(t *testing.T) {
	got := DecodeToolResult(map[string]any{"content": []any{
		map[string]any{"type": "text", "text": "line one"},
		map[string]any{"type": "image", "data": "ignored"},
		map[string]any{"type": "text", "text": "line two"},
	}})
	if got.Text != "line one\nline two" {
		t.Fatalf("joined text = %q", got.Text)
	}
}

func TestRenderOutcome_ProtocolError(t *testing.T) {
	out := DecodeToolResult(map[string]any{
		"jsonrpc": "2.0",
		"error":   map[string]any{"code": float64(-32602), "message": "Invalid params"},
	})
	body := renderOutcome(out)
	if !strings.HasPrefix(body, "Tool error: ") {
		t.Fatalf("body = %q", body)
	}
	if !strings.Contains(body, "Invalid params") {
		t.Fatalf("body = %q", body)
	}
}

func TestRenderOutcome_ElasticsearchIndices(t *testing.T) {
	out := DecodeToolResult(map[string]any{"content": []any{
		map[string]any{"type": "text", "text": `{"indices":[{"index":"a","status":"green"},{"index":"b","status":"yellow"}]}`},
	}})
	body := renderOutcome(out)
	if !strings.Contains(body, "Found 2 Elasticsearch indices:") {
		t.Fatalf("body = %q", body)
	}
	if !strings.Contains(body, "- a (status: green)") || !strings.Contains(body, "- b (status: yellow)") {
		t.Fatalf("body = %q", body)
	}
}

func TestRenderOutcome_PlainTextPassesThrough(t *testing.T) {
	out := DecodeToolResult(map[string]any{"content": []any{
		map[string]any{"type": "text", "text": "cluster is healthy"},
	}})
	if body := renderOutcome(out); body != "cluster is healthy" {
		t.Fatalf("body = %q", body)
	}
}

func TestRenderOutcome_RawObjectTruncated(t *testing.T) {
	out := DecodeToolResult(map[string]any{"blob": strings.Repeat("x", 3*maxToolContentChars)})
	body := renderOutcome(out)
	if len(body) != maxToolContentChars+len(truncationMarker) {
		t.Fatalf("len = %d", len(body))
	}
	if !strings.HasSuffix(body, truncationMarker) {
		t.Fatalf("missing truncation marker: %q", body[len(body)-40:])
	}
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"context deadline exceeded", msgTimeoutFallback},
		{"dial tcp 127.0.0.1:8000: connection refused", msgNetworkFallback},
		{"decode response: unexpected EOF", msgParseFallback},
		{"something else entirely", msgGenericFallback},
	}
	for _, tt := range tests {
		if got := failureMessage(errString(tt.err)); got != tt.want {
			t.Errorf("failureMessage(%q) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }

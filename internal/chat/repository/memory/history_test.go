package memory

import (
	"testing"

	"mcp-chat-client/internal/model"
)

func TestHistory_AppendAndCopy(t *testing.T) {
	h := New()

	h.Append(model.NewChatMessage(model.RoleUser, "hello"))
	h.Append(model.NewChatMessage(model.RoleAssistant, "hi"))

	msgs := h.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}

	// Mutating the returned slice must not affect the store.
	msgs[0].Content = "tampered"
	if h.Messages()[0].Content != "hello" {
		t.Error("Messages must return a copy")
	}
}

func TestHistory_UpdateToolCall(t *testing.T) {
	h := New()

	msg := model.NewChatMessage(model.RoleAssistant, "")
	msg.ToolCalls = []model.ToolCall{
		{ID: "c1", Name: "list_indices", Status: model.ToolCallPending},
		{ID: "c2", Name: "search", Status: model.ToolCallPending},
	}
	h.Append(msg)

	if !h.UpdateToolCall(msg.ID, "c2", model.ToolCallCompleted, "done") {
		t.Fatal("update should find the call")
	}

	got := h.Messages()[0].ToolCalls
	if got[0].Status != model.ToolCallPending {
		t.Error("untouched call mutated")
	}
	if got[1].Status != model.ToolCallCompleted || got[1].Result != "done" {
		t.Errorf("call not updated: %+v", got[1])
	}
}

func TestHistory_UpdateToolCall_Unknown(t *testing.T) {
	h := New()
	if h.UpdateToolCall("missing", "c1", model.ToolCallError, nil) {
		t.Error("unknown message should report false")
	}
}

func TestHistory_PatchToolCalls(t *testing.T) {
	h := New()
	msg := model.NewChatMessage(model.RoleAssistant, "")
	h.Append(msg)

	calls := []model.ToolCall{{ID: "c1", Name: "x", Status: model.ToolCallPending}}
	if !h.PatchToolCalls(msg.ID, calls) {
		t.Fatal("patch should find the message")
	}
	if len(h.Messages()[0].ToolCalls) != 1 {
		t.Error("tool calls not patched")
	}
}

func TestHistory_Reset(t *testing.T) {
	h := New()
	h.Append(model.NewChatMessage(model.RoleUser, "hello"))
	h.Reset()
	if len(h.Messages()) != 0 {
		t.Error("reset should clear the log")
	}
}

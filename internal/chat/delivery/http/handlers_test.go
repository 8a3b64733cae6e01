package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"mcp-chat-client/internal/chat/orchestrator"
	"mcp-chat-client/internal/chat/repository/memory"
	"mcp-chat-client/internal/lifecycle"
	"mcp-chat-client/internal/middleware"
	"mcp-chat-client/internal/model"
	"mcp-chat-client/pkg/log"
)

type stubUseCase struct {
	result *orchestrator.TurnResult
	err    error
	inputs []orchestrator.TurnInput
}

func (s *stubUseCase) ProcessTurn(_ context.Context, in orchestrator.TurnInput) (*orchestrator.TurnResult, error) {
	s.inputs = append(s.inputs, in)
	return s.result, s.err
}

func newTestRouter(t *testing.T, uc UseCase) (*gin.Engine, *lifecycle.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := lifecycle.New(log.NewNop(), lifecycle.Config{SampleInterval: -1})
	t.Cleanup(mgr.Close)

	hist := memory.New()
	hist.Append(model.NewChatMessage(model.RoleUser, "earlier"))

	h := New(log.NewNop(), uc, hist, mgr)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(log.NewNop(), 6000))
	return r, mgr
}

func TestSubmitTurn_OK(t *testing.T) {
	uc := &stubUseCase{result: &orchestrator.TurnResult{
		TurnID:       "t1",
		FinalMessage: model.NewChatMessage(model.RoleAssistant, "done"),
	}}
	r, _ := newTestRouter(t, uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/turns",
		strings.NewReader(`{"message":"hello","llm_config_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(uc.inputs) != 1 || uc.inputs[0].Message != "hello" {
		t.Fatalf("inputs = %+v", uc.inputs)
	}
	if uc.inputs[0].LLMConfigID == nil || *uc.inputs[0].LLMConfigID != 7 {
		t.Fatalf("llm config id = %v", uc.inputs[0].LLMConfigID)
	}

	var body struct {
		Data turnResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TurnID != "t1" || body.Data.Message.Content != "done" {
		t.Fatalf("data = %+v", body.Data)
	}
}

func TestSubmitTurn_MissingMessage(t *testing.T) {
	uc := &stubUseCase{}
	r, _ := newTestRouter(t, uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/turns", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if len(uc.inputs) != 0 {
		t.Fatal("use case invoked for invalid body")
	}
}

func TestSubmitTurn_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty message", orchestrator.ErrEmptyMessage, http.StatusBadRequest},
		{"no model config", orchestrator.ErrNoModelConfig, http.StatusBadRequest},
		{"in flight", orchestrator.ErrTurnInFlight, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t, &stubUseCase{err: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/turns",
				strings.NewReader(`{"message":"hi"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestListAndResetMessages(t *testing.T) {
	r, _ := newTestRouter(t, &stubUseCase{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var body struct {
		Data listResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Total != 1 {
		t.Fatalf("total = %d, want 1", body.Data.Total)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/chat/messages", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Total != 0 {
		t.Fatalf("total after reset = %d, want 0", body.Data.Total)
	}
}

func TestLifecycleStats(t *testing.T) {
	r, mgr := newTestRouter(t, &stubUseCase{})
	mgr.ManagedCancel(context.Background(), "test token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lifecycle/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data lifecycle.Stats `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ActiveResourceCount != 1 {
		t.Fatalf("active resources = %d, want 1", body.Data.ActiveResourceCount)
	}
}

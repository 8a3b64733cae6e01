package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mcp-chat-client/internal/chat/orchestrator"
	"mcp-chat-client/pkg/response"
)

// respondError translates orchestrator errors into HTTP responses.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orchestrator.ErrEmptyMessage),
		errors.Is(err, orchestrator.ErrNoModelConfig):
		response.Error(c, err)
	case errors.Is(err, orchestrator.ErrTurnInFlight):
		response.ErrorWithStatus(c, http.StatusConflict, err)
	default:
		h.l.Errorf(c.Request.Context(), "unhandled turn error: %v", err)
		response.InternalError(c)
	}
}

package http

import (
	"mcp-chat-client/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Turn
// submission is rate limited per client; reads are not.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	chat := rg.Group("/chat")
	{
		chat.POST("/turns", mw.RateLimit(), h.SubmitTurn)
		chat.GET("/messages", h.ListMessages)
		chat.DELETE("/messages", h.ResetConversation)
	}

	rg.GET("/lifecycle/stats", h.LifecycleStats)
}

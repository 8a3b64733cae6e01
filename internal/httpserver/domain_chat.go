package httpserver

import (
	"context"

	chatHTTP "mcp-chat-client/internal/chat/delivery/http"
	"mcp-chat-client/internal/middleware"

	"github.com/gin-gonic/gin"
)

// setupChatDomain wires the chat delivery layer and registers its routes.
//
// Pattern to follow when adding a new domain:
//  1. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc, ...)
//  2. Register Routes:     mydomainHTTP.RegisterRoutes(api, h, mw)
func (srv *HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup) error {
	mw := middleware.New(srv.l, srv.rateLimitPerMin)

	h := chatHTTP.New(srv.l, srv.chatUC, srv.history, srv.resources)

	// Registers /api/v1/chat/* and /api/v1/lifecycle/stats
	chatHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Chat domain registered")
	return nil
}

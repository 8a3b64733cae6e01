package http

import (
	"github.com/gin-gonic/gin"

	"mcp-chat-client/pkg/response"
)

// SubmitTurn godoc
// @Summary     Submit a conversation turn
// @Description Sends a user message through the full turn protocol: model call,
// @Description sequential tool execution, and final synthesis. Only one turn may
// @Description be in flight per conversation.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body turnReq true "User message"
// @Success     200 {object} turnResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conflict - a turn is already in flight"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/turns [POST]
func (h *handler) SubmitTurn(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTurnReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.ProcessTurn(ctx, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newTurnResp(output))
}

// ListMessages godoc
// @Summary     List conversation messages
// @Description Returns the full conversation log in order, including tool call
// @Description statuses and results.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} listResp
// @Router      /api/v1/chat/messages [GET]
func (h *handler) ListMessages(c *gin.Context) {
	response.OK(c, h.newListResp(h.history.Messages()))
}

// ResetConversation godoc
// @Summary     Clear the conversation
// @Description Removes all messages from the conversation log.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} response.Resp "OK"
// @Router      /api/v1/chat/messages [DELETE]
func (h *handler) ResetConversation(c *gin.Context) {
	h.history.Reset()
	h.l.Info(c.Request.Context(), "conversation reset")
	response.OK(c, nil)
}

// LifecycleStats godoc
// @Summary     Resource lifecycle statistics
// @Description Reports active resource counts by type plus the latest memory
// @Description pressure sample.
// @Tags        Lifecycle
// @Produce     json
// @Success     200 {object} lifecycle.Stats
// @Router      /api/v1/lifecycle/stats [GET]
func (h *handler) LifecycleStats(c *gin.Context) {
	response.OK(c, h.resources.Stats())
}

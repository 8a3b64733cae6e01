package http

import (
	"github.com/gin-gonic/gin"
)

// processTurnReq binds and validates the turn submission body.
func (h *handler) processTurnReq(c *gin.Context) (turnReq, error) {
	var req turnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

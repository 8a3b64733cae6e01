package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"mcp-chat-client/pkg/log"
)

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	rl := newRateLimiter(60) // burst of 6

	allowed := 0
	for i := 0; i < 20; i++ {
		if rl.Allow("10.0.0.1") == nil {
			allowed++
		}
	}
	if allowed < 1 || allowed > 7 {
		t.Fatalf("allowed = %d, want roughly the burst size", allowed)
	}

	// A different client has its own bucket.
	if err := rl.Allow("10.0.0.2"); err != nil {
		t.Fatalf("fresh client denied: %v", err)
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := New(log.NewNop(), 60)

	r := gin.New()
	r.POST("/x", mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	var last int
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		r.ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("final status = %d, want 429", last)
	}
}

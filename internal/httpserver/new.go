package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	chatHTTP "mcp-chat-client/internal/chat/delivery/http"
	"mcp-chat-client/internal/chat/repository"
	"mcp-chat-client/internal/lifecycle"
	"mcp-chat-client/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Chat domain
	chatUC    chatHTTP.UseCase
	history   repository.History
	resources *lifecycle.Manager

	rateLimitPerMin int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Chat domain
	ChatUseCase chatHTTP.UseCase
	History     repository.History
	Resources   *lifecycle.Manager

	RateLimitPerMin int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		chatUC:          cfg.ChatUseCase,
		history:         cfg.History,
		resources:       cfg.Resources,
		rateLimitPerMin: cfg.RateLimitPerMin,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat use case is required")
	}
	if srv.history == nil {
		return errors.New("history is required")
	}
	if srv.resources == nil {
		return errors.New("lifecycle manager is required")
	}
	return nil
}

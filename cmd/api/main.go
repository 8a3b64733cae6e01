package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mcp-chat-client/config"
	_ "mcp-chat-client/docs" // Swagger docs
	chatOrch "mcp-chat-client/internal/chat/orchestrator"
	"mcp-chat-client/internal/chat/repository/memory"
	"mcp-chat-client/internal/discovery"
	"mcp-chat-client/internal/httpserver"
	"mcp-chat-client/internal/lifecycle"
	"mcp-chat-client/pkg/backend"
	"mcp-chat-client/pkg/log"
	"mcp-chat-client/pkg/notify"
)

// @title       MCP Chat Client API
// @description Conversation turn orchestration over an MCP tool backend, with managed resource lifecycle.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting MCP Chat Client...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Backend URL: %s", cfg.Backend.URL)

	// 3. Resource lifecycle manager
	resources := lifecycle.New(logger, lifecycle.Config{
		MaxActiveResources: cfg.Lifecycle.MaxActiveResources,
		SampleInterval:     cfg.Lifecycle.SampleInterval,
	})
	defer resources.Close()

	// 4. Backend API client and tool discovery
	api := backend.NewClient(cfg.Backend.URL, cfg.Backend.APIKey, cfg.Backend.Timeout)
	disc := discovery.New(api, logger, cfg.Orchestrator.ToolCacheTTL)

	// 5. Chat domain
	history := memory.New()
	notifier := notify.NewLogNotifier(logger)

	var llmConfigID *int64
	if cfg.Backend.LLMConfigID > 0 {
		llmConfigID = &cfg.Backend.LLMConfigID
	}
	orch := chatOrch.New(logger, api, disc, history, resources, notifier, chatOrch.Config{
		RetryBackoff:    cfg.Orchestrator.RetryBackoff,
		ToolCallTimeout: cfg.Orchestrator.ToolCallTimeout,
		InterToolDelay:  cfg.Orchestrator.InterToolDelay,
		LLMConfigID:     llmConfigID,
	})

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ChatUseCase:     orch,
		History:         history,
		Resources:       resources,
		RateLimitPerMin: cfg.RateLimit.RequestsPerMin,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

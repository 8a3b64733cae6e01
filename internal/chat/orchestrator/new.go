package orchestrator

import (
	"sync/atomic"
	"time"

	"mcp-chat-client/internal/chat/repository"
	"mcp-chat-client/internal/discovery"
	"mcp-chat-client/internal/lifecycle"
	"mcp-chat-client/pkg/backend"
	"mcp-chat-client/pkg/corrector"
	"mcp-chat-client/pkg/log"
	"mcp-chat-client/pkg/notify"
)

// Config tunes turn processing. Zero values fall back to defaults.
type Config struct {
	RetryBackoff    time.Duration
	ToolCallTimeout time.Duration
	InterToolDelay  time.Duration
	// LLMConfigID is the model configuration used when a turn does not
	// name one. Nil means every turn must carry its own.
	LLMConfigID *int64
}

// Orchestrator drives one conversation turn end to end: first model call,
// sequential tool execution, result classification, and the tools-disabled
// synthesis call. All collaborators are injected; the orchestrator holds
// no global state.
type Orchestrator struct {
	l         log.Logger
	api       backend.Client
	disc      discovery.Client
	history   repository.History
	resources *lifecycle.Manager
	notifier  notify.Notifier
	corr      *corrector.Corrector
	cfg       Config
	inFlight  atomic.Bool
}

func New(l log.Logger, api backend.Client, disc discovery.Client, history repository.History, resources *lifecycle.Manager, notifier notify.Notifier, cfg Config) *Orchestrator {
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if cfg.ToolCallTimeout <= 0 {
		cfg.ToolCallTimeout = defaultToolCallTimeout
	}
	if cfg.InterToolDelay == 0 {
		cfg.InterToolDelay = defaultInterToolDelay
	} else if cfg.InterToolDelay < 0 {
		cfg.InterToolDelay = 0
	}
	return &Orchestrator{
		l:         l,
		api:       api,
		disc:      disc,
		history:   history,
		resources: resources,
		notifier:  notifier,
		corr:      corrector.New(),
		cfg:       cfg,
	}
}

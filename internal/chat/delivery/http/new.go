package http

import (
	"context"

	"mcp-chat-client/internal/chat/orchestrator"
	"mcp-chat-client/internal/chat/repository"
	"mcp-chat-client/internal/lifecycle"
	"mcp-chat-client/pkg/log"
)

// UseCase is what the delivery layer needs from the turn orchestrator.
type UseCase interface {
	ProcessTurn(ctx context.Context, in orchestrator.TurnInput) (*orchestrator.TurnResult, error)
}

type handler struct {
	l         log.Logger
	uc        UseCase
	history   repository.History
	resources *lifecycle.Manager
}

// New creates the HTTP handler for the chat domain.
func New(l log.Logger, uc UseCase, history repository.History, resources *lifecycle.Manager) *handler {
	return &handler{
		l:         l,
		uc:        uc,
		history:   history,
		resources: resources,
	}
}

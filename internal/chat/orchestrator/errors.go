package orchestrator

import "errors"

var (
	// ErrEmptyMessage rejects turns with a blank user message.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrNoModelConfig rejects turns when neither the request nor the
	// service configuration names a model configuration.
	ErrNoModelConfig = errors.New("no model configuration selected")
	// ErrTurnInFlight guards against concurrent turns on one conversation.
	ErrTurnInFlight = errors.New("a turn is already in flight")
)

// Package notify is the user-facing notification sink. The orchestrator
// reports failures here when it cannot surface them through the message
// log itself.
package notify

import (
	"context"

	"mcp-chat-client/pkg/log"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier accepts a message and a severity. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

type logNotifier struct {
	l log.Logger
}

// NewLogNotifier returns a Notifier that forwards to the service logger.
func NewLogNotifier(l log.Logger) Notifier {
	return &logNotifier{l: l}
}

func (n *logNotifier) Notify(ctx context.Context, severity Severity, message string) {
	switch severity {
	case SeverityError:
		n.l.Error(ctx, "notification", "severity", severity, "message", message)
	case SeverityWarning:
		n.l.Warn(ctx, "notification", "severity", severity, "message", message)
	default:
		n.l.Info(ctx, "notification", "severity", severity, "message", message)
	}
}

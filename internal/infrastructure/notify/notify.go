// Package notify provides the notification sinks that are not tied to a chat platform.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log sink
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements port.Notifier
func (n *LogNotifier) Notify(ctx context.Context, message string, kind port.NotificationKind) {
	fields := []zap.Field{zap.String("kind", string(kind)), zap.String("message", message)}
	switch kind {
	case port.NotifyError:
		n.logger.Warn("Notification", fields...)
	default:
		n.logger.Info("Notification", fields...)
	}
}

// Fanout delivers each notification to every sink in order
type Fanout []port.Notifier

// Notify implements port.Notifier
func (f Fanout) Notify(ctx context.Context, message string, kind port.NotificationKind) {
	for _, n := range f {
		n.Notify(ctx, message, kind)
	}
}

var (
	_ port.Notifier = (*LogNotifier)(nil)
	_ port.Notifier = Fanout(nil)
)

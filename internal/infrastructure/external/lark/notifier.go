package lark

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

const sendTimeout = 10 * time.Second

var kindPrefix = map[port.NotificationKind]string{
	port.NotifySuccess: "✅ ",
	port.NotifyError:   "⚠️ ",
	port.NotifyInfo:    "ℹ️ ",
}

// Notifier mirrors ledger notifications into a Lark group chat.
// Messages are sent in the background; Close waits for in-flight sends.
type Notifier struct {
	messenger *Messenger
	chatID    string
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewNotifier creates a Lark notification sink
func NewNotifier(messenger *Messenger, chatID string, logger *zap.Logger) *Notifier {
	return &Notifier{
		messenger: messenger,
		chatID:    chatID,
		logger:    logger,
	}
}

// Notify implements port.Notifier
func (n *Notifier) Notify(ctx context.Context, message string, kind port.NotificationKind) {
	text := kindPrefix[kind] + message
	sendCtx := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(sendCtx, sendTimeout)
		defer cancel()
		if _, err := n.messenger.SendText(ctx, n.chatID, text); err != nil {
			n.logger.Warn("Lark notification dropped", zap.String("kind", string(kind)), zap.Error(err))
		}
	}()
}

// Close blocks until pending messages are delivered or dropped
func (n *Notifier) Close() error {
	n.wg.Wait()
	return nil
}

var _ port.Notifier = (*Notifier)(nil)

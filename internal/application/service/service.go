package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/domain/entity"
	"github.com/garyjia/vip-ledger/internal/domain/event"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// EventPublisher delivers domain events to subscribers
type EventPublisher interface {
	Dispatch(ctx context.Context, evt *event.Event) error
}

var timeNow = time.Now

func today() string {
	return timeNow().Format(entity.DateLayout)
}

// Announcer reports committed writes: storage.changed per saved key, the domain event,
// and a localized notice through the notification sink.
type Announcer struct {
	publisher EventPublisher
	notifier  port.Notifier
	tr        *i18n.Translator
	money     port.CurrencyFormatter
	logger    Logger
}

// NewAnnouncer creates an Announcer. notifier may be nil to skip notices.
func NewAnnouncer(publisher EventPublisher, notifier port.Notifier, tr *i18n.Translator, money port.CurrencyFormatter, logger Logger) *Announcer {
	return &Announcer{
		publisher: publisher,
		notifier:  notifier,
		tr:        tr,
		money:     money,
		logger:    logger,
	}
}

// Changed publishes storage.changed for every key
func (a *Announcer) Changed(ctx context.Context, keys ...string) {
	for _, key := range keys {
		a.publish(ctx, event.StorageChanged(key))
	}
}

func (a *Announcer) publish(ctx context.Context, evt *event.Event) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Dispatch(ctx, evt); err != nil {
		a.logger.Error("Event handler failed", "type", evt.Type.String(), "subject", evt.Subject, "error", err)
	}
}

// Notify sends the translated message for key
func (a *Announcer) Notify(ctx context.Context, kind port.NotificationKind, key string, vars i18n.Vars) {
	if a.notifier == nil {
		return
	}
	a.notifier.Notify(ctx, a.tr.T(key, vars), kind)
}

// Money formats an amount for a notice
func (a *Announcer) Money(amount float64) string {
	if a.money == nil {
		return fmt.Sprintf("%.2f", amount)
	}
	return a.money.FormatCurrency(amount)
}

// Translator returns the message catalogue in use
func (a *Announcer) Translator() *i18n.Translator {
	return a.tr
}

// Scope is the data a user may see. All is true for admins.
type Scope struct {
	All      bool
	ClientID string
}

// ScopeFor maps the user variant onto the rows it may read
func ScopeFor(user entity.User) (Scope, error) {
	switch u := user.(type) {
	case entity.AdminUser:
		return Scope{All: true}, nil
	case entity.VipUser:
		return Scope{ClientID: u.Phone}, nil
	default:
		return Scope{}, fmt.Errorf("unknown user variant %T", user)
	}
}

// Package dispatcher fans domain events out to in-process subscribers.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/garyjia/vip-ledger/internal/domain/event"
)

// ErrClosed is returned when dispatching after Close
var ErrClosed = errors.New("dispatcher is closed")

// Handler processes one domain event
type Handler func(ctx context.Context, evt *event.Event) error

// Dispatcher routes events to registered handlers
type Dispatcher interface {
	// Subscribe registers handler under a generated name
	Subscribe(eventType event.Type, handler Handler) string

	// SubscribeNamed registers handler under name, replacing a previous one with that name
	SubscribeNamed(eventType event.Type, name string, handler Handler)

	// Unsubscribe removes the handler registered under name
	Unsubscribe(eventType event.Type, name string)

	// Dispatch runs every handler in registration order and joins their errors
	Dispatch(ctx context.Context, evt *event.Event) error

	// DispatchAsync runs every handler in its own goroutine without waiting
	DispatchAsync(ctx context.Context, evt *event.Event)

	// Handlers lists the names registered for eventType
	Handlers(eventType event.Type) []string

	// Close waits for async handlers and rejects further dispatches
	Close() error
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type subscription struct {
	name    string
	handler Handler
}

type eventDispatcher struct {
	mu     sync.RWMutex
	subs   map[event.Type][]subscription
	seq    atomic.Int64
	logger Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

// Option configures the dispatcher
type Option func(*eventDispatcher)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(d *eventDispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(opts ...Option) Dispatcher {
	d := &eventDispatcher{
		subs: make(map[event.Type][]subscription),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *eventDispatcher) Subscribe(eventType event.Type, handler Handler) string {
	name := fmt.Sprintf("%s#%d", eventType, d.seq.Add(1))
	d.SubscribeNamed(eventType, name, handler)
	return name
}

func (d *eventDispatcher) SubscribeNamed(eventType event.Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.subs[eventType]
	for i := range subs {
		if subs[i].name == name {
			subs[i].handler = handler
			return
		}
	}
	d.subs[eventType] = append(subs, subscription{name: name, handler: handler})

	d.logInfo("Handler registered", "event_type", eventType, "handler_name", name)
}

func (d *eventDispatcher) Unsubscribe(eventType event.Type, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.subs[eventType]
	kept := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.name != name {
			kept = append(kept, s)
		}
	}
	d.subs[eventType] = kept
}

func (d *eventDispatcher) snapshot(eventType event.Type) []subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]subscription(nil), d.subs[eventType]...)
}

func (d *eventDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	if d.closed.Load() {
		return ErrClosed
	}

	var errs []error
	for _, s := range d.snapshot(evt.Type) {
		if err := d.safeExecute(ctx, evt, s); err != nil {
			d.logError("Handler error",
				"event_type", evt.Type,
				"event_id", evt.ID,
				"handler_name", s.name,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("handler %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

func (d *eventDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	if d.closed.Load() {
		d.logError("Dropping event, dispatcher is closed", "event_type", evt.Type, "event_id", evt.ID)
		return
	}

	for _, s := range d.snapshot(evt.Type) {
		d.wg.Add(1)
		go func(s subscription) {
			defer d.wg.Done()
			if err := d.safeExecute(ctx, evt, s); err != nil {
				d.logError("Async handler error",
					"event_type", evt.Type,
					"event_id", evt.ID,
					"handler_name", s.name,
					"error", err,
				)
			}
		}(s)
	}
}

func (d *eventDispatcher) Handlers(eventType event.Type) []string {
	subs := d.snapshot(eventType)
	names := make([]string, len(subs))
	for i, s := range subs {
		names[i] = s.name
	}
	return names
}

func (d *eventDispatcher) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("dispatcher already closed")
	}
	d.wg.Wait()
	d.logInfo("Dispatcher closed")
	return nil
}

// safeExecute turns a handler panic into an error
func (d *eventDispatcher) safeExecute(ctx context.Context, evt *event.Event, s subscription) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return s.handler(ctx, evt)
}

func (d *eventDispatcher) logInfo(msg string, kv ...interface{}) {
	if d.logger != nil {
		d.logger.Info(msg, kv...)
	}
}

func (d *eventDispatcher) logError(msg string, kv ...interface{}) {
	if d.logger != nil {
		d.logger.Error(msg, kv...)
	}
}

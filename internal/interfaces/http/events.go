package http

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/vip-ledger/internal/domain/event"
)

const (
	subscriberBuffer = 16
	keepAlive        = 25 * time.Second
)

// Broker fans storage.changed events out to connected SSE clients.
// A slow client loses events rather than blocking publishers; it refetches on the next one.
type Broker struct {
	mu     sync.Mutex
	subs   map[chan *event.Event]struct{}
	done   chan struct{}
	closed bool
	logger Logger
}

// NewBroker creates an event broker
func NewBroker(logger Logger) *Broker {
	return &Broker{
		subs:   make(map[chan *event.Event]struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Handle matches dispatcher.Handler so the broker can subscribe to the dispatcher
func (b *Broker) Handle(ctx context.Context, evt *event.Event) error {
	b.Publish(evt)
	return nil
}

// Publish delivers evt to every subscriber with room in its buffer
func (b *Broker) Publish(evt *event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
			b.logger.Info("SSE subscriber lagging, event dropped", "event_id", evt.ID)
		}
	}
}

// Subscribe registers a new listener; cancel releases it
func (b *Broker) Subscribe() (<-chan *event.Event, func()) {
	ch := make(chan *event.Event, subscriberBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	sseSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, ch)
			sseSubscribers.Dec()
		})
	}
}

// Subscribers returns the number of connected listeners
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every open stream
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
}

// Stream handles GET /api/events
func (b *Broker) Stream(c *gin.Context) {
	events, cancel := b.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case evt, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(evt.Type.String(), evt)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-b.done:
			return false
		case <-ctx.Done():
			return false
		}
	})
}

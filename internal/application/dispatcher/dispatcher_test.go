package dispatcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/vip-ledger/internal/domain/event"
)

type mockLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, msg)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

func TestSubscribeAndDispatch(t *testing.T) {
	d := NewDispatcher()
	var order []string

	d.SubscribeNamed(event.TypeStorageChanged, "first", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "first:"+evt.Subject)
		return nil
	})
	d.SubscribeNamed(event.TypeStorageChanged, "second", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "second:"+evt.Subject)
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), event.StorageChanged("delta-invoices")))
	assert.Equal(t, []string{"first:delta-invoices", "second:delta-invoices"}, order)
}

func TestSubscribe_GeneratesUniqueNames(t *testing.T) {
	d := NewDispatcher()
	noop := func(ctx context.Context, evt *event.Event) error { return nil }

	a := d.Subscribe(event.TypeClientAdded, noop)
	b := d.Subscribe(event.TypeClientAdded, noop)

	assert.NotEqual(t, a, b)
	assert.Equal(t, []string{a, b}, d.Handlers(event.TypeClientAdded))
}

func TestSubscribeNamed_Replaces(t *testing.T) {
	d := NewDispatcher()
	var calls []string

	d.SubscribeNamed(event.TypeClientAdded, "h", func(ctx context.Context, evt *event.Event) error {
		calls = append(calls, "old")
		return nil
	})
	d.SubscribeNamed(event.TypeClientAdded, "h", func(ctx context.Context, evt *event.Event) error {
		calls = append(calls, "new")
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), event.NewEvent(event.TypeClientAdded, "c", nil)))
	assert.Equal(t, []string{"new"}, calls)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	called := false
	name := d.Subscribe(event.TypeClientDeleted, func(ctx context.Context, evt *event.Event) error {
		called = true
		return nil
	})

	d.Unsubscribe(event.TypeClientDeleted, name)

	require.NoError(t, d.Dispatch(context.Background(), event.NewEvent(event.TypeClientDeleted, "c", nil)))
	assert.False(t, called)
	assert.Empty(t, d.Handlers(event.TypeClientDeleted))
}

func TestDispatch_JoinsErrorsAndRecoversPanics(t *testing.T) {
	logger := &mockLogger{}
	d := NewDispatcher(WithLogger(logger))
	boom := errors.New("boom")
	ran := false

	d.SubscribeNamed(event.TypePaymentRecorded, "fails", func(ctx context.Context, evt *event.Event) error {
		return boom
	})
	d.SubscribeNamed(event.TypePaymentRecorded, "panics", func(ctx context.Context, evt *event.Event) error {
		panic("bad handler")
	})
	d.SubscribeNamed(event.TypePaymentRecorded, "runs", func(ctx context.Context, evt *event.Event) error {
		ran = true
		return nil
	})

	err := d.Dispatch(context.Background(), event.NewEvent(event.TypePaymentRecorded, "PAY-1", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "handler panic")
	assert.True(t, ran)
	assert.Equal(t, 2, logger.ErrorCount())
}

func TestDispatchAsync_CloseWaits(t *testing.T) {
	d := NewDispatcher()
	var count atomic.Int32

	for i := 0; i < 5; i++ {
		d.Subscribe(event.TypeStorageChanged, func(ctx context.Context, evt *event.Event) error {
			count.Add(1)
			return nil
		})
	}

	d.DispatchAsync(context.Background(), event.StorageChanged("delta-payments"))
	require.NoError(t, d.Close())

	assert.Equal(t, int32(5), count.Load())
}

func TestClose(t *testing.T) {
	d := NewDispatcher()

	require.NoError(t, d.Close())
	assert.Error(t, d.Close())
	assert.ErrorIs(t, d.Dispatch(context.Background(), event.StorageChanged("k")), ErrClosed)

	d.DispatchAsync(context.Background(), event.StorageChanged("k"))
}

func TestConcurrency(t *testing.T) {
	d := NewDispatcher()
	var count atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Subscribe(event.TypeStorageChanged, func(ctx context.Context, evt *event.Event) error {
				count.Add(1)
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = d.Dispatch(context.Background(), event.StorageChanged("k"))
		}()
	}
	wg.Wait()

	assert.Len(t, d.Handlers(event.TypeStorageChanged), 20)
}

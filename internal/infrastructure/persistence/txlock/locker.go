// Package txlock serializes read-modify-write cycles for stores without native transactions.
// There is no rollback: writes made before a failing step stay, so callers order
// multi-collection writes with the dependent record last.
package txlock

import (
	"context"
	"sync"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

type heldKey struct{}

// Locker implements port.TransactionManager with one process-wide mutex.
// Nested calls on a context that already holds the lock run inline.
type Locker struct {
	mu sync.Mutex
}

// New creates a Locker
func New() *Locker {
	return &Locker{}
}

// WithTransaction runs fn while holding the lock
func (l *Locker) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(heldKey{}).(*Locker); held == l {
		return fn(ctx)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(context.WithValue(ctx, heldKey{}, l))
}

var _ port.TransactionManager = (*Locker)(nil)

// Package idgen produces record ids and session tokens.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

// ULID generates lexicographically sortable, time-based ids.
// Ids made within the same millisecond stay strictly increasing.
type ULID struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewULID creates a ULID generator
func NewULID() *ULID {
	return &ULID{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewID implements port.IDGenerator
func (g *ULID) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// UUID generates random session tokens
type UUID struct{}

// NewID implements port.IDGenerator
func (UUID) NewID() string {
	return uuid.NewString()
}

var (
	_ port.IDGenerator = (*ULID)(nil)
	_ port.IDGenerator = UUID{}
)

package idgen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULID_MonotonicWithinMillisecond(t *testing.T) {
	g := NewULID()
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	prev := ""
	for i := 0; i < 100; i++ {
		id := g.NewID()
		assert.Len(t, id, 26)
		assert.Greater(t, id, prev)
		prev = id
	}

	parsed, err := ulid.Parse(prev)
	require.NoError(t, err)
	assert.Equal(t, fixed.UnixMilli(), int64(parsed.Time()))
}

func TestUUID_Unique(t *testing.T) {
	a, b := UUID{}.NewID(), UUID{}.NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ValuesAreCopied(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestStore_KeysSorted(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, k := range []string{"delta-vip-clients", "delta-invoices", "delta-payments"} {
		require.NoError(t, store.Set(ctx, k, []byte("[]")))
	}
	require.NoError(t, store.Delete(ctx, "delta-payments"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"delta-invoices", "delta-vip-clients"}, keys)
}

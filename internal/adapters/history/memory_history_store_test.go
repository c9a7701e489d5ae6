package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHistoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryHistoryStore()
	ctx := context.Background()

	queries, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, queries)

	require.NoError(t, store.Save(ctx, "session-1", []string{"cardiologue", "yaoundé"}))

	queries, err = store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cardiologue", "yaoundé"}, queries)

	// Sessions are isolated.
	other, err := store.Load(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryHistoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", []string{"dentiste"}))

	queries, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	queries[0] = "mutated"

	again, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"dentiste"}, again)
}

func TestMemoryHistoryStore_Clear(t *testing.T) {
	store := NewMemoryHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", []string{"pédiatre"}))
	require.NoError(t, store.Clear(ctx, "session-1"))

	queries, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, queries)
}

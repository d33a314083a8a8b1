package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
)

func TestMemoryStoreSaveGetClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	first := &diagnosis.Result{PredictedClass: "Normal"}
	require.NoError(t, store.Save(ctx, "s1", first))

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Normal", got.PredictedClass)

	// A new analysis overwrites the slot.
	second := &diagnosis.Result{PredictedClass: "Adenocarcinoma"}
	require.NoError(t, store.Save(ctx, "s1", second))
	got, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Adenocarcinoma", got.PredictedClass)

	require.NoError(t, store.Clear(ctx, "s1"))
	_, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreSessionsIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Save(ctx, "a", &diagnosis.Result{PredictedClass: "Normal"}))

	_, ok, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute).(*memoryStore)

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Save(ctx, "s1", &diagnosis.Result{PredictedClass: "Normal"}))

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must not be returned")
}

package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/mocks"
)

func TestInstrumentedCacheStore_RecordsHitsAndMisses(t *testing.T) {
	metrics := mocks.NewCacheMetrics(t)
	metrics.EXPECT().RecordLatency("memory", mock.Anything, mock.Anything).Maybe()
	metrics.EXPECT().RecordMiss("memory").Once()
	metrics.EXPECT().RecordHit("memory").Once()

	store := NewInstrumentedCacheStore(NewMemoryCacheStore(), "memory", metrics)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", []byte("1"), time.Minute))

	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInstrumentedCacheStore_ErrorsAreNotCounted(t *testing.T) {
	metrics := mocks.NewCacheMetrics(t)
	metrics.EXPECT().RecordLatency("memory", "get", mock.Anything).Once()

	store := NewInstrumentedCacheStore(NewMemoryCacheStore(), "memory", metrics)

	_, _, err := store.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestInstrumentedCacheStore_PassThrough(t *testing.T) {
	metrics := mocks.NewCacheMetrics(t)
	metrics.EXPECT().RecordLatency("memory", mock.Anything, mock.Anything).Maybe()

	inner := NewMemoryCacheStore()
	store := NewInstrumentedCacheStore(inner, "memory", metrics)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "project_id:P1:a", []byte("1"), time.Minute))
	keys, err := store.Keys(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	removed, err := store.DeletePattern(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	require.NoError(t, store.Clear(ctx))
	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalKeys)
	assert.Same(t, inner, store.Unwrap())
}

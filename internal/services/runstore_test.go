package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleRun(id string) *StoredRun {
	return &StoredRun{
		RunID:     id,
		CreatedAt: time.Now(),
		Config:    exportTestConfig(),
		Summary:   &models.SummaryStatistics{SimulationCount: 2},
		Batch:     exportTestBatch(),
	}
}

func TestMemoryRunStore_SaveAndGet(t *testing.T) {
	store := NewMemoryRunStore(time.Minute, quietLogger())
	defer store.Close()
	ctx := context.Background()

	run := sampleRun("run-1")
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestMemoryRunStore_GetMissing(t *testing.T) {
	store := NewMemoryRunStore(time.Minute, quietLogger())
	defer store.Close()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestMemoryRunStore_Delete(t *testing.T) {
	store := NewMemoryRunStore(time.Minute, quietLogger())
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRun("run-2")))
	require.NoError(t, store.Delete(ctx, "run-2"))

	_, err := store.Get(ctx, "run-2")
	assert.ErrorIs(t, err, ErrRunNotFound)

	assert.NoError(t, store.Delete(ctx, "never-there"), "deleting an unknown run is not an error")
}

func TestMemoryRunStore_ExpiryOnRead(t *testing.T) {
	store := NewMemoryRunStore(10*time.Millisecond, quietLogger())
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRun("run-3")))

	_, err := store.Get(ctx, "run-3")
	require.NoError(t, err, "fresh runs are readable")

	time.Sleep(30 * time.Millisecond)
	_, err = store.Get(ctx, "run-3")
	assert.ErrorIs(t, err, ErrRunNotFound, "reads enforce the TTL without waiting for the sweeper")
}

func TestMemoryRunStore_Sweep(t *testing.T) {
	store := NewMemoryRunStore(5*time.Millisecond, quietLogger())
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRun("stale")))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.Save(ctx, sampleRun("fresh")))

	store.sweep()

	store.mu.RLock()
	_, staleKept := store.entries["stale"]
	_, freshKept := store.entries["fresh"]
	store.mu.RUnlock()
	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

func TestMemoryRunStore_OverwriteResetsTTL(t *testing.T) {
	store := NewMemoryRunStore(40*time.Millisecond, quietLogger())
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRun("run-4")))
	time.Sleep(25 * time.Millisecond)
	require.NoError(t, store.Save(ctx, sampleRun("run-4")))
	time.Sleep(25 * time.Millisecond)

	_, err := store.Get(ctx, "run-4")
	assert.NoError(t, err, "a rewrite restarts the clock")
}

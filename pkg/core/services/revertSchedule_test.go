package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/pkg/db"
)

func newRevertStore() *mockStore {
	batchA, batchB := "batch-a", "batch-b"
	return &mockStore{
		batches: []db.ScheduleBatch{
			{ID: batchB, StartDate: "2024-01-08", EndDate: "2024-01-14", EntryCount: 1},
			{ID: batchA, StartDate: "2024-01-01", EndDate: "2024-01-07", EntryCount: 2},
		},
		schedules: []db.Schedule{
			{ID: 1, BatchID: &batchA, StaffID: 1, Date: "2024-01-01"},
			{ID: 2, BatchID: &batchA, StaffID: 2, Date: "2024-01-02"},
			{ID: 3, BatchID: &batchB, StaffID: 1, Date: "2024-01-08"},
		},
	}
}

func TestRevertSchedule_Success(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newRevertStore()

	result, err := RevertSchedule(ctx, store, logger, "batch-a")
	require.NoError(t, err)

	assert.Equal(t, "batch-a", store.deletedBatchID)
	assert.Equal(t, int64(2), result.DeletedEntries)
	assert.Equal(t, "2024-01-01", result.Batch.StartDate)
}

func TestRevertSchedule_UnknownBatch(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newRevertStore()

	_, err := RevertSchedule(ctx, store, logger, "batch-z")
	assert.ErrorContains(t, err, "schedule batch batch-z not found")
	assert.Empty(t, store.deletedBatchID)
}

func TestRevertSchedule_DeleteError(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newRevertStore()
	store.deleteErr = errors.New("lock timeout")

	_, err := RevertSchedule(ctx, store, logger, "batch-a")
	assert.ErrorContains(t, err, "failed to delete schedule batch")
}

func TestListScheduleBatches(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	batches, err := ListScheduleBatches(ctx, newRevertStore(), logger)
	require.NoError(t, err)

	require.Len(t, batches, 2)
	assert.Equal(t, "batch-b", batches[0].ID)
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/pkg/db"
)

// ScheduleBatchStore defines the database operations on generation batches
type ScheduleBatchStore interface {
	GetScheduleBatches(ctx context.Context) ([]db.ScheduleBatch, error)
	DeleteScheduleBatch(ctx context.Context, batchID string) (int64, error)
}

// RevertScheduleResult describes a deleted batch
type RevertScheduleResult struct {
	Batch          db.ScheduleBatch
	DeletedEntries int64
}

// RevertSchedule deletes every entry saved by one generation run
func RevertSchedule(ctx context.Context, database ScheduleBatchStore, logger *zap.Logger, batchID string) (*RevertScheduleResult, error) {
	logger.Debug("Starting revertSchedule", zap.String("batch_id", batchID))

	batches, err := database.GetScheduleBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule batches: %w", err)
	}

	var batch *db.ScheduleBatch
	for i := range batches {
		if batches[i].ID == batchID {
			batch = &batches[i]
			break
		}
	}
	if batch == nil {
		return nil, fmt.Errorf("schedule batch %s not found", batchID)
	}

	deleted, err := database.DeleteScheduleBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete schedule batch: %w", err)
	}

	logger.Info("Schedule batch reverted", zap.String("batch_id", batchID), zap.Int64("deleted_entries", deleted))

	return &RevertScheduleResult{
		Batch:          *batch,
		DeletedEntries: deleted,
	}, nil
}

// ListScheduleBatches returns saved generation batches, most recent first
func ListScheduleBatches(ctx context.Context, database ScheduleBatchStore, logger *zap.Logger) ([]db.ScheduleBatch, error) {
	logger.Debug("Fetching schedule batches")
	batches, err := database.GetScheduleBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule batches: %w", err)
	}
	return batches, nil
}

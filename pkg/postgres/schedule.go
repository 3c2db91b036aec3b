package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfranco1/scrub-in/pkg/db"
)

// GetSchedules retrieves schedule records between start and end (inclusive)
func (d *DB) GetSchedules(ctx context.Context, start, end string) ([]db.Schedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, batch_id::text AS batch_id, staff_id, date::text AS date, shift_type_id, duty_type_id, unit
		FROM schedule
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}

	schedules, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.Schedule])
	if err != nil {
		return nil, fmt.Errorf("failed to scan schedules: %w", err)
	}

	return schedules, nil
}

// GetScheduleBatches retrieves all generation batches, newest first
func (d *DB) GetScheduleBatches(ctx context.Context) ([]db.ScheduleBatch, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT b.id::text AS id,
			b.start_date::text AS start_date,
			b.end_date::text AS end_date,
			b.unit,
			b.created_at,
			COUNT(s.id)::int AS entry_count
		FROM schedule_batch b
		LEFT JOIN schedule s ON s.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule batches: %w", err)
	}

	batches, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.ScheduleBatch])
	if err != nil {
		return nil, fmt.Errorf("failed to scan schedule batches: %w", err)
	}

	return batches, nil
}

// InsertScheduleBatch records a generation batch and its schedule entries in one transaction
func (d *DB) InsertScheduleBatch(ctx context.Context, batch db.ScheduleBatch, schedules []db.Schedule) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule_batch (id, start_date, end_date, unit)
		VALUES ($1, $2, $3, $4)
	`, batch.ID, batch.StartDate, batch.EndDate, batch.Unit)
	if err != nil {
		return fmt.Errorf("failed to insert schedule batch: %w", err)
	}

	for _, s := range schedules {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule (batch_id, staff_id, date, shift_type_id, duty_type_id, unit)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, batch.ID, s.StaffID, s.Date, s.ShiftTypeID, s.DutyTypeID, s.Unit)
		if err != nil {
			return fmt.Errorf("failed to insert schedule for staff %d on %s: %w", s.StaffID, s.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteScheduleBatch removes a generation batch and its entries.
// Returns the number of schedule entries removed.
func (d *DB) DeleteScheduleBatch(ctx context.Context, batchID string) (int64, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM schedule WHERE batch_id = $1`, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete schedules: %w", err)
	}

	batchTag, err := tx.Exec(ctx, `DELETE FROM schedule_batch WHERE id = $1`, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete schedule batch: %w", err)
	}
	if batchTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("schedule batch %s not found", batchID)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tag.RowsAffected(), nil
}

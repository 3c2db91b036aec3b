package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfranco1/scrub-in/pkg/db"
)

// GetShiftTypes retrieves the shift catalog in ID order
func (d *DB) GetShiftTypes(ctx context.Context) ([]db.ShiftType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name,
			to_char(start_time, 'HH24:MI') AS start_time,
			to_char(end_time, 'HH24:MI') AS end_time,
			duration_hours::float8 AS duration_hours,
			category
		FROM shift_type
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}

	shiftTypes, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.ShiftType])
	if err != nil {
		return nil, fmt.Errorf("failed to scan shift types: %w", err)
	}

	return shiftTypes, nil
}

// GetDutyTypes retrieves the duty catalog in ID order
func (d *DB) GetDutyTypes(ctx context.Context) ([]db.DutyType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, category
		FROM duty_type
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query duty types: %w", err)
	}

	dutyTypes, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.DutyType])
	if err != nil {
		return nil, fmt.Errorf("failed to scan duty types: %w", err)
	}

	return dutyTypes, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfranco1/scrub-in/pkg/db"
)

// GetAvailability retrieves availability records between start and end (inclusive)
func (d *DB) GetAvailability(ctx context.Context, start, end string) ([]db.Availability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT staff_id, date::text AS date, is_available, reason
		FROM availability
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, staff_id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}

	availability, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.Availability])
	if err != nil {
		return nil, fmt.Errorf("failed to scan availability: %w", err)
	}

	return availability, nil
}

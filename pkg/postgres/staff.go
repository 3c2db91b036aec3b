package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfranco1/scrub-in/pkg/db"
)

// GetStaff retrieves all staff records ordered by ID
func (d *DB) GetStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, role, specialization, email, active
		FROM staff
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}

	staff, err := pgx.CollectRows(rows, pgx.RowToStructByName[db.Staff])
	if err != nil {
		return nil, fmt.Errorf("failed to scan staff: %w", err)
	}

	return staff, nil
}

// UpsertStaff inserts staff records, updating existing ones by ID
func (d *DB) UpsertStaff(ctx context.Context, staff []db.Staff) error {
	if len(staff) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, s := range staff {
		batch.Queue(`
			INSERT INTO staff (id, name, role, specialization, email, active)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				role = EXCLUDED.role,
				specialization = EXCLUDED.specialization,
				email = EXCLUDED.email,
				active = EXCLUDED.active,
				updated_at = NOW()
		`, s.ID, s.Name, s.Role, s.Specialization, s.Email, s.Active)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert staff: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

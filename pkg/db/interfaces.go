package db

import "context"

// StaffStore defines the interface for staff database operations
type StaffStore interface {
	GetStaff(ctx context.Context) ([]Staff, error)
	UpsertStaff(ctx context.Context, staff []Staff) error
}

// CatalogStore defines the interface for shift and duty type lookups
type CatalogStore interface {
	GetShiftTypes(ctx context.Context) ([]ShiftType, error)
	GetDutyTypes(ctx context.Context) ([]DutyType, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	StaffStore
	CatalogStore
	GetAvailability(ctx context.Context, start, end string) ([]Availability, error)
	GetSchedules(ctx context.Context, start, end string) ([]Schedule, error)
	GetScheduleBatches(ctx context.Context) ([]ScheduleBatch, error)
	InsertScheduleBatch(ctx context.Context, batch ScheduleBatch, schedules []Schedule) error
	DeleteScheduleBatch(ctx context.Context, batchID string) (int64, error)
	RunMigrations(ctx context.Context) error
	Close()
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/core/model"
	"github.com/mfranco1/scrub-in/pkg/core/scheduler"
	"github.com/mfranco1/scrub-in/pkg/db"
)

// GenerateScheduleStore defines the database operations needed to generate and save a schedule
type GenerateScheduleStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	GetShiftTypes(ctx context.Context) ([]db.ShiftType, error)
	GetDutyTypes(ctx context.Context) ([]db.DutyType, error)
	GetAvailability(ctx context.Context, start, end string) ([]db.Availability, error)
	GetSchedules(ctx context.Context, start, end string) ([]db.Schedule, error)
	InsertScheduleBatch(ctx context.Context, batch db.ScheduleBatch, schedules []db.Schedule) error
}

// GenerateScheduleOptions controls one generation run
type GenerateScheduleOptions struct {
	StartDate string // Format: "2006-01-02"
	EndDate   string

	// Unit overrides the configured default unit
	Unit string

	// DryRun generates without saving
	DryRun bool

	// Force saves even when error conflicts were reported
	Force bool
}

// GenerateScheduleResult contains the generated schedule and what happened to it
type GenerateScheduleResult struct {
	BatchID   string
	Unit      string
	Schedules []model.ScheduleEntry
	Conflicts []model.Conflict

	// Staff, ShiftTypes and DutyTypes are the inputs used, for display
	Staff      []model.StaffMember
	ShiftTypes []model.ShiftType
	DutyTypes  []model.DutyType

	Saved bool

	// Blocked is set when error conflicts prevented saving
	Blocked bool
}

// GenerateSchedule loads the roster, catalogs, availability and recent history,
// runs the scheduler over the requested range and saves the result as one batch.
// Nothing is saved on a dry run, or when error conflicts were reported and Force is not set.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateScheduleOptions,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("start", opts.StartDate),
		zap.String("end", opts.EndDate),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("force", opts.Force))

	startDate, endDate, err := parseDateRange(opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}

	unit := opts.Unit
	if unit == "" {
		unit = cfg.DefaultUnit
	}

	// Step 1: Roster
	logger.Debug("Fetching staff")
	staffRows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	staff := filterActiveStaff(convertStaff(staffRows))
	if len(staff) == 0 {
		return nil, fmt.Errorf("no active staff found")
	}
	logger.Debug("Found active staff", zap.Int("count", len(staff)), zap.Int64s("staff_ids", getStaffIDs(staff)))

	// Step 2: Catalogs, with configured categories applied by name
	logger.Debug("Fetching shift and duty types")
	shiftRows, err := database.GetShiftTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}
	dutyRows, err := database.GetDutyTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duty types: %w", err)
	}

	shiftTypes := convertShiftTypes(shiftRows, cfg.Catalog.ShiftCategories)
	dutyTypes := convertDutyTypes(dutyRows, cfg.Catalog.DutyCategories)
	if len(shiftTypes) == 0 {
		logger.Warn("Shift catalog is empty, no shifts will be assigned")
	}

	// Step 3: Availability, stored and recurring
	logger.Debug("Fetching availability")
	availabilityRows, err := database.GetAvailability(ctx, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	availability := convertAvailability(availabilityRows)

	recurring, err := expandRecurringUnavailability(cfg.RecurringUnavailability, startDate, endDate)
	if err != nil {
		return nil, err
	}
	availability = append(availability, recurring...)
	logger.Debug("Availability loaded",
		zap.Int("stored", len(availabilityRows)),
		zap.Int("recurring", len(recurring)))

	// Step 4: History before the window plus entries already inside it
	historyStart := model.FormatDate(startDate.AddDate(0, 0, -cfg.Lookback()))
	logger.Debug("Fetching existing schedules", zap.String("from", historyStart), zap.String("to", opts.EndDate))
	scheduleRows, err := database.GetSchedules(ctx, historyStart, opts.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing schedules: %w", err)
	}
	existing := convertSchedules(scheduleRows)

	// Step 5: Generate
	logger.Debug("Running scheduler", zap.String("unit", unit), zap.Int("existing_entries", len(existing)))
	generated := scheduler.Generate(scheduler.GenerateInput{
		Staff:             staff,
		ShiftTypes:        shiftTypes,
		DutyTypes:         dutyTypes,
		Availability:      availability,
		StartDate:         startDate,
		EndDate:           endDate,
		Unit:              unit,
		ExistingSchedules: existing,
	})

	result := &GenerateScheduleResult{
		Unit:       unit,
		Schedules:  generated.Schedules,
		Conflicts:  generated.Conflicts,
		Staff:      staff,
		ShiftTypes: shiftTypes,
		DutyTypes:  dutyTypes,
	}

	logger.Info("Schedule generated",
		zap.Int("entries", len(result.Schedules)),
		zap.Int("conflicts", len(result.Conflicts)))

	// Step 6: Save
	if opts.DryRun {
		logger.Info("Dry run, schedule not saved")
		return result, nil
	}

	if model.HasErrors(result.Conflicts) && !opts.Force {
		logger.Warn("Schedule has error conflicts, not saving (use force to override)")
		result.Blocked = true
		return result, nil
	}

	if len(result.Schedules) == 0 {
		logger.Info("No entries generated, nothing to save")
		return result, nil
	}

	batch := db.ScheduleBatch{
		ID:        uuid.New().String(),
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
		CreatedAt: time.Now().UTC(),
	}
	if unit != "" {
		batch.Unit = &unit
	}

	records := make([]db.Schedule, len(result.Schedules))
	for i, entry := range result.Schedules {
		records[i] = db.ScheduleFromModel(entry, batch.ID)
	}

	logger.Debug("Saving schedule batch", zap.String("batch_id", batch.ID), zap.Int("entries", len(records)))
	if err := database.InsertScheduleBatch(ctx, batch, records); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	result.BatchID = batch.ID
	result.Saved = true
	logger.Info("Schedule saved", zap.String("batch_id", batch.ID))

	return result, nil
}

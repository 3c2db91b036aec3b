package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/core/conflicts"
	"github.com/mfranco1/scrub-in/pkg/core/model"
	"github.com/mfranco1/scrub-in/pkg/db"
)

// checkWindowDays is how far either side of the candidate date schedules are loaded.
// It covers the Sunday-start week and the longest streak that can raise a warning.
const checkWindowDays = 7

// CheckEntryStore defines the database operations needed to check a single entry
type CheckEntryStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	GetShiftTypes(ctx context.Context) ([]db.ShiftType, error)
	GetAvailability(ctx context.Context, start, end string) ([]db.Availability, error)
	GetSchedules(ctx context.Context, start, end string) ([]db.Schedule, error)
}

// CheckEntryOptions describes the proposed entry
type CheckEntryOptions struct {
	StaffID     int64
	Date        string // Format: "2006-01-02"
	ShiftTypeID *int64
	DutyTypeID  int64

	// Unit overrides the configured default unit
	Unit string
}

// CheckEntryResult contains the conflicts for the proposed entry and replacement candidates
type CheckEntryResult struct {
	Candidate   model.ScheduleEntry
	Staff       model.StaffMember
	Conflicts   []model.Conflict
	Suggestions []model.StaffMember
}

// CheckEntry checks a proposed schedule entry against stored schedules and availability,
// and suggests staff who could take the slot instead
func CheckEntry(
	ctx context.Context,
	database CheckEntryStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts CheckEntryOptions,
) (*CheckEntryResult, error) {
	logger.Debug("Starting checkEntry", zap.Int64("staff_id", opts.StaffID), zap.String("date", opts.Date))

	date, err := model.ParseDate(opts.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", opts.Date, err)
	}

	unit := opts.Unit
	if unit == "" {
		unit = cfg.DefaultUnit
	}

	staffRows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	staff := convertStaff(staffRows)

	var member *model.StaffMember
	for i := range staff {
		if staff[i].ID == opts.StaffID {
			member = &staff[i]
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("staff member %d not found", opts.StaffID)
	}

	shiftRows, err := database.GetShiftTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}
	shiftTypes := convertShiftTypes(shiftRows, cfg.Catalog.ShiftCategories)

	if opts.ShiftTypeID != nil {
		if _, ok := shiftTypesByID(shiftTypes)[*opts.ShiftTypeID]; !ok {
			return nil, fmt.Errorf("shift type %d not found", *opts.ShiftTypeID)
		}
	}

	windowStart := date.AddDate(0, 0, -checkWindowDays)
	windowEnd := date.AddDate(0, 0, checkWindowDays)
	from, to := model.FormatDate(windowStart), model.FormatDate(windowEnd)

	logger.Debug("Fetching schedules and availability", zap.String("from", from), zap.String("to", to))
	scheduleRows, err := database.GetSchedules(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	schedules := convertSchedules(scheduleRows)

	availabilityRows, err := database.GetAvailability(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	availability := convertAvailability(availabilityRows)

	recurring, err := expandRecurringUnavailability(cfg.RecurringUnavailability, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	availability = append(availability, recurring...)

	candidate := model.ScheduleEntry{
		StaffID:     opts.StaffID,
		Date:        opts.Date,
		ShiftTypeID: opts.ShiftTypeID,
		DutyTypeID:  opts.DutyTypeID,
		Unit:        unit,
	}

	detected := conflicts.Detect(conflicts.DetectInput{
		Candidate:    candidate,
		Schedules:    schedules,
		Staff:        staff,
		Availability: availability,
		ShiftTypes:   shiftTypes,
	})

	suggestions := conflicts.Suggest(conflicts.SuggestInput{
		StaffID:      opts.StaffID,
		Date:         opts.Date,
		ShiftTypeID:  opts.ShiftTypeID,
		Staff:        staff,
		Schedules:    schedules,
		Availability: availability,
		Unit:         unit,
		ShiftTypes:   shiftTypes,
	})

	logger.Debug("Entry checked",
		zap.Int("conflicts", len(detected)),
		zap.Int("suggestions", len(suggestions)))

	return &CheckEntryResult{
		Candidate:   candidate,
		Staff:       *member,
		Conflicts:   detected,
		Suggestions: suggestions,
	}, nil
}

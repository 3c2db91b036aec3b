package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/clients/sheetsclient"
	"github.com/mfranco1/scrub-in/pkg/core/model"
	"github.com/mfranco1/scrub-in/pkg/db"
)

// ScheduleWindowStore defines the database operations needed to read back a saved schedule
type ScheduleWindowStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	GetShiftTypes(ctx context.Context) ([]db.ShiftType, error)
	GetDutyTypes(ctx context.Context) ([]db.DutyType, error)
	GetSchedules(ctx context.Context, start, end string) ([]db.Schedule, error)
}

// SheetsClient defines the interface for publishing schedules to a spreadsheet
type SheetsClient interface {
	PublishSchedule(spreadsheetID string, schedule *sheetsclient.PublishedSchedule) (string, error)
}

// PublishScheduleResult describes what was written
type PublishScheduleResult struct {
	TabTitle string
	Schedule *sheetsclient.PublishedSchedule
	Entries  int
}

// scheduleWindow is a saved schedule between two dates with everything needed to label it
type scheduleWindow struct {
	start, end time.Time
	staff      []model.StaffMember
	shiftTypes map[int64]model.ShiftType
	dutyTypes  map[int64]model.DutyType
	entries    []model.ScheduleEntry
}

func loadScheduleWindow(ctx context.Context, database ScheduleWindowStore, cfg *config.Config, logger *zap.Logger, startStr, endStr string) (*scheduleWindow, error) {
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}

	staffRows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	shiftRows, err := database.GetShiftTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}

	dutyRows, err := database.GetDutyTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duty types: %w", err)
	}

	logger.Debug("Fetching schedules", zap.String("from", startStr), zap.String("to", endStr))
	scheduleRows, err := database.GetSchedules(ctx, startStr, endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	return &scheduleWindow{
		start:      start,
		end:        end,
		staff:      convertStaff(staffRows),
		shiftTypes: shiftTypesByID(convertShiftTypes(shiftRows, cfg.Catalog.ShiftCategories)),
		dutyTypes:  dutyTypesByID(convertDutyTypes(dutyRows, cfg.Catalog.DutyCategories)),
		entries:    convertSchedules(scheduleRows),
	}, nil
}

func (w *scheduleWindow) label(entry model.ScheduleEntry) string {
	return entryLabel(entry, w.shiftTypes, w.dutyTypes)
}

// columns returns active staff plus anyone with an entry in the window, ordered by id
func (w *scheduleWindow) columns() []model.StaffMember {
	scheduled := make(map[int64]bool)
	for _, entry := range w.entries {
		scheduled[entry.StaffID] = true
	}

	var columns []model.StaffMember
	for _, member := range w.staff {
		if member.Active || scheduled[member.ID] {
			columns = append(columns, member)
		}
	}

	sort.Slice(columns, func(i, j int) bool {
		return columns[i].ID < columns[j].ID
	})
	return columns
}

// PublishSchedule writes the saved schedule between two dates to the schedule spreadsheet
// as a grid with one row per date and one column per staff member
func PublishSchedule(
	ctx context.Context,
	database ScheduleWindowStore,
	sheetsClient SheetsClient,
	cfg *config.Config,
	logger *zap.Logger,
	startDate, endDate string,
) (*PublishScheduleResult, error) {
	if cfg.ScheduleSheetID == "" {
		return nil, fmt.Errorf("scheduleSheetID is not configured")
	}

	window, err := loadScheduleWindow(ctx, database, cfg, logger, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(window.entries) == 0 {
		return nil, fmt.Errorf("no schedule entries found between %s and %s", startDate, endDate)
	}

	published := buildPublishedSchedule(window, startDate, endDate)

	logger.Debug("Publishing schedule",
		zap.String("sheet_id", cfg.ScheduleSheetID),
		zap.Int("rows", len(published.Rows)),
		zap.Int("columns", len(published.Staff)))

	tabTitle, err := sheetsClient.PublishSchedule(cfg.ScheduleSheetID, published)
	if err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("tab", tabTitle), zap.Int("entries", len(window.entries)))

	return &PublishScheduleResult{
		TabTitle: tabTitle,
		Schedule: published,
		Entries:  len(window.entries),
	}, nil
}

func buildPublishedSchedule(window *scheduleWindow, startDate, endDate string) *sheetsclient.PublishedSchedule {
	columns := window.columns()
	columnIndex := make(map[int64]int, len(columns))
	names := make([]string, len(columns))
	for i, member := range columns {
		columnIndex[member.ID] = i
		names[i] = member.Name
	}

	// date -> column -> labels
	cells := make(map[string]map[int][]string)
	for _, entries := range groupEntriesByStaff(window.entries) {
		for _, entry := range entries {
			col, ok := columnIndex[entry.StaffID]
			if !ok {
				continue
			}
			if cells[entry.Date] == nil {
				cells[entry.Date] = make(map[int][]string)
			}
			cells[entry.Date][col] = append(cells[entry.Date][col], window.label(entry))
		}
	}

	dates := datesBetween(window.start, window.end)
	rows := make([]sheetsclient.PublishedScheduleRow, len(dates))
	for i, date := range dates {
		row := sheetsclient.PublishedScheduleRow{
			Date:  date,
			Cells: make([]string, len(columns)),
		}
		for col, labels := range cells[date] {
			row.Cells[col] = joinLabels(labels)
		}
		rows[i] = row
	}

	return &sheetsclient.PublishedSchedule{
		StartDate: startDate,
		EndDate:   endDate,
		Staff:     names,
		Rows:      rows,
	}
}

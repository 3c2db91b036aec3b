package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/core/model"
	"github.com/mfranco1/scrub-in/pkg/db"
)

// ImportStaffStore defines the database operations needed to sync the roster
type ImportStaffStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	UpsertStaff(ctx context.Context, staff []db.Staff) error
}

// RosterClient defines the interface for reading the staff roster
type RosterClient interface {
	ListStaff(spreadsheetID, tab string) ([]model.StaffMember, error)
}

// ImportStaffResult summarises a roster sync
type ImportStaffResult struct {
	Imported    int
	Deactivated []model.StaffMember
}

// ImportStaff reads the roster sheet and upserts every row into the staff table.
// Active staff who no longer appear on the sheet are marked inactive.
func ImportStaff(
	ctx context.Context,
	database ImportStaffStore,
	rosterClient RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportStaffResult, error) {
	if cfg.RosterSheetID == "" {
		return nil, fmt.Errorf("rosterSheetID is not configured")
	}

	logger.Debug("Reading roster", zap.String("sheet_id", cfg.RosterSheetID), zap.String("tab", cfg.RosterTab))
	roster, err := rosterClient.ListStaff(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	existingRows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	onRoster := make(map[int64]bool, len(roster))
	records := make([]db.Staff, 0, len(roster)+len(existingRows))
	for _, member := range roster {
		onRoster[member.ID] = true
		records = append(records, db.StaffFromModel(member))
	}

	var deactivated []model.StaffMember
	for _, row := range existingRows {
		if onRoster[row.ID] || !row.Active {
			continue
		}
		member := row.ToModel()
		member.Active = false
		deactivated = append(deactivated, member)
		records = append(records, db.StaffFromModel(member))
	}

	if err := database.UpsertStaff(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}

	logger.Info("Roster imported",
		zap.Int("imported", len(roster)),
		zap.Int("deactivated", len(deactivated)))

	return &ImportStaffResult{
		Imported:    len(roster),
		Deactivated: deactivated,
	}, nil
}

// ListStaff returns every staff member in the database, active or not
func ListStaff(ctx context.Context, database db.StaffStore, logger *zap.Logger) ([]model.StaffMember, error) {
	logger.Debug("Fetching staff")
	rows, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	return convertStaff(rows), nil
}

package commands

import (
	"fmt"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// staffLoadRow counts one staff member's entries by shift category
type staffLoadRow struct {
	ID      int64
	Name    string
	Day     int
	Evening int
	Night   int
	Other   int // Shifts whose category cannot be resolved
	Rest    int
}

func (r staffLoadRow) shifts() int {
	return r.Day + r.Evening + r.Night + r.Other
}

// summarizeByStaff tallies entries per staff member, in roster order.
// Entries for staff missing from the roster are ignored.
func summarizeByStaff(staff []model.StaffMember, shiftTypes []model.ShiftType, entries []model.ScheduleEntry) []staffLoadRow {
	categories := make(map[int64]model.ShiftCategory, len(shiftTypes))
	for _, shiftType := range shiftTypes {
		categories[shiftType.ID] = shiftType.ResolvedCategory()
	}

	rows := make([]staffLoadRow, len(staff))
	index := make(map[int64]int, len(staff))
	for i, member := range staff {
		rows[i] = staffLoadRow{ID: member.ID, Name: member.Name}
		index[member.ID] = i
	}

	for _, entry := range entries {
		i, ok := index[entry.StaffID]
		if !ok {
			continue
		}
		if !entry.HasShift() {
			rows[i].Rest++
			continue
		}
		switch categories[*entry.ShiftTypeID] {
		case model.ShiftCategoryDay:
			rows[i].Day++
		case model.ShiftCategoryEvening:
			rows[i].Evening++
		case model.ShiftCategoryNight:
			rows[i].Night++
		default:
			rows[i].Other++
		}
	}

	return rows
}

// conflictColor picks the display color for a conflict's severity
func conflictColor(severity model.Severity) string {
	if severity == model.SeverityError {
		return colorRed
	}
	return colorYellow
}

// formatConflict renders a conflict on one line, e.g. "✗ 2024-01-10 existing_assignment: ..."
func formatConflict(conflict model.Conflict) string {
	marker := "⚠"
	if conflict.Severity == model.SeverityError {
		marker = "✗"
	}
	return fmt.Sprintf("%s %s %s: %s", marker, conflict.Date, conflict.Type, conflict.Message)
}

// countBySeverity returns the number of error and warning conflicts
func countBySeverity(conflicts []model.Conflict) (errors, warnings int) {
	for _, conflict := range conflicts {
		if conflict.Severity == model.SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

func printConflicts(conflicts []model.Conflict) {
	if len(conflicts) == 0 {
		fmt.Printf("No conflicts.\n\n")
		return
	}

	errors, warnings := countBySeverity(conflicts)
	fmt.Printf("Conflicts: %d errors, %d warnings\n", errors, warnings)
	for _, conflict := range conflicts {
		fmt.Printf("  %s%s%s\n", conflictColor(conflict.Severity), formatConflict(conflict), colorReset)
	}
	fmt.Println()
}

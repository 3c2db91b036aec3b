package conflicts

import (
	"fmt"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

const (
	// MinRestHours is the minimum rest between two shifts. The detector enforces it
	// through shift categories (no day followed by night, no night followed by day)
	// rather than by comparing clock times.
	MinRestHours = 8

	// MaxConsecutiveShifts is the longest allowed run of contiguous working days
	MaxConsecutiveShifts = 5

	// MaxWeeklyShifts is the number of entries allowed in one Sunday-start week
	MaxWeeklyShifts = 5
)

// DetectInput holds one candidate entry and the context it is checked against
type DetectInput struct {
	Candidate    model.ScheduleEntry
	Schedules    []model.ScheduleEntry
	Staff        []model.StaffMember
	Availability []model.AvailabilityRecord
	ShiftTypes   []model.ShiftType
}

// Detect returns the conflicts the candidate entry violates.
//
// Checks run in a fixed order and are additive: unavailability, an existing
// entry on the same date, rest period against both neighbouring days,
// consecutive working days, specialization mismatch and the weekly limit.
// The inputs are never modified.
func Detect(input DetectInput) []model.Conflict {
	candidate := input.Candidate
	member := findStaff(input.Staff, candidate.StaffID)
	categories := shiftCategories(input.ShiftTypes)
	others := otherEntries(input.Schedules, candidate)

	result := []model.Conflict{}
	add := func(conflictType model.ConflictType, severity model.Severity, message string) {
		result = append(result, model.Conflict{
			Type:      conflictType,
			StaffID:   candidate.StaffID,
			Date:      candidate.Date,
			Message:   message,
			Severity:  severity,
			StaffName: member.Name,
		})
	}

	if isUnavailable(input.Availability, candidate.StaffID, candidate.Date) {
		add(model.ConflictUnavailableStaff, model.SeverityError,
			fmt.Sprintf("%s is not available on %s", displayName(member), candidate.Date))
	}

	if len(entriesOn(others, candidate.Date)) > 0 {
		add(model.ConflictExistingAssignment, model.SeverityError,
			fmt.Sprintf("%s already has an assignment on %s", displayName(member), candidate.Date))
	}

	if neighbour, ok := restViolation(others, categories, candidate); ok {
		add(model.ConflictRestPeriodViolation, model.SeverityError,
			fmt.Sprintf("%s needs at least %d hours of rest between %s and %s", displayName(member), MinRestHours, neighbour, candidate.Date))
	}

	if candidate.HasShift() {
		if run := contiguousRun(workingDates(others), candidate.Date); run > MaxConsecutiveShifts {
			add(model.ConflictConsecutiveShifts, model.SeverityWarning,
				fmt.Sprintf("%s would work %d consecutive days", displayName(member), run))
		}
	}

	if candidate.Unit != "" && member.Specialization != "" && member.Specialization != candidate.Unit {
		add(model.ConflictSpecializationMismatch, model.SeverityWarning,
			fmt.Sprintf("%s specializes in %s, not %s", displayName(member), member.Specialization, candidate.Unit))
	}

	if count := weekEntries(others, candidate.Date) + 1; count > MaxWeeklyShifts {
		add(model.ConflictWeeklyLimit, model.SeverityWarning,
			fmt.Sprintf("%s would have %d shifts in the week of %s", displayName(member), count, model.WeekStart(candidate.Date)))
	}

	return result
}

// otherEntries returns the candidate's staff entries, leaving out the candidate itself
func otherEntries(schedules []model.ScheduleEntry, candidate model.ScheduleEntry) []model.ScheduleEntry {
	result := make([]model.ScheduleEntry, 0)
	for _, entry := range schedules {
		if entry.StaffID != candidate.StaffID {
			continue
		}
		if candidate.ID != 0 && entry.ID == candidate.ID {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// restViolation looks for a day/night pair between the candidate and either
// neighbouring date and returns the offending neighbour date
func restViolation(others []model.ScheduleEntry, categories map[int64]model.ShiftCategory, candidate model.ScheduleEntry) (string, bool) {
	category := categoryOf(categories, candidate)
	if category != model.ShiftCategoryDay && category != model.ShiftCategoryNight {
		return "", false
	}

	previous := model.AddDays(candidate.Date, -1)
	for _, entry := range entriesOn(others, previous) {
		before := categoryOf(categories, entry)
		if before == model.ShiftCategoryDay && category == model.ShiftCategoryNight ||
			before == model.ShiftCategoryNight && category == model.ShiftCategoryDay {
			return previous, true
		}
	}

	next := model.AddDays(candidate.Date, 1)
	for _, entry := range entriesOn(others, next) {
		after := categoryOf(categories, entry)
		if category == model.ShiftCategoryDay && after == model.ShiftCategoryNight ||
			category == model.ShiftCategoryNight && after == model.ShiftCategoryDay {
			return next, true
		}
	}

	return "", false
}

func weekEntries(entries []model.ScheduleEntry, date string) int {
	week := model.WeekStart(date)
	if week == "" {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if model.WeekStart(entry.Date) == week {
			count++
		}
	}
	return count
}

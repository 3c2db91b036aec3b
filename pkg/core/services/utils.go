package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/core/model"
	"github.com/mfranco1/scrub-in/pkg/db"
)

// parseDateRange parses an inclusive civil date range and checks its order
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := model.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}

	end, err := model.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endStr, err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", endStr, startStr)
	}

	return start, end, nil
}

func convertStaff(rows []db.Staff) []model.StaffMember {
	staff := make([]model.StaffMember, len(rows))
	for i, row := range rows {
		staff[i] = row.ToModel()
	}
	return staff
}

// filterActiveStaff returns only the staff marked active
func filterActiveStaff(staff []model.StaffMember) []model.StaffMember {
	active := make([]model.StaffMember, 0, len(staff))
	for _, member := range staff {
		if member.Active {
			active = append(active, member)
		}
	}
	return active
}

// getStaffIDs extracts staff IDs (useful for logging)
func getStaffIDs(staff []model.StaffMember) []int64 {
	ids := make([]int64, len(staff))
	for i, member := range staff {
		ids[i] = member.ID
	}
	return ids
}

// convertShiftTypes converts catalog rows, tagging them with categories configured by name.
// A category stored on the row wins over the configuration.
func convertShiftTypes(rows []db.ShiftType, categories map[string]string) []model.ShiftType {
	shiftTypes := make([]model.ShiftType, len(rows))
	for i, row := range rows {
		shiftType := row.ToModel()
		if !shiftType.Category.IsValid() {
			shiftType.Category = model.ShiftCategory(categories[shiftType.Name])
		}
		shiftTypes[i] = shiftType
	}
	return shiftTypes
}

// convertDutyTypes converts catalog rows, tagging them with categories configured by name
func convertDutyTypes(rows []db.DutyType, categories map[string]string) []model.DutyType {
	dutyTypes := make([]model.DutyType, len(rows))
	for i, row := range rows {
		dutyType := row.ToModel()
		if !dutyType.Category.IsValid() {
			dutyType.Category = model.DutyCategory(categories[dutyType.Name])
		}
		dutyTypes[i] = dutyType
	}
	return dutyTypes
}

func convertAvailability(rows []db.Availability) []model.AvailabilityRecord {
	records := make([]model.AvailabilityRecord, len(rows))
	for i, row := range rows {
		records[i] = row.ToModel()
	}
	return records
}

func convertSchedules(rows []db.Schedule) []model.ScheduleEntry {
	entries := make([]model.ScheduleEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.ToModel()
	}
	return entries
}

// expandRecurringUnavailability turns configured rrules into unavailability records
// for every matching date between start and end (inclusive)
func expandRecurringUnavailability(entries []config.RecurringUnavailability, start, end time.Time) ([]model.AvailabilityRecord, error) {
	records := make([]model.AvailabilityRecord, 0)
	if len(entries) == 0 {
		return records, nil
	}

	searchStart := model.Day(start)
	searchEnd := model.Day(end).Add(24*time.Hour - time.Second)

	for i, entry := range entries {
		rule, err := rrule.StrToRRule(entry.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for recurringUnavailability[%d]: %w", i, err)
		}

		rule.DTStart(searchStart)

		reason := entry.Reason
		if reason == "" {
			reason = "recurring unavailability"
		}

		seen := make(map[string]bool)
		for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
			date := model.FormatDate(occurrence)
			if seen[date] {
				continue
			}
			seen[date] = true
			records = append(records, model.AvailabilityRecord{
				StaffID:     entry.StaffID,
				Date:        date,
				IsAvailable: false,
				Reason:      reason,
			})
		}
	}

	return records, nil
}

// entryLabel describes an entry for people, e.g. "Day Shift (Pre-Duty)".
// Plain duty entries show only the shift; rest entries show only the duty.
func entryLabel(entry model.ScheduleEntry, shiftTypes map[int64]model.ShiftType, dutyTypes map[int64]model.DutyType) string {
	duty, hasDuty := dutyTypes[entry.DutyTypeID]

	if !entry.HasShift() {
		if hasDuty {
			return duty.Name
		}
		return "Rest"
	}

	shiftName := fmt.Sprintf("Shift %d", *entry.ShiftTypeID)
	if shiftType, ok := shiftTypes[*entry.ShiftTypeID]; ok {
		shiftName = shiftType.Name
	}

	if hasDuty && duty.ResolvedCategory() != model.DutyCategoryDuty {
		return fmt.Sprintf("%s (%s)", shiftName, duty.Name)
	}
	return shiftName
}

func shiftTypesByID(shiftTypes []model.ShiftType) map[int64]model.ShiftType {
	byID := make(map[int64]model.ShiftType, len(shiftTypes))
	for _, shiftType := range shiftTypes {
		byID[shiftType.ID] = shiftType
	}
	return byID
}

func dutyTypesByID(dutyTypes []model.DutyType) map[int64]model.DutyType {
	byID := make(map[int64]model.DutyType, len(dutyTypes))
	for _, dutyType := range dutyTypes {
		byID[dutyType.ID] = dutyType
	}
	return byID
}

// groupEntriesByStaff groups entries per staff member, each group sorted by date
func groupEntriesByStaff(entries []model.ScheduleEntry) map[int64][]model.ScheduleEntry {
	grouped := make(map[int64][]model.ScheduleEntry)
	for _, entry := range entries {
		grouped[entry.StaffID] = append(grouped[entry.StaffID], entry)
	}
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date < group[j].Date
		})
	}
	return grouped
}

// datesBetween lists every civil date from start to end inclusive
func datesBetween(start, end time.Time) []string {
	var dates []string
	for day := model.Day(start); !day.After(model.Day(end)); day = day.AddDate(0, 0, 1) {
		dates = append(dates, model.FormatDate(day))
	}
	return dates
}

// joinLabels joins labels for a cell holding more than one entry
func joinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}

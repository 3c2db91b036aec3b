package conflicts

import (
	"fmt"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

func findStaff(staff []model.StaffMember, staffID int64) model.StaffMember {
	for _, member := range staff {
		if member.ID == staffID {
			return member
		}
	}
	return model.StaffMember{ID: staffID}
}

func displayName(member model.StaffMember) string {
	if member.Name != "" {
		return member.Name
	}
	return fmt.Sprintf("staff member %d", member.ID)
}

func shiftCategories(shiftTypes []model.ShiftType) map[int64]model.ShiftCategory {
	result := make(map[int64]model.ShiftCategory, len(shiftTypes))
	for _, shiftType := range shiftTypes {
		if _, exists := result[shiftType.ID]; exists {
			continue
		}
		result[shiftType.ID] = shiftType.ResolvedCategory()
	}
	return result
}

// categoryOf returns the shift category of an entry, "" for rest entries and unknown types
func categoryOf(categories map[int64]model.ShiftCategory, entry model.ScheduleEntry) model.ShiftCategory {
	if !entry.HasShift() {
		return ""
	}
	return categories[*entry.ShiftTypeID]
}

func isUnavailable(availability []model.AvailabilityRecord, staffID int64, date string) bool {
	for _, record := range availability {
		if record.StaffID == staffID && record.Date == date && !record.IsAvailable {
			return true
		}
	}
	return false
}

func entriesOn(entries []model.ScheduleEntry, date string) []model.ScheduleEntry {
	result := make([]model.ScheduleEntry, 0)
	if date == "" {
		return result
	}
	for _, entry := range entries {
		if entry.Date == date {
			result = append(result, entry)
		}
	}
	return result
}

// workingDates returns the set of dates on which the entries carry a working shift
func workingDates(entries []model.ScheduleEntry) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range entries {
		if entry.HasShift() {
			result[entry.Date] = true
		}
	}
	return result
}

// contiguousRun returns the length of the run of working days through date,
// counting date itself as worked
func contiguousRun(worked map[string]bool, date string) int {
	if _, err := model.ParseDate(date); err != nil {
		return 0
	}

	run := 1
	for day := model.AddDays(date, -1); worked[day]; day = model.AddDays(day, -1) {
		run++
	}
	for day := model.AddDays(date, 1); worked[day]; day = model.AddDays(day, 1) {
		run++
	}
	return run
}

package conflicts

import (
	"cmp"
	"slices"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

// SuggestInput describes the slot that needs a replacement
type SuggestInput struct {
	// StaffID is the staff member being replaced
	StaffID int64
	Date    string

	// ShiftTypeID is the slot's shift, nil for a rest entry. When it resolves against
	// ShiftTypes, candidates that would break the rest period are excluded.
	ShiftTypeID *int64

	Staff        []model.StaffMember
	Schedules    []model.ScheduleEntry
	Availability []model.AvailabilityRecord
	Unit         string
	ShiftTypes   []model.ShiftType
}

// Suggest returns the staff who could take the slot instead, best match first.
// Candidates matching the unit come first, then those with the fewest assigned
// shifts (rest entries are not counted), then lower IDs.
//
// Besides the replaced staff member and anyone already scheduled that day, the
// list leaves out inactive staff, staff marked unavailable on the date, and
// staff whose working streak through the date would exceed MaxConsecutiveShifts.
// The streak counts every adjacent working day, not only the neighbouring ones.
// When ShiftTypeID resolves against ShiftTypes, staff who would break the rest
// period are left out too.
func Suggest(input SuggestInput) []model.StaffMember {
	categories := shiftCategories(input.ShiftTypes)

	byStaff := make(map[int64][]model.ScheduleEntry)
	for _, entry := range input.Schedules {
		byStaff[entry.StaffID] = append(byStaff[entry.StaffID], entry)
	}

	type candidate struct {
		member    model.StaffMember
		unitMatch bool
		shifts    int
	}

	candidates := make([]candidate, 0)
	seen := make(map[int64]bool)
	for _, member := range input.Staff {
		if member.ID == input.StaffID || !member.Active || seen[member.ID] {
			continue
		}
		seen[member.ID] = true

		entries := byStaff[member.ID]
		if len(entriesOn(entries, input.Date)) > 0 {
			continue
		}
		if isUnavailable(input.Availability, member.ID, input.Date) {
			continue
		}
		if contiguousRun(workingDates(entries), input.Date) > MaxConsecutiveShifts {
			continue
		}

		slot := model.ScheduleEntry{StaffID: member.ID, Date: input.Date, ShiftTypeID: input.ShiftTypeID}
		if _, violates := restViolation(entries, categories, slot); violates {
			continue
		}

		shifts := 0
		for _, e := range entries {
			if e.HasShift() {
				shifts++
			}
		}

		candidates = append(candidates, candidate{
			member:    member,
			unitMatch: input.Unit != "" && member.Specialization == input.Unit,
			shifts:    shifts,
		})
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if a.unitMatch != b.unitMatch {
			if a.unitMatch {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(a.shifts, b.shifts),
			cmp.Compare(a.member.ID, b.member.ID),
		)
	})

	result := make([]model.StaffMember, len(candidates))
	for i, c := range candidates {
		result[i] = c.member
	}
	return result
}

package scheduler

import (
	"fmt"
	"sort"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

// Generate assigns staff to shifts for every date in the input range.
//
// Dates are processed in order. For each date, unavailable staff are excluded,
// the remaining pool is ranked for fairness and staff are handed out to the day,
// evening and night shifts, followed by one pre-duty and one post-duty slot where
// the neighbouring date is inside the range. Anyone left over rests.
//
// Generate never fails. Anomalies are reported as conflicts and the complete
// schedule is always returned; deciding whether error conflicts block a save is
// up to the caller.
func Generate(input GenerateInput) GenerateResult {
	rs := newRunState(input)

	start := model.Day(input.StartDate)
	end := model.Day(input.EndDate)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rs.scheduleDate(model.FormatDate(day))
	}

	return GenerateResult{
		Schedules: rs.schedules,
		Conflicts: rs.conflicts,
	}
}

// newRunState builds the accumulator for one run and seeds it from history
func newRunState(input GenerateInput) *runState {
	rs := &runState{
		catalog:     resolveCatalog(input.ShiftTypes, input.DutyTypes),
		staffByID:   make(map[int64]model.StaffMember),
		loads:       make(map[int64]*StaffLoad),
		patterns:    make(map[int64]*DutyPattern),
		weekCounts:  make(map[int64]map[string]int),
		unavailable: make(map[string]map[int64]bool),
		baseline:    make(map[string]map[int64][]model.ScheduleEntry),
		unit:        input.Unit,
		startDate:   model.FormatDate(model.Day(input.StartDate)),
		endDate:     model.FormatDate(model.Day(input.EndDate)),
		schedules:   []model.ScheduleEntry{},
		conflicts:   []model.Conflict{},
	}

	for _, member := range input.Staff {
		if !member.Active {
			continue
		}
		if _, seen := rs.staffByID[member.ID]; seen {
			continue
		}
		rs.staff = append(rs.staff, member)
		rs.staffByID[member.ID] = member
		rs.loads[member.ID] = &StaffLoad{
			StaffID:        member.ID,
			Specialization: member.Specialization,
		}
		rs.patterns[member.ID] = &DutyPattern{}
		rs.weekCounts[member.ID] = make(map[string]int)
	}

	for _, record := range input.Availability {
		if record.IsAvailable {
			continue
		}
		if rs.unavailable[record.Date] == nil {
			rs.unavailable[record.Date] = make(map[int64]bool)
		}
		rs.unavailable[record.Date][record.StaffID] = true
	}

	rs.seed(input.ExistingSchedules)

	return rs
}

// seed folds history into the counters. Entries before the window update the
// counters immediately; entries inside the window are held back and folded in
// on their own date so the streak tracking stays in date order.
func (rs *runState) seed(existing []model.ScheduleEntry) {
	history := make([]model.ScheduleEntry, 0, len(existing))
	for _, entry := range existing {
		if _, ok := rs.staffByID[entry.StaffID]; !ok {
			continue
		}
		if _, err := model.ParseDate(entry.Date); err != nil {
			continue
		}
		if rs.inRange(entry.Date) {
			if rs.baseline[entry.Date] == nil {
				rs.baseline[entry.Date] = make(map[int64][]model.ScheduleEntry)
			}
			rs.baseline[entry.Date][entry.StaffID] = append(rs.baseline[entry.Date][entry.StaffID], entry)
			continue
		}
		if entry.Date < rs.startDate {
			history = append(history, entry)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})

	for _, entry := range history {
		rs.recordEntry(entry)
	}
}

// scheduleDate runs the per-date assignment steps
func (rs *runState) scheduleDate(date string) {
	consumed := make(map[int64]bool)

	pool := make([]model.StaffMember, 0, len(rs.staff))
	for _, member := range rs.staff {
		if rs.isUnavailable(member.ID, date) {
			continue
		}
		pool = append(pool, member)
	}

	if len(pool) > 0 {
		ranked := rs.rankByFairness(pool, date)
		rs.assignDayShifts(ranked, date, consumed)

		// Later steps re-rank the leftovers; ties keep the fairness order
		if remaining := unconsumed(ranked, consumed); len(remaining) > 0 {
			rs.assignEveningShifts(rs.rankByCount(remaining, eveningCount), date, consumed)
		}

		if remaining := unconsumed(ranked, consumed); len(remaining) > 0 {
			rs.assignNightShifts(rs.rankByCount(remaining, nightCount), date, consumed)
		}

		if rs.inRange(model.AddDays(date, 1)) {
			rs.assignBoundaryDuty(ranked, date, consumed, model.DutyCategoryPre)
		}

		if rs.inRange(model.AddDays(date, -1)) {
			rs.assignBoundaryDuty(ranked, date, consumed, model.DutyCategoryPost)
		}
	}

	// Everyone still unconsumed, including the excluded staff, rests today
	for _, member := range rs.staff {
		if consumed[member.ID] {
			continue
		}
		load := rs.loads[member.ID]
		load.ConsecutiveShifts = 0
		load.RestDays++
	}
}

// assignDayShifts walks the full ranking. Staff who already hold an entry on the
// date are flagged and withdrawn for the day; the rest fill the day target.
func (rs *runState) assignDayShifts(ranked []model.StaffMember, date string, consumed map[int64]bool) {
	target := shiftTarget(len(ranked), 3)
	shiftID := rs.catalog.dayShiftID

	assigned := 0
	for _, member := range ranked {
		if rs.hasBaselineEntry(member.ID, date) {
			rs.addConflict(model.Conflict{
				Type:     model.ConflictExistingAssignment,
				StaffID:  member.ID,
				Date:     date,
				Message:  fmt.Sprintf("%s already has an assignment on %s", rs.staffName(member.ID), date),
				Severity: model.SeverityError,
			})
			for _, entry := range rs.baseline[date][member.ID] {
				rs.recordEntry(entry)
			}
			consumed[member.ID] = true
			continue
		}

		if shiftID == nil || assigned >= target {
			continue
		}

		rs.checkWorkload(member, date)
		rs.assign(member, date, shiftID, model.ShiftCategoryDay, model.DutyCategoryDuty)
		consumed[member.ID] = true
		assigned++
	}
}

func (rs *runState) assignEveningShifts(ranked []model.StaffMember, date string, consumed map[int64]bool) {
	shiftID := rs.catalog.eveningShiftID
	if shiftID == nil {
		return
	}

	target := shiftTarget(len(ranked), 2)
	assigned := 0
	for _, member := range ranked {
		if assigned >= target {
			break
		}
		rs.checkWorkload(member, date)
		rs.assign(member, date, shiftID, model.ShiftCategoryEvening, model.DutyCategoryDuty)
		consumed[member.ID] = true
		assigned++
	}
}

func (rs *runState) assignNightShifts(ranked []model.StaffMember, date string, consumed map[int64]bool) {
	shiftID := rs.catalog.nightShiftID
	if shiftID == nil {
		return
	}

	previous := model.AddDays(date, -1)
	target := shiftTarget(len(ranked), 3)
	assigned := 0
	for _, member := range ranked {
		if assigned >= target {
			break
		}

		// A day shift yesterday rules out a night shift today
		load := rs.loads[member.ID]
		if load.LastShiftDate == previous && load.LastShiftCategory == model.ShiftCategoryDay {
			continue
		}

		rs.checkWorkload(member, date)
		rs.assign(member, date, shiftID, model.ShiftCategoryNight, model.DutyCategoryDuty)
		consumed[member.ID] = true
		assigned++
	}
}

// assignBoundaryDuty assigns exactly one remaining member below the weekly cap to a
// day-shift-tagged pre-duty or post-duty entry
func (rs *runState) assignBoundaryDuty(ranked []model.StaffMember, date string, consumed map[int64]bool, duty model.DutyCategory) {
	candidates := make([]model.StaffMember, 0)
	for _, member := range unconsumed(ranked, consumed) {
		if rs.weekCount(member.ID, date) < MaxWeeklyShifts {
			candidates = append(candidates, member)
		}
	}
	if len(candidates) == 0 {
		return
	}

	count := preDutyCount
	if duty == model.DutyCategoryPost {
		count = postDutyCount
	}
	member := rs.rankByCount(candidates, count)[0]

	rs.checkWorkload(member, date)
	rs.assign(member, date, rs.catalog.dayShiftID, model.ShiftCategoryDay, duty)
	consumed[member.ID] = true
}

// checkWorkload records advisory warnings for a member about to be assigned
func (rs *runState) checkWorkload(member model.StaffMember, date string) {
	load := rs.loads[member.ID]

	if load.ConsecutiveShifts >= MaxConsecutiveShifts {
		rs.addConflict(model.Conflict{
			Type:     model.ConflictConsecutiveShifts,
			StaffID:  member.ID,
			Date:     date,
			Message:  fmt.Sprintf("%s has worked %d consecutive shifts", member.Name, load.ConsecutiveShifts),
			Severity: model.SeverityWarning,
		})
	}

	if weekCount := rs.weekCount(member.ID, date); weekCount >= MaxWeeklyShifts {
		rs.addConflict(model.Conflict{
			Type:     model.ConflictWeeklyLimit,
			StaffID:  member.ID,
			Date:     date,
			Message:  fmt.Sprintf("%s already has %d shifts in the week of %s", member.Name, weekCount, model.WeekStart(date)),
			Severity: model.SeverityWarning,
		})
	}
}

// assign emits a new entry and folds it into the counters
func (rs *runState) assign(member model.StaffMember, date string, shiftID *int64, category model.ShiftCategory, duty model.DutyCategory) {
	entry := model.ScheduleEntry{
		StaffID:    member.ID,
		Date:       date,
		DutyTypeID: rs.dutyTypeID(duty),
		Unit:       rs.unit,
	}
	if shiftID != nil {
		id := *shiftID
		entry.ShiftTypeID = &id
	}

	rs.schedules = append(rs.schedules, entry)
	rs.record(member.ID, date, entry.ShiftTypeID != nil, category, duty)
}

// recordEntry folds an existing entry into the counters
func (rs *runState) recordEntry(entry model.ScheduleEntry) {
	rs.record(
		entry.StaffID,
		entry.Date,
		entry.HasShift(),
		rs.catalog.categoryOf(entry),
		rs.catalog.dutyCategoryOf(entry.DutyTypeID),
	)
}

// record updates load, pattern and weekly counters for one assignment
func (rs *runState) record(staffID int64, date string, working bool, category model.ShiftCategory, duty model.DutyCategory) {
	load, ok := rs.loads[staffID]
	if !ok {
		return
	}
	pattern := rs.patterns[staffID]

	switch duty {
	case model.DutyCategoryPre:
		pattern.PreDuty++
	case model.DutyCategoryDuty:
		pattern.Duty++
	case model.DutyCategoryPost:
		pattern.PostDuty++
	}

	if !working {
		load.ConsecutiveShifts = 0
		load.RestDays++
		return
	}

	switch load.LastShiftDate {
	case date:
		// Second entry on the same date does not extend the streak
	case model.AddDays(date, -1):
		load.ConsecutiveShifts++
	default:
		load.ConsecutiveShifts = 1
	}

	load.TotalShifts++
	load.LastShiftDate = date
	load.LastShiftCategory = category

	switch category {
	case model.ShiftCategoryDay:
		pattern.DayShifts++
	case model.ShiftCategoryEvening:
		pattern.EveningShifts++
	case model.ShiftCategoryNight:
		pattern.NightShifts++
		load.NightShifts++
	}

	rs.weekCounts[staffID][model.WeekStart(date)]++
}

func (rs *runState) dutyTypeID(duty model.DutyCategory) int64 {
	switch duty {
	case model.DutyCategoryPre:
		return rs.catalog.preDutyID
	case model.DutyCategoryPost:
		return rs.catalog.postDutyID
	default:
		return rs.catalog.dutyID
	}
}

func (rs *runState) addConflict(conflict model.Conflict) {
	conflict.StaffName = rs.staffName(conflict.StaffID)
	rs.conflicts = append(rs.conflicts, conflict)
}

// shiftTarget returns ceil(poolSize / divisor), at least 1
func shiftTarget(poolSize, divisor int) int {
	return max((poolSize+divisor-1)/divisor, 1)
}

// unconsumed returns the members of pool not yet assigned today, preserving order
func unconsumed(pool []model.StaffMember, consumed map[int64]bool) []model.StaffMember {
	remaining := make([]model.StaffMember, 0, len(pool))
	for _, member := range pool {
		if !consumed[member.ID] {
			remaining = append(remaining, member)
		}
	}
	return remaining
}

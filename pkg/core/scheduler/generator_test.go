package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

const (
	dayShiftID     int64 = 1
	eveningShiftID int64 = 2
	nightShiftID   int64 = 3

	preDutyID  int64 = 10
	dutyID     int64 = 11
	postDutyID int64 = 12
)

func testShiftTypes() []model.ShiftType {
	return []model.ShiftType{
		{ID: dayShiftID, Name: "Day Shift", StartTime: "07:00", EndTime: "15:00", DurationHours: 8},
		{ID: eveningShiftID, Name: "Evening Shift", StartTime: "15:00", EndTime: "23:00", DurationHours: 8},
		{ID: nightShiftID, Name: "Night Shift", StartTime: "23:00", EndTime: "07:00", DurationHours: 8},
	}
}

func testDutyTypes() []model.DutyType {
	return []model.DutyType{
		{ID: preDutyID, Name: "Pre-Duty"},
		{ID: dutyID, Name: "Duty"},
		{ID: postDutyID, Name: "Post-Duty"},
	}
}

func testStaff(n int) []model.StaffMember {
	staff := make([]model.StaffMember, n)
	for i := range staff {
		staff[i] = model.StaffMember{
			ID:     int64(i + 1),
			Name:   "Nurse " + string(rune('A'+i)),
			Role:   "Nurse",
			Active: true,
		}
	}
	return staff
}

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func shiftPtr(id int64) *int64 {
	return &id
}

func entriesOn(entries []model.ScheduleEntry, day string) []model.ScheduleEntry {
	var result []model.ScheduleEntry
	for _, e := range entries {
		if e.Date == day {
			result = append(result, e)
		}
	}
	return result
}

func countDuty(entries []model.ScheduleEntry, dutyTypeID int64) int {
	count := 0
	for _, e := range entries {
		if e.DutyTypeID == dutyTypeID {
			count++
		}
	}
	return count
}

func TestGenerate_BasicWeekThreeStaff(t *testing.T) {
	result := Generate(GenerateInput{
		Staff:      testStaff(3),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-07"),
	})

	require.Len(t, result.Schedules, 21, "3 staff over 7 days should produce 21 assignments")

	for d := date("2024-01-01"); !d.After(date("2024-01-07")); d = d.AddDate(0, 0, 1) {
		day := model.FormatDate(d)
		entries := entriesOn(result.Schedules, day)
		require.Len(t, entries, 3, "every staff member should be assigned on %s", day)

		seen := make(map[int64]bool)
		for _, e := range entries {
			assert.False(t, seen[e.StaffID], "staff %d assigned twice on %s", e.StaffID, day)
			seen[e.StaffID] = true
			assert.NotNil(t, e.ShiftTypeID)
		}
	}

	// Day 1 follows the id tiebreak: day, evening, night
	first := entriesOn(result.Schedules, "2024-01-01")
	assert.Equal(t, int64(1), first[0].StaffID)
	assert.Equal(t, dayShiftID, *first[0].ShiftTypeID)
	assert.Equal(t, int64(2), first[1].StaffID)
	assert.Equal(t, eveningShiftID, *first[1].ShiftTypeID)
	assert.Equal(t, int64(3), first[2].StaffID)
	assert.Equal(t, nightShiftID, *first[2].ShiftTypeID)

	// Everyone works every day, so the streak warnings appear once the streak reaches 5
	for _, c := range result.Conflicts {
		assert.Equal(t, model.SeverityWarning, c.Severity)
		assert.NotEmpty(t, c.StaffName)
		if c.Type == model.ConflictConsecutiveShifts {
			assert.GreaterOrEqual(t, c.Date, "2024-01-06")
		}
	}
}

func TestGenerate_ExcludesUnavailableStaff(t *testing.T) {
	input := GenerateInput{
		Staff:      testStaff(3),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		Availability: []model.AvailabilityRecord{
			{StaffID: 2, Date: "2024-01-03", IsAvailable: false, Reason: "Annual leave"},
			{StaffID: 3, Date: "2024-01-03", IsAvailable: true},
		},
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-07"),
	}

	result := Generate(input)

	for _, e := range result.Schedules {
		if e.Date == "2024-01-03" {
			assert.NotEqual(t, int64(2), e.StaffID, "unavailable staff must not be scheduled")
		}
	}
	for _, c := range result.Conflicts {
		if c.Date == "2024-01-03" {
			assert.NotEqual(t, int64(2), c.StaffID)
		}
	}

	// Staff 3 has an available record, which must not exclude them
	assert.Len(t, entriesOn(result.Schedules, "2024-01-03"), 2)
}

func TestGenerate_UnavailableStaffRestDayIncrements(t *testing.T) {
	input := GenerateInput{
		Staff:      testStaff(3),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		Availability: []model.AvailabilityRecord{
			{StaffID: 2, Date: "2024-01-03", IsAvailable: false},
		},
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-07"),
	}

	rs := newRunState(input)
	rs.scheduleDate("2024-01-01")
	rs.scheduleDate("2024-01-02")

	before := rs.loads[2].RestDays
	rs.scheduleDate("2024-01-03")

	assert.Equal(t, before+1, rs.loads[2].RestDays)
	assert.Equal(t, 0, rs.loads[2].ConsecutiveShifts)
}

func TestGenerate_NeverAssignsNightAfterDay(t *testing.T) {
	for _, staffCount := range []int{2, 3, 4, 5, 7, 10} {
		result := Generate(GenerateInput{
			Staff:      testStaff(staffCount),
			ShiftTypes: testShiftTypes(),
			DutyTypes:  testDutyTypes(),
			StartDate:  date("2024-03-01"),
			EndDate:    date("2024-03-28"),
		})

		dayShifts := make(map[int64]map[string]bool)
		for _, e := range result.Schedules {
			if e.ShiftTypeID != nil && *e.ShiftTypeID == dayShiftID {
				if dayShifts[e.StaffID] == nil {
					dayShifts[e.StaffID] = make(map[string]bool)
				}
				dayShifts[e.StaffID][e.Date] = true
			}
		}

		for _, e := range result.Schedules {
			if e.ShiftTypeID == nil || *e.ShiftTypeID != nightShiftID {
				continue
			}
			previous := model.AddDays(e.Date, -1)
			assert.False(t, dayShifts[e.StaffID][previous],
				"staff %d has a day shift on %s then a night shift on %s (%d staff)", e.StaffID, previous, e.Date, staffCount)
		}
	}
}

func TestGenerate_AtMostOneEntryPerStaffPerDate(t *testing.T) {
	staff := testStaff(8)
	result := Generate(GenerateInput{
		Staff:      staff,
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		Availability: []model.AvailabilityRecord{
			{StaffID: 4, Date: "2024-02-02", IsAvailable: false},
			{StaffID: 5, Date: "2024-02-03", IsAvailable: false},
		},
		StartDate: date("2024-02-01"),
		EndDate:   date("2024-02-10"),
	})

	seen := make(map[string]map[int64]int)
	for _, e := range result.Schedules {
		if seen[e.Date] == nil {
			seen[e.Date] = make(map[int64]int)
		}
		seen[e.Date][e.StaffID]++
	}

	for day, counts := range seen {
		for staffID, count := range counts {
			assert.Equal(t, 1, count, "staff %d has %d entries on %s", staffID, count, day)
		}
	}
	assert.Zero(t, seen["2024-02-02"][4])
	assert.Zero(t, seen["2024-02-03"][5])
}

func TestGenerate_LowerIDWinsTies(t *testing.T) {
	staff := []model.StaffMember{
		{ID: 7, Name: "Seven", Active: true},
		{ID: 3, Name: "Three", Active: true},
	}

	result := Generate(GenerateInput{
		Staff:      staff,
		ShiftTypes: []model.ShiftType{{ID: dayShiftID, Name: "Day Shift"}},
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-10"),
		EndDate:    date("2024-01-10"),
	})

	require.Len(t, result.Schedules, 1)
	assert.Equal(t, int64(3), result.Schedules[0].StaffID)
	assert.Equal(t, dutyID, result.Schedules[0].DutyTypeID)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	input := GenerateInput{
		Staff:      testStaff(6),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-14"),
	}

	first := Generate(input)
	second := Generate(input)

	assert.Equal(t, first, second)
}

func TestGenerate_FlagsExistingAssignment(t *testing.T) {
	existing := []model.ScheduleEntry{
		{ID: 99, StaffID: 1, Date: "2024-01-02", ShiftTypeID: shiftPtr(eveningShiftID), DutyTypeID: dutyID},
	}

	result := Generate(GenerateInput{
		Staff:             testStaff(3),
		ShiftTypes:        testShiftTypes(),
		DutyTypes:         testDutyTypes(),
		StartDate:         date("2024-01-01"),
		EndDate:           date("2024-01-03"),
		ExistingSchedules: existing,
	})

	var found bool
	for _, c := range result.Conflicts {
		if c.Type == model.ConflictExistingAssignment {
			assert.Equal(t, int64(1), c.StaffID)
			assert.Equal(t, "2024-01-02", c.Date)
			assert.Equal(t, model.SeverityError, c.Severity)
			assert.Equal(t, "Nurse A", c.StaffName)
			found = true
		}
	}
	assert.True(t, found, "should flag the existing assignment")

	for _, e := range entriesOn(result.Schedules, "2024-01-02") {
		assert.NotEqual(t, int64(1), e.StaffID, "staff with an existing entry must not get a second one")
	}
}

func TestGenerate_SeedsFairnessFromHistory(t *testing.T) {
	history := []model.ScheduleEntry{
		{StaffID: 1, Date: "2024-01-01", ShiftTypeID: shiftPtr(dayShiftID), DutyTypeID: dutyID},
		{StaffID: 1, Date: "2024-01-02", ShiftTypeID: shiftPtr(dayShiftID), DutyTypeID: dutyID},
		{StaffID: 1, Date: "2024-01-03", ShiftTypeID: shiftPtr(dayShiftID), DutyTypeID: dutyID},
	}

	result := Generate(GenerateInput{
		Staff:             testStaff(2),
		ShiftTypes:        []model.ShiftType{{ID: dayShiftID, Name: "Day Shift"}},
		DutyTypes:         testDutyTypes(),
		StartDate:         date("2024-01-08"),
		EndDate:           date("2024-01-08"),
		ExistingSchedules: history,
	})

	require.Len(t, result.Schedules, 1)
	assert.Equal(t, int64(2), result.Schedules[0].StaffID, "staff with fewer prior shifts goes first")
}

func TestGenerate_HistoryBlocksNightAfterDay(t *testing.T) {
	history := []model.ScheduleEntry{
		{StaffID: 1, Date: "2024-01-07", ShiftTypeID: shiftPtr(dayShiftID), DutyTypeID: dutyID},
	}

	result := Generate(GenerateInput{
		Staff: testStaff(2),
		ShiftTypes: []model.ShiftType{
			{ID: dayShiftID, Name: "Day Shift"},
			{ID: nightShiftID, Name: "Night Shift"},
		},
		DutyTypes:         testDutyTypes(),
		StartDate:         date("2024-01-08"),
		EndDate:           date("2024-01-08"),
		ExistingSchedules: history,
	})

	// Staff 2 takes the day shift; staff 1 worked a day shift yesterday so the night stays empty
	require.Len(t, result.Schedules, 1)
	assert.Equal(t, int64(2), result.Schedules[0].StaffID)
	assert.Equal(t, dayShiftID, *result.Schedules[0].ShiftTypeID)
}

func TestGenerate_PrefersSpecializationForUnit(t *testing.T) {
	staff := []model.StaffMember{
		{ID: 1, Name: "General", Active: true},
		{ID: 2, Name: "ICU Nurse", Specialization: "ICU", Active: true},
	}

	result := Generate(GenerateInput{
		Staff:      staff,
		ShiftTypes: []model.ShiftType{{ID: dayShiftID, Name: "Day Shift"}},
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-10"),
		EndDate:    date("2024-01-10"),
		Unit:       "ICU",
	})

	require.Len(t, result.Schedules, 1)
	assert.Equal(t, int64(2), result.Schedules[0].StaffID)
	assert.Equal(t, "ICU", result.Schedules[0].Unit)
}

func TestGenerate_IgnoresInactiveStaff(t *testing.T) {
	staff := testStaff(2)
	staff[0].Active = false

	result := Generate(GenerateInput{
		Staff:      staff,
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-05"),
	})

	for _, e := range result.Schedules {
		assert.Equal(t, int64(2), e.StaffID)
	}
}

func TestGenerate_ConsecutiveAndWeeklyWarnings(t *testing.T) {
	// 2024-01-01 is a Monday, so Dec 31 - Jan 6 is one week and Jan 7 starts the next
	result := Generate(GenerateInput{
		Staff:      testStaff(1),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-07"),
	})

	require.Len(t, result.Schedules, 7)

	var consecutive, weekly []string
	for _, c := range result.Conflicts {
		switch c.Type {
		case model.ConflictConsecutiveShifts:
			consecutive = append(consecutive, c.Date)
		case model.ConflictWeeklyLimit:
			weekly = append(weekly, c.Date)
		}
		assert.Equal(t, model.SeverityWarning, c.Severity)
	}

	assert.Equal(t, []string{"2024-01-06", "2024-01-07"}, consecutive)
	assert.Equal(t, []string{"2024-01-06"}, weekly)
}

func TestGenerate_PreAndPostDutyFollowRange(t *testing.T) {
	result := Generate(GenerateInput{
		Staff:      testStaff(16),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-03"),
	})

	first := entriesOn(result.Schedules, "2024-01-01")
	assert.Equal(t, 1, countDuty(first, preDutyID))
	assert.Equal(t, 0, countDuty(first, postDutyID))

	middle := entriesOn(result.Schedules, "2024-01-02")
	assert.Equal(t, 1, countDuty(middle, preDutyID))
	assert.Equal(t, 1, countDuty(middle, postDutyID))

	last := entriesOn(result.Schedules, "2024-01-03")
	assert.Equal(t, 0, countDuty(last, preDutyID))
	assert.Equal(t, 1, countDuty(last, postDutyID))

	for _, e := range result.Schedules {
		if e.DutyTypeID == preDutyID || e.DutyTypeID == postDutyID {
			require.NotNil(t, e.ShiftTypeID)
			assert.Equal(t, dayShiftID, *e.ShiftTypeID, "pre/post-duty entries are day-shift tagged")
		}
	}
}

func TestGenerate_BoundaryDutySkipsWeeklyCap(t *testing.T) {
	// Staff 7 worked Sunday to Thursday of the week of 2023-12-31
	var history []model.ScheduleEntry
	for _, day := range []string{"2023-12-31", "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"} {
		history = append(history, model.ScheduleEntry{StaffID: 7, Date: day, ShiftTypeID: shiftPtr(dayShiftID), DutyTypeID: dutyID})
	}

	result := Generate(GenerateInput{
		Staff:             testStaff(7),
		ShiftTypes:        testShiftTypes(),
		DutyTypes:         testDutyTypes(),
		StartDate:         date("2024-01-05"),
		EndDate:           date("2024-01-06"),
		ExistingSchedules: history,
	})

	// Staff 7 is the only one left after the shifts on 2024-01-05, and is at the cap
	friday := entriesOn(result.Schedules, "2024-01-05")
	assert.Len(t, friday, 6)
	assert.Equal(t, 0, countDuty(friday, preDutyID))

	for _, e := range result.Schedules {
		if e.StaffID != 7 {
			continue
		}
		assert.NotEqual(t, preDutyID, e.DutyTypeID, "no pre-duty at the weekly cap")
		assert.NotEqual(t, postDutyID, e.DutyTypeID, "no post-duty at the weekly cap")
	}
}

func TestGenerate_DegradesWithIncompleteCatalog(t *testing.T) {
	result := Generate(GenerateInput{
		Staff: testStaff(4),
		ShiftTypes: []model.ShiftType{
			{ID: dayShiftID, Name: "Day Shift"},
			{ID: eveningShiftID, Name: "Mid Shift"},
		},
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-02"),
	})

	require.NotEmpty(t, result.Schedules)
	for _, e := range result.Schedules {
		require.NotNil(t, e.ShiftTypeID)
		assert.NotEqual(t, nightShiftID, *e.ShiftTypeID)
		assert.Equal(t, int64(0), e.DutyTypeID, "missing duty types fall back to the zero id")
	}

	// Mid Shift is recognised as the evening category
	var evenings int
	for _, e := range result.Schedules {
		if *e.ShiftTypeID == eveningShiftID {
			evenings++
		}
	}
	assert.Positive(t, evenings)
}

func TestGenerate_ExplicitCategoriesOverrideNames(t *testing.T) {
	result := Generate(GenerateInput{
		Staff: testStaff(1),
		ShiftTypes: []model.ShiftType{
			{ID: 40, Name: "Earlies", Category: model.ShiftCategoryDay},
		},
		DutyTypes: []model.DutyType{
			{ID: 50, Name: "On call", Category: model.DutyCategoryDuty},
		},
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-01"),
	})

	require.Len(t, result.Schedules, 1)
	assert.Equal(t, int64(40), *result.Schedules[0].ShiftTypeID)
	assert.Equal(t, int64(50), result.Schedules[0].DutyTypeID)
}

func TestGenerate_EmptyWhenStartAfterEnd(t *testing.T) {
	result := Generate(GenerateInput{
		Staff:      testStaff(3),
		ShiftTypes: testShiftTypes(),
		DutyTypes:  testDutyTypes(),
		StartDate:  date("2024-01-07"),
		EndDate:    date("2024-01-01"),
	})

	assert.Empty(t, result.Schedules)
	assert.Empty(t, result.Conflicts)
	assert.NotNil(t, result.Schedules)
}

func TestGenerate_DoesNotMutateInputs(t *testing.T) {
	staff := testStaff(4)
	existing := []model.ScheduleEntry{
		{ID: 2, StaffID: 2, Date: "2024-01-03", ShiftTypeID: shiftPtr(dayShiftID), DutyTypeID: dutyID},
		{ID: 1, StaffID: 1, Date: "2023-12-30", ShiftTypeID: shiftPtr(nightShiftID), DutyTypeID: dutyID},
	}
	availability := []model.AvailabilityRecord{{StaffID: 3, Date: "2024-01-02", IsAvailable: false}}

	staffCopy := append([]model.StaffMember(nil), staff...)
	existingCopy := append([]model.ScheduleEntry(nil), existing...)
	availabilityCopy := append([]model.AvailabilityRecord(nil), availability...)

	Generate(GenerateInput{
		Staff:             staff,
		ShiftTypes:        testShiftTypes(),
		DutyTypes:         testDutyTypes(),
		Availability:      availability,
		StartDate:         date("2024-01-01"),
		EndDate:           date("2024-01-05"),
		ExistingSchedules: existing,
	})

	assert.Equal(t, staffCopy, staff)
	assert.Equal(t, existingCopy, existing)
	assert.Equal(t, availabilityCopy, availability)
}

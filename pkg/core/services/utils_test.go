package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/core/model"
	"github.com/mfranco1/scrub-in/pkg/db"
)

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", model.FormatDate(start))
	assert.Equal(t, "2024-01-07", model.FormatDate(end))

	_, _, err = parseDateRange("2024-01-01", "2024-01-01")
	assert.NoError(t, err)

	_, _, err = parseDateRange("2024-01-07", "2024-01-01")
	assert.ErrorContains(t, err, "is before start date")

	_, _, err = parseDateRange("01/01/2024", "2024-01-07")
	assert.ErrorContains(t, err, "invalid start date")

	_, _, err = parseDateRange("2024-01-01", "tomorrow")
	assert.ErrorContains(t, err, "invalid end date")
}

func TestFilterActiveStaff(t *testing.T) {
	staff := []model.StaffMember{
		{ID: 1, Active: true},
		{ID: 2, Active: false},
		{ID: 3, Active: true},
	}

	active := filterActiveStaff(staff)

	require.Len(t, active, 2)
	assert.Equal(t, []int64{1, 3}, getStaffIDs(active))
}

func TestGetStaffIDs_Empty(t *testing.T) {
	ids := getStaffIDs([]model.StaffMember{})

	assert.NotNil(t, ids)
	assert.Len(t, ids, 0)
}

func TestConvertShiftTypes_ConfiguredCategories(t *testing.T) {
	night := "night"
	rows := []db.ShiftType{
		{ID: 1, Name: "Early", StartTime: "06:00", EndTime: "14:00", DurationHours: 8},
		{ID: 2, Name: "Graveyard", StartTime: "22:00", EndTime: "06:00", DurationHours: 8, Category: &night},
		{ID: 3, Name: "Late", StartTime: "14:00", EndTime: "22:00", DurationHours: 8},
	}
	categories := map[string]string{
		"Early":     "day",
		"Graveyard": "evening",
	}

	shiftTypes := convertShiftTypes(rows, categories)

	require.Len(t, shiftTypes, 3)
	assert.Equal(t, model.ShiftCategoryDay, shiftTypes[0].ResolvedCategory())
	assert.Equal(t, model.ShiftCategoryNight, shiftTypes[1].ResolvedCategory(), "stored category wins")
	assert.Equal(t, model.ShiftCategory(""), shiftTypes[2].ResolvedCategory())
}

func TestConvertDutyTypes_ConfiguredCategories(t *testing.T) {
	rows := []db.DutyType{
		{ID: 10, Name: "On Call Eve"},
		{ID: 11, Name: "Duty"},
	}

	dutyTypes := convertDutyTypes(rows, map[string]string{"On Call Eve": "pre"})

	require.Len(t, dutyTypes, 2)
	assert.Equal(t, model.DutyCategoryPre, dutyTypes[0].ResolvedCategory())
	assert.Equal(t, model.DutyCategoryDuty, dutyTypes[1].ResolvedCategory())
}

func TestExpandRecurringUnavailability(t *testing.T) {
	entries := []config.RecurringUnavailability{
		{StaffID: 1, RRule: "FREQ=WEEKLY;BYDAY=MO,WE"},
		{StaffID: 2, RRule: "FREQ=DAILY;INTERVAL=3", Reason: "Night classes"},
	}

	records, err := expandRecurringUnavailability(entries, date("2024-01-01"), date("2024-01-07"))
	require.NoError(t, err)

	var staff1, staff2 []string
	for _, record := range records {
		assert.False(t, record.IsAvailable)
		switch record.StaffID {
		case 1:
			staff1 = append(staff1, record.Date)
			assert.Equal(t, "recurring unavailability", record.Reason)
		case 2:
			staff2 = append(staff2, record.Date)
			assert.Equal(t, "Night classes", record.Reason)
		}
	}

	assert.Equal(t, []string{"2024-01-01", "2024-01-03"}, staff1)
	assert.Equal(t, []string{"2024-01-01", "2024-01-04", "2024-01-07"}, staff2)
}

func TestExpandRecurringUnavailability_Empty(t *testing.T) {
	records, err := expandRecurringUnavailability(nil, date("2024-01-01"), date("2024-01-07"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExpandRecurringUnavailability_InvalidRule(t *testing.T) {
	entries := []config.RecurringUnavailability{{StaffID: 1, RRule: "FREQ=SOMETIMES"}}

	_, err := expandRecurringUnavailability(entries, date("2024-01-01"), date("2024-01-07"))
	assert.ErrorContains(t, err, "recurringUnavailability[0]")
}

func TestEntryLabel(t *testing.T) {
	shiftTypes := shiftTypesByID(testShiftTypes())
	dutyTypes := dutyTypesByID(testDutyTypes())

	assert.Equal(t, "Day Shift", entryLabel(model.ScheduleEntry{ShiftTypeID: ptr(dayShiftID), DutyTypeID: dutyID}, shiftTypes, dutyTypes))
	assert.Equal(t, "Night Shift (Pre-Duty)", entryLabel(model.ScheduleEntry{ShiftTypeID: ptr(nightShiftID), DutyTypeID: preDutyID}, shiftTypes, dutyTypes))
	assert.Equal(t, "Post-Duty", entryLabel(model.ScheduleEntry{DutyTypeID: postDutyID}, shiftTypes, dutyTypes))
	assert.Equal(t, "Rest", entryLabel(model.ScheduleEntry{}, shiftTypes, dutyTypes))
	assert.Equal(t, "Shift 99", entryLabel(model.ScheduleEntry{ShiftTypeID: ptr(int64(99))}, shiftTypes, dutyTypes))
}

func TestGroupEntriesByStaff(t *testing.T) {
	entries := []model.ScheduleEntry{
		{StaffID: 2, Date: "2024-01-03"},
		{StaffID: 1, Date: "2024-01-02"},
		{StaffID: 2, Date: "2024-01-01"},
	}

	grouped := groupEntriesByStaff(entries)

	require.Len(t, grouped, 2)
	require.Len(t, grouped[2], 2)
	assert.Equal(t, "2024-01-01", grouped[2][0].Date)
	assert.Equal(t, "2024-01-03", grouped[2][1].Date)
	assert.Len(t, grouped[1], 1)
}

func TestDatesBetween(t *testing.T) {
	assert.Equal(t,
		[]string{"2024-02-28", "2024-02-29", "2024-03-01"},
		datesBetween(date("2024-02-28"), date("2024-03-01")))
	assert.Equal(t, []string{"2024-01-01"}, datesBetween(date("2024-01-01"), date("2024-01-01")))
}

// Shared fixtures

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

func testShiftTypeRows() []db.ShiftType {
	rows := make([]db.ShiftType, 0, 3)
	for _, shiftType := range testShiftTypes() {
		rows = append(rows, db.ShiftType{
			ID:            shiftType.ID,
			Name:          shiftType.Name,
			StartTime:     shiftType.StartTime,
			EndTime:       shiftType.EndTime,
			DurationHours: shiftType.DurationHours,
		})
	}
	return rows
}

func testDutyTypeRows() []db.DutyType {
	rows := make([]db.DutyType, 0, 3)
	for _, dutyType := range testDutyTypes() {
		rows = append(rows, db.DutyType{ID: dutyType.ID, Name: dutyType.Name})
	}
	return rows
}

func date(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}

package scheduler

import (
	"time"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

const (
	// MaxConsecutiveShifts is the streak length at which further shifts raise a warning
	MaxConsecutiveShifts = 5

	// MaxWeeklyShifts is the number of shifts per Sunday-start week at which further
	// shifts raise a warning, and above which pre/post-duty is not assigned
	MaxWeeklyShifts = 5
)

// GenerateInput contains everything a generation run reads.
// None of the slices are modified.
type GenerateInput struct {
	// Staff is the roster. Inactive members are ignored.
	Staff []model.StaffMember

	ShiftTypes []model.ShiftType
	DutyTypes  []model.DutyType

	// Availability records for the generation window
	Availability []model.AvailabilityRecord

	// StartDate and EndDate bound the run (inclusive, calendar dates)
	StartDate time.Time
	EndDate   time.Time

	// Unit is the optional department used to prefer specialization-matched staff
	Unit string

	// ExistingSchedules seed the fairness counters and the duplicate-assignment check
	ExistingSchedules []model.ScheduleEntry
}

// GenerateResult is the output of a generation run
type GenerateResult struct {
	Schedules []model.ScheduleEntry
	Conflicts []model.Conflict
}

// StaffLoad tracks a staff member's running workload during one run
type StaffLoad struct {
	StaffID int64

	// ConsecutiveShifts is the current streak of contiguous days with a working shift
	ConsecutiveShifts int

	TotalShifts int
	NightShifts int

	// LastShiftDate and LastShiftCategory describe the most recent working shift
	LastShiftDate     string
	LastShiftCategory model.ShiftCategory

	// RestDays counts days the member was left unassigned
	RestDays int

	Specialization string
}

// DutyPattern counts how often a staff member received each duty and shift category
type DutyPattern struct {
	PreDuty  int
	Duty     int
	PostDuty int

	DayShifts     int
	EveningShifts int
	NightShifts   int
}

// DutyTotal returns the number of duty-tagged assignments
func (p *DutyPattern) DutyTotal() int {
	return p.PreDuty + p.Duty + p.PostDuty
}

// ShiftTotal returns the number of day, evening and night assignments
func (p *DutyPattern) ShiftTotal() int {
	return p.DayShifts + p.EveningShifts + p.NightShifts
}

// runState is the mutable accumulator owned by a single Generate call
type runState struct {
	catalog *catalog

	staff     []model.StaffMember
	staffByID map[int64]model.StaffMember

	loads    map[int64]*StaffLoad
	patterns map[int64]*DutyPattern

	// weekCounts maps staff ID -> week start (Sunday) -> shifts that week
	weekCounts map[int64]map[string]int

	// unavailable maps date -> staff IDs marked unavailable
	unavailable map[string]map[int64]bool

	// baseline maps date -> staff ID -> existing entries inside the window
	baseline map[string]map[int64][]model.ScheduleEntry

	unit string

	startDate string
	endDate   string

	schedules []model.ScheduleEntry
	conflicts []model.Conflict
}

func (rs *runState) weekCount(staffID int64, date string) int {
	return rs.weekCounts[staffID][model.WeekStart(date)]
}

func (rs *runState) isUnavailable(staffID int64, date string) bool {
	return rs.unavailable[date][staffID]
}

func (rs *runState) hasBaselineEntry(staffID int64, date string) bool {
	return len(rs.baseline[date][staffID]) > 0
}

func (rs *runState) staffName(staffID int64) string {
	return rs.staffByID[staffID].Name
}

// inRange reports whether date falls inside the generation window
func (rs *runState) inRange(date string) bool {
	return date != "" && date >= rs.startDate && date <= rs.endDate
}

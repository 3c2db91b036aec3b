package model

import (
	"strings"
	"time"
)

// DateLayout is the civil date format used for every schedule and availability date
const DateLayout = "2006-01-02"

// ShiftCategory tags a shift type as a day, evening or night working period
type ShiftCategory string

const (
	ShiftCategoryDay     ShiftCategory = "day"
	ShiftCategoryEvening ShiftCategory = "evening"
	ShiftCategoryNight   ShiftCategory = "night"
)

func (c ShiftCategory) IsValid() bool {
	return c == ShiftCategoryDay || c == ShiftCategoryEvening || c == ShiftCategoryNight
}

// DutyCategory tags a duty type as pre-duty, duty or post-duty
type DutyCategory string

const (
	DutyCategoryPre  DutyCategory = "pre"
	DutyCategoryDuty DutyCategory = "duty"
	DutyCategoryPost DutyCategory = "post"
)

func (c DutyCategory) IsValid() bool {
	return c == DutyCategoryPre || c == DutyCategoryDuty || c == DutyCategoryPost
}

// Canonical catalog names, used when a catalog entry carries no explicit category
const (
	ShiftNameDay     = "Day Shift"
	ShiftNameEvening = "Evening Shift"
	ShiftNameMid     = "Mid Shift"
	ShiftNameNight   = "Night Shift"

	DutyNamePre  = "Pre-Duty"
	DutyNameDuty = "Duty"
	DutyNamePost = "Post-Duty"
)

// StaffMember represents a member of hospital staff on the roster
type StaffMember struct {
	ID             int64
	Name           string
	Role           string
	Specialization string // Empty string if none
	Email          string
	Active         bool
}

// ShiftType represents a concrete working period
type ShiftType struct {
	ID            int64
	Name          string
	StartTime     string // "HH:MM", may wrap past midnight
	EndTime       string
	DurationHours float64
	Category      ShiftCategory // Empty means resolve by name
}

// ResolvedCategory returns the explicit category, falling back to the canonical name
func (s ShiftType) ResolvedCategory() ShiftCategory {
	if s.Category.IsValid() {
		return s.Category
	}
	switch strings.TrimSpace(s.Name) {
	case ShiftNameDay:
		return ShiftCategoryDay
	case ShiftNameEvening, ShiftNameMid:
		return ShiftCategoryEvening
	case ShiftNameNight:
		return ShiftCategoryNight
	}
	return ""
}

// DutyType frames a schedule entry as pre-duty, duty or post-duty
type DutyType struct {
	ID       int64
	Name     string
	Category DutyCategory // Empty means resolve by name
}

// ResolvedCategory returns the explicit category, falling back to the canonical name
func (d DutyType) ResolvedCategory() DutyCategory {
	if d.Category.IsValid() {
		return d.Category
	}
	switch strings.TrimSpace(d.Name) {
	case DutyNamePre:
		return DutyCategoryPre
	case DutyNameDuty:
		return DutyCategoryDuty
	case DutyNamePost:
		return DutyCategoryPost
	}
	return ""
}

// AvailabilityRecord states whether a staff member can work on a date
type AvailabilityRecord struct {
	StaffID     int64
	Date        string
	IsAvailable bool
	Reason      string
}

// ScheduleEntry assigns a staff member to a shift and duty on a date
type ScheduleEntry struct {
	ID          int64 // 0 until persisted
	StaffID     int64
	Date        string
	ShiftTypeID *int64 // nil for a rest day tied to a duty type
	DutyTypeID  int64  // 0 when the duty type is missing from the catalog
	Unit        string
}

// HasShift returns true if the entry is a working shift
func (e ScheduleEntry) HasShift() bool {
	return e.ShiftTypeID != nil
}

// Severity grades a conflict
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ConflictType identifies the rule a conflict violates
type ConflictType string

const (
	ConflictUnavailableStaff       ConflictType = "unavailable_staff"
	ConflictExistingAssignment     ConflictType = "existing_assignment"
	ConflictRestPeriodViolation    ConflictType = "rest_period_violation"
	ConflictConsecutiveShifts      ConflictType = "consecutive_shifts"
	ConflictSpecializationMismatch ConflictType = "specialization_mismatch"
	ConflictWeeklyLimit            ConflictType = "weekly_limit"
)

// Conflict describes a policy violation for a staff member on a date
type Conflict struct {
	Type      ConflictType
	StaffID   int64
	Date      string
	Message   string
	Severity  Severity
	StaffName string
}

// HasErrors returns true if any conflict has error severity
func HasErrors(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ParseDate parses a civil date in DateLayout
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// FormatDate formats t as a civil date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a civil date by n days. Returns "" if the date cannot be parsed.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// WeekStart returns the Sunday that starts the week containing date.
// Returns "" if the date cannot be parsed.
func WeekStart(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, -int(t.Weekday())))
}

// Day normalises t to midnight UTC on its calendar date
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

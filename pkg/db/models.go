package db

import (
	"time"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

// Staff represents a database staff record
type Staff struct {
	ID             int64   `db:"id"`
	Name           string  `db:"name"`
	Role           string  `db:"role"`
	Specialization *string `db:"specialization"`
	Email          string  `db:"email"`
	Active         bool    `db:"active"`
}

// ShiftType represents a database shift_type record
type ShiftType struct {
	ID            int64   `db:"id"`
	Name          string  `db:"name"`
	StartTime     string  `db:"start_time"`
	EndTime       string  `db:"end_time"`
	DurationHours float64 `db:"duration_hours"`
	Category      *string `db:"category"`
}

// DutyType represents a database duty_type record
type DutyType struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Category *string `db:"category"`
}

// Availability represents a database availability record
type Availability struct {
	StaffID     int64   `db:"staff_id"`
	Date        string  `db:"date"`
	IsAvailable bool    `db:"is_available"`
	Reason      *string `db:"reason"`
}

// Schedule represents a database schedule record
type Schedule struct {
	ID          int64   `db:"id"`
	BatchID     *string `db:"batch_id"`
	StaffID     int64   `db:"staff_id"`
	Date        string  `db:"date"`
	ShiftTypeID *int64  `db:"shift_type_id"`
	DutyTypeID  *int64  `db:"duty_type_id"`
	Unit        *string `db:"unit"`
}

// ScheduleBatch groups the entries saved by one generation run
type ScheduleBatch struct {
	ID         string    `db:"id"`
	StartDate  string    `db:"start_date"`
	EndDate    string    `db:"end_date"`
	Unit       *string   `db:"unit"`
	CreatedAt  time.Time `db:"created_at"`
	EntryCount int       `db:"entry_count"`
}

func (s Staff) ToModel() model.StaffMember {
	return model.StaffMember{
		ID:             s.ID,
		Name:           s.Name,
		Role:           s.Role,
		Specialization: deref(s.Specialization),
		Email:          s.Email,
		Active:         s.Active,
	}
}

// StaffFromModel converts a roster member into a staff record
func StaffFromModel(m model.StaffMember) Staff {
	return Staff{
		ID:             m.ID,
		Name:           m.Name,
		Role:           m.Role,
		Specialization: nullable(m.Specialization),
		Email:          m.Email,
		Active:         m.Active,
	}
}

func (s ShiftType) ToModel() model.ShiftType {
	return model.ShiftType{
		ID:            s.ID,
		Name:          s.Name,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		DurationHours: s.DurationHours,
		Category:      model.ShiftCategory(deref(s.Category)),
	}
}

func (d DutyType) ToModel() model.DutyType {
	return model.DutyType{
		ID:       d.ID,
		Name:     d.Name,
		Category: model.DutyCategory(deref(d.Category)),
	}
}

func (a Availability) ToModel() model.AvailabilityRecord {
	return model.AvailabilityRecord{
		StaffID:     a.StaffID,
		Date:        a.Date,
		IsAvailable: a.IsAvailable,
		Reason:      deref(a.Reason),
	}
}

func (s Schedule) ToModel() model.ScheduleEntry {
	entry := model.ScheduleEntry{
		ID:          s.ID,
		StaffID:     s.StaffID,
		Date:        s.Date,
		ShiftTypeID: s.ShiftTypeID,
		Unit:        deref(s.Unit),
	}
	if s.DutyTypeID != nil {
		entry.DutyTypeID = *s.DutyTypeID
	}
	return entry
}

// ScheduleFromModel converts a generated entry into a schedule record for batchID.
// A zero duty type ID is stored as NULL.
func ScheduleFromModel(e model.ScheduleEntry, batchID string) Schedule {
	s := Schedule{
		ID:          e.ID,
		BatchID:     nullable(batchID),
		StaffID:     e.StaffID,
		Date:        e.Date,
		ShiftTypeID: e.ShiftTypeID,
		Unit:        nullable(e.Unit),
	}
	if e.DutyTypeID != 0 {
		id := e.DutyTypeID
		s.DutyTypeID = &id
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// PeriodType classifies what a period is used for.
type PeriodType string

const (
	PeriodRegular  PeriodType = "REGULAR"
	PeriodBreak    PeriodType = "BREAK"
	PeriodLunch    PeriodType = "LUNCH"
	PeriodAssembly PeriodType = "ASSEMBLY"
	PeriodPT       PeriodType = "PT"
	PeriodLab      PeriodType = "LAB"
	PeriodFree     PeriodType = "FREE"
)

// Schedulable reports whether lessons may be placed in a period of this type.
func (t PeriodType) Schedulable() bool {
	return t != PeriodBreak && t != PeriodLunch
}

// Period is one numbered slot of the school day.
type Period struct {
	PeriodNumber   int        `json:"period_number"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	Duration       int        `json:"duration"`
	Type           PeriodType `json:"type"`
	ShiftID        *string    `json:"shift_id,omitempty"`
	IsDoublePeriod bool       `json:"is_double_period"`
}

// Shift groups periods into a named part of the day.
type Shift struct {
	ShiftID   string `json:"shift_id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PeriodList is stored as a JSONB array.
type PeriodList []Period

// Value implements driver.Valuer.
func (l PeriodList) Value() (driver.Value, error) {
	if l == nil {
		l = PeriodList{}
	}
	b, err := json.Marshal([]Period(l))
	if err != nil {
		return nil, err
	}
	return types.JSONText(b).Value()
}

// Scan implements sql.Scanner.
func (l *PeriodList) Scan(src any) error {
	var raw types.JSONText
	if err := raw.Scan(src); err != nil {
		return fmt.Errorf("scan periods: %w", err)
	}
	var periods []Period
	if err := raw.Unmarshal(&periods); err != nil {
		return fmt.Errorf("decode periods: %w", err)
	}
	if periods == nil {
		periods = []Period{}
	}
	*l = periods
	return nil
}

// ShiftList is stored as a JSONB array.
type ShiftList []Shift

// Value implements driver.Valuer.
func (l ShiftList) Value() (driver.Value, error) {
	if l == nil {
		l = ShiftList{}
	}
	b, err := json.Marshal([]Shift(l))
	if err != nil {
		return nil, err
	}
	return types.JSONText(b).Value()
}

// Scan implements sql.Scanner.
func (l *ShiftList) Scan(src any) error {
	var raw types.JSONText
	if err := raw.Scan(src); err != nil {
		return fmt.Errorf("scan shifts: %w", err)
	}
	var shifts []Shift
	if err := raw.Unmarshal(&shifts); err != nil {
		return fmt.Errorf("decode shifts: %w", err)
	}
	if shifts == nil {
		shifts = []Shift{}
	}
	*l = shifts
	return nil
}

// CalendarConfig describes the weekly structure of one academic year for a school.
type CalendarConfig struct {
	ID           string          `db:"id" json:"id"`
	SchoolID     string          `db:"school_id" json:"school_id"`
	AcademicYear string          `db:"academic_year" json:"academic_year"`
	WorkingDays  pq.StringArray  `db:"working_days" json:"working_days"`
	Periods      PeriodList      `db:"periods" json:"periods"`
	Shifts       ShiftList       `db:"shifts" json:"shifts"`
	Status       LifecycleStatus `db:"status" json:"status"`
	CreatedBy    *string         `db:"created_by" json:"created_by,omitempty"`
	DeletedAt    *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Period looks up a period by number.
func (c *CalendarConfig) Period(number int) (Period, bool) {
	for _, p := range c.Periods {
		if p.PeriodNumber == number {
			return p, true
		}
	}
	return Period{}, false
}

// HasShift reports whether shiftID is defined on the config.
func (c *CalendarConfig) HasShift(shiftID string) bool {
	for _, s := range c.Shifts {
		if s.ShiftID == shiftID {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether day is one of the configured working days.
func (c *CalendarConfig) IsWorkingDay(day string) bool {
	for _, d := range c.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsActive reports whether the config is the school's current, non-deleted structure.
func (c *CalendarConfig) IsActive() bool {
	return c.Status == StatusActive && c.DeletedAt == nil
}

package repository

import (
	"errors"

	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// Unique index names declared in the embedded migrations.
const (
	ConstraintEntryTeacherSlot = "ux_timetable_entries_teacher_slot"
	ConstraintEntryRoomSlot    = "ux_timetable_entries_room_slot"
	ConstraintEntryClassSlot   = "ux_timetable_entries_class_slot"
	ConstraintConfigYear       = "ux_calendar_configs_year"
	ConstraintConfigActive     = "ux_calendar_configs_active"
	ConstraintSubstituteOpen   = "ux_substitute_assignments_open"
	ConstraintSwapPending      = "ux_period_swap_requests_pending"
)

// UniqueViolation reports the constraint name when err wraps a PostgreSQL unique violation.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

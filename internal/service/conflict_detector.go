package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type slotKey struct {
	day    string
	period int
}

// detectConflicts partitions active entries by slot and reports every teacher,
// room and class section held by more than one entry. Both the full scan and the
// write-time check go through here so their notion of a conflict cannot drift.
func detectConflicts(entries []models.TimetableEntry) []models.Conflict {
	slots := make(map[slotKey][]models.TimetableEntry)
	for _, entry := range entries {
		if !entry.IsActive() {
			continue
		}
		key := slotKey{day: entry.DayOfWeek, period: entry.PeriodNumber}
		slots[key] = append(slots[key], entry)
	}

	keys := make([]slotKey, 0, len(slots))
	for key := range slots {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, dj := models.DayIndex(keys[i].day), models.DayIndex(keys[j].day)
		if di != dj {
			return di < dj
		}
		return keys[i].period < keys[j].period
	})

	var conflicts []models.Conflict
	for _, key := range keys {
		group := slots[key]
		if len(group) < 2 {
			continue
		}
		conflicts = append(conflicts, groupBy(key, group, models.ConflictTeacher, func(e models.TimetableEntry) string {
			return e.TeacherID
		})...)
		conflicts = append(conflicts, groupBy(key, group, models.ConflictRoom, func(e models.TimetableEntry) string {
			if e.RoomID == nil {
				return ""
			}
			return *e.RoomID
		})...)
		conflicts = append(conflicts, groupBy(key, group, models.ConflictClass, func(e models.TimetableEntry) string {
			return e.ClassID + "/" + e.SectionID
		})...)
	}
	return conflicts
}

func groupBy(key slotKey, group []models.TimetableEntry, kind models.ConflictType, resource func(models.TimetableEntry) string) []models.Conflict {
	holders := make(map[string][]string)
	var order []string
	for _, entry := range group {
		id := resource(entry)
		if id == "" {
			continue
		}
		if _, seen := holders[id]; !seen {
			order = append(order, id)
		}
		holders[id] = append(holders[id], entry.ID)
	}
	sort.Strings(order)

	var conflicts []models.Conflict
	for _, id := range order {
		ids := holders[id]
		if len(ids) < 2 {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:         kind,
			DayOfWeek:    key.day,
			PeriodNumber: key.period,
			ResourceID:   id,
			Description:  describeConflict(kind, id, key, len(ids)),
			Entries:      ids,
		})
	}
	return conflicts
}

func describeConflict(kind models.ConflictType, resourceID string, key slotKey, count int) string {
	switch kind {
	case models.ConflictTeacher:
		return fmt.Sprintf("teacher %s is assigned to %d entries on %s period %d", resourceID, count, key.day, key.period)
	case models.ConflictRoom:
		return fmt.Sprintf("room %s is booked by %d entries on %s period %d", resourceID, count, key.day, key.period)
	default:
		return fmt.Sprintf("class section %s has %d entries on %s period %d", resourceID, count, key.day, key.period)
	}
}

// slotConflicts runs the detector over the candidate and the other active
// entries of its slot and keeps only the conflicts the candidate takes part in.
// An entry never collides with its own stored version.
func slotConflicts(candidate models.TimetableEntry, occupants []models.TimetableEntry) []models.Conflict {
	pool := make([]models.TimetableEntry, 0, len(occupants)+1)
	for _, entry := range occupants {
		if entry.ID == candidate.ID {
			continue
		}
		if entry.DayOfWeek != candidate.DayOfWeek || entry.PeriodNumber != candidate.PeriodNumber {
			continue
		}
		pool = append(pool, entry)
	}
	candidate.Status = models.StatusActive
	pool = append(pool, candidate)

	var involved []models.Conflict
	for _, conflict := range detectConflicts(pool) {
		for _, id := range conflict.Entries {
			if id == candidate.ID {
				involved = append(involved, conflict)
				break
			}
		}
	}
	return involved
}

func countByType(conflicts []models.Conflict) map[string]int {
	counts := make(map[string]int)
	for _, c := range conflicts {
		counts[string(c.Type)]++
	}
	return counts
}

// newSchedulingConflict builds the SCHEDULING_CONFLICT error carrying the colliding entry ids.
func newSchedulingConflict(candidateID string, conflicts []models.Conflict) error {
	detail := &models.SchedulingConflictError{
		Message:   fmt.Sprintf("entry collides with %d existing booking(s)", len(conflicts)),
		Conflicts: conflicts,
	}
	var others []string
	for _, id := range detail.EntryIDs() {
		if id != candidateID {
			others = append(others, id)
		}
	}
	wrapped := appErrors.Wrap(detail, appErrors.ErrSchedulingConflict.Code, appErrors.ErrSchedulingConflict.Status, detail.Message)
	return appErrors.WithDetails(wrapped, map[string]interface{}{
		"conflicts":           conflicts,
		"conflicting_entries": others,
	})
}

package dto

// PeriodRequest describes one period of the school day.
type PeriodRequest struct {
	PeriodNumber   int     `json:"period_number" validate:"required,min=1"`
	StartTime      string  `json:"start_time" validate:"required,clock"`
	EndTime        string  `json:"end_time" validate:"required,clock"`
	Duration       int     `json:"duration" validate:"omitempty,min=1"`
	Type           string  `json:"type" validate:"required,oneof=REGULAR BREAK LUNCH ASSEMBLY PT LAB FREE"`
	ShiftID        *string `json:"shift_id"`
	IsDoublePeriod bool    `json:"is_double_period"`
}

// ShiftRequest describes a named part of the school day. An empty id creates a new shift.
type ShiftRequest struct {
	ShiftID   string `json:"shift_id"`
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

// CreateCalendarConfigRequest creates and activates a weekly structure.
type CreateCalendarConfigRequest struct {
	AcademicYear string          `json:"academic_year" validate:"required,max=32"`
	WorkingDays  []string        `json:"working_days" validate:"required,min=1,dive,dayofweek"`
	Shifts       []ShiftRequest  `json:"shifts" validate:"omitempty,dive"`
	Periods      []PeriodRequest `json:"periods" validate:"omitempty,dive"`
}

// CreateEntryRequest places a class section in a weekly slot.
type CreateEntryRequest struct {
	ClassID      string  `json:"class_id" validate:"required"`
	SectionID    string  `json:"section_id" validate:"required"`
	TeacherID    string  `json:"teacher_id" validate:"required"`
	SubjectID    string  `json:"subject_id" validate:"required"`
	DayOfWeek    string  `json:"day_of_week" validate:"required,dayofweek"`
	PeriodNumber int     `json:"period_number" validate:"required,min=1"`
	RoomID       *string `json:"room_id" validate:"omitempty,min=1"`
}

// UpdateEntryRequest changes selected fields of an entry. Nil fields are kept.
type UpdateEntryRequest struct {
	ClassID      *string `json:"class_id" validate:"omitempty,min=1"`
	SectionID    *string `json:"section_id" validate:"omitempty,min=1"`
	TeacherID    *string `json:"teacher_id" validate:"omitempty,min=1"`
	SubjectID    *string `json:"subject_id" validate:"omitempty,min=1"`
	DayOfWeek    *string `json:"day_of_week" validate:"omitempty,dayofweek"`
	PeriodNumber *int    `json:"period_number" validate:"omitempty,min=1"`
	RoomID       *string `json:"room_id" validate:"omitempty,min=1"`
	ClearRoom    bool    `json:"clear_room"`
}

// EntryQuery holds list filters parsed from the query string.
type EntryQuery struct {
	ClassID         string `form:"class_id"`
	SectionID       string `form:"section_id"`
	TeacherID       string `form:"teacher_id"`
	RoomID          string `form:"room_id"`
	DayOfWeek       string `form:"day" validate:"omitempty,dayofweek"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page" validate:"omitempty,min=1"`
	PageSize        int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// RoomRequest creates or replaces a room's attributes.
type RoomRequest struct {
	Name        string   `json:"name" validate:"required,max=128"`
	Code        *string  `json:"code" validate:"omitempty,max=32"`
	RoomType    string   `json:"room_type" validate:"required,max=32"`
	Capacity    int      `json:"capacity" validate:"min=0"`
	Equipment   []string `json:"equipment" validate:"omitempty,dive,required"`
	IsAvailable *bool    `json:"is_available"`
}

// CreateSubstituteRequest assigns a substitute to one entry on one date.
type CreateSubstituteRequest struct {
	OriginalEntryID     string `json:"original_entry_id" validate:"required"`
	SubstituteTeacherID string `json:"substitute_teacher_id" validate:"required"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason              string `json:"reason" validate:"max=500"`
	RequireConfirmation bool   `json:"require_confirmation"`
}

// CancelRequest carries an optional reason for cancellations and rejections.
type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// CreateSwapRequest proposes exchanging two entries on a date.
type CreateSwapRequest struct {
	EntryID1 string `json:"entry_id_1" validate:"required"`
	EntryID2 string `json:"entry_id_2" validate:"required,nefield=EntryID1"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" validate:"max=500"`
}

package models

import "time"

// SwapStatus tracks a period swap request.
type SwapStatus string

const (
	SwapPending   SwapStatus = "PENDING"
	SwapApproved  SwapStatus = "APPROVED"
	SwapRejected  SwapStatus = "REJECTED"
	SwapCancelled SwapStatus = "CANCELLED"
)

// PeriodSwapRequest proposes exchanging two entries on a given date.
type PeriodSwapRequest struct {
	ID           string     `db:"id" json:"id"`
	SchoolID     string     `db:"school_id" json:"school_id"`
	EntryID1     string     `db:"entry_id_1" json:"entry_id_1"`
	EntryID2     string     `db:"entry_id_2" json:"entry_id_2"`
	SwapDate     time.Time  `db:"swap_date" json:"swap_date"`
	Reason       string     `db:"reason" json:"reason"`
	RequestedBy  string     `db:"requested_by" json:"requested_by"`
	Status       SwapStatus `db:"status" json:"status"`
	DecidedBy    *string    `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt    *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	RejectReason *string    `db:"reject_reason" json:"reject_reason,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// SwapFilter narrows swap listings.
type SwapFilter struct {
	Status      SwapStatus
	Date        *time.Time
	RequestedBy string
	Page        int
	PageSize    int
}

package model

import (
	"time"

	"github.com/rowanfern/hearth/internal/recurrence"
)

type TimeOfDay string

const (
	TimeOfDayMorning TimeOfDay = "morning"
	TimeOfDayMidday  TimeOfDay = "midday"
	TimeOfDayEvening TimeOfDay = "evening"
	TimeOfDayAny     TimeOfDay = "any"
)

type ChoreType string

const (
	ChoreTimed   ChoreType = "timed"
	ChoreAllDay  ChoreType = "all_day"
	ChoreAnytime ChoreType = "anytime"
)

type CompletionStatus string

const (
	CompletionCompleted       CompletionStatus = "completed"
	CompletionPendingApproval CompletionStatus = "pending_approval"
	CompletionApproved        CompletionStatus = "approved"
	CompletionRejected        CompletionStatus = "rejected"
)

// Counted reports whether a record in this status counts as a finished
// completion for display and star-balance purposes. Pending and rejected
// records exist but do not count.
func (s CompletionStatus) Counted() bool {
	return s == CompletionApproved || s == CompletionCompleted
}

// CompletionRecord records who completed a chore on a calendar date and
// where that completion stands in the approval workflow.
type CompletionRecord struct {
	Date        string           `json:"date"` // DateLayout
	ProfileID   string           `json:"profile_id"`
	CompletedAt time.Time        `json:"completed_at"`
	Status      CompletionStatus `json:"status"`
	ApprovedBy  string           `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time       `json:"approved_at,omitempty"`
}

type Chore struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	ProfileIDs []string        `json:"profile_ids"`
	StartDate  string          `json:"start_date"` // DateLayout; recurrence anchor
	TimeOfDay  TimeOfDay       `json:"time_of_day"`
	Type       ChoreType       `json:"type"`
	// ScheduledTime is an HH:MM wall-clock time, set only for timed chores.
	ScheduledTime    string             `json:"scheduled_time,omitempty"`
	Recurrence       recurrence.Rule    `json:"recurrence"`
	RewardStars      int                `json:"reward_stars"`
	IsShared         bool               `json:"is_shared"`
	RequiresApproval bool               `json:"requires_approval"`
	CompletedBy      []CompletionRecord `json:"completed_by"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

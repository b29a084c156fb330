// Package chore derives display status for chores from their recurrence
// rule and completion records. Nothing here mutates state; the store owns
// that.
package chore

import (
	"time"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/recurrence"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
	StatusNotDue    Status = "not_due"
)

// ChoreWithStatus joins a chore with one profile's derived status for a
// single day, for the "today" board.
type ChoreWithStatus struct {
	model.Chore
	ProfileID string `json:"profile_id"`
	Status    Status `json:"status"`
	Date      string `json:"date"`
}

// IsDueOn reports whether the chore has an occurrence on the given date.
// The anchor is the chore's own start date; a malformed start date means
// the chore is never due.
func IsDueOn(c model.Chore, date time.Time) bool {
	anchor, err := time.Parse(model.DateLayout, c.StartDate)
	if err != nil {
		return false
	}
	return recurrence.Matches(anchor, date, c.Recurrence)
}

// StatusOn computes one profile's status for the chore at a moment in
// time. The date part picks the day; for timed chores the clock part
// decides pending vs overdue.
func StatusOn(c model.Chore, profileID string, at time.Time) Status {
	if !IsDueOn(c, at) {
		return StatusNotDue
	}
	day := at.Format(model.DateLayout)
	for _, rec := range c.CompletedBy {
		if rec.Date != day {
			continue
		}
		if rec.ProfileID == profileID && rec.Status.Counted() {
			return StatusCompleted
		}
		// A shared chore is done for everyone once anyone's completion
		// counts.
		if c.IsShared && rec.Status.Counted() {
			return StatusCompleted
		}
	}
	if c.Type == model.ChoreTimed && c.ScheduledTime != "" {
		if at.Format("15:04") > c.ScheduledTime {
			return StatusOverdue
		}
	}
	return StatusPending
}

// Assigned reports whether the profile is on the chore's assignee list.
func Assigned(c model.Chore, profileID string) bool {
	for _, id := range c.ProfileIDs {
		if id == profileID {
			return true
		}
	}
	return false
}

// Board returns the per-assignee status rows for every chore due on date,
// in chore order. Chores with no assignees produce no rows.
func Board(chores []model.Chore, date time.Time) []ChoreWithStatus {
	day := date.Format(model.DateLayout)
	var rows []ChoreWithStatus
	for _, c := range chores {
		if !IsDueOn(c, date) {
			continue
		}
		for _, pid := range c.ProfileIDs {
			rows = append(rows, ChoreWithStatus{
				Chore:     c,
				ProfileID: pid,
				Status:    StatusOn(c, pid, date),
				Date:      day,
			})
		}
	}
	return rows
}

package model

import (
	"time"

	"github.com/rowanfern/hearth/internal/recurrence"
)

type Event struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	AllDay      bool            `json:"all_day"`
	ProfileIDs  []string        `json:"profile_ids"`
	Recurrence  recurrence.Rule `json:"recurrence"`
	Category    string          `json:"category"`
	Priority    string          `json:"priority"`
	Location    string          `json:"location"`
	// ReminderMinutes is how long before an occurrence's start a reminder
	// notification fires; 0 means no reminder.
	ReminderMinutes int       `json:"reminder_minutes"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Occurrence is a single projected instance of an event on the calendar.
type Occurrence struct {
	Event
	Date string `json:"date"`
}

package model

import "time"

// DateLayout is the calendar-date format used everywhere a field carries a
// date without a time of day (chore anchors, completion dates, meal plan
// weeks).
const DateLayout = "2006-01-02"

type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	Color       string    `json:"color"`
	AvatarEmoji string    `json:"avatar_emoji"`
	HasPIN      bool      `json:"has_pin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

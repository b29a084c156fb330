package model

import "time"

// PushSubscription is a browser push endpoint registered by a device,
// optionally scoped to a single profile.
type PushSubscription struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id,omitempty"`
	Endpoint  string    `json:"endpoint"`
	P256dhKey string    `json:"p256dh_key"`
	AuthKey   string    `json:"auth_key"`
	CreatedAt time.Time `json:"created_at"`
}

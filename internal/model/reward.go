package model

import "time"

type Reward struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StarCost    int       `json:"star_cost"`
	ProfileIDs  []string  `json:"profile_ids"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionApproved  RedemptionStatus = "approved"
	RedemptionCompleted RedemptionStatus = "completed"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

type RewardRedemption struct {
	ID        string           `json:"id"`
	RewardID  string           `json:"reward_id"`
	ProfileID string           `json:"profile_id"`
	// StarsSpent copies the reward's cost at redemption time so later price
	// edits do not rewrite history.
	StarsSpent int              `json:"stars_spent"`
	Status     RedemptionStatus `json:"status"`
	RedeemedAt time.Time        `json:"redeemed_at"`
}

// StarBalance is the derived star ledger for one profile: earned from
// counted chore completions minus spent on non-cancelled redemptions.
// It is never stored.
type StarBalance struct {
	ProfileID   string `json:"profile_id"`
	ProfileName string `json:"profile_name"`
	Earned      int    `json:"earned"`
	Spent       int    `json:"spent"`
	Balance     int    `json:"balance"`
}

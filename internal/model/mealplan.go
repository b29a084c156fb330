package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealAssignment ties a recipe to the profile it is planned for. A blank
// ProfileID means the meal is planned for the whole family (and is what
// legacy slot data normalizes to).
type MealAssignment struct {
	MealID    string `json:"meal_id"`
	ProfileID string `json:"profile_id,omitempty"`
}

// MealSlot holds the assignments for one day/meal-type cell of the plan.
//
// Older plan data stored a slot as a single meal id string or an array of
// id strings. Those legacy forms are normalized into assignments once, at
// unmarshal time, so nothing downstream ever branches on the shape.
type MealSlot struct {
	Assignments []MealAssignment
}

func (s MealSlot) MarshalJSON() ([]byte, error) {
	if s.Assignments == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Assignments)
}

func (s *MealSlot) UnmarshalJSON(data []byte) error {
	// Current form: array of assignment objects.
	var assignments []MealAssignment
	if err := json.Unmarshal(data, &assignments); err == nil {
		s.Assignments = assignments
		return nil
	}

	// Legacy form: array of meal id strings.
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		s.Assignments = assignmentsFromIDs(ids)
		return nil
	}

	// Oldest form: a single meal id string.
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		if id == "" {
			s.Assignments = nil
			return nil
		}
		s.Assignments = []MealAssignment{{MealID: id}}
		return nil
	}

	return fmt.Errorf("meal slot: unrecognized shape %s", data)
}

func assignmentsFromIDs(ids []string) []MealAssignment {
	if len(ids) == 0 {
		return nil
	}
	out := make([]MealAssignment, 0, len(ids))
	for _, id := range ids {
		out = append(out, MealAssignment{MealID: id})
	}
	return out
}

// DayMeals maps meal type to its slot for a single day.
type DayMeals map[MealType]MealSlot

type MealPlan struct {
	ID string `json:"id"`
	// WeekStartDate is the Monday of the plan's week, in DateLayout.
	WeekStartDate string              `json:"week_start_date"`
	Meals         map[string]DayMeals `json:"meals"` // keyed by lowercase day name
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

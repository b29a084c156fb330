package store

import (
	"testing"

	"github.com/rowanfern/hearth/internal/model"
)

func TestWeekMonday(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-01-01"}, // already a Monday
		{"2024-01-03", "2024-01-01"}, // Wednesday
		{"2024-01-07", "2024-01-01"}, // Sunday belongs to the week begun the 1st
		{"2024-01-08", "2024-01-08"}, // next Monday
		{"2024-03-01", "2024-02-26"}, // across a month boundary
	}
	for _, tt := range tests {
		got, err := WeekMonday(tt.date)
		if err != nil {
			t.Errorf("WeekMonday(%s): %v", tt.date, err)
			continue
		}
		if got != tt.want {
			t.Errorf("WeekMonday(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}

	if _, err := WeekMonday("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestAssignMealCreatesPlan(t *testing.T) {
	s := newTestStore(t)

	plan, err := s.AssignMeal("2024-01-03", "wednesday", model.MealDinner, model.MealAssignment{MealID: "meal-1", ProfileID: "profile-1"})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if plan.WeekStartDate != "2024-01-01" {
		t.Errorf("plan anchored at %s, want Monday 2024-01-01", plan.WeekStartDate)
	}
	slot := plan.Meals["wednesday"][model.MealDinner]
	if len(slot.Assignments) != 1 || slot.Assignments[0].MealID != "meal-1" {
		t.Errorf("slot = %+v", slot)
	}

	// Any date in the same week resolves to the same plan.
	got, ok, err := s.PlanForWeek("2024-01-07")
	if err != nil || !ok {
		t.Fatalf("plan for week: ok=%v err=%v", ok, err)
	}
	if got.ID != plan.ID {
		t.Errorf("resolved plan %s, want %s", got.ID, plan.ID)
	}
}

func TestAssignMealDeduplicates(t *testing.T) {
	s := newTestStore(t)
	a := model.MealAssignment{MealID: "meal-1", ProfileID: "profile-1"}

	s.AssignMeal("2024-01-01", "monday", model.MealLunch, a)
	plan, _ := s.AssignMeal("2024-01-01", "monday", model.MealLunch, a)
	if got := plan.Meals["monday"][model.MealLunch].Assignments; len(got) != 1 {
		t.Errorf("duplicate assignment inserted: %v", got)
	}

	// Same meal for another profile is a distinct assignment.
	plan, _ = s.AssignMeal("2024-01-01", "monday", model.MealLunch, model.MealAssignment{MealID: "meal-1", ProfileID: "profile-2"})
	if got := plan.Meals["monday"][model.MealLunch].Assignments; len(got) != 2 {
		t.Errorf("assignments = %v, want 2", got)
	}
}

func TestRemoveMealRemovesForEveryone(t *testing.T) {
	s := newTestStore(t)

	s.AssignMeal("2024-01-01", "monday", model.MealDinner, model.MealAssignment{MealID: "meal-1", ProfileID: "profile-1"})
	s.AssignMeal("2024-01-01", "monday", model.MealDinner, model.MealAssignment{MealID: "meal-1", ProfileID: "profile-2"})
	s.AssignMeal("2024-01-01", "monday", model.MealDinner, model.MealAssignment{MealID: "meal-2", ProfileID: "profile-1"})

	// Removal is by meal, not by profile: both profile-1 and profile-2 lose
	// meal-1 even though only profile-1 is named.
	plan, err := s.RemoveMealFromPlan("2024-01-01", "monday", model.MealDinner, "profile-1", "meal-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	got := plan.Meals["monday"][model.MealDinner].Assignments
	if len(got) != 1 || got[0].MealID != "meal-2" {
		t.Errorf("assignments = %v, want only meal-2", got)
	}
}

func TestRemoveMealMissingPlan(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RemoveMealFromPlan("2024-01-01", "monday", model.MealDinner, "p", "m"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveMealEmptySlotNoop(t *testing.T) {
	s := newTestStore(t)
	s.AssignMeal("2024-01-01", "monday", model.MealDinner, model.MealAssignment{MealID: "meal-1"})

	// Different day and meal type: nothing to remove, no error.
	plan, err := s.RemoveMealFromPlan("2024-01-01", "tuesday", model.MealLunch, "", "meal-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := plan.Meals["monday"][model.MealDinner].Assignments; len(got) != 1 {
		t.Errorf("unrelated slot changed: %v", got)
	}
}

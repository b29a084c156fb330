package store

import (
	"time"

	"github.com/rowanfern/hearth/internal/model"
)

// WeekMonday returns the Monday of the week containing the given date
// string, in model.DateLayout.
func WeekMonday(date string) (string, error) {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset).Format(model.DateLayout), nil
}

// PlanForWeek resolves the plan for the Monday-anchored week containing
// date. The bool is false when no plan exists for that week.
func (s *Store) PlanForWeek(date string) (model.MealPlan, bool, error) {
	monday, err := WeekMonday(date)
	if err != nil {
		return model.MealPlan{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.mealPlanIndex(monday)
	if i < 0 {
		return model.MealPlan{}, false, nil
	}
	return cloneMealPlan(s.mealPlans[i]), true, nil
}

// AssignMeal adds an assignment to the day/meal-type slot of the week's
// plan, creating the plan if necessary. Duplicate (meal, profile) pairs in
// a slot are skipped.
func (s *Store) AssignMeal(date, day string, mealType model.MealType, a model.MealAssignment) (model.MealPlan, error) {
	monday, err := WeekMonday(date)
	if err != nil {
		return model.MealPlan{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.mealPlanIndex(monday)
	if i < 0 {
		s.mealPlans = append(s.mealPlans, model.MealPlan{
			ID:            s.newID("mealplan"),
			WeekStartDate: monday,
			Meals:         map[string]model.DayMeals{},
			CreatedAt:     s.now(),
			UpdatedAt:     s.now(),
		})
		i = len(s.mealPlans) - 1
	}
	p := &s.mealPlans[i]
	if p.Meals == nil {
		p.Meals = map[string]model.DayMeals{}
	}
	if p.Meals[day] == nil {
		p.Meals[day] = model.DayMeals{}
	}

	slot := p.Meals[day][mealType]
	for _, existing := range slot.Assignments {
		if existing.MealID == a.MealID && existing.ProfileID == a.ProfileID {
			return cloneMealPlan(*p), nil
		}
	}
	slot.Assignments = append(slot.Assignments, a)
	p.Meals[day][mealType] = slot
	p.UpdatedAt = s.now()
	s.touch()
	return cloneMealPlan(*p), nil
}

// RemoveMealFromPlan removes every assignment for mealID from the
// day/meal-type slot of the week containing date. All profiles'
// assignments of that meal go at once: removing a meal removes it for
// everyone it was planned for. profileID is accepted for symmetry with
// AssignMeal but does not narrow the removal.
func (s *Store) RemoveMealFromPlan(date, day string, mealType model.MealType, profileID, mealID string) (model.MealPlan, error) {
	monday, err := WeekMonday(date)
	if err != nil {
		return model.MealPlan{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.mealPlanIndex(monday)
	if i < 0 {
		return model.MealPlan{}, ErrNotFound
	}
	p := &s.mealPlans[i]

	dm, ok := p.Meals[day]
	if !ok {
		return cloneMealPlan(*p), nil
	}
	slot, ok := dm[mealType]
	if !ok {
		return cloneMealPlan(*p), nil
	}

	kept := slot.Assignments[:0]
	for _, a := range slot.Assignments {
		if a.MealID != mealID {
			kept = append(kept, a)
		}
	}
	if len(kept) != len(slot.Assignments) {
		dm[mealType] = model.MealSlot{Assignments: kept}
		p.UpdatedAt = s.now()
		s.touch()
	}
	return cloneMealPlan(*p), nil
}

func (s *Store) MealPlans() []model.MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMealPlans(s.mealPlans)
}

func (s *Store) mealPlanIndex(monday string) int {
	for i := range s.mealPlans {
		if s.mealPlans[i].WeekStartDate == monday {
			return i
		}
	}
	return -1
}

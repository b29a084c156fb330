// Package store holds the household's live state: profiles, calendar
// events, chores, lists, rewards, and meal plans, kept as normalized
// in-memory collections. Every mutation goes through a Store method, which
// applies the cross-entity invariants (derived item counts, completion
// exclusivity, the approval state machine) before returning.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/rowanfern/hearth/internal/ident"
	"github.com/rowanfern/hearth/internal/model"
)

// ErrNotFound is returned when an operation references an ID that is not
// in the store.
var ErrNotFound = errors.New("not found")

// Snapshot is the serializable whole-store state. A Store is constructed
// from one and can emit one at any time for persistence.
type Snapshot struct {
	Profiles      []model.Profile          `json:"profiles"`
	Events        []model.Event            `json:"events"`
	Chores        []model.Chore            `json:"chores"`
	Lists         []model.List             `json:"lists"`
	ListItems     []model.ListItem         `json:"list_items"`
	Rewards       []model.Reward           `json:"rewards"`
	Redemptions   []model.RewardRedemption `json:"redemptions"`
	MealPlans     []model.MealPlan         `json:"meal_plans"`
	Subscriptions []model.PushSubscription `json:"subscriptions"`
	// PINs maps profile ID to bcrypt hash. Kept out of the entity structs
	// so hashes never appear in API payloads.
	PINs map[string]string `json:"pins,omitempty"`
}

// Store is the single mutable aggregate for all domain state. All methods
// are safe for concurrent use; a RWMutex serializes mutations so callers
// observe a strictly ordered history.
type Store struct {
	mu    sync.RWMutex
	rev   uint64
	now   func() time.Time
	newID func(prefix string) string

	profiles    []model.Profile
	events      []model.Event
	chores      []model.Chore
	lists       []model.List
	listItems   []model.ListItem
	rewards     []model.Reward
	redemptions []model.RewardRedemption
	mealPlans   []model.MealPlan
	subs        []model.PushSubscription
	pins        map[string]string
}

// New builds a Store from an initial snapshot.
func New(snap Snapshot) *Store {
	s := &Store{
		now:   time.Now,
		newID: ident.New,
		pins:  map[string]string{},
	}
	s.load(snap)
	return s
}

func (s *Store) load(snap Snapshot) {
	s.profiles = append([]model.Profile(nil), snap.Profiles...)
	s.events = cloneEvents(snap.Events)
	s.chores = cloneChores(snap.Chores)
	s.lists = append([]model.List(nil), snap.Lists...)
	s.listItems = append([]model.ListItem(nil), snap.ListItems...)
	s.rewards = cloneRewards(snap.Rewards)
	s.redemptions = append([]model.RewardRedemption(nil), snap.Redemptions...)
	s.mealPlans = cloneMealPlans(snap.MealPlans)
	s.subs = append([]model.PushSubscription(nil), snap.Subscriptions...)
	for id, hash := range snap.PINs {
		s.pins[id] = hash
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pins := make(map[string]string, len(s.pins))
	for id, hash := range s.pins {
		pins[id] = hash
	}
	return Snapshot{
		Profiles:      append([]model.Profile(nil), s.profiles...),
		Events:        cloneEvents(s.events),
		Chores:        cloneChores(s.chores),
		Lists:         append([]model.List(nil), s.lists...),
		ListItems:     append([]model.ListItem(nil), s.listItems...),
		Rewards:       cloneRewards(s.rewards),
		Redemptions:   append([]model.RewardRedemption(nil), s.redemptions...),
		MealPlans:     cloneMealPlans(s.mealPlans),
		Subscriptions: append([]model.PushSubscription(nil), s.subs...),
		PINs:          pins,
	}
}

// Rev returns the mutation counter. It increases on every successful
// mutation; the snapshot save loop uses it for cheap dirty-checking.
func (s *Store) Rev() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// touch marks the store dirty. Callers must hold the write lock.
func (s *Store) touch() {
	s.rev++
}

// --- clone helpers ---
//
// Entities whose structs contain slices or maps are cloned on the way in
// and out so callers can never alias live store state.

func cloneEvent(e model.Event) model.Event {
	e.ProfileIDs = append([]string(nil), e.ProfileIDs...)
	e.Recurrence.ByWeekday = append([]time.Weekday(nil), e.Recurrence.ByWeekday...)
	e.Recurrence.ByMonthDay = append([]int(nil), e.Recurrence.ByMonthDay...)
	return e
}

func cloneEvents(in []model.Event) []model.Event {
	out := make([]model.Event, 0, len(in))
	for _, e := range in {
		out = append(out, cloneEvent(e))
	}
	return out
}

func cloneChore(c model.Chore) model.Chore {
	c.ProfileIDs = append([]string(nil), c.ProfileIDs...)
	c.CompletedBy = append([]model.CompletionRecord(nil), c.CompletedBy...)
	c.Recurrence.ByWeekday = append([]time.Weekday(nil), c.Recurrence.ByWeekday...)
	c.Recurrence.ByMonthDay = append([]int(nil), c.Recurrence.ByMonthDay...)
	return c
}

func cloneChores(in []model.Chore) []model.Chore {
	out := make([]model.Chore, 0, len(in))
	for _, c := range in {
		out = append(out, cloneChore(c))
	}
	return out
}

func cloneReward(r model.Reward) model.Reward {
	r.ProfileIDs = append([]string(nil), r.ProfileIDs...)
	return r
}

func cloneRewards(in []model.Reward) []model.Reward {
	out := make([]model.Reward, 0, len(in))
	for _, r := range in {
		out = append(out, cloneReward(r))
	}
	return out
}

func cloneMealPlan(p model.MealPlan) model.MealPlan {
	meals := make(map[string]model.DayMeals, len(p.Meals))
	for day, dm := range p.Meals {
		cp := make(model.DayMeals, len(dm))
		for mt, slot := range dm {
			cp[mt] = model.MealSlot{Assignments: append([]model.MealAssignment(nil), slot.Assignments...)}
		}
		meals[day] = cp
	}
	p.Meals = meals
	return p
}

func cloneMealPlans(in []model.MealPlan) []model.MealPlan {
	out := make([]model.MealPlan, 0, len(in))
	for _, p := range in {
		out = append(out, cloneMealPlan(p))
	}
	return out
}

// removeString drops every occurrence of v from ids, preserving order.
func removeString(ids []string, v string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != v {
			out = append(out, id)
		}
	}
	return out
}

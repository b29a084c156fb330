package store

import (
	"sort"
	"time"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/recurrence"
)

// AddEvent assigns an ID and timestamps and appends the event. The event's
// own start date is the recurrence anchor; no occurrences are materialized.
func (s *Store) AddEvent(e model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.newID("event")
	if e.ProfileIDs == nil {
		e.ProfileIDs = []string{}
	}
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	s.events = append(s.events, cloneEvent(e))
	s.touch()
	return e
}

// EventPatch carries the updatable event fields; nil means unchanged.
type EventPatch struct {
	Title           *string
	Description     *string
	Start           *time.Time
	End             *time.Time
	AllDay          *bool
	ProfileIDs      *[]string
	Recurrence      *recurrence.Rule
	Category        *string
	Priority        *string
	Location        *string
	ReminderMinutes *int
}

func (s *Store) UpdateEvent(id string, patch EventPatch) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.eventIndex(id)
	if i < 0 {
		return model.Event{}, ErrNotFound
	}
	e := &s.events[i]
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Start != nil {
		e.Start = *patch.Start
	}
	if patch.End != nil {
		e.End = *patch.End
	}
	if patch.AllDay != nil {
		e.AllDay = *patch.AllDay
	}
	if patch.ProfileIDs != nil {
		e.ProfileIDs = append([]string(nil), (*patch.ProfileIDs)...)
	}
	if patch.Recurrence != nil {
		e.Recurrence = *patch.Recurrence
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Priority != nil {
		e.Priority = *patch.Priority
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.ReminderMinutes != nil {
		e.ReminderMinutes = *patch.ReminderMinutes
	}
	e.UpdatedAt = s.now()
	s.touch()
	return cloneEvent(*e), nil
}

func (s *Store) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.eventIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.touch()
	return nil
}

func (s *Store) GetEvent(id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.eventIndex(id)
	if i < 0 {
		return model.Event{}, ErrNotFound
	}
	return cloneEvent(s.events[i]), nil
}

func (s *Store) Events() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEvents(s.events)
}

// OccurrencesBetween projects every event onto the calendar dates in
// [start, end] via its recurrence rule. Non-recurring events show up on
// their start date when it falls in range. Results are sorted by date,
// then start time.
func (s *Store) OccurrencesBetween(start, end time.Time) []model.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Occurrence
	for i := range s.events {
		e := s.events[i]
		for _, d := range recurrence.Expand(e.Start, start, end, e.Recurrence) {
			out = append(out, model.Occurrence{
				Event: cloneEvent(e),
				Date:  d.Format(model.DateLayout),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return timeOfDay(out[i].Start) < timeOfDay(out[j].Start)
	})
	return out
}

func timeOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func (s *Store) eventIndex(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

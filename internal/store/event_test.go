package store

import (
	"errors"
	"testing"
	"time"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/recurrence"
)

func TestEventCRUD(t *testing.T) {
	s := newTestStore(t)
	p := addProfile(t, s, "Ada", model.RoleParent)

	e := s.AddEvent(model.Event{
		Title:      "Piano lesson",
		Start:      time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
		ProfileIDs: []string{p.ID},
		Recurrence: recurrence.Rule{Freq: recurrence.Weekly, Interval: 1},
		CreatedBy:  p.ID,
	})
	if e.ID == "" {
		t.Fatal("expected assigned id")
	}

	title := "Piano practice"
	reminder := 30
	got, err := s.UpdateEvent(e.ID, EventPatch{Title: &title, ReminderMinutes: &reminder})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != title || got.ReminderMinutes != 30 {
		t.Errorf("patched event = %+v", got)
	}
	if got.Start != e.Start {
		t.Error("unpatched start changed")
	}

	if err := s.DeleteEvent(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetEvent(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestOccurrencesBetween(t *testing.T) {
	s := newTestStore(t)
	p := addProfile(t, s, "Ada", model.RoleParent)

	// Weekly Monday event.
	s.AddEvent(model.Event{
		Title:      "Swim class",
		Start:      time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), // Monday
		End:        time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
		ProfileIDs: []string{p.ID},
		Recurrence: recurrence.Rule{Freq: recurrence.Weekly, Interval: 1},
	})
	// One-off event inside the window.
	s.AddEvent(model.Event{
		Title:      "Recital",
		Start:      time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		ProfileIDs: []string{p.ID},
	})
	// One-off event outside the window.
	s.AddEvent(model.Event{
		Title:      "Far away",
		Start:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		ProfileIDs: []string{p.ID},
	})

	occ := s.OccurrencesBetween(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
	)

	var dates []string
	for _, o := range occ {
		dates = append(dates, o.Date+" "+o.Title)
	}
	want := []string{
		"2024-01-01 Swim class",
		"2024-01-03 Recital",
		"2024-01-08 Swim class",
	}
	if len(dates) != len(want) {
		t.Fatalf("occurrences = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("occurrences[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}

func TestOccurrencesSortedByTimeWithinDay(t *testing.T) {
	s := newTestStore(t)
	p := addProfile(t, s, "Ada", model.RoleParent)

	s.AddEvent(model.Event{
		Title:      "Evening",
		Start:      time.Date(2024, 1, 5, 19, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC),
		ProfileIDs: []string{p.ID},
	})
	s.AddEvent(model.Event{
		Title:      "Morning",
		Start:      time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		ProfileIDs: []string{p.ID},
	})

	occ := s.OccurrencesBetween(
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	)
	if len(occ) != 2 || occ[0].Title != "Morning" || occ[1].Title != "Evening" {
		t.Errorf("occurrences out of order: %+v", occ)
	}
}

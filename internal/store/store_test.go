package store

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rowanfern/hearth/internal/model"
)

// newTestStore returns an empty store with deterministic IDs.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(Snapshot{})
	n := 0
	s.newID = func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	return s
}

func addProfile(t *testing.T, s *Store, name string, role model.Role) model.Profile {
	t.Helper()
	return s.AddProfile(model.Profile{Name: name, Role: role, Color: "#336699"})
}

func TestRevIncrementsOnMutation(t *testing.T) {
	s := newTestStore(t)

	before := s.Rev()
	s.AddProfile(model.Profile{Name: "Ada"})
	if s.Rev() != before+1 {
		t.Errorf("rev = %d, want %d", s.Rev(), before+1)
	}

	// Reads must not move the counter.
	s.Profiles()
	s.StarBalances()
	if s.Rev() != before+1 {
		t.Errorf("rev moved on read: %d", s.Rev())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := addProfile(t, s, "Ada", model.RoleParent)
	if err := s.SetPIN(p.ID, "hash"); err != nil {
		t.Fatalf("set pin: %v", err)
	}
	chore := s.AddChore(model.Chore{Title: "Dishes", ProfileIDs: []string{p.ID}, RewardStars: 5})
	if _, err := s.CompleteChore(chore.ID, p.ID, "2024-02-01"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	list := s.AddList(model.List{Name: "Groceries"})
	if _, err := s.AddListItem(model.ListItem{ListID: list.ID, Name: "Milk"}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	snap := s.Snapshot()

	// The snapshot must survive JSON persistence and rebuild an equal store.
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored := New(decoded)
	if got := restored.Profiles(); len(got) != 1 || got[0].Name != "Ada" || !got[0].HasPIN {
		t.Errorf("restored profiles = %+v", got)
	}
	if hash, err := restored.PINHash(p.ID); err != nil || hash != "hash" {
		t.Errorf("restored pin hash = %q, %v", hash, err)
	}
	if !restored.IsChoreCompleted(chore.ID, p.ID, "2024-02-01") {
		t.Error("restored store lost the completion record")
	}
	gotList, err := restored.GetList(list.ID)
	if err != nil || gotList.ItemCount != 1 {
		t.Errorf("restored list = %+v, %v", gotList, err)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)
	p := addProfile(t, s, "Ada", model.RoleParent)
	chore := s.AddChore(model.Chore{Title: "Dishes", ProfileIDs: []string{p.ID}})

	snap := s.Snapshot()
	snap.Chores[0].ProfileIDs[0] = "mutated"
	snap.Chores[0].Title = "mutated"

	got, err := s.GetChore(chore.ID)
	if err != nil {
		t.Fatalf("get chore: %v", err)
	}
	if got.Title != "Dishes" || got.ProfileIDs[0] != p.ID {
		t.Errorf("snapshot mutation leaked into store: %+v", got)
	}
}

func TestInjectedSnapshotState(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Profiles: []model.Profile{{ID: "profile-seed", Name: "Seed", Role: model.RoleChild, CreatedAt: now, UpdatedAt: now}},
		Lists:    []model.List{{ID: "list-seed", Name: "Todo", Kind: model.ListTodo, ItemCount: 1}},
		ListItems: []model.ListItem{
			{ID: "item-seed", ListID: "list-seed", Name: "Pack bags"},
		},
	}
	s := New(snap)

	if !s.HasProfile("profile-seed") {
		t.Error("seed profile missing")
	}
	items := s.ListItems("list-seed")
	if len(items) != 1 || items[0].Name != "Pack bags" {
		t.Errorf("seed items = %+v", items)
	}
}

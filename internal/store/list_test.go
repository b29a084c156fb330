package store

import (
	"errors"
	"testing"

	"github.com/rowanfern/hearth/internal/model"
)

// countItems recounts items referencing the list, for checking the
// denormalized counter against the truth.
func countItems(s *Store, listID string) int {
	return len(s.ListItems(listID))
}

func TestListCountInvariant(t *testing.T) {
	s := newTestStore(t)
	list := s.AddList(model.List{Name: "Groceries"})

	check := func(label string) {
		t.Helper()
		got, err := s.GetList(list.ID)
		if err != nil {
			t.Fatalf("%s: get list: %v", label, err)
		}
		if want := countItems(s, list.ID); got.ItemCount != want {
			t.Errorf("%s: item_count = %d, actual items = %d", label, got.ItemCount, want)
		}
		if got.ItemCount < 0 {
			t.Errorf("%s: item_count went negative: %d", label, got.ItemCount)
		}
	}

	check("empty")

	a, err := s.AddListItem(model.ListItem{ListID: list.ID, Name: "Milk"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, _ := s.AddListItem(model.ListItem{ListID: list.ID, Name: "Eggs"})
	s.AddListItem(model.ListItem{ListID: list.ID, Name: "Bread"})
	check("after adds")

	if err := s.DeleteListItem(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	check("after delete")

	// Toggling must not move the count.
	if _, err := s.ToggleListItem(b.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	check("after toggle")

	s.DeleteListItem(b.ID)
	check("after second delete")
}

func TestDeleteListItemNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteListItem("item-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddListItemUnknownList(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddListItem(model.ListItem{ListID: "list-missing", Name: "Milk"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestToggleListItem(t *testing.T) {
	s := newTestStore(t)
	list := s.AddList(model.List{Name: "Todo", Kind: model.ListTodo})
	item, _ := s.AddListItem(model.ListItem{ListID: list.ID, Name: "Rake leaves"})

	got, err := s.ToggleListItem(item.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.Checked {
		t.Error("first toggle should check the item")
	}
	got, _ = s.ToggleListItem(item.ID)
	if got.Checked {
		t.Error("second toggle should uncheck the item")
	}
}

func TestDeleteListCascades(t *testing.T) {
	s := newTestStore(t)
	list := s.AddList(model.List{Name: "Groceries"})
	other := s.AddList(model.List{Name: "Hardware"})
	s.AddListItem(model.ListItem{ListID: list.ID, Name: "Milk"})
	s.AddListItem(model.ListItem{ListID: list.ID, Name: "Eggs"})
	kept, _ := s.AddListItem(model.ListItem{ListID: other.ID, Name: "Screws"})

	if err := s.DeleteList(list.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if items := s.ListItems(list.ID); len(items) != 0 {
		t.Errorf("orphaned items remain: %v", items)
	}
	if items := s.ListItems(other.ID); len(items) != 1 || items[0].ID != kept.ID {
		t.Errorf("unrelated list lost items: %v", items)
	}
}

func TestClearCheckedItems(t *testing.T) {
	s := newTestStore(t)
	list := s.AddList(model.List{Name: "Groceries"})
	milk, _ := s.AddListItem(model.ListItem{ListID: list.ID, Name: "Milk"})
	s.AddListItem(model.ListItem{ListID: list.ID, Name: "Eggs"})
	bread, _ := s.AddListItem(model.ListItem{ListID: list.ID, Name: "Bread"})

	s.ToggleListItem(milk.ID)
	s.ToggleListItem(bread.ID)

	if err := s.ClearCheckedItems(list.ID); err != nil {
		t.Fatalf("clear checked: %v", err)
	}

	items := s.ListItems(list.ID)
	if len(items) != 1 || items[0].Name != "Eggs" {
		t.Errorf("remaining items = %v, want just Eggs", items)
	}
	got, _ := s.GetList(list.ID)
	if got.ItemCount != 1 {
		t.Errorf("item_count = %d, want 1", got.ItemCount)
	}
}

func TestClearCheckedOnItemCountUnderflow(t *testing.T) {
	// A seeded snapshot can carry an understated count; the floor keeps the
	// counter from going negative no matter what deletes follow.
	s := New(Snapshot{
		Lists: []model.List{{ID: "list-1", Name: "Odd", ItemCount: 0}},
		ListItems: []model.ListItem{
			{ID: "item-1", ListID: "list-1", Name: "Ghost", Checked: true},
		},
	})

	if err := s.ClearCheckedItems("list-1"); err != nil {
		t.Fatalf("clear checked: %v", err)
	}
	got, _ := s.GetList("list-1")
	if got.ItemCount != 0 {
		t.Errorf("item_count = %d, want floor of 0", got.ItemCount)
	}
}

func TestListUpdatePatch(t *testing.T) {
	s := newTestStore(t)
	list := s.AddList(model.List{Name: "Groceries"})

	name := "Weekly groceries"
	got, err := s.UpdateList(list.ID, ListPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != name || got.Kind != model.ListShopping {
		t.Errorf("patched list = %+v", got)
	}
}

func TestAddListItemAutoCategory(t *testing.T) {
	s := newTestStore(t)
	shopping := s.AddList(model.List{Name: "Groceries", Kind: model.ListShopping})
	todos := s.AddList(model.List{Name: "Chores", Kind: model.ListTodo})

	item, err := s.AddListItem(model.ListItem{ListID: shopping.ID, Name: "bananas"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Category != "Produce" {
		t.Errorf("category = %q, want Produce", item.Category)
	}

	// An explicit category is never overwritten.
	item, _ = s.AddListItem(model.ListItem{ListID: shopping.ID, Name: "milk", Category: "Staples"})
	if item.Category != "Staples" {
		t.Errorf("category = %q, want Staples", item.Category)
	}

	// Todo lists get no aisle guessing.
	item, _ = s.AddListItem(model.ListItem{ListID: todos.ID, Name: "milk"})
	if item.Category != "" {
		t.Errorf("todo item category = %q, want empty", item.Category)
	}
}

package store

import (
	"github.com/rowanfern/hearth/internal/grocery"
	"github.com/rowanfern/hearth/internal/model"
)

// AddList assigns an ID and timestamps and appends the list with a zero
// item count.
func (s *Store) AddList(l model.List) model.List {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = s.newID("list")
	if l.Kind == "" {
		l.Kind = model.ListShopping
	}
	l.ItemCount = 0
	l.CreatedAt = s.now()
	l.UpdatedAt = l.CreatedAt
	s.lists = append(s.lists, l)
	s.touch()
	return l
}

// ListPatch carries the updatable list fields; nil means unchanged.
// ItemCount is derived and cannot be patched.
type ListPatch struct {
	Name *string
	Kind *model.ListKind
}

func (s *Store) UpdateList(id string, patch ListPatch) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(id)
	if i < 0 {
		return model.List{}, ErrNotFound
	}
	l := &s.lists[i]
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Kind != nil {
		l.Kind = *patch.Kind
	}
	l.UpdatedAt = s.now()
	s.touch()
	return *l, nil
}

// DeleteList removes the list and cascades to its items.
func (s *Store) DeleteList(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.lists = append(s.lists[:i], s.lists[i+1:]...)

	items := s.listItems[:0]
	for _, it := range s.listItems {
		if it.ListID != id {
			items = append(items, it)
		}
	}
	s.listItems = items
	s.touch()
	return nil
}

func (s *Store) GetList(id string) (model.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.listIndex(id)
	if i < 0 {
		return model.List{}, ErrNotFound
	}
	return s.lists[i], nil
}

func (s *Store) Lists() []model.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.List(nil), s.lists...)
}

// AddListItem appends the item and bumps the owning list's item count.
func (s *Store) AddListItem(item model.ListItem) (model.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(item.ListID)
	if i < 0 {
		return model.ListItem{}, ErrNotFound
	}

	item.ID = s.newID("item")
	if item.Category == "" && s.lists[i].Kind == model.ListShopping {
		item.Category = grocery.Categorize(item.Name)
	}
	item.CreatedAt = s.now()
	s.listItems = append(s.listItems, item)
	s.lists[i].ItemCount++
	s.lists[i].UpdatedAt = s.now()
	s.touch()
	return item, nil
}

// ListItemPatch carries the updatable item fields; nil means unchanged.
// Checked moves only through ToggleListItem.
type ListItemPatch struct {
	Name     *string
	Quantity *string
	Notes    *string
	Category *string
}

func (s *Store) UpdateListItem(id string, patch ListItemPatch) (model.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listItemIndex(id)
	if i < 0 {
		return model.ListItem{}, ErrNotFound
	}
	it := &s.listItems[i]
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}
	if patch.Notes != nil {
		it.Notes = *patch.Notes
	}
	if patch.Category != nil {
		it.Category = *patch.Category
	}
	s.touch()
	return *it, nil
}

// DeleteListItem removes the item and decrements the owning list's count,
// floored at zero.
func (s *Store) DeleteListItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listItemIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	listID := s.listItems[i].ListID
	s.listItems = append(s.listItems[:i], s.listItems[i+1:]...)
	s.decrementCount(listID)
	s.touch()
	return nil
}

// ToggleListItem flips the checked flag. The item count is untouched.
func (s *Store) ToggleListItem(id string) (model.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listItemIndex(id)
	if i < 0 {
		return model.ListItem{}, ErrNotFound
	}
	s.listItems[i].Checked = !s.listItems[i].Checked
	s.touch()
	return s.listItems[i], nil
}

// ClearCheckedItems removes every checked item from the list in one pass,
// adjusting the count accordingly.
func (s *Store) ClearCheckedItems(listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	li := s.listIndex(listID)
	if li < 0 {
		return ErrNotFound
	}

	items := s.listItems[:0]
	removed := 0
	for _, it := range s.listItems {
		if it.ListID == listID && it.Checked {
			removed++
			continue
		}
		items = append(items, it)
	}
	s.listItems = items
	for k := 0; k < removed; k++ {
		s.decrementCount(listID)
	}
	if removed > 0 {
		s.lists[li].UpdatedAt = s.now()
	}
	s.touch()
	return nil
}

func (s *Store) ListItems(listID string) []model.ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ListItem
	for _, it := range s.listItems {
		if it.ListID == listID {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) decrementCount(listID string) {
	i := s.listIndex(listID)
	if i < 0 {
		return
	}
	if s.lists[i].ItemCount > 0 {
		s.lists[i].ItemCount--
	}
	s.lists[i].UpdatedAt = s.now()
}

func (s *Store) listIndex(id string) int {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) listItemIndex(id string) int {
	for i := range s.listItems {
		if s.listItems[i].ID == id {
			return i
		}
	}
	return -1
}

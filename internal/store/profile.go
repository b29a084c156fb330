package store

import (
	"github.com/rowanfern/hearth/internal/model"
)

// AddProfile assigns an ID and timestamps and appends the profile.
func (s *Store) AddProfile(p model.Profile) model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.newID("profile")
	if p.Role == "" {
		p.Role = model.RoleChild
	}
	p.HasPIN = false
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.profiles = append(s.profiles, p)
	s.touch()
	return p
}

// ProfilePatch carries the updatable profile fields; nil means unchanged.
type ProfilePatch struct {
	Name        *string
	Role        *model.Role
	Color       *string
	AvatarEmoji *string
}

func (s *Store) UpdateProfile(id string, patch ProfilePatch) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(id)
	if i < 0 {
		return model.Profile{}, ErrNotFound
	}
	p := &s.profiles[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.AvatarEmoji != nil {
		p.AvatarEmoji = *patch.AvatarEmoji
	}
	p.UpdatedAt = s.now()
	s.touch()
	return *p, nil
}

// DeleteProfile removes the profile and scrubs its references: it is
// stripped from event, chore, and reward assignee sets and its push
// subscriptions and PIN are dropped. Completion records and redemptions
// are history and stay untouched.
func (s *Store) DeleteProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)

	for j := range s.events {
		s.events[j].ProfileIDs = removeString(s.events[j].ProfileIDs, id)
	}
	for j := range s.chores {
		s.chores[j].ProfileIDs = removeString(s.chores[j].ProfileIDs, id)
	}
	for j := range s.rewards {
		s.rewards[j].ProfileIDs = removeString(s.rewards[j].ProfileIDs, id)
	}

	subs := s.subs[:0]
	for _, sub := range s.subs {
		if sub.ProfileID != id {
			subs = append(subs, sub)
		}
	}
	s.subs = subs

	delete(s.pins, id)
	s.touch()
	return nil
}

func (s *Store) GetProfile(id string) (model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.profileIndex(id)
	if i < 0 {
		return model.Profile{}, ErrNotFound
	}
	return s.profiles[i], nil
}

func (s *Store) Profiles() []model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Profile(nil), s.profiles...)
}

// SetPIN stores a bcrypt hash for the profile and flips HasPIN. The store
// never sees the raw PIN.
func (s *Store) SetPIN(id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.pins[id] = hash
	s.profiles[i].HasPIN = true
	s.profiles[i].UpdatedAt = s.now()
	s.touch()
	return nil
}

func (s *Store) ClearPIN(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.profileIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	delete(s.pins, id)
	s.profiles[i].HasPIN = false
	s.profiles[i].UpdatedAt = s.now()
	s.touch()
	return nil
}

// PINHash returns the stored hash, or ErrNotFound if the profile does not
// exist or has no PIN set.
func (s *Store) PINHash(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hash, ok := s.pins[id]
	if !ok {
		return "", ErrNotFound
	}
	return hash, nil
}

func (s *Store) profileIndex(id string) int {
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			return i
		}
	}
	return -1
}

// HasProfile reports whether a profile with the given ID exists.
func (s *Store) HasProfile(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileIndex(id) >= 0
}

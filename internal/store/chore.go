package store

import (
	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/recurrence"
)

// AddChore assigns an ID and timestamps and appends the chore. StartDate
// defaults to today so a fresh chore always has a recurrence anchor.
func (s *Store) AddChore(c model.Chore) model.Chore {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.newID("chore")
	if c.ProfileIDs == nil {
		c.ProfileIDs = []string{}
	}
	if c.StartDate == "" {
		c.StartDate = s.now().Format(model.DateLayout)
	}
	if c.TimeOfDay == "" {
		c.TimeOfDay = model.TimeOfDayAny
	}
	if c.Type == "" {
		c.Type = model.ChoreAnytime
	}
	c.CompletedBy = []model.CompletionRecord{}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.chores = append(s.chores, cloneChore(c))
	s.touch()
	return c
}

// ChorePatch carries the updatable chore fields; nil means unchanged.
// Completion records are never patched directly; they move only through
// the complete/uncomplete/approve/reject operations.
type ChorePatch struct {
	Title            *string
	ProfileIDs       *[]string
	StartDate        *string
	TimeOfDay        *model.TimeOfDay
	Type             *model.ChoreType
	ScheduledTime    *string
	Recurrence       *recurrence.Rule
	RewardStars      *int
	IsShared         *bool
	RequiresApproval *bool
}

func (s *Store) UpdateChore(id string, patch ChorePatch) (model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.choreIndex(id)
	if i < 0 {
		return model.Chore{}, ErrNotFound
	}
	c := &s.chores[i]
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.ProfileIDs != nil {
		c.ProfileIDs = append([]string(nil), (*patch.ProfileIDs)...)
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.TimeOfDay != nil {
		c.TimeOfDay = *patch.TimeOfDay
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if patch.ScheduledTime != nil {
		c.ScheduledTime = *patch.ScheduledTime
	}
	if patch.Recurrence != nil {
		c.Recurrence = *patch.Recurrence
	}
	if patch.RewardStars != nil {
		c.RewardStars = *patch.RewardStars
	}
	if patch.IsShared != nil {
		c.IsShared = *patch.IsShared
	}
	if patch.RequiresApproval != nil {
		c.RequiresApproval = *patch.RequiresApproval
	}
	c.UpdatedAt = s.now()
	s.touch()
	return cloneChore(*c), nil
}

func (s *Store) DeleteChore(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.choreIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.chores = append(s.chores[:i], s.chores[i+1:]...)
	s.touch()
	return nil
}

func (s *Store) GetChore(id string) (model.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.choreIndex(id)
	if i < 0 {
		return model.Chore{}, ErrNotFound
	}
	return cloneChore(s.chores[i]), nil
}

func (s *Store) Chores() []model.Chore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneChores(s.chores)
}

// CompleteChore records that profileID finished the chore on date
// (DateLayout). A second completion for the same profile and date is a
// no-op. For shared chores any other profile's record on that date is
// removed first, so one completion stands per date. The new record starts
// as pending approval when the chore requires it, approved otherwise.
func (s *Store) CompleteChore(choreID, profileID, date string) (model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.choreIndex(choreID)
	if i < 0 {
		return model.Chore{}, ErrNotFound
	}
	c := &s.chores[i]

	if completionIndex(c.CompletedBy, profileID, date) >= 0 {
		return cloneChore(*c), nil
	}

	if c.IsShared {
		kept := c.CompletedBy[:0]
		for _, rec := range c.CompletedBy {
			if rec.Date != date {
				kept = append(kept, rec)
			}
		}
		c.CompletedBy = kept
	}

	status := model.CompletionApproved
	if c.RequiresApproval {
		status = model.CompletionPendingApproval
	}
	c.CompletedBy = append(c.CompletedBy, model.CompletionRecord{
		Date:        date,
		ProfileID:   profileID,
		CompletedAt: s.now(),
		Status:      status,
	})
	s.touch()
	return cloneChore(*c), nil
}

// UncompleteChore deletes the (profileID, date) record regardless of its
// status. A missing record is a no-op: undo is idempotent.
func (s *Store) UncompleteChore(choreID, profileID, date string) (model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.choreIndex(choreID)
	if i < 0 {
		return model.Chore{}, ErrNotFound
	}
	c := &s.chores[i]

	j := completionIndex(c.CompletedBy, profileID, date)
	if j >= 0 {
		c.CompletedBy = append(c.CompletedBy[:j], c.CompletedBy[j+1:]...)
		s.touch()
	}
	return cloneChore(*c), nil
}

// ApproveChore moves the (profileID, date) record to approved and stamps
// the approver.
func (s *Store) ApproveChore(choreID, profileID, date, approvedBy string) (model.Chore, error) {
	return s.resolveCompletion(choreID, profileID, date, approvedBy, model.CompletionApproved)
}

// RejectChore moves the (profileID, date) record to rejected; the record
// stays so the chore shows as attempted-but-rejected.
func (s *Store) RejectChore(choreID, profileID, date, rejectedBy string) (model.Chore, error) {
	return s.resolveCompletion(choreID, profileID, date, rejectedBy, model.CompletionRejected)
}

func (s *Store) resolveCompletion(choreID, profileID, date, by string, status model.CompletionStatus) (model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.choreIndex(choreID)
	if i < 0 {
		return model.Chore{}, ErrNotFound
	}
	c := &s.chores[i]

	j := completionIndex(c.CompletedBy, profileID, date)
	if j < 0 {
		return model.Chore{}, ErrNotFound
	}
	now := s.now()
	rec := &c.CompletedBy[j]
	rec.Status = status
	rec.ApprovedBy = by
	rec.ApprovedAt = &now
	s.touch()
	return cloneChore(*c), nil
}

// IsChoreCompleted reports whether profileID has a counted completion for
// the chore on date. Pending and rejected records do not count.
func (s *Store) IsChoreCompleted(choreID, profileID, date string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.choreIndex(choreID)
	if i < 0 {
		return false
	}
	j := completionIndex(s.chores[i].CompletedBy, profileID, date)
	return j >= 0 && s.chores[i].CompletedBy[j].Status.Counted()
}

// PendingApprovals returns every pending-approval record across all
// chores, paired with its chore.
func (s *Store) PendingApprovals() []PendingApproval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []PendingApproval
	for i := range s.chores {
		for _, rec := range s.chores[i].CompletedBy {
			if rec.Status == model.CompletionPendingApproval {
				out = append(out, PendingApproval{
					Chore:  cloneChore(s.chores[i]),
					Record: rec,
				})
			}
		}
	}
	return out
}

// PendingApproval joins a pending completion record with its chore for
// the approval queue view.
type PendingApproval struct {
	Chore  model.Chore            `json:"chore"`
	Record model.CompletionRecord `json:"record"`
}

func (s *Store) choreIndex(id string) int {
	for i := range s.chores {
		if s.chores[i].ID == id {
			return i
		}
	}
	return -1
}

func completionIndex(records []model.CompletionRecord, profileID, date string) int {
	for i := range records {
		if records[i].ProfileID == profileID && records[i].Date == date {
			return i
		}
	}
	return -1
}

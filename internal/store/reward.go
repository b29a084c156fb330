package store

import "github.com/rowanfern/hearth/internal/model"

// AddReward assigns an ID and timestamps and appends the reward.
func (s *Store) AddReward(r model.Reward) model.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.newID("reward")
	if r.ProfileIDs == nil {
		r.ProfileIDs = []string{}
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	s.rewards = append(s.rewards, cloneReward(r))
	s.touch()
	return r
}

// RewardPatch carries the updatable reward fields; nil means unchanged.
type RewardPatch struct {
	Title       *string
	Description *string
	StarCost    *int
	ProfileIDs  *[]string
	Active      *bool
}

func (s *Store) UpdateReward(id string, patch RewardPatch) (model.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.rewardIndex(id)
	if i < 0 {
		return model.Reward{}, ErrNotFound
	}
	r := &s.rewards[i]
	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.StarCost != nil {
		r.StarCost = *patch.StarCost
	}
	if patch.ProfileIDs != nil {
		r.ProfileIDs = append([]string(nil), (*patch.ProfileIDs)...)
	}
	if patch.Active != nil {
		r.Active = *patch.Active
	}
	r.UpdatedAt = s.now()
	s.touch()
	return cloneReward(*r), nil
}

// DeleteReward removes the reward. Past redemptions keep their copied
// star cost, so they survive the delete.
func (s *Store) DeleteReward(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.rewardIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.rewards = append(s.rewards[:i], s.rewards[i+1:]...)
	s.touch()
	return nil
}

func (s *Store) GetReward(id string) (model.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.rewardIndex(id)
	if i < 0 {
		return model.Reward{}, ErrNotFound
	}
	return cloneReward(s.rewards[i]), nil
}

func (s *Store) Rewards() []model.Reward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRewards(s.rewards)
}

// RedeemReward creates a pending redemption for the profile, copying the
// reward's current star cost.
func (s *Store) RedeemReward(rewardID, profileID string) (model.RewardRedemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.rewardIndex(rewardID)
	if i < 0 {
		return model.RewardRedemption{}, ErrNotFound
	}

	red := model.RewardRedemption{
		ID:         s.newID("redemption"),
		RewardID:   rewardID,
		ProfileID:  profileID,
		StarsSpent: s.rewards[i].StarCost,
		Status:     model.RedemptionPending,
		RedeemedAt: s.now(),
	}
	s.redemptions = append(s.redemptions, red)
	s.touch()
	return red, nil
}

// UpdateRedemptionStatus moves a redemption through its workflow. A
// cancelled redemption stops counting against the profile's balance.
func (s *Store) UpdateRedemptionStatus(id string, status model.RedemptionStatus) (model.RewardRedemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.redemptions {
		if s.redemptions[i].ID == id {
			s.redemptions[i].Status = status
			s.touch()
			return s.redemptions[i], nil
		}
	}
	return model.RewardRedemption{}, ErrNotFound
}

// Redemptions returns redemptions for one profile, or all of them when
// profileID is empty.
func (s *Store) Redemptions(profileID string) []model.RewardRedemption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.RewardRedemption
	for _, red := range s.redemptions {
		if profileID == "" || red.ProfileID == profileID {
			out = append(out, red)
		}
	}
	return out
}

// StarBalance derives the profile's star ledger: stars from counted chore
// completions minus stars spent on non-cancelled redemptions. Nothing is
// stored; the answer is recomputed from the collections every call.
func (s *Store) StarBalance(profileID string) (model.StarBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.profileIndex(profileID)
	if i < 0 {
		return model.StarBalance{}, ErrNotFound
	}
	b := model.StarBalance{
		ProfileID:   profileID,
		ProfileName: s.profiles[i].Name,
	}
	for j := range s.chores {
		for _, rec := range s.chores[j].CompletedBy {
			if rec.ProfileID == profileID && rec.Status.Counted() {
				b.Earned += s.chores[j].RewardStars
			}
		}
	}
	for _, red := range s.redemptions {
		if red.ProfileID == profileID && red.Status != model.RedemptionCancelled {
			b.Spent += red.StarsSpent
		}
	}
	b.Balance = b.Earned - b.Spent
	return b, nil
}

// StarBalances returns the ledger for every profile, in profile order.
func (s *Store) StarBalances() []model.StarBalance {
	s.mu.RLock()
	ids := make([]string, 0, len(s.profiles))
	for _, p := range s.profiles {
		ids = append(ids, p.ID)
	}
	s.mu.RUnlock()

	out := make([]model.StarBalance, 0, len(ids))
	for _, id := range ids {
		if b, err := s.StarBalance(id); err == nil {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) rewardIndex(id string) int {
	for i := range s.rewards {
		if s.rewards[i].ID == id {
			return i
		}
	}
	return -1
}

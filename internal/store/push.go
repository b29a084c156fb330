package store

import "github.com/rowanfern/hearth/internal/model"

// AddSubscription registers a push endpoint. Re-subscribing an existing
// endpoint replaces the old registration instead of duplicating it.
func (s *Store) AddSubscription(sub model.PushSubscription) model.PushSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subs {
		if s.subs[i].Endpoint == sub.Endpoint {
			sub.ID = s.subs[i].ID
			sub.CreatedAt = s.subs[i].CreatedAt
			s.subs[i] = sub
			s.touch()
			return sub
		}
	}

	sub.ID = s.newID("sub")
	sub.CreatedAt = s.now()
	s.subs = append(s.subs, sub)
	s.touch()
	return sub
}

// DeleteSubscriptionByEndpoint drops the registration for an endpoint,
// e.g. after the push service reports it expired.
func (s *Store) DeleteSubscriptionByEndpoint(endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subs {
		if s.subs[i].Endpoint == endpoint {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// Subscriptions returns every registered push subscription.
func (s *Store) Subscriptions() []model.PushSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PushSubscription(nil), s.subs...)
}

// SubscriptionsFor returns subscriptions relevant to a profile: its own
// plus any device-wide ones registered without a profile.
func (s *Store) SubscriptionsFor(profileID string) []model.PushSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.PushSubscription
	for _, sub := range s.subs {
		if sub.ProfileID == "" || sub.ProfileID == profileID {
			out = append(out, sub)
		}
	}
	return out
}

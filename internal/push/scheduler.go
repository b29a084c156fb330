package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rowanfern/hearth/internal/chore"
	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/store"
)

const (
	tickInterval = 60 * time.Second

	// choreReminderLead is how long before a timed chore's scheduled time
	// its reminder fires.
	choreReminderLead = 10 * time.Minute

	// sentRetention bounds the dedupe map. Anything older than this can
	// never fire again, so it is safe to forget.
	sentRetention = 48 * time.Hour
)

// Sender delivers a payload to a single subscription. *Service implements it;
// tests substitute a fake.
type Sender interface {
	Send(sub *model.PushSubscription, payload Payload) error
}

// Scheduler periodically checks the store for reminders to send: event
// occurrences with a reminder lead time, and timed chores approaching their
// scheduled time.
type Scheduler struct {
	sender Sender
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	sent   map[string]time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a notification scheduler.
func NewScheduler(sender Sender, st *store.Store, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sender: sender,
		store:  st,
		logger: logger,
		now:    time.Now,
		sent:   make(map[string]time.Time),
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick() {
	now := s.now().UTC()
	s.checkEventReminders(now)
	s.checkChoreReminders(now)
	s.pruneSent(now)
}

// checkEventReminders fires a reminder for every event occurrence whose
// reminder window covers now. Occurrences are projected for today and
// tomorrow so reminders that lead past midnight still fire.
func (s *Scheduler) checkEventReminders(now time.Time) {
	occurrences := s.store.OccurrencesBetween(now, now.Add(24*time.Hour))

	for _, occ := range occurrences {
		if occ.ReminderMinutes <= 0 || occ.AllDay {
			continue
		}

		start, err := occurrenceStart(occ)
		if err != nil {
			continue
		}
		lead := time.Duration(occ.ReminderMinutes) * time.Minute
		fireAt := start.Add(-lead)
		if now.Before(fireAt) || !now.Before(start) {
			continue
		}

		key := fmt.Sprintf("event|%s|%s", occ.ID, occ.Date)
		if !s.markSent(key, now) {
			continue
		}

		payload := Payload{
			Title: "Upcoming Event",
			Body:  fmt.Sprintf("%s starts in %d minutes", occ.Title, occ.ReminderMinutes),
			URL:   "/calendar",
			Tag:   key,
		}
		s.notify(occ.ProfileIDs, payload)
	}
}

// checkChoreReminders fires a reminder for every timed chore due today that
// is inside its lead window and not yet completed by all assignees.
func (s *Scheduler) checkChoreReminders(now time.Time) {
	today := now.Format(model.DateLayout)

	for _, c := range s.store.Chores() {
		if c.Type != model.ChoreTimed || c.ScheduledTime == "" {
			continue
		}
		if !chore.IsDueOn(c, now) {
			continue
		}

		scheduled, err := time.Parse(model.DateLayout+" 15:04", today+" "+c.ScheduledTime)
		if err != nil {
			continue
		}
		scheduled = scheduled.UTC()
		if now.Before(scheduled.Add(-choreReminderLead)) || !now.Before(scheduled) {
			continue
		}

		// Only nag assignees who have not finished it yet.
		var pending []string
		for _, pid := range c.ProfileIDs {
			if !s.store.IsChoreCompleted(c.ID, pid, today) {
				pending = append(pending, pid)
			}
		}
		if len(pending) == 0 {
			continue
		}

		key := fmt.Sprintf("chore|%s|%s", c.ID, today)
		if !s.markSent(key, now) {
			continue
		}

		payload := Payload{
			Title: "Chore Reminder",
			Body:  fmt.Sprintf("%s is scheduled for %s", c.Title, c.ScheduledTime),
			URL:   "/chores",
			Tag:   key,
		}
		s.notify(pending, payload)
	}
}

// notify sends the payload to every subscription belonging to the given
// profiles, or to all subscriptions when profileIDs is empty. Expired
// subscriptions are removed from the store.
func (s *Scheduler) notify(profileIDs []string, payload Payload) {
	var subs []model.PushSubscription
	if len(profileIDs) == 0 {
		subs = s.store.Subscriptions()
	} else {
		seen := make(map[string]bool)
		for _, pid := range profileIDs {
			for _, sub := range s.store.SubscriptionsFor(pid) {
				if seen[sub.Endpoint] {
					continue
				}
				seen[sub.Endpoint] = true
				subs = append(subs, sub)
			}
		}
	}

	for i := range subs {
		if err := s.sender.Send(&subs[i], payload); err != nil {
			if errors.Is(err, ErrExpired) {
				s.store.DeleteSubscriptionByEndpoint(subs[i].Endpoint)
				s.logger.Info("removed expired push subscription", "endpoint", subs[i].Endpoint)
			} else {
				s.logger.Warn("send push", "tag", payload.Tag, "error", err)
			}
		}
	}
}

// markSent records the key and reports whether it was newly recorded.
func (s *Scheduler) markSent(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sent[key]; ok {
		return false
	}
	s.sent[key] = now
	return true
}

func (s *Scheduler) pruneSent(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, at := range s.sent {
		if now.Sub(at) > sentRetention {
			delete(s.sent, key)
		}
	}
}

// occurrenceStart combines the occurrence date with the event's start clock
// time to get the instant this occurrence begins.
func occurrenceStart(occ model.Occurrence) (time.Time, error) {
	day, err := time.Parse(model.DateLayout, occ.Date)
	if err != nil {
		return time.Time{}, err
	}
	st := occ.Start.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(),
		st.Hour(), st.Minute(), 0, 0, time.UTC), nil
}

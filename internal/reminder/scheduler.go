// Package reminder decides when habit reminders fire. A Scheduler owns a
// polling loop that checks every enabled rule once per tick and dispatches a
// notification for each rule whose time and weekday match, at most once per
// rule per local calendar day.
package reminder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/dateutil"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
)

// Dispatcher delivers a single notification. Implementations are expected to
// be best-effort: a returned error means the notification was not shown and
// the scheduler will retry the rule on its next matching tick.
type Dispatcher interface {
	Dispatch(title, body string) error
}

// Scheduler evaluates reminder rules on a repeating timer. Rules and firing
// records live in storage, so schedules survive restarts; the scheduler
// itself holds no rule state. Known limitation: if no tick lands inside a
// rule's minute (process stopped, machine asleep), the rule silently skips
// that day — there is no catch-up.
type Scheduler struct {
	store      storage.Provider
	dispatcher Dispatcher
	now        func() time.Time

	mu      sync.Mutex
	ticking bool
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func New(store storage.Provider, dispatcher Dispatcher) *Scheduler {
	return &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// UpsertRule validates and persists a rule. Saving an existing id overwrites
// the stored rule; the rule's firing record is left untouched so an edit
// cannot re-fire a reminder that already fired today.
func (s *Scheduler) UpsertRule(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.store.SaveReminder(r)
}

// RemoveRule deletes a rule and its firing record. Removing an absent rule
// is a no-op.
func (s *Scheduler) RemoveRule(id string) error {
	return s.store.DeleteReminder(id)
}

// SetClock overrides the time source used by the tick loop. Used to pin the
// loop to a configured timezone.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Tick evaluates every rule against now. Rules are independent: a dispatch
// failure on one rule is logged and does not stop evaluation of the rest.
// The firing record is written only after a successful dispatch, so a failed
// dispatch is retried on the next matching tick rather than silently
// suppressed for the day. A record-write failure after a successful dispatch
// is returned to the caller; the accepted risk is a duplicate notification
// on a later tick.
//
// Ticks never overlap: if a tick arrives while a previous one is still
// dispatching, it is skipped.
func (s *Scheduler) Tick(now time.Time) error {
	s.mu.Lock()
	if s.ticking {
		s.mu.Unlock()
		logger.Debug("Tick still in flight, skipping")
		return nil
	}
	s.ticking = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.ticking = false
		s.mu.Unlock()
	}()

	reminders, err := s.store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	minute := dateutil.MinuteOf(now)
	today := dateutil.DayOf(now).String()
	weekday := now.Weekday()

	var errs []error
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		if !r.MatchesMinute(minute) || !r.IsDueOn(weekday) {
			continue
		}

		last, err := s.store.GetLastFired(r.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("reminder %s: failed to read firing record: %w", r.ID, err))
			continue
		}
		if last == today {
			continue
		}

		if err := s.dispatcher.Dispatch(r.Title, r.Body); err != nil {
			// Not recorded: the rule stays eligible and is retried on the
			// next matching tick.
			logger.Warn("Reminder dispatch failed", "id", r.ID, "title", r.Title, "error", err)
			continue
		}

		logger.Info("Reminder fired", "id", r.ID, "title", r.Title, "day", today)

		if err := s.store.SetLastFired(r.ID, today); err != nil {
			// Dispatched but not recorded: a duplicate notification is
			// possible on a later tick today.
			errs = append(errs, fmt.Errorf("reminder %s: dispatched but failed to record firing: %w", r.ID, err))
		}
	}

	return errors.Join(errs...)
}

// Start begins calling Tick on a repeating timer. Calling Start while the
// scheduler is already running is a no-op; it never creates a second timer.
// An interval of zero or less uses the default tick interval.
func (s *Scheduler) Start(interval time.Duration) {
	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done, now := s.stop, s.done, s.now
	s.mu.Unlock()

	logger.Info("Reminder scheduler started", "interval", interval)

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := s.Tick(now()); err != nil {
					logger.Error("Reminder tick failed", "error", err)
				}
			}
		}
	}()
}

// Stop halts the timer. An in-flight tick is allowed to complete; Stop
// returns once the loop has exited. Stopping a scheduler that is not running
// is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done

	logger.Info("Reminder scheduler stopped")
}

// Running reports whether the timer loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

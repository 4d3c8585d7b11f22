package reminder

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
)

type fakeDispatcher struct {
	mu     sync.Mutex
	fired  []string
	failOn map[string]bool
}

func (d *fakeDispatcher) Dispatch(title, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failOn[title] {
		return fmt.Errorf("permission denied")
	}
	d.fired = append(d.fired, title)
	return nil
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.fired)
}

func setupScheduler(t *testing.T) (*Scheduler, *fakeDispatcher, storage.Provider) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "pulse.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	dispatcher := &fakeDispatcher{failOn: make(map[string]bool)}
	return New(store, dispatcher), dispatcher, store
}

func mustUpsert(t *testing.T, s *Scheduler, r models.Reminder) {
	t.Helper()
	if err := s.UpsertRule(r); err != nil {
		t.Fatalf("failed to upsert rule: %v", err)
	}
}

// 2024-03-11 is a Monday.
var monday9am = time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

func TestTick_FiresOnMatch(t *testing.T) {
	s, d, store := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:       "run",
		Title:    "Morning run",
		Body:     "Time to get moving",
		Time:     "09:00",
		Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		Enabled:  true,
	})

	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if d.count() != 1 {
		t.Fatalf("expected 1 dispatch, got %d", d.count())
	}

	last, err := store.GetLastFired("run")
	if err != nil {
		t.Fatalf("failed to read firing record: %v", err)
	}
	if last != "2024-03-11" {
		t.Errorf("firing record = %q, want 2024-03-11", last)
	}
}

func TestTick_IdempotentWithinMinute(t *testing.T) {
	s, d, _ := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	})

	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("first Tick() error = %v", err)
	}
	// Second tick lands at 09:00:59, still inside the matching minute and
	// the same calendar day.
	if err := s.Tick(monday9am.Add(59 * time.Second)); err != nil {
		t.Fatalf("second Tick() error = %v", err)
	}

	if d.count() != 1 {
		t.Errorf("expected exactly 1 dispatch, got %d", d.count())
	}
}

func TestTick_FiresAgainNextDay(t *testing.T) {
	s, d, _ := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	})

	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if err := s.Tick(monday9am.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if d.count() != 2 {
		t.Errorf("expected 2 dispatches across two days, got %d", d.count())
	}
}

func TestTick_WeekdayFilter(t *testing.T) {
	weekdaysOnly := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

	tests := []struct {
		name     string
		now      time.Time
		wantFire bool
	}{
		{name: "monday fires", now: monday9am, wantFire: true},
		{name: "friday fires", now: monday9am.AddDate(0, 0, 4), wantFire: true},
		{name: "saturday never fires", now: monday9am.AddDate(0, 0, 5), wantFire: false},
		{name: "sunday never fires", now: monday9am.AddDate(0, 0, 6), wantFire: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d, _ := setupScheduler(t)
			mustUpsert(t, s, models.Reminder{
				ID:       "gym",
				Title:    "Gym",
				Time:     "09:00",
				Weekdays: weekdaysOnly,
				Enabled:  true,
			})

			if err := s.Tick(tt.now); err != nil {
				t.Fatalf("Tick() error = %v", err)
			}

			fired := d.count() > 0
			if fired != tt.wantFire {
				t.Errorf("fired = %v, want %v", fired, tt.wantFire)
			}
		})
	}
}

func TestTick_EmptyWeekdaysFiresEveryDay(t *testing.T) {
	s, d, _ := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "water",
		Title:   "Drink water",
		Time:    "09:00",
		Enabled: true,
	})

	// One tick per day for a full week
	for i := 0; i < 7; i++ {
		if err := s.Tick(monday9am.AddDate(0, 0, i)); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}

	if d.count() != 7 {
		t.Errorf("expected 7 dispatches, got %d", d.count())
	}
}

func TestTick_WrongMinuteDoesNotFire(t *testing.T) {
	s, d, _ := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	})

	if err := s.Tick(monday9am.Add(time.Minute)); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if d.count() != 0 {
		t.Errorf("expected no dispatch at 09:01, got %d", d.count())
	}
}

func TestTick_DisabledRuleNeverFires(t *testing.T) {
	s, d, _ := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: false,
	})

	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if d.count() != 0 {
		t.Errorf("expected no dispatch for disabled rule, got %d", d.count())
	}
}

func TestTick_FailedDispatchIsRetried(t *testing.T) {
	s, d, store := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	})

	// Dispatch fails: the firing record must not be written, so the rule
	// stays eligible.
	d.failOn["Morning run"] = true
	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	last, err := store.GetLastFired("run")
	if err != nil {
		t.Fatalf("failed to read firing record: %v", err)
	}
	if last != "" {
		t.Errorf("failed dispatch must not record a firing, got %q", last)
	}

	// Permission restored: a later tick in the same minute retries and
	// records.
	d.failOn["Morning run"] = false
	if err := s.Tick(monday9am.Add(30 * time.Second)); err != nil {
		t.Fatalf("retry Tick() error = %v", err)
	}

	if d.count() != 1 {
		t.Errorf("expected 1 successful dispatch after retry, got %d", d.count())
	}
	last, _ = store.GetLastFired("run")
	if last != "2024-03-11" {
		t.Errorf("firing record = %q, want 2024-03-11", last)
	}
}

func TestTick_OneFailureDoesNotBlockOthers(t *testing.T) {
	s, d, store := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "a-fails",
		Title:   "Fails",
		Time:    "09:00",
		Enabled: true,
	})
	mustUpsert(t, s, models.Reminder{
		ID:      "b-works",
		Title:   "Works",
		Time:    "09:00",
		Enabled: true,
	})

	d.failOn["Fails"] = true
	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if d.count() != 1 {
		t.Fatalf("expected the healthy rule to dispatch, got %d dispatches", d.count())
	}
	if d.fired[0] != "Works" {
		t.Errorf("dispatched %q, want %q", d.fired[0], "Works")
	}

	last, _ := store.GetLastFired("b-works")
	if last != "2024-03-11" {
		t.Errorf("healthy rule not recorded: %q", last)
	}
	last, _ = store.GetLastFired("a-fails")
	if last != "" {
		t.Errorf("failed rule must not be recorded: %q", last)
	}
}

func TestUpsertRule_RejectsInvalid(t *testing.T) {
	s, _, store := setupScheduler(t)

	err := s.UpsertRule(models.Reminder{
		ID:      "bad",
		Title:   "Bad",
		Time:    "25:00",
		Enabled: true,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	if _, err := store.GetReminder("bad"); err == nil {
		t.Error("invalid rule must not be persisted")
	}
}

func TestUpsertRule_OverwriteKeepsFiringRecord(t *testing.T) {
	s, d, store := setupScheduler(t)

	rule := models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	}
	mustUpsert(t, s, rule)

	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	// Edit the rule body; the firing record survives, so the rule does not
	// re-fire today.
	rule.Body = "updated"
	mustUpsert(t, s, rule)

	if err := s.Tick(monday9am.Add(20 * time.Second)); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if d.count() != 1 {
		t.Errorf("edit must not re-fire the rule, got %d dispatches", d.count())
	}

	last, _ := store.GetLastFired("run")
	if last != "2024-03-11" {
		t.Errorf("firing record lost on edit: %q", last)
	}
}

func TestRemoveRule(t *testing.T) {
	s, _, store := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	})
	if err := s.Tick(monday9am); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	if err := s.RemoveRule("run"); err != nil {
		t.Fatalf("RemoveRule() error = %v", err)
	}

	if _, err := store.GetReminder("run"); err == nil {
		t.Error("expected rule to be deleted")
	}
	last, _ := store.GetLastFired("run")
	if last != "" {
		t.Errorf("expected firing record cleared, got %q", last)
	}

	// Absent id is a no-op, not an error
	if err := s.RemoveRule("missing"); err != nil {
		t.Errorf("RemoveRule(missing) = %v, want nil", err)
	}
}

func TestStartStop(t *testing.T) {
	s, _, _ := setupScheduler(t)

	s.Start(time.Hour)
	if !s.Running() {
		t.Fatal("expected scheduler to be running")
	}

	// Second Start is a no-op, not a second timer
	s.Start(time.Hour)
	if !s.Running() {
		t.Fatal("expected scheduler to still be running")
	}

	s.Stop()
	if s.Running() {
		t.Fatal("expected scheduler to be stopped")
	}

	// Stop on a stopped scheduler is a no-op
	s.Stop()
}

func TestStart_TickLoopFiresOnce(t *testing.T) {
	s, d, _ := setupScheduler(t)

	mustUpsert(t, s, models.Reminder{
		ID:      "run",
		Title:   "Morning run",
		Time:    "09:00",
		Enabled: true,
	})

	// Freeze the clock inside the matching minute: many ticks elapse but
	// daily idempotence allows only one firing.
	s.SetClock(func() time.Time { return monday9am })
	s.Start(5 * time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for d.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for dispatch")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Let several more ticks pass
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if d.count() != 1 {
		t.Errorf("expected exactly 1 dispatch from the loop, got %d", d.count())
	}
}

package models

import (
	"testing"
	"time"
)

func TestReminder_Validate(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		wantErr  bool
	}{
		{
			name: "valid daily reminder",
			reminder: Reminder{
				ID:        "test-id",
				Title:     "Morning run",
				Body:      "Time to get moving",
				Time:      "07:30",
				Enabled:   true,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid weekday reminder",
			reminder: Reminder{
				ID:       "test-id",
				Title:    "Gym",
				Time:     "18:00",
				Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
				Enabled:  true,
			},
			wantErr: false,
		},
		{
			name: "empty id",
			reminder: Reminder{
				Title: "Test",
				Time:  "10:00",
			},
			wantErr: true,
		},
		{
			name: "empty title",
			reminder: Reminder{
				ID:   "test-id",
				Time: "10:00",
			},
			wantErr: true,
		},
		{
			name: "empty time",
			reminder: Reminder{
				ID:    "test-id",
				Title: "Test",
			},
			wantErr: true,
		},
		{
			name: "invalid time format",
			reminder: Reminder{
				ID:    "test-id",
				Title: "Test",
				Time:  "25:00",
			},
			wantErr: true,
		},
		{
			name: "time with seconds",
			reminder: Reminder{
				ID:    "test-id",
				Title: "Test",
				Time:  "10:00:00",
			},
			wantErr: true,
		},
		{
			name: "out of range weekday",
			reminder: Reminder{
				ID:       "test-id",
				Title:    "Test",
				Time:     "10:00",
				Weekdays: []time.Weekday{time.Weekday(7)},
			},
			wantErr: true,
		},
		{
			name: "negative weekday",
			reminder: Reminder{
				ID:       "test-id",
				Title:    "Test",
				Time:     "10:00",
				Weekdays: []time.Weekday{time.Weekday(-1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reminder.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Reminder.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReminder_IsDueOn(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		weekday  time.Weekday
		want     bool
	}{
		{
			name:     "empty weekdays matches every day",
			reminder: Reminder{},
			weekday:  time.Saturday,
			want:     true,
		},
		{
			name: "matching weekday",
			reminder: Reminder{
				Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			},
			weekday: time.Wednesday,
			want:    true,
		},
		{
			name: "non-matching weekday",
			reminder: Reminder{
				Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			},
			weekday: time.Sunday,
			want:    false,
		},
		{
			name: "weekday-only rule never matches weekend",
			reminder: Reminder{
				Weekdays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			},
			weekday: time.Saturday,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reminder.IsDueOn(tt.weekday); got != tt.want {
				t.Errorf("Reminder.IsDueOn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminder_MatchesMinute(t *testing.T) {
	r := Reminder{Time: "09:00"}

	if !r.MatchesMinute("09:00") {
		t.Error("expected 09:00 to match")
	}
	if r.MatchesMinute("09:01") {
		t.Error("expected 09:01 not to match")
	}
}

func TestReminder_FormatSchedule(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		want     string
	}{
		{
			name:     "daily",
			reminder: Reminder{Time: "07:30"},
			want:     "Daily at 07:30",
		},
		{
			name: "weekdays sorted",
			reminder: Reminder{
				Time:     "18:00",
				Weekdays: []time.Weekday{time.Friday, time.Monday, time.Wednesday},
			},
			want: "Mon, Wed, Fri at 18:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reminder.FormatSchedule(); got != tt.want {
				t.Errorf("FormatSchedule() = %q, want %q", got, tt.want)
			}
		})
	}
}

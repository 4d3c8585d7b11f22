package storage

import "github.com/julianstephens/pulse/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Habit Entries
	AddHabitEntry(models.HabitEntry) error
	GetHabitEntry(habitID, day string) (models.HabitEntry, error)
	GetHabitEntriesForDay(day string) ([]models.HabitEntry, error)
	GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error)
	UpdateHabitEntry(models.HabitEntry) error
	DeleteHabitEntry(id string) error

	// Reminders. SaveReminder has upsert semantics: saving an existing id
	// overwrites the stored rule.
	SaveReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	DeleteReminder(id string) error

	// Firing records track the last local calendar day (YYYY-MM-DD) each
	// reminder fired. GetLastFired returns "" for a reminder that has never
	// fired; that is not an error.
	GetLastFired(reminderID string) (string, error)
	SetLastFired(reminderID, day string) error
	ClearLastFired(reminderID string) error

	// Utils
	GetConfigPath() string
}

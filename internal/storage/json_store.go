package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
)

type Store struct {
	Version   int                          `json:"version"`
	Settings  models.Settings              `json:"settings"`
	Habits    map[string]models.Habit      `json:"habits"`
	Entries   map[string]models.HabitEntry `json:"entries"`    // entry id -> entry
	Reminders map[string]models.Reminder   `json:"reminders"`  // reminder id -> reminder
	LastFired map[string]string            `json:"last_fired"` // reminder id -> YYYY-MM-DD
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func DefaultSettings() models.Settings {
	return models.Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		TickIntervalSec:      constants.DefaultTickIntervalSec,
		HeatmapWeeks:         constants.DefaultHeatmapWeeks,
		HeatmapLevels:        constants.DefaultHeatmapLevels,
		TrendWindowDays:      constants.DefaultTrendWindowDays,
		Timezone:             constants.DefaultTimezone,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:   1,
		Settings:  DefaultSettings(),
		Habits:    make(map[string]models.Habit),
		Entries:   make(map[string]models.HabitEntry),
		Reminders: make(map[string]models.Reminder),
		LastFired: make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'pulse init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.HabitEntry)
	}
	if s.store.Reminders == nil {
		s.store.Reminders = make(map[string]models.Reminder)
	}
	if s.store.LastFired == nil {
		s.store.LastFired = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	for _, habit := range s.store.Habits {
		if habit.Name == name && habit.DeletedAt == nil {
			return habit, nil
		}
	}

	return models.Habit{}, fmt.Errorf("habit not found: %s", name)
}

func (s *JSONStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if habit.DeletedAt != nil && !includeDeleted {
			continue
		}
		if habit.ArchivedAt != nil && !includeArchived {
			continue
		}
		habits = append(habits, habit)
	}

	sort.Slice(habits, func(i, j int) bool { return habits[i].Name < habits[j].Name })
	return habits, nil
}

func (s *JSONStore) ArchiveHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit not found: %s", id)
	}

	now := time.Now()
	habit.ArchivedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) UnarchiveHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit not found: %s", id)
	}

	habit.ArchivedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit not found: %s", id)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now()
	habit.DeletedAt = &now
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) RestoreHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit not found: %s", id)
	}

	if habit.DeletedAt == nil {
		return fmt.Errorf("cannot restore a habit that is not deleted: %s", id)
	}

	habit.DeletedAt = nil
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) AddHabitEntry(entry models.HabitEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Entries[entry.ID] = entry
	return s.save()
}

func (s *JSONStore) GetHabitEntry(habitID, day string) (models.HabitEntry, error) {
	if s.store == nil {
		return models.HabitEntry{}, fmt.Errorf("storage not loaded")
	}

	for _, entry := range s.store.Entries {
		if entry.HabitID == habitID && entry.Day == day && entry.DeletedAt == nil {
			return entry, nil
		}
	}

	return models.HabitEntry{}, fmt.Errorf("no entry for habit %s on %s", habitID, day)
}

func (s *JSONStore) GetHabitEntriesForDay(day string) ([]models.HabitEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.HabitEntry
	for _, entry := range s.store.Entries {
		if entry.Day == day && entry.DeletedAt == nil {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].HabitID < entries[j].HabitID })
	return entries, nil
}

func (s *JSONStore) GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.HabitEntry
	for _, entry := range s.store.Entries {
		if entry.HabitID != habitID || entry.DeletedAt != nil {
			continue
		}
		if entry.Day < startDay || entry.Day > endDay {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Day < entries[j].Day })
	return entries, nil
}

func (s *JSONStore) UpdateHabitEntry(entry models.HabitEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Entries[entry.ID]; !ok {
		return fmt.Errorf("entry not found: %s", entry.ID)
	}

	s.store.Entries[entry.ID] = entry
	return s.save()
}

func (s *JSONStore) DeleteHabitEntry(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	entry, ok := s.store.Entries[id]
	if !ok {
		return fmt.Errorf("entry not found: %s", id)
	}

	now := time.Now()
	entry.DeletedAt = &now
	s.store.Entries[id] = entry
	return s.save()
}

func (s *JSONStore) SaveReminder(reminder models.Reminder) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Reminders[reminder.ID] = reminder
	return s.save()
}

func (s *JSONStore) GetReminder(id string) (models.Reminder, error) {
	if s.store == nil {
		return models.Reminder{}, fmt.Errorf("storage not loaded")
	}

	reminder, ok := s.store.Reminders[id]
	if !ok {
		return models.Reminder{}, fmt.Errorf("reminder not found: %s", id)
	}

	return reminder, nil
}

func (s *JSONStore) GetAllReminders() ([]models.Reminder, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	reminders := make([]models.Reminder, 0, len(s.store.Reminders))
	for _, reminder := range s.store.Reminders {
		reminders = append(reminders, reminder)
	}

	sort.Slice(reminders, func(i, j int) bool { return reminders[i].ID < reminders[j].ID })
	return reminders, nil
}

func (s *JSONStore) DeleteReminder(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Deleting an absent reminder is a no-op: the desired end state (rule
	// gone, firing record gone) already holds.
	delete(s.store.Reminders, id)
	delete(s.store.LastFired, id)
	return s.save()
}

func (s *JSONStore) GetLastFired(reminderID string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.LastFired[reminderID], nil
}

func (s *JSONStore) SetLastFired(reminderID, day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.LastFired[reminderID] = day
	return s.save()
}

func (s *JSONStore) ClearLastFired(reminderID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.store.LastFired, reminderID)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

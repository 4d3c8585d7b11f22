package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/pulse/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	unit TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	archived_at TEXT,
	deleted_at TEXT
);

CREATE TABLE IF NOT EXISTS habit_entries (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	value REAL NOT NULL DEFAULT 1,
	note TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	deleted_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_habit_entries_habit_day ON habit_entries(habit_id, day);
CREATE INDEX IF NOT EXISTS idx_habit_entries_day ON habit_entries(day);

CREATE TABLE IF NOT EXISTS reminders (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL,
	weekdays TEXT NOT NULL DEFAULT '[]',
	enabled INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS firing_records (
	reminder_id TEXT PRIMARY KEY,
	last_fired TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'pulse init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Apply the schema on load as well so databases created by older
	// versions pick up new tables.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}

	var data string
	err := s.db.QueryRow(`SELECT data FROM settings WHERE id = 1`).Scan(&data)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO settings (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, string(data))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func scanTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`INSERT INTO habits (id, name, unit, created_at, archived_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Unit, habit.CreatedAt.Format(time.RFC3339),
		nullableTime(habit.ArchivedAt), nullableTime(habit.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	return nil
}

func (s *SQLiteStore) scanHabit(row *sql.Row) (models.Habit, error) {
	var habit models.Habit
	var createdAt string
	var archivedAt, deletedAt sql.NullString

	if err := row.Scan(&habit.ID, &habit.Name, &habit.Unit, &createdAt, &archivedAt, &deletedAt); err != nil {
		return models.Habit{}, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	habit.CreatedAt = t

	if habit.ArchivedAt, err = scanTime(archivedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse archived_at: %w", err)
	}
	if habit.DeletedAt, err = scanTime(deletedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
	}

	return habit, nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	if s.db == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`SELECT id, name, unit, created_at, archived_at, deleted_at
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	habit, err := s.scanHabit(row)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	if s.db == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`SELECT id, name, unit, created_at, archived_at, deleted_at
		FROM habits WHERE name = ? AND deleted_at IS NULL`, name)
	habit, err := s.scanHabit(row)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", name)
	}

	return habit, nil
}

func (s *SQLiteStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	query := `SELECT id, name, unit, created_at, archived_at, deleted_at FROM habits WHERE 1=1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var habit models.Habit
		var createdAt string
		var archivedAt, deletedAt sql.NullString

		if err := rows.Scan(&habit.ID, &habit.Name, &habit.Unit, &createdAt, &archivedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}

		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		habit.CreatedAt = t

		if habit.ArchivedAt, err = scanTime(archivedAt); err != nil {
			return nil, fmt.Errorf("failed to parse archived_at: %w", err)
		}
		if habit.DeletedAt, err = scanTime(deletedAt); err != nil {
			return nil, fmt.Errorf("failed to parse deleted_at: %w", err)
		}

		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) setHabitTimestamp(id, column string, value any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec(`UPDATE habits SET `+column+` = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	return nil
}

func (s *SQLiteStore) ArchiveHabit(id string) error {
	return s.setHabitTimestamp(id, "archived_at", time.Now().Format(time.RFC3339))
}

func (s *SQLiteStore) UnarchiveHabit(id string) error {
	return s.setHabitTimestamp(id, "archived_at", nil)
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	return s.setHabitTimestamp(id, "deleted_at", time.Now().Format(time.RFC3339))
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	return s.setHabitTimestamp(id, "deleted_at", nil)
}

func (s *SQLiteStore) AddHabitEntry(entry models.HabitEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`INSERT INTO habit_entries (id, habit_id, day, value, note, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.HabitID, entry.Day, entry.Value, entry.Note,
		entry.CreatedAt.Format(time.RFC3339), entry.UpdatedAt.Format(time.RFC3339),
		nullableTime(entry.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit entry: %w", err)
	}

	return nil
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.HabitEntry
	for rows.Next() {
		var entry models.HabitEntry
		var createdAt, updatedAt string
		var deletedAt sql.NullString

		if err := rows.Scan(&entry.ID, &entry.HabitID, &entry.Day, &entry.Value, &entry.Note,
			&createdAt, &updatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit entry: %w", err)
		}

		if entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if entry.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		if entry.DeletedAt, err = scanTime(deletedAt); err != nil {
			return nil, fmt.Errorf("failed to parse deleted_at: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

const entryColumns = `id, habit_id, day, value, note, created_at, updated_at, deleted_at`

func (s *SQLiteStore) GetHabitEntry(habitID, day string) (models.HabitEntry, error) {
	if s.db == nil {
		return models.HabitEntry{}, fmt.Errorf("storage not loaded")
	}

	entries, err := s.queryEntries(`SELECT `+entryColumns+` FROM habit_entries
		WHERE habit_id = ? AND day = ? AND deleted_at IS NULL`, habitID, day)
	if err != nil {
		return models.HabitEntry{}, err
	}
	if len(entries) == 0 {
		return models.HabitEntry{}, fmt.Errorf("no entry for habit %s on %s", habitID, day)
	}

	return entries[0], nil
}

func (s *SQLiteStore) GetHabitEntriesForDay(day string) ([]models.HabitEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	return s.queryEntries(`SELECT `+entryColumns+` FROM habit_entries
		WHERE day = ? AND deleted_at IS NULL ORDER BY habit_id`, day)
}

func (s *SQLiteStore) GetHabitEntriesForHabit(habitID string, startDay, endDay string) ([]models.HabitEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	return s.queryEntries(`SELECT `+entryColumns+` FROM habit_entries
		WHERE habit_id = ? AND day >= ? AND day <= ? AND deleted_at IS NULL ORDER BY day`,
		habitID, startDay, endDay)
}

func (s *SQLiteStore) UpdateHabitEntry(entry models.HabitEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec(`UPDATE habit_entries SET habit_id = ?, day = ?, value = ?, note = ?, updated_at = ?
		WHERE id = ?`,
		entry.HabitID, entry.Day, entry.Value, entry.Note,
		entry.UpdatedAt.Format(time.RFC3339), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update habit entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry not found: %s", entry.ID)
	}

	return nil
}

func (s *SQLiteStore) DeleteHabitEntry(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	res, err := s.db.Exec(`UPDATE habit_entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete habit entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete habit entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry not found: %s", id)
	}

	return nil
}

func (s *SQLiteStore) SaveReminder(reminder models.Reminder) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	weekdays, err := json.Marshal(reminder.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to serialize weekdays: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO reminders (id, title, body, time, weekdays, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			time = excluded.time,
			weekdays = excluded.weekdays,
			enabled = excluded.enabled`,
		reminder.ID, reminder.Title, reminder.Body, reminder.Time, string(weekdays),
		reminder.Enabled, reminder.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	return nil
}

func (s *SQLiteStore) scanReminders(query string, args ...any) ([]models.Reminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var reminder models.Reminder
		var weekdays, createdAt string

		if err := rows.Scan(&reminder.ID, &reminder.Title, &reminder.Body, &reminder.Time,
			&weekdays, &reminder.Enabled, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		if err := json.Unmarshal([]byte(weekdays), &reminder.Weekdays); err != nil {
			return nil, fmt.Errorf("failed to parse weekdays: %w", err)
		}
		if reminder.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		reminders = append(reminders, reminder)
	}

	return reminders, rows.Err()
}

func (s *SQLiteStore) GetReminder(id string) (models.Reminder, error) {
	if s.db == nil {
		return models.Reminder{}, fmt.Errorf("storage not loaded")
	}

	reminders, err := s.scanReminders(`SELECT id, title, body, time, weekdays, enabled, created_at
		FROM reminders WHERE id = ?`, id)
	if err != nil {
		return models.Reminder{}, err
	}
	if len(reminders) == 0 {
		return models.Reminder{}, fmt.Errorf("reminder not found: %s", id)
	}

	return reminders[0], nil
}

func (s *SQLiteStore) GetAllReminders() ([]models.Reminder, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	return s.scanReminders(`SELECT id, title, body, time, weekdays, enabled, created_at
		FROM reminders ORDER BY id`)
}

func (s *SQLiteStore) DeleteReminder(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	// No-op when absent, matching the JSON store.
	if _, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM firing_records WHERE reminder_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete firing record: %w", err)
	}

	return nil
}

func (s *SQLiteStore) GetLastFired(reminderID string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	var day string
	err := s.db.QueryRow(`SELECT last_fired FROM firing_records WHERE reminder_id = ?`, reminderID).Scan(&day)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get firing record: %w", err)
	}

	return day, nil
}

func (s *SQLiteStore) SetLastFired(reminderID, day string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`INSERT INTO firing_records (reminder_id, last_fired) VALUES (?, ?)
		ON CONFLICT(reminder_id) DO UPDATE SET last_fired = excluded.last_fired`, reminderID, day)
	if err != nil {
		return fmt.Errorf("failed to set firing record: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ClearLastFired(reminderID string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM firing_records WHERE reminder_id = ?`, reminderID); err != nil {
		return fmt.Errorf("failed to clear firing record: %w", err)
	}

	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

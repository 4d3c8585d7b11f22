package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Mark    HabitMarkCmd    `cmd:"" help:"Mark a habit for a day (toggle or set a value)."`
	Today   HabitTodayCmd   `cmd:"" help:"Show today's habit status."`
	Log     HabitLogCmd     `cmd:"" help:"Show habit log (ASCII history)."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
	Unit string `help:"Unit the habit is measured in (e.g. reps, km, minutes)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	// Check if habit with same name already exists
	_, err := ctx.Store.GetHabitByName(c.Name)
	if err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Unit:      c.Unit,
		CreatedAt: time.Now(),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		unit := ""
		if habit.Unit != "" {
			unit = fmt.Sprintf(" (%s)", habit.Unit)
		}
		fmt.Printf("%s%s%s\n", habit.Name, unit, status)
	}

	return nil
}

type HabitMarkCmd struct {
	Name  string   `arg:"" help:"Habit name."`
	Date  string   `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Value *float64 `help:"Activity value for the day (e.g. reps or km). Omit for a simple check-off."`
	Note  string   `help:"Optional note for this entry." default:""`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	day := c.Date
	if day == "" {
		day = time.Now().Format(constants.DateFormat)
	} else {
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
		}
	}

	existingEntry, err := ctx.Store.GetHabitEntry(habit.ID, day)
	if err == nil {
		if c.Value == nil {
			// Plain mark on an already-marked day toggles it off
			if err := ctx.Store.DeleteHabitEntry(existingEntry.ID); err != nil {
				return err
			}
			fmt.Printf("Unmarked habit %q for %s\n", c.Name, day)
			return nil
		}

		existingEntry.Value = *c.Value
		if c.Note != "" {
			existingEntry.Note = c.Note
		}
		existingEntry.UpdatedAt = time.Now()
		if err := ctx.Store.UpdateHabitEntry(existingEntry); err != nil {
			return err
		}
		fmt.Printf("Updated habit %q for %s: %v\n", c.Name, day, *c.Value)
		return nil
	}

	value := 1.0
	if c.Value != nil {
		value = *c.Value
	}

	entry := models.HabitEntry{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       day,
		Value:     value,
		Note:      c.Note,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := ctx.Store.AddHabitEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Marked habit %q for %s\n", c.Name, day)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := time.Now().Format(constants.DateFormat)
	entries, err := ctx.Store.GetHabitEntriesForDay(today)
	if err != nil {
		return err
	}

	entryMap := make(map[string]float64)
	for _, entry := range entries {
		entryMap[entry.HabitID] = entry.Value
	}

	fmt.Printf("Habits for %s:\n\n", today)
	recorded := 0
	for _, habit := range habits {
		status := "[ ]"
		detail := ""
		if value, ok := entryMap[habit.ID]; ok && value > 0 {
			status = "[x]"
			recorded++
			if habit.Unit != "" {
				detail = fmt.Sprintf("  %v %s", value, habit.Unit)
			}
		}
		fmt.Printf("%s %s%s\n", status, habit.Name, detail)
	}

	fmt.Printf("\nRecorded: %d/%d\n", recorded, len(habits))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	var selectedHabits []models.Habit
	if c.Habit != "" {
		for _, h := range habits {
			if h.Name == c.Habit {
				selectedHabits = []models.Habit{h}
				break
			}
		}
		if len(selectedHabits) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	} else {
		selectedHabits = habits
	}

	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	maxNameLen := 20
	fmt.Print("Habit               ")
	for i := 0; i < c.Days; i++ {
		day := startDay.AddDate(0, 0, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()

	fmt.Print(strings.Repeat("-", maxNameLen))
	for i := 0; i < c.Days; i++ {
		fmt.Print("------")
	}
	fmt.Println()

	for _, habit := range selectedHabits {
		name := habit.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name = name + strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		entries, err := ctx.Store.GetHabitEntriesForHabit(
			habit.ID,
			startDay.Format(constants.DateFormat),
			endDay.Format(constants.DateFormat),
		)
		if err != nil {
			return err
		}

		entryMap := make(map[string]float64)
		for _, entry := range entries {
			entryMap[entry.Day] = entry.Value
		}

		for i := 0; i < c.Days; i++ {
			day := startDay.AddDate(0, 0, i)
			if entryMap[day.Format(constants.DateFormat)] > 0 {
				fmt.Print("  x   ")
			} else {
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", c.Name)
	} else {
		if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", c.Name)
	}

	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	fmt.Println("(This is a soft delete. Use 'pulse habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	// Search including deleted habits
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	var habit *models.Habit
	for _, h := range habits {
		if h.Name == c.Name && h.DeletedAt != nil {
			habit = &h
			break
		}
	}

	if habit == nil {
		return fmt.Errorf("deleted habit %q not found", c.Name)
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", c.Name)
	return nil
}

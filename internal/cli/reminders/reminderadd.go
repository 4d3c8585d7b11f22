package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
)

type ReminderAddCmd struct {
	Title    string `arg:"" optional:"" help:"Reminder title. Omit to fill in interactively."`
	Body     string `help:"Optional notification body."`
	Time     string `help:"Time to fire (HH:MM)."`
	Weekdays string `help:"Comma-separated weekdays (e.g. mon,wed,fri). Empty means every day."`
	Disabled bool   `help:"Create the reminder disabled."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	// Missing title or time drops into an interactive form
	if c.Title == "" || c.Time == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	rule := models.Reminder{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Body:      c.Body,
		Time:      c.Time,
		Enabled:   !c.Disabled,
		CreatedAt: time.Now(),
	}

	if c.Weekdays != "" {
		weekdays, err := cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return fmt.Errorf("failed to parse weekdays: %w", err)
		}
		rule.Weekdays = weekdays
	}

	if err := ctx.Scheduler.UpsertRule(rule); err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}

	fmt.Printf("✓ Reminder added: %s (%s)\n", rule.Title, rule.FormatSchedule())
	return nil
}

func (c *ReminderAddCmd) promptForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Body").
				Description("Optional notification body").
				Value(&c.Body),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&c.Time).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.TimeFormat, s); err != nil {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Weekdays").
				Description("Comma-separated (e.g. mon,wed,fri), empty for every day").
				Value(&c.Weekdays).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := cli.ParseWeekdays(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula()).Run()
}

package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/output"
	"github.com/taskbot-dev/taskbot/internal/task"
)

var createCmd = &cobra.Command{
	Use:     "create [TITLE]",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a new task with the given title and optional fields.

Title can be provided as a positional argument or via --title flag.
The reminder lead time is given in minutes; 0 means remind exactly at
the due time, and omitting the flag means no reminder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	createCmd.Flags().String("description", "", "longer task description")
	createCmd.Flags().StringP("category", "c", "reminder", "category (reminder, task, event)")
	createCmd.Flags().String("date", "", "due date (YYYY-MM-DD, default today)")
	createCmd.Flags().String("time", task.DefaultDueTime, "due time (HH:MM)")
	createCmd.Flags().Int("reminder", -1, "reminder lead time in minutes (0 = at due time)")
	createCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "desc", "body":
			name = "description"
		case "due":
			name = "date"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	title, err := resolveCreateTitle(cmd, args)
	if err != nil {
		return err
	}

	draft, err := buildDraft(cmd, title)
	if err != nil {
		return err
	}

	b, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	t, err := b.Create(context.Background(), draft)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Created task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Category: %s | Due: %s %s", t.Category, t.DueDate, t.DueTime)
	return nil
}

func resolveCreateTitle(cmd *cobra.Command, args []string) (string, error) {
	title, _ := cmd.Flags().GetString("title")
	if len(args) > 0 {
		if title != "" && title != args[0] {
			return "", clierr.New(clierr.InvalidInput,
				"title given both as argument and --title flag")
		}
		title = args[0]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", clierr.New(clierr.InvalidInput, "title is required")
	}
	return title, nil
}

func buildDraft(cmd *cobra.Command, title string) (backend.Draft, error) {
	categoryStr, _ := cmd.Flags().GetString("category")
	category, err := task.ParseCategory(categoryStr)
	if err != nil {
		return backend.Draft{}, err
	}

	dueDate := date.Today()
	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		dueDate, err = date.Parse(dateStr)
		if err != nil {
			return backend.Draft{}, clierr.Newf(clierr.InvalidDate,
				"invalid date %q (expected YYYY-MM-DD)", dateStr)
		}
	}

	dueTime, _ := cmd.Flags().GetString("time")
	if err := task.ValidateDueTime(dueTime); err != nil {
		return backend.Draft{}, err
	}

	description, _ := cmd.Flags().GetString("description")

	d := backend.Draft{
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
		DueDate:     dueDate,
		DueTime:     dueTime,
	}

	if cmd.Flags().Changed("reminder") {
		minutes, _ := cmd.Flags().GetInt("reminder")
		if minutes < 0 {
			return backend.Draft{}, clierr.Newf(clierr.InvalidReminder,
				"reminder minutes must be >= 0, got %d", minutes)
		}
		d.ReminderMinutes = &minutes
	}

	return d, nil
}

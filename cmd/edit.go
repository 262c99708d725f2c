package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/output"
	"github.com/taskbot-dev/taskbot/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit IDS",
	Short: "Edit task fields",
	Long: `Updates fields of one or more tasks (comma-separated IDs).
Only the flags you pass are changed. Pass --reminder -1 to clear the
reminder.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().StringP("category", "c", "", "new category (reminder, task, event)")
	editCmd.Flags().String("date", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().String("time", "", "new due time (HH:MM)")
	editCmd.Flags().Int("reminder", 0, "new reminder lead time in minutes (-1 to clear)")
	editCmd.Flags().Bool("done", false, "mark completed")
	editCmd.Flags().Bool("undone", false, "mark not completed")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	patch, err := buildPatch(cmd)
	if err != nil {
		return err
	}

	b, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	ctx := context.Background()

	// The wire collapses date and time into one timestamp, so changing
	// either half needs the other. Fill it from the task's current value.
	update := func(id int) error {
		p := patch
		if (p.DueDate == nil) != (p.DueTime == nil) {
			t, err := findTask(ctx, b, id)
			if err != nil {
				return err
			}
			if p.DueDate == nil {
				d := t.DueDate
				p.DueDate = &d
			}
			if p.DueTime == nil {
				dt := t.DueTime
				p.DueTime = &dt
			}
		}
		return b.Update(ctx, id, p)
	}

	if len(ids) == 1 {
		if err := update(ids[0]); err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]interface{}{
				"status": "updated",
				"id":     ids[0],
			})
		}
		output.Messagef(os.Stdout, "Updated task #%d", ids[0])
		return nil
	}

	return runBatch(ids, update)
}

func buildPatch(cmd *cobra.Command) (backend.Patch, error) {
	var p backend.Patch
	changed := false

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		title = strings.TrimSpace(title)
		if title == "" {
			return p, clierr.New(clierr.InvalidInput, "title cannot be empty")
		}
		p.Title = &title
		changed = true
	}
	if cmd.Flags().Changed("description") {
		desc, _ := cmd.Flags().GetString("description")
		p.Description = &desc
		changed = true
	}
	if cmd.Flags().Changed("category") {
		categoryStr, _ := cmd.Flags().GetString("category")
		category, err := task.ParseCategory(categoryStr)
		if err != nil {
			return p, err
		}
		p.Category = &category
		changed = true
	}
	if cmd.Flags().Changed("date") {
		dateStr, _ := cmd.Flags().GetString("date")
		d, err := date.Parse(dateStr)
		if err != nil {
			return p, clierr.Newf(clierr.InvalidDate,
				"invalid date %q (expected YYYY-MM-DD)", dateStr)
		}
		p.DueDate = &d
		changed = true
	}
	if cmd.Flags().Changed("time") {
		dueTime, _ := cmd.Flags().GetString("time")
		if err := task.ValidateDueTime(dueTime); err != nil {
			return p, err
		}
		p.DueTime = &dueTime
		changed = true
	}
	if cmd.Flags().Changed("reminder") {
		minutes, _ := cmd.Flags().GetInt("reminder")
		p.ReminderSet = true
		if minutes >= 0 {
			p.ReminderMinutes = &minutes
		}
		changed = true
	}

	done, _ := cmd.Flags().GetBool("done")
	undone, _ := cmd.Flags().GetBool("undone")
	if done && undone {
		return p, clierr.New(clierr.InvalidInput, "--done and --undone are mutually exclusive")
	}
	if done || undone {
		p.Completed = &done
		changed = true
	}

	if !changed {
		return p, clierr.New(clierr.InvalidInput, "no fields to update; pass at least one flag")
	}
	return p, nil
}

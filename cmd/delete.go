package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/config"
	"github.com/taskbot-dev/taskbot/internal/output"
	"github.com/taskbot-dev/taskbot/internal/session"
)

var deleteCmd = &cobra.Command{
	Use:     "delete IDS",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Long: `Deletes one or more tasks (comma-separated IDs).

Single deletes prompt for confirmation in a terminal; pass --yes to
skip the prompt. Batch deletes never prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	ctx := context.Background()

	if len(ids) == 1 {
		yes, _ := cmd.Flags().GetBool("yes")
		return deleteSingleTask(ctx, cfg, b, ids[0], yes)
	}

	return runBatch(ids, func(id int) error {
		return b.Delete(ctx, id)
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(ctx context.Context, cfg *config.Config, b backend.Backend, id int, yes bool) error {
	t, err := findTask(ctx, b, id)
	if err != nil {
		return err
	}

	if !yes {
		sess := session.New(cfg.Theme, cfg.Haptics, cfg.DisplayName())
		ok, err := sess.Confirm(fmt.Sprintf("Delete task #%d %q?", t.ID, t.Title))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if err := b.Delete(ctx, id); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "deleted",
			"id":     t.ID,
			"title":  t.Title,
		})
	}

	output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Title)
	return nil
}

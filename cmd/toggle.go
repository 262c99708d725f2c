package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/output"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle IDS",
	Aliases: []string{"done"},
	Short:   "Toggle task completion",
	Long:    `Flips the completed state of one or more tasks (comma-separated IDs).`,
	Args:    cobra.ExactArgs(1),
	RunE:    runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(_ *cobra.Command, args []string) error {
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
		if err := b.Toggle(ctx, ids[0]); err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]interface{}{
				"status": "toggled",
				"id":     ids[0],
			})
		}
		output.Messagef(os.Stdout, "Toggled task #%d", ids[0])
		return nil
	}

	return runBatch(ids, func(id int) error {
		return b.Toggle(ctx, id)
	})
}

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/output"
	"github.com/taskbot-dev/taskbot/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", "all", "filter (all, today, active, completed)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filterStr, _ := cmd.Flags().GetString("filter")
	filter, err := task.ParseFilter(filterStr)
	if err != nil {
		return err
	}

	b, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	tasks, _, err := b.List(context.Background(), filter)
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks)
	return nil
}

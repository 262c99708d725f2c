package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/output"
	"github.com/taskbot-dev/taskbot/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays full details of a single task including its markdown description.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", args[0])
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

	t, err := findTask(context.Background(), b, id)
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, t)
		return nil
	}

	// Render the markdown description through glamour when we own a
	// terminal; plain detail otherwise.
	if t.Description != "" && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, rerr := renderDescription(t.Description); rerr == nil {
			clone := *t
			clone.Description = ""
			output.TaskDetail(os.Stdout, &clone)
			fmt.Fprint(os.Stdout, rendered)
			return nil
		}
	}

	output.TaskDetail(os.Stdout, t)
	return nil
}

func renderDescription(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(strings.TrimSpace(md))
}

// findTask fetches the full list and returns the task with the given
// id. The API has no single-task endpoint.
func findTask(ctx context.Context, b backend.Backend, id int) (*task.Task, error) {
	tasks, _, err := b.List(ctx, task.FilterAll)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
		WithDetails(map[string]any{"id": id})
}

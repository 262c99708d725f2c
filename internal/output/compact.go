package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taskbot-dev/taskbot/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))

	fmt.Fprintln(w, "  created:"+t.CreatedAt.Format("2006-01-02")+
		" updated:"+t.UpdatedAt.Format("2006-01-02"))

	if t.Description != "" {
		for _, line := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// CountsCompact renders the filter totals on one line.
func CountsCompact(w io.Writer, c task.Counts) {
	fmt.Fprintf(w, "all=%d today=%d active=%d completed=%d\n",
		c.All, c.Today, c.Active, c.Completed)
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := "#" + strconv.Itoa(t.ID) + " [" + string(t.Category) + "] " + t.Title

	if t.Completed {
		line += " done"
	}
	line += " due:" + t.DueDate.String() + "T" + t.DueTime
	if t.ReminderMinutes != nil {
		line += " remind:" + strconv.Itoa(*t.ReminderMinutes) + "m"
	}

	return line
}

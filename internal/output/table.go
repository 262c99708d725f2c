package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskbot-dev/taskbot/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	// Category colors aligned with the TUI card palette.
	categoryStyles = map[string]lipgloss.Style{
		"reminder": lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"task":     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"event":    lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	categoryStyles = map[string]lipgloss.Style{}
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, doneW, catW, titleW, dueW, remindW := 4, 6, 10, 7, 18, 8
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		catW = max(catW, len(t.Category)+pad)
		titleW = max(titleW, min(lipgloss.Width(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s",
		idW, "ID", doneW, "DONE", catW, "CATEGORY",
		titleW, "TITLE", dueW, "DUE", remindW, "REMIND")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		const maxTitle = 48
		title := truncate(t.Title, maxTitle)
		done := dimStyle.Render("--")
		if t.Completed {
			done = doneStyle.Render("yes")
		}
		due := t.DueDate.String() + " " + t.DueTime

		row := fmt.Sprintf("%-*d %s %s %s %s %s",
			idW, t.ID,
			padRight(done, doneW),
			padRight(styledCategory(string(t.Category)), catW),
			padRight(title, titleW),
			padRight(due, dueW),
			reminderDisplay(t))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Category", styledCategory(string(t.Category)))
	status := "active"
	if t.Completed {
		status = doneStyle.Render("completed")
	}
	printField(w, "Status", status)
	printField(w, "Due", t.DueDate.String()+" "+t.DueTime)
	printField(w, "Reminder", reminderDisplay(t))
	printField(w, "Created", t.CreatedAt.Format("2006-01-02 15:04"))
	printField(w, "Updated", t.UpdatedAt.Format("2006-01-02 15:04"))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// CountsTable renders per-filter totals.
func CountsTable(w io.Writer, c task.Counts) {
	header := fmt.Sprintf("%-12s %6s", "FILTER", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(header))
	fmt.Fprintf(w, "%-12s %6d\n", "all", c.All)
	fmt.Fprintf(w, "%-12s %6d\n", "today", c.Today)
	fmt.Fprintf(w, "%-12s %6d\n", "active", c.Active)
	fmt.Fprintf(w, "%-12s %6d\n", "completed", c.Completed)
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func styledCategory(c string) string {
	if s, ok := categoryStyles[c]; ok {
		return s.Render(c)
	}
	return c
}

func reminderDisplay(t *task.Task) string {
	if t.ReminderMinutes == nil {
		return dimStyle.Render("--")
	}
	if *t.ReminderMinutes == 0 {
		return "at time"
	}
	return strconv.Itoa(*t.ReminderMinutes) + "m before"
}

// padRight pads styled text to the target visible width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens s to the given visible width on rune boundaries.
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

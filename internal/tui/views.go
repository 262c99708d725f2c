package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/session"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// cardHeight is the number of lines each task row occupies: title,
// meta, and a separator.
const cardHeight = 3

// styles bundles the lipgloss styles derived from the active theme.
type styles struct {
	header    lipgloss.Style
	text      lipgloss.Style
	hint      lipgloss.Style
	accent    lipgloss.Style
	accentInv lipgloss.Style
	done      lipgloss.Style
	errText   lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	statusBar lipgloss.Style
	dialog    lipgloss.Style
}

func newStyles(th session.Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(th.Text)),
		text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Text)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Hint)),
		accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Link)),
		accentInv: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.ButtonText)).
			Background(lipgloss.Color(th.Button)),
		done: lipgloss.NewStyle().Strikethrough(true).
			Foreground(lipgloss.Color(th.Hint)),
		errText: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("196")),
		tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Hint)).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(th.ButtonText)).
			Background(lipgloss.Color(th.Button)).
			Padding(0, 1),
		statusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Hint)),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.Link)).
			Padding(1, 2),
	}
}

// categoryIcon returns the marker shown before a task title.
func categoryIcon(c task.Category) string {
	switch c {
	case task.CategoryEvent:
		return "◆"
	case task.CategoryTask:
		return "■"
	default:
		return "●"
	}
}

func (a *App) viewList() string {
	st := newStyles(a.theme())

	parts := []string{
		a.renderGreeting(st),
		a.renderTabs(st),
		"",
	}

	if a.snap.Loading && len(a.snap.Tasks) == 0 {
		parts = append(parts, st.hint.Render("  Loading..."))
	} else if len(a.snap.Tasks) == 0 {
		parts = append(parts, st.hint.Render("  "+emptyLabel(a.snap.Filter)))
	} else {
		parts = append(parts, a.renderCards(st)...)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Pin the status bar to the bottom of the terminal.
	targetHeight := a.height - 2
	if targetHeight > 0 {
		actual := strings.Count(body, "\n") + 1
		if actual > targetHeight {
			lines := strings.SplitN(body, "\n", targetHeight+1)
			body = strings.Join(lines[:targetHeight], "\n")
		} else if actual < targetHeight {
			body += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", a.renderStatusBar(st))
}

func (a *App) renderGreeting(st styles) string {
	greeting := "Taskbot"
	if name := a.cfg.DisplayName(); name != "" {
		greeting = "Hi, " + name
	}
	return st.header.Render(" " + greeting)
}

func (a *App) renderTabs(st styles) string {
	c := a.snap.Counts
	countFor := func(f task.Filter) int {
		switch f {
		case task.FilterToday:
			return c.Today
		case task.FilterActive:
			return c.Active
		case task.FilterCompleted:
			return c.Completed
		default:
			return c.All
		}
	}

	tabs := make([]string, 0, len(task.Filters()))
	for _, f := range task.Filters() {
		label := fmt.Sprintf("%s %d", f, countFor(f))
		if f == a.snap.Filter {
			tabs = append(tabs, st.tabActive.Render(label))
		} else {
			tabs = append(tabs, st.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderCards(st styles) []string {
	maxVis := a.visibleCards()
	start := a.scroll
	end := start + maxVis
	if end > len(a.snap.Tasks) {
		end = len(a.snap.Tasks)
	}
	if start > len(a.snap.Tasks) {
		start = len(a.snap.Tasks)
	}

	var parts []string
	if start > 0 {
		parts = append(parts, st.hint.Render(fmt.Sprintf("  ↑ %d more", start)))
	}

	today := date.FromTime(a.now())
	for i := start; i < end; i++ {
		parts = append(parts, a.renderCard(st, a.snap.Tasks[i], i == a.cursor, today)...)
	}

	if end < len(a.snap.Tasks) {
		parts = append(parts, st.hint.Render(fmt.Sprintf("  ↓ %d more", len(a.snap.Tasks)-end)))
	}
	return parts
}

func (a *App) renderCard(st styles, t *task.Task, active bool, today date.Date) []string {
	marker := "  "
	if active {
		marker = st.accent.Render("› ")
	}

	check := "[ ] "
	titleStyle := st.text
	if t.Completed {
		check = "[x] "
		titleStyle = st.done
	}

	icon := st.accent.Render(categoryIcon(t.Category))
	title := marker + check + icon + " " + titleStyle.Render(truncate(t.Title, a.width-10))

	due := dueLabel(t, today)
	meta := "      " + st.hint.Render(due+reminderSuffix(t))

	return []string{title, meta, ""}
}

// dueLabel renders the due moment, using relative day names near today.
func dueLabel(t *task.Task, today date.Date) string {
	switch {
	case t.DueOn(today):
		return "Today " + t.DueTime
	case t.DueOn(date.FromTime(today.AddDate(0, 0, 1))):
		return "Tomorrow " + t.DueTime
	default:
		return t.DueDate.String() + " " + t.DueTime
	}
}

func reminderSuffix(t *task.Task) string {
	if t.ReminderMinutes == nil {
		return ""
	}
	if *t.ReminderMinutes == 0 {
		return "  ⏰ at time"
	}
	return fmt.Sprintf("  ⏰ %dm before", *t.ReminderMinutes)
}

func emptyLabel(f task.Filter) string {
	switch f {
	case task.FilterToday:
		return "Nothing scheduled for today."
	case task.FilterActive:
		return "All caught up."
	case task.FilterCompleted:
		return "Nothing completed yet."
	default:
		return "No tasks yet. Press 'a' to add one."
	}
}

func (a *App) renderStatusBar(st styles) string {
	status := fmt.Sprintf(" %d tasks | a:add e:edit space:toggle d:del t:theme q:quit",
		a.snap.Counts.All)
	status = truncate(status, a.width)

	if a.err != nil {
		errStr := st.errText.Render(truncate("Error: "+a.err.Error(), a.width))
		return errStr + "\n" + st.statusBar.Render(status)
	}

	return st.statusBar.Render(status)
}

func (a *App) viewDeleteConfirm() string {
	st := newStyles(a.theme())

	content := st.errText.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", a.deleteID, a.deleteTitle) + "\n\n" +
		st.hint.Render("y:yes  n:no")

	return st.dialog.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
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

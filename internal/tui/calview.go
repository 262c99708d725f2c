package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskbot-dev/taskbot/internal/calendar"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/session"
)

// calView is the month-grid date picker overlay.
type calView struct {
	month calendar.Month
	day   int
	today date.Date
}

func newCalView(d, today date.Date) *calView {
	return &calView{
		month: calendar.Of(d),
		day:   d.Day(),
		today: today,
	}
}

// update processes a key. closed is true when the picker is done;
// picked is nil when it was dismissed without choosing.
func (c *calView) update(msg tea.KeyMsg) (picked *date.Date, closed bool) {
	switch msg.String() {
	case keyEsc, "q":
		return nil, true
	case "enter":
		d := c.month.Date(c.day)
		return &d, true
	case "h", "left":
		c.shiftDay(-1)
	case "l", "right":
		c.shiftDay(1)
	case "k", "up":
		c.shiftDay(-7)
	case "j", "down":
		c.shiftDay(7)
	case "[", "pgup":
		c.month = c.month.Prev()
		c.clampDay()
	case "]", "pgdown":
		c.month = c.month.Next()
		c.clampDay()
	}
	return nil, false
}

// shiftDay moves the selection, rolling into the adjacent month at the
// edges.
func (c *calView) shiftDay(delta int) {
	d := c.day + delta
	if d < 1 {
		c.month = c.month.Prev()
		c.day = c.month.Days() + d
		c.clampDay()
		return
	}
	if d > c.month.Days() {
		c.day = d - c.month.Days()
		c.month = c.month.Next()
		c.clampDay()
		return
	}
	c.day = d
}

func (c *calView) clampDay() {
	if c.day < 1 {
		c.day = 1
	}
	if c.day > c.month.Days() {
		c.day = c.month.Days()
	}
}

func (c *calView) view(th session.Theme) string {
	st := newStyles(th)

	var rows []string
	rows = append(rows, st.header.Render(c.month.Title()))
	rows = append(rows, st.hint.Render(strings.Join(calendar.Weekdays(), " ")))

	cells := c.month.Cells()
	var line strings.Builder
	for i, cell := range cells {
		label := "  "
		if cell.Day > 0 {
			label = padDay(cell.Day)
			cellDate := c.month.Date(cell.Day)
			switch {
			case cell.Day == c.day:
				label = st.accentInv.Render(label)
			case cellDate.Equal(c.today):
				label = st.accent.Render(label)
			case cellDate.Before(c.today.Time):
				label = st.hint.Render(label)
			}
		}
		line.WriteString(label)
		if (i+1)%7 == 0 {
			rows = append(rows, line.String())
			line.Reset()
		} else {
			line.WriteString(" ")
		}
	}

	rows = append(rows, "",
		st.hint.Render("enter:pick  [ ]:month  esc:back"))

	return st.dialog.Render(strings.Join(rows, "\n"))
}

func padDay(d int) string {
	s := strconv.Itoa(d)
	if len(s) == 1 {
		return " " + s
	}
	return s
}

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/session"
	"github.com/taskbot-dev/taskbot/internal/task"
)

// Form field indexes. The text inputs come first, then the two cycled
// rows.
const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldTime
	fieldCategory
	fieldReminder
	fieldCount
)

// reminderChoices are the selectable lead times in minutes. The -1
// sentinel means no reminder.
var reminderChoices = []int{-1, 0, 5, 10, 15, 30, 60, 120}

type form struct {
	editID   int // 0 for a new task
	canceled bool
	inputs   [4]textinput.Model
	focus    int
	category task.Category
	reminder int // index into reminderChoices
	today    date.Date
	formErr  string
	cal      *calView
}

// newForm builds the form, pre-filled from t when editing.
func newForm(t *task.Task, today date.Date) *form {
	f := &form{
		category: task.CategoryReminder,
		today:    today,
	}

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 256
	title.Width = 40

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1024
	desc.Width = 40

	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = 10
	dateInput.Width = 12
	dateInput.SetValue(today.String())

	timeInput := textinput.New()
	timeInput.Placeholder = "HH:MM"
	timeInput.CharLimit = 5
	timeInput.Width = 7
	timeInput.SetValue(task.DefaultDueTime)

	f.inputs = [4]textinput.Model{title, desc, dateInput, timeInput}

	if t != nil {
		f.editID = t.ID
		f.inputs[fieldTitle].SetValue(t.Title)
		f.inputs[fieldDescription].SetValue(t.Description)
		f.inputs[fieldDate].SetValue(t.DueDate.String())
		f.inputs[fieldTime].SetValue(t.DueTime)
		f.category = t.Category
		f.reminder = reminderIndex(t.ReminderMinutes)
	}

	return f
}

func reminderIndex(minutes *int) int {
	if minutes == nil {
		return 0
	}
	for i, c := range reminderChoices {
		if c == *minutes {
			return i
		}
	}
	return 0
}

func (f *form) focusCmd() tea.Cmd {
	return f.inputs[fieldTitle].Focus()
}

// update processes a key. It returns done=true when the form is
// finished, either submitted or canceled.
func (f *form) update(msg tea.KeyMsg) (done bool, cmd tea.Cmd) {
	if f.cal != nil {
		return false, f.updateCalendar(msg)
	}

	switch msg.String() {
	case keyEsc:
		f.canceled = true
		return true, nil
	case "enter":
		if f.validate() {
			return true, nil
		}
		return false, nil
	case "tab", "down":
		return false, f.setFocus((f.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return false, f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	case "ctrl+k":
		f.openCalendar()
		return false, nil
	case "left", "right":
		if f.cycle(msg.String() == "right") {
			return false, nil
		}
	}

	if f.focus < len(f.inputs) {
		var c tea.Cmd
		f.inputs[f.focus], c = f.inputs[f.focus].Update(msg)
		return false, c
	}
	return false, nil
}

// cycle advances the category or reminder row. Returns false when the
// focus is on a text input so arrow keys keep editing text.
func (f *form) cycle(forward bool) bool {
	delta := -1
	if forward {
		delta = 1
	}
	switch f.focus {
	case fieldCategory:
		cats := []task.Category{task.CategoryReminder, task.CategoryTask, task.CategoryEvent}
		cur := 0
		for i, c := range cats {
			if c == f.category {
				cur = i
			}
		}
		f.category = cats[(cur+delta+len(cats))%len(cats)]
		return true
	case fieldReminder:
		f.reminder = (f.reminder + delta + len(reminderChoices)) % len(reminderChoices)
		return true
	}
	return false
}

func (f *form) setFocus(idx int) tea.Cmd {
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *form) openCalendar() {
	d, err := date.Parse(strings.TrimSpace(f.inputs[fieldDate].Value()))
	if err != nil {
		d = f.today
	}
	f.cal = newCalView(d, f.today)
}

func (f *form) updateCalendar(msg tea.KeyMsg) tea.Cmd {
	picked, closed := f.cal.update(msg)
	if closed {
		if picked != nil {
			f.inputs[fieldDate].SetValue(picked.String())
		}
		f.cal = nil
	}
	return nil
}

func (f *form) validate() bool {
	if strings.TrimSpace(f.inputs[fieldTitle].Value()) == "" {
		f.formErr = "Title cannot be empty"
		return false
	}
	if _, err := date.Parse(strings.TrimSpace(f.inputs[fieldDate].Value())); err != nil {
		f.formErr = "Date must be YYYY-MM-DD"
		return false
	}
	if err := task.ValidateDueTime(strings.TrimSpace(f.inputs[fieldTime].Value())); err != nil {
		f.formErr = "Time must be HH:MM"
		return false
	}
	f.formErr = ""
	return true
}

func (f *form) reminderMinutes() *int {
	c := reminderChoices[f.reminder]
	if c < 0 {
		return nil
	}
	return &c
}

// draft builds the create payload. Only valid after validate.
func (f *form) draft() backend.Draft {
	d, _ := date.Parse(strings.TrimSpace(f.inputs[fieldDate].Value()))
	return backend.Draft{
		Title:           strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Description:     strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Category:        f.category,
		DueDate:         d,
		DueTime:         strings.TrimSpace(f.inputs[fieldTime].Value()),
		ReminderMinutes: f.reminderMinutes(),
	}
}

// patch builds the update payload. Only valid after validate.
func (f *form) patch() backend.Patch {
	d, _ := date.Parse(strings.TrimSpace(f.inputs[fieldDate].Value()))
	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	desc := strings.TrimSpace(f.inputs[fieldDescription].Value())
	dueTime := strings.TrimSpace(f.inputs[fieldTime].Value())
	cat := f.category
	return backend.Patch{
		Title:           &title,
		Description:     &desc,
		Category:        &cat,
		DueDate:         &d,
		DueTime:         &dueTime,
		ReminderSet:     true,
		ReminderMinutes: f.reminderMinutes(),
	}
}

func reminderLabel(idx int) string {
	c := reminderChoices[idx]
	switch {
	case c < 0:
		return "none"
	case c == 0:
		return "at time"
	default:
		return strconv.Itoa(c) + "m before"
	}
}

// view renders the form, or the calendar overlay when open.
func (f *form) view(th session.Theme, width int) string {
	if f.cal != nil {
		return f.cal.view(th)
	}

	st := newStyles(th)

	title := "New task"
	if f.editID != 0 {
		title = "Edit task #" + strconv.Itoa(f.editID)
	}

	rows := []string{
		st.header.Render(title),
		"",
		f.renderInput(st, "Title", fieldTitle),
		f.renderInput(st, "Description", fieldDescription),
		f.renderInput(st, "Date", fieldDate),
		f.renderInput(st, "Time", fieldTime),
		f.renderChoice(st, "Category", string(f.category), fieldCategory),
		f.renderChoice(st, "Reminder", reminderLabel(f.reminder), fieldReminder),
	}

	if f.formErr != "" {
		rows = append(rows, "", st.errText.Render(f.formErr))
	}

	rows = append(rows, "",
		st.hint.Render("enter:save  esc:cancel  tab:next  ctrl+k:calendar"))

	return st.dialog.Render(strings.Join(rows, "\n"))
}

func (f *form) renderInput(st styles, label string, idx int) string {
	l := st.hint.Render(padLabel(label))
	if f.focus == idx {
		l = st.accent.Render(padLabel(label))
	}
	return l + f.inputs[idx].View()
}

func (f *form) renderChoice(st styles, label, value string, idx int) string {
	l := st.hint.Render(padLabel(label))
	v := value
	if f.focus == idx {
		l = st.accent.Render(padLabel(label))
		v = st.accent.Render("< " + value + " >")
	}
	return l + v
}

func padLabel(s string) string {
	const labelW = 13
	if len(s)+1 >= labelW {
		return s + " "
	}
	return s + ":" + strings.Repeat(" ", labelW-len(s)-1)
}

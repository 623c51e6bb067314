package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/format"
)

const fieldCount = 4

// inputLayouts are tried in order when parsing a typed time. A bare
// date means midnight; a bare time of day means today.
var inputLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
	"15:04",
}

func parseInputTime(value string) (time.Time, bool) {
	for _, layout := range inputLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if layout == "15:04" {
			now := time.Now()
			t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
		}
		return t, true
	}
	return time.Time{}, false
}

// fieldsModel holds the entry input fields shared by the timer form
// and the table's inline editor.
type fieldsModel struct {
	task  textinput.Model
	start textinput.Model
	end   textinput.Model
	notes textarea.Model

	focusIndex int
}

func newFieldsModel(width int) fieldsModel {
	task := textinput.New()
	task.Placeholder = "What are you working on?"
	task.CharLimit = 255
	task.Width = width
	task.ShowSuggestions = true

	start := textinput.New()
	start.Placeholder = "2006-01-02 15:04"
	start.CharLimit = 32
	start.Width = width

	end := textinput.New()
	end.Placeholder = "leave empty for an open entry"
	end.CharLimit = 32
	end.Width = width

	notes := textarea.New()
	notes.Placeholder = "Notes (optional)"
	notes.SetWidth(width)
	notes.SetHeight(3)

	f := fieldsModel{
		task:  task,
		start: start,
		end:   end,
		notes: notes,
	}
	f.task.Focus()
	return f
}

func (f *fieldsModel) setWidth(w int) {
	f.task.Width = w
	f.start.Width = w
	f.end.Width = w
	f.notes.SetWidth(w)
}

func (f *fieldsModel) focusNext() {
	f.blurAll()
	f.focusIndex = (f.focusIndex + 1) % fieldCount
	f.focusCurrent()
}

func (f *fieldsModel) focusPrev() {
	f.blurAll()
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = fieldCount - 1
	}
	f.focusCurrent()
}

func (f *fieldsModel) blurAll() {
	f.task.Blur()
	f.start.Blur()
	f.end.Blur()
	f.notes.Blur()
}

func (f *fieldsModel) focusCurrent() {
	switch f.focusIndex {
	case 0:
		f.task.Focus()
	case 1:
		f.start.Focus()
	case 2:
		f.end.Focus()
	case 3:
		f.notes.Focus()
	}
}

func (f fieldsModel) update(msg tea.Msg) (fieldsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focusIndex {
	case 0:
		f.task, cmd = f.task.Update(msg)
	case 1:
		f.start, cmd = f.start.Update(msg)
	case 2:
		f.end, cmd = f.end.Update(msg)
	case 3:
		f.notes, cmd = f.notes.Update(msg)
	}
	return f, cmd
}

func (f *fieldsModel) reset() {
	f.task.SetValue("")
	f.start.SetValue("")
	f.end.SetValue("")
	f.notes.SetValue("")
	f.blurAll()
	f.focusIndex = 0
	f.focusCurrent()
}

// setEntry prefills the fields from an existing entry for editing.
func (f *fieldsModel) setEntry(entry *domain.LogEntry, layout string) {
	if layout == "" {
		layout = format.DefaultTimeLayout
	}
	f.task.SetValue(entry.TaskName)
	f.start.SetValue(entry.StartTime.Local().Format(layout))
	if entry.EndTime != nil {
		f.end.SetValue(entry.EndTime.Local().Format(layout))
	} else {
		f.end.SetValue("")
	}
	f.notes.SetValue(entry.Notes)
	f.blurAll()
	f.focusIndex = 0
	f.focusCurrent()
}

// values parses the fields into entry data. The error text is suitable
// for inline display and the inputs are left untouched on failure.
func (f *fieldsModel) values() (taskName string, start time.Time, end *time.Time, notes string, errText string) {
	taskName = strings.TrimSpace(f.task.Value())
	if taskName == "" {
		return "", time.Time{}, nil, "", "task name is required"
	}

	startText := strings.TrimSpace(f.start.Value())
	if startText == "" {
		return "", time.Time{}, nil, "", "start time is required"
	}
	start, ok := parseInputTime(startText)
	if !ok {
		return "", time.Time{}, nil, "", "start time not understood: " + startText
	}

	endText := strings.TrimSpace(f.end.Value())
	if endText != "" {
		t, ok := parseInputTime(endText)
		if !ok {
			return "", time.Time{}, nil, "", "end time not understood: " + endText
		}
		end = &t
	}

	notes = f.notes.Value()
	return taskName, start, end, notes, ""
}

func (f fieldsModel) view(errText string) string {
	parts := []string{
		labelStyle.Render("Task:"),
		f.task.View(),
		"",
		labelStyle.Render("Start:"),
		f.start.View(),
		"",
		labelStyle.Render("End:"),
		f.end.View(),
		"",
		labelStyle.Render("Notes:"),
		f.notes.View(),
	}
	if errText != "" {
		parts = append(parts, "", errorStyle.Render(errText))
	}
	return strings.Join(parts, "\n")
}

// timerFormModel is the timer view: a live timer plus the manual entry
// form. The timer moves idle to running and back; a failed submit
// leaves every field as typed.
type timerFormModel struct {
	api    api.API
	config *config.Config

	fields      fieldsModel
	suggestions *domain.SuggestionSet

	running   bool
	runningID int64
	startedAt time.Time
	elapsed   time.Duration

	errText string
	width   int
	height  int
}

func newTimerFormModel(apiInstance api.API, cfg *config.Config) timerFormModel {
	return timerFormModel{
		api:         apiInstance,
		config:      cfg,
		fields:      newFieldsModel(48),
		suggestions: domain.NewSuggestionSet(nil),
	}
}

func (m *timerFormModel) setSize(w, h int) {
	m.width = w
	m.height = h
	fw := w - 12
	if fw > 64 {
		fw = 64
	}
	if fw < 20 {
		fw = 20
	}
	m.fields.setWidth(fw)
}

func (m timerFormModel) opCtx() (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	if m.config != nil {
		timeout = m.config.GetWriteTimeout()
	}
	return context.WithTimeout(context.Background(), timeout)
}

// loadNames fetches stored task names for autocompletion.
func (m timerFormModel) loadNames() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		names, err := m.api.TaskNames(ctx)
		if err != nil {
			return nil
		}
		return namesLoadedMsg{names: names}
	}
}

// loadRunning picks up a timer left running by a previous session.
func (m timerFormModel) loadRunning() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		entry, err := m.api.RunningEntry(ctx)
		if err != nil || entry == nil {
			return nil
		}
		return runningLoadedMsg{entry: entry}
	}
}

func (m timerFormModel) update(msg tea.Msg) (timerFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.running {
			m.elapsed = time.Since(m.startedAt)
		}
		return m, nil

	case namesLoadedMsg:
		for _, name := range msg.names {
			m.suggestions.Add(name)
		}
		m.fields.task.SetSuggestions(m.suggestions.Names())
		return m, nil

	case runningLoadedMsg:
		m.running = true
		m.runningID = msg.entry.ID
		m.startedAt = msg.entry.StartTime
		m.elapsed = time.Since(m.startedAt)
		m.fields.task.SetValue(msg.entry.TaskName)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.fields.focusNext()
			return m, nil
		case "shift+tab":
			m.fields.focusPrev()
			return m, nil
		case "ctrl+t":
			return m.toggleTimer()
		case "ctrl+s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.fields, cmd = m.fields.update(msg)
	return m, cmd
}

// toggleTimer starts the timer from the task field when idle and stops
// the running entry otherwise.
func (m timerFormModel) toggleTimer() (timerFormModel, tea.Cmd) {
	ctx, cancel := m.opCtx()
	defer cancel()

	if m.running {
		entry, err := m.api.StopTimer(ctx)
		if err != nil {
			m.errText = errors.GetUserMessage(err)
			return m, nil
		}
		m.running = false
		m.runningID = 0
		m.elapsed = 0
		m.errText = ""
		m.rememberTask(entry.TaskName)
		m.fields.reset()
		return m, func() tea.Msg { return timerStoppedMsg{entry: entry} }
	}

	taskName := strings.TrimSpace(m.fields.task.Value())
	if taskName == "" {
		m.errText = "task name is required"
		return m, nil
	}
	entry, err := m.api.StartTimer(ctx, taskName)
	if err != nil {
		m.errText = errors.GetUserMessage(err)
		return m, nil
	}
	m.running = true
	m.runningID = entry.ID
	m.startedAt = entry.StartTime
	m.elapsed = 0
	m.errText = ""
	m.rememberTask(entry.TaskName)
	return m, func() tea.Msg { return timerStartedMsg{entry: entry} }
}

// submit saves a manual entry. On failure the typed values stay put so
// they can be corrected; on success the form clears and the task name
// joins the suggestions.
func (m timerFormModel) submit() (timerFormModel, tea.Cmd) {
	taskName, start, end, notes, errText := m.fields.values()
	if errText != "" {
		m.errText = errText
		return m, nil
	}

	ctx, cancel := m.opCtx()
	defer cancel()
	entry, err := m.api.CreateEntry(ctx, taskName, start, end, notes)
	if err != nil {
		m.errText = errors.GetUserMessage(err)
		return m, nil
	}

	m.errText = ""
	m.rememberTask(entry.TaskName)
	m.fields.reset()
	return m, func() tea.Msg { return entrySavedMsg{entry: entry} }
}

func (m *timerFormModel) rememberTask(name string) {
	m.suggestions.Add(name)
	m.fields.task.SetSuggestions(m.suggestions.Names())
}

func (m timerFormModel) view() string {
	w := m.width - 4
	if w < 24 {
		w = 24
	}

	var timerPanel string
	if m.running {
		display := timerRunningStyle.Width(w - 6).Render(formatElapsed(m.elapsed))
		indicator := successStyle.Render("●  RUNNING  " + m.fields.task.Value())
		timerPanel = activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Center, display, indicator),
		)
	} else {
		display := timerIdleStyle.Width(w - 6).Render("00:00:00")
		hint := mutedStyle.Render("ctrl+t starts the timer for the task below")
		timerPanel = panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Center, display, hint),
		)
	}

	formTitle := titleStyle.Render("Log an entry")
	formBody := m.fields.view(m.errText)
	footer := mutedStyle.Render("ctrl+s: save  ctrl+t: timer  tab: next field")
	formPanel := panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, formTitle, "", formBody, "", footer),
	)

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, formPanel)
}

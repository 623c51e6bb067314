package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/domain"
	"timelog/internal/errors"
	"timelog/internal/format"
)

// rowState says whether the selected row is plain or being edited.
type rowState int

const (
	rowReadOnly rowState = iota
	rowEditing
)

// tableModel is the entries view: every logged entry newest first,
// with inline editing, confirmed deletion and a running total.
type tableModel struct {
	api    api.API
	config *config.Config

	entries []*domain.LogEntry
	total   domain.Duration
	cursor  int
	loaded  bool
	loadErr string

	state   rowState
	editor  fieldsModel
	editID  int64
	editErr string

	confirm       *huh.Form
	confirmActive bool
	confirmValue  *bool

	width  int
	height int
}

func newTableModel(apiInstance api.API, cfg *config.Config) tableModel {
	confirmed := false
	return tableModel{
		api:          apiInstance,
		config:       cfg,
		editor:       newFieldsModel(48),
		confirmValue: &confirmed,
	}
}

func (m *tableModel) setSize(w, h int) {
	m.width = w
	m.height = h
	fw := w - 12
	if fw > 64 {
		fw = 64
	}
	if fw < 20 {
		fw = 20
	}
	m.editor.setWidth(fw)
}

func (m tableModel) isCapturing() bool {
	return m.state == rowEditing || m.confirmActive
}

func (m tableModel) opCtx() (context.Context, context.CancelFunc) {
	timeout := 10 * time.Second
	if m.config != nil {
		timeout = m.config.GetQueryTimeout()
	}
	return context.WithTimeout(context.Background(), timeout)
}

// loadEntries fetches the table contents once. A failure is shown in
// place of the table and is not retried until asked.
func (m tableModel) loadEntries() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		entries, err := m.api.ListEntries(ctx)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m tableModel) update(msg tea.Msg) (tableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.loadErr = errors.GetUserMessage(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.entries = msg.entries
		m.recompute()
		if m.cursor >= len(m.entries) {
			m.cursor = maxInt(0, len(m.entries)-1)
		}
		return m, nil

	case deleteFailedMsg:
		return m.rollbackDelete(msg), func() tea.Msg {
			return statusMsg{text: "Delete failed: " + errors.GetUserMessage(msg.err), isError: true}
		}

	case tea.KeyMsg:
		if m.confirmActive {
			return m.updateConfirm(msg)
		}
		if m.state == rowEditing {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m tableModel) updateList(msg tea.KeyMsg) (tableModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "e", "enter":
		return m.beginEdit(), nil
	case "d":
		return m.beginConfirm()
	case "r":
		return m, m.loadEntries()
	}
	return m, nil
}

// beginEdit switches the selected row into its editing draft.
func (m tableModel) beginEdit() tableModel {
	if len(m.entries) == 0 {
		return m
	}
	entry := m.entries[m.cursor]
	layout := ""
	if m.config != nil {
		layout = m.config.Time.DisplayFormat
	}
	m.editor.setEntry(entry, layout)
	m.editID = entry.ID
	m.editErr = ""
	m.state = rowEditing
	return m
}

func (m tableModel) updateEditor(msg tea.KeyMsg) (tableModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = rowReadOnly
		m.editErr = ""
		return m, nil
	case "tab":
		m.editor.focusNext()
		return m, nil
	case "shift+tab":
		m.editor.focusPrev()
		return m, nil
	case "ctrl+s":
		return m.saveEdit()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

// saveEdit persists the draft. A failure keeps the draft on screen so
// nothing typed is lost.
func (m tableModel) saveEdit() (tableModel, tea.Cmd) {
	taskName, start, end, notes, errText := m.editor.values()
	if errText != "" {
		m.editErr = errText
		return m, nil
	}

	ctx, cancel := m.opCtx()
	defer cancel()
	entry, err := m.api.UpdateEntry(ctx, m.editID, taskName, start, end, notes)
	if err != nil {
		m.editErr = errors.GetUserMessage(err)
		return m, nil
	}

	// Merge the saved draft in place rather than refetching
	for i := range m.entries {
		if m.entries[i].ID == entry.ID {
			m.entries[i] = entry
		}
	}
	m.recompute()
	m.state = rowReadOnly
	m.editErr = ""
	return m, func() tea.Msg {
		return statusMsg{text: "Saved: " + entry.TaskName}
	}
}

func (m tableModel) beginConfirm() (tableModel, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	entry := m.entries[m.cursor]
	*m.confirmValue = false
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", entry.TaskName)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirmValue),
		),
	).WithShowHelp(false).WithShowErrors(false)
	m.confirmActive = true
	return m, m.confirm.Init()
}

func (m tableModel) updateConfirm(msg tea.Msg) (tableModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.confirmActive = false
		m.confirm = nil
		return m, nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State == huh.StateCompleted {
		m.confirmActive = false
		m.confirm = nil
		if *m.confirmValue {
			return m.deleteSelected()
		}
	}

	return m, cmd
}

// deleteSelected removes the row immediately and issues the delete.
// If the delete fails the row comes back where it was.
func (m tableModel) deleteSelected() (tableModel, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	index := m.cursor
	entry := m.entries[index]

	m.entries = append(m.entries[:index:index], m.entries[index+1:]...)
	m.recompute()
	if m.cursor >= len(m.entries) {
		m.cursor = maxInt(0, len(m.entries)-1)
	}

	return m, func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		if err := m.api.DeleteEntry(ctx, entry.ID); err != nil {
			return deleteFailedMsg{entry: entry, index: index, err: err}
		}
		return entryDeletedMsg{id: entry.ID}
	}
}

// rollbackDelete reinserts an optimistically removed row at its old
// position.
func (m tableModel) rollbackDelete(msg deleteFailedMsg) tableModel {
	index := msg.index
	if index > len(m.entries) {
		index = len(m.entries)
	}
	m.entries = append(m.entries[:index], append([]*domain.LogEntry{msg.entry}, m.entries[index:]...)...)
	m.recompute()
	return m
}

// recompute refreshes the totals footer from the rows on screen.
func (m *tableModel) recompute() {
	m.total = domain.Sum(m.entries)
}

func (m tableModel) view() string {
	w := m.width - 4
	if w < 24 {
		w = 24
	}

	if m.loadErr != "" {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Entries"),
			"",
			errorStyle.Render(m.loadErr),
			mutedStyle.Render("Press r to retry"),
		)
		return panelStyle.Width(w).Render(content)
	}

	if m.state == rowEditing {
		title := titleStyle.Render(fmt.Sprintf("Edit entry %d", m.editID))
		footer := mutedStyle.Render("ctrl+s: save  esc: cancel  tab: next field")
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "", m.editor.view(m.editErr), "", footer)
		return activePanelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Entries")

	if len(m.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press 1 for the timer."),
		)
		return panelStyle.Width(w).Render(content)
	}

	layout := ""
	if m.config != nil {
		layout = m.config.Time.DisplayFormat
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-17s %-17s %-9s %s", "Start", "End", "Duration", "Task")))

	for i, entry := range m.entries {
		cursor := "  "
		style := normalRowStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedRowStyle
		}
		end := format.TimestampPtr(entry.EndTime, layout)
		row := fmt.Sprintf("%s%-17s %-17s %-9s %s",
			cursor,
			format.Timestamp(entry.StartTime, layout),
			end,
			format.Duration(entry.Duration()),
			entry.TaskName,
		)
		if entry.Notes != "" {
			row += mutedStyle.Render(" [" + truncate(entry.Notes, 24) + "]")
		}
		rows = append(rows, style.Render(row))
	}

	noun := "entries"
	if len(m.entries) == 1 {
		noun = "entry"
	}
	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render(
		fmt.Sprintf("Total: %s (%d %s)", format.Duration(m.total), len(m.entries), noun)))
	rows = append(rows, mutedStyle.Render("  e: edit  d: delete  x: export  r: reload"))

	body := panelStyle.Width(w).Render(strings.Join(rows, "\n"))

	if m.confirmActive && m.confirm != nil {
		return lipgloss.JoinVertical(lipgloss.Left, body, activePanelStyle.Width(w).Render(m.confirm.View()))
	}
	return body
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

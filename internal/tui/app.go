package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/export"
	"timelog/internal/format"
)

// App is the root Bubble Tea model.
type App struct {
	api    api.API
	config *config.Config
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	form  timerFormModel
	table tableModel

	help          help.Model
	status        string
	statusIsError bool
}

func NewApp(apiInstance api.API, cfg *config.Config) App {
	h := help.New()
	h.ShowAll = false

	return App{
		api:        apiInstance,
		config:     cfg,
		activeView: viewTimer,
		form:       newTimerFormModel(apiInstance, cfg),
		table:      newTableModel(apiInstance, cfg),
		help:       h,
	}
}

// Run starts the interactive interface.
func Run(apiInstance api.API, cfg *config.Config) error {
	p := tea.NewProgram(NewApp(apiInstance, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.form.loadNames(),
		a.form.loadRunning(),
		a.table.loadEntries(),
	)
}

// tickCmd schedules the next elapsed-display update. Ticks run only
// while a timer is running; stopping the timer lets the chain lapse.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4
		a.form.setSize(a.width, contentHeight)
		a.table.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return a, tea.Quit
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// The timer form and the table editor own the keyboard while
		// they are capturing input.
		if a.activeView == viewTimer {
			return a.updateTimerView(msg)
		}
		return a.updateEntriesView(msg)

	case tickMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		if !a.form.running {
			return a, cmd
		}
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.statusIsError = msg.isError
		return a, nil

	case timerStartedMsg:
		a.setStatus("Timer started: " + msg.entry.TaskName)
		return a, tickCmd()

	case runningLoadedMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		return a, tea.Batch(cmd, tickCmd())

	case timerStoppedMsg:
		a.setStatus(fmt.Sprintf("Timer stopped: %s (%s)",
			msg.entry.TaskName, format.Duration(msg.entry.Duration())))
		return a, a.table.loadEntries()

	case entrySavedMsg:
		a.setStatus("Saved: " + msg.entry.TaskName)
		a.form.rememberTask(msg.entry.TaskName)
		return a, a.table.loadEntries()

	case entryDeletedMsg:
		a.setStatus(fmt.Sprintf("Deleted entry %d", msg.id))
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to " + msg.path)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string) {
	a.status = text
	a.statusIsError = false
}

func (a App) updateTimerView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Back) {
		a.activeView = viewEntries
		return a, a.table.loadEntries()
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.update(msg)
	return a, cmd
}

func (a App) updateEntriesView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.table.isCapturing() {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1), key.Matches(msg, keys.Back):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.update(msg)
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	// Non-key messages can matter to either view
	a.form, cmd = a.form.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.table, cmd = a.table.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(formatIndex int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entries, err := a.api.ListEntries(ctx)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		var path string
		if formatIndex == 0 {
			path = a.exportPath(export.DefaultCSVFileName)
			err = export.ToCSV(entries, path)
		} else {
			path = a.exportPath(export.DefaultJSONFileName)
			err = export.ToJSON(entries, path)
		}
		if err != nil {
			if err == export.ErrNoEntries {
				return statusMsg{text: "nothing to export"}
			}
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}

func (a App) exportPath(filename string) string {
	if a.config == nil {
		return filename
	}
	if filename == export.DefaultCSVFileName && a.config.Export.Filename != "" {
		return a.config.GetExportPath()
	}
	return filepath.Join(a.config.Export.Dir, filename)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.form.view()
	case viewEntries:
		content = a.table.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("timelog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusIsError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	timerInfo := ""
	if a.form.running {
		timerInfo = successStyle.Render(" ● " + formatElapsed(a.form.elapsed))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalRowStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedRowStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

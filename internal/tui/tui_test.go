package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timelog/internal/api"
	"timelog/internal/config"
	"timelog/internal/domain"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestAPI(t *testing.T) api.API {
	t.Helper()
	repo, err := config.CreateTestRepository()
	if err != nil {
		t.Fatalf("create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return api.New(repo)
}

// ============================================================
// Timer form
// ============================================================

func TestFormSubmitCreatesEntry(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	m.fields.task.SetValue("Review")
	m.fields.start.SetValue("2025-08-25 09:00")
	m.fields.end.SetValue("2025-08-25 10:30")
	m.fields.notes.SetValue("PR 42")

	m, cmd := m.submit()
	if m.errText != "" {
		t.Fatalf("unexpected error: %s", m.errText)
	}
	if cmd == nil {
		t.Fatal("submit should produce a message")
	}
	if _, ok := cmd().(entrySavedMsg); !ok {
		t.Fatal("submit should emit entrySavedMsg")
	}

	// Fields clear after a successful save
	if m.fields.task.Value() != "" || m.fields.start.Value() != "" {
		t.Fatal("fields should reset after save")
	}

	entries, err := a.ListEntries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].TaskName != "Review" || entries[0].Notes != "PR 42" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestFormSubmitFailurePreservesFields(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	// Name over the length limit fails validation in the API
	longName := strings.Repeat("x", 300)
	m.fields.task.SetValue(longName)
	m.fields.start.SetValue("2025-08-25 09:00")
	m.fields.notes.SetValue("do not lose me")

	m, _ = m.submit()
	if m.errText == "" {
		t.Fatal("expected an error")
	}
	if m.fields.task.Value() != longName {
		t.Fatal("task field should be preserved on failure")
	}
	if m.fields.start.Value() != "2025-08-25 09:00" {
		t.Fatal("start field should be preserved on failure")
	}
	if m.fields.notes.Value() != "do not lose me" {
		t.Fatal("notes field should be preserved on failure")
	}
}

func TestFormSubmitRequiresStart(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	m.fields.task.SetValue("Review")

	m, cmd := m.submit()
	if m.errText == "" {
		t.Fatal("expected an error for a missing start time")
	}
	if cmd != nil {
		t.Fatal("failed submit should not emit a message")
	}
	if m.fields.task.Value() != "Review" {
		t.Fatal("task field should be preserved")
	}
}

func TestFormSubmitAcceptsInvertedRange(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	// End before start is stored as typed; it renders as zero
	m.fields.task.SetValue("Backdated")
	m.fields.start.SetValue("2025-08-25 10:00")
	m.fields.end.SetValue("2025-08-25 09:00")

	m, _ = m.submit()
	if m.errText != "" {
		t.Fatalf("unexpected error: %s", m.errText)
	}

	entries, _ := a.ListEntries(context.Background())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	d := entries[0].Duration()
	if d.Hours != 0 || d.Minutes != 0 {
		t.Fatalf("inverted range should have zero duration, got %+v", d)
	}
}

func TestFormTimerStartStop(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	if m.running {
		t.Fatal("timer should start idle")
	}

	m.fields.task.SetValue("Deep Work")
	m, cmd := m.toggleTimer()
	if !m.running {
		t.Fatal("timer should be running after toggle")
	}
	if m.runningID == 0 {
		t.Fatal("running entry id should be set")
	}
	if cmd == nil {
		t.Fatal("start should emit a message")
	}
	if _, ok := cmd().(timerStartedMsg); !ok {
		t.Fatal("start should emit timerStartedMsg")
	}

	running, err := a.RunningEntry(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if running == nil || running.ID != m.runningID {
		t.Fatal("start should create a running entry")
	}

	m, cmd = m.toggleTimer()
	if m.running {
		t.Fatal("timer should be idle after second toggle")
	}
	if _, ok := cmd().(timerStoppedMsg); !ok {
		t.Fatal("stop should emit timerStoppedMsg")
	}
	if m.fields.task.Value() != "" {
		t.Fatal("fields should reset after stop")
	}

	running, _ = a.RunningEntry(context.Background())
	if running != nil {
		t.Fatal("stop should close the running entry")
	}
}

func TestFormTimerRequiresTask(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	m, _ = m.toggleTimer()
	if m.running {
		t.Fatal("timer should not start without a task name")
	}
	if m.errText == "" {
		t.Fatal("expected an error")
	}
}

func TestFormTimerTick(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	m.fields.task.SetValue("Tick")
	m, _ = m.toggleTimer()
	m.startedAt = time.Now().Add(-90 * time.Second)

	m, _ = m.update(tickMsg(time.Now()))
	if m.elapsed < 89*time.Second {
		t.Fatalf("tick should update elapsed, got %v", m.elapsed)
	}
}

func TestFormSuggestionsMergeOnSuccess(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	if m.suggestions.Contains("Pairing") {
		t.Fatal("name should not be suggested yet")
	}

	m.fields.task.SetValue("Pairing")
	m.fields.start.SetValue("2025-08-25 09:00")
	m, _ = m.submit()
	if m.errText != "" {
		t.Fatalf("unexpected error: %s", m.errText)
	}

	if !m.suggestions.Contains("Pairing") {
		t.Fatal("saved task name should join the suggestions")
	}
}

func TestFormNamesLoaded(t *testing.T) {
	a := newTestAPI(t)
	m := newTimerFormModel(a, nil)

	m, _ = m.update(namesLoadedMsg{names: []string{"Stored Task"}})
	if !m.suggestions.Contains("Stored Task") {
		t.Fatal("loaded names should join the suggestions")
	}
}

func TestFormResumesRunningEntry(t *testing.T) {
	a := newTestAPI(t)

	started, err := a.StartTimer(context.Background(), "Left Running")
	if err != nil {
		t.Fatal(err)
	}

	m := newTimerFormModel(a, nil)
	msg := m.loadRunning()()
	resumed, ok := msg.(runningLoadedMsg)
	if !ok {
		t.Fatalf("expected runningLoadedMsg, got %T", msg)
	}
	m, _ = m.update(resumed)

	if !m.running || m.runningID != started.ID {
		t.Fatal("form should resume the running entry")
	}
	if m.fields.task.Value() != "Left Running" {
		t.Fatal("task field should show the running task")
	}
}

// ============================================================
// Entries table
// ============================================================

func seedEntries(t *testing.T, a api.API, names ...string) []*domain.LogEntry {
	t.Helper()
	base := time.Date(2025, 8, 25, 8, 0, 0, 0, time.Local)
	var out []*domain.LogEntry
	for i, name := range names {
		start := base.Add(time.Duration(i) * 2 * time.Hour)
		end := start.Add(time.Hour)
		entry, err := a.CreateEntry(context.Background(), name, start, &end, "")
		if err != nil {
			t.Fatalf("seed entry %s: %v", name, err)
		}
		out = append(out, entry)
	}
	return out
}

func loadedTable(t *testing.T, a api.API) tableModel {
	t.Helper()
	m := newTableModel(a, nil)
	msg := m.loadEntries()()
	loaded, ok := msg.(entriesLoadedMsg)
	if !ok {
		t.Fatalf("expected entriesLoadedMsg, got %T", msg)
	}
	m, _ = m.update(loaded)
	if m.loadErr != "" {
		t.Fatalf("load failed: %s", m.loadErr)
	}
	return m
}

func TestTableLoadComputesTotals(t *testing.T) {
	a := newTestAPI(t)
	seedEntries(t, a, "A", "B", "C")

	m := loadedTable(t, a)
	if len(m.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m.entries))
	}
	if m.total.Hours != 3 || m.total.Minutes != 0 {
		t.Fatalf("expected 3h total, got %+v", m.total)
	}
	// Newest first
	if m.entries[0].TaskName != "C" {
		t.Fatalf("expected newest first, got %s", m.entries[0].TaskName)
	}
}

func TestTableDeleteIsOptimistic(t *testing.T) {
	a := newTestAPI(t)
	seedEntries(t, a, "A", "B", "C")

	m := loadedTable(t, a)
	m.cursor = 1 // "B"

	m, cmd := m.deleteSelected()
	if len(m.entries) != 2 {
		t.Fatal("row should disappear before the delete lands")
	}
	if m.total.Hours != 2 {
		t.Fatalf("totals should recompute immediately, got %+v", m.total)
	}

	msg := cmd()
	if _, ok := msg.(entryDeletedMsg); !ok {
		t.Fatalf("expected entryDeletedMsg, got %T", msg)
	}

	entries, _ := a.ListEntries(context.Background())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in store, got %d", len(entries))
	}
}

func TestTableDeleteRollbackOnFailure(t *testing.T) {
	a := newTestAPI(t)
	seeded := seedEntries(t, a, "A", "B", "C")

	m := loadedTable(t, a)
	m.cursor = 1 // "B" (sorted newest first, so row 1 is the middle one)
	removedName := m.entries[1].TaskName

	// Make the backing delete fail by removing the row out of band
	if err := a.DeleteEntry(context.Background(), m.entries[1].ID); err != nil {
		t.Fatal(err)
	}
	_ = seeded

	m, cmd := m.deleteSelected()
	if len(m.entries) != 2 {
		t.Fatal("row should be removed optimistically")
	}

	msg := cmd()
	failed, ok := msg.(deleteFailedMsg)
	if !ok {
		t.Fatalf("expected deleteFailedMsg, got %T", msg)
	}

	m, _ = m.update(failed)
	if len(m.entries) != 3 {
		t.Fatal("failed delete should restore the row")
	}
	if m.entries[1].TaskName != removedName {
		t.Fatalf("row should come back at its old position, got %s", m.entries[1].TaskName)
	}
	if m.total.Hours != 3 {
		t.Fatalf("totals should recompute after rollback, got %+v", m.total)
	}
}

func TestTableEditSavesChanges(t *testing.T) {
	a := newTestAPI(t)
	seedEntries(t, a, "Original")

	m := loadedTable(t, a)
	m = m.beginEdit()
	if m.state != rowEditing {
		t.Fatal("edit should enter the editing state")
	}
	if m.editor.task.Value() != "Original" {
		t.Fatal("editor should prefill from the row")
	}

	m.editor.task.SetValue("Renamed")
	m, cmd := m.saveEdit()
	if m.editErr != "" {
		t.Fatalf("unexpected error: %s", m.editErr)
	}
	if m.state != rowReadOnly {
		t.Fatal("save should leave the editing state")
	}
	if cmd == nil {
		t.Fatal("save should report a status")
	}

	// The draft merges into the visible list without a refetch
	if m.entries[0].TaskName != "Renamed" {
		t.Fatalf("expected local merge, got %s", m.entries[0].TaskName)
	}

	entries, _ := a.ListEntries(context.Background())
	if entries[0].TaskName != "Renamed" {
		t.Fatalf("expected rename to persist, got %s", entries[0].TaskName)
	}
}

func TestTableEditFailureKeepsDraft(t *testing.T) {
	a := newTestAPI(t)
	seedEntries(t, a, "Original")

	m := loadedTable(t, a)
	m = m.beginEdit()
	m.editor.start.SetValue("not a time")

	m, _ = m.saveEdit()
	if m.editErr == "" {
		t.Fatal("expected an error")
	}
	if m.state != rowEditing {
		t.Fatal("failed save should stay in the editing state")
	}
	if m.editor.start.Value() != "not a time" {
		t.Fatal("draft should be preserved on failure")
	}
}

func TestTableEditCancelRestoresRow(t *testing.T) {
	a := newTestAPI(t)
	seedEntries(t, a, "Original")

	m := loadedTable(t, a)
	m = m.beginEdit()
	m.editor.task.SetValue("Scratch")

	m, _ = m.updateEditor(keyMsg("esc"))
	if m.state != rowReadOnly {
		t.Fatal("esc should cancel editing")
	}

	entries, _ := a.ListEntries(context.Background())
	if entries[0].TaskName != "Original" {
		t.Fatal("cancel should not persist the draft")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		got := formatElapsed(tt.d)
		if got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseInputTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-08-25 09:30", time.Date(2025, 8, 25, 9, 30, 0, 0, time.Local)},
		{"2025-08-25 09:30:15", time.Date(2025, 8, 25, 9, 30, 15, 0, time.Local)},
		{"2025-08-25", time.Date(2025, 8, 25, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, ok := parseInputTime(tt.in)
		if !ok {
			t.Errorf("parseInputTime(%q) failed", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseInputTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, ok := parseInputTime("nonsense"); ok {
		t.Error("parseInputTime should reject nonsense")
	}
}

func TestTruncate(t *testing.T) {
	if truncate("short", 10) != "short" {
		t.Fatal("short strings pass through")
	}
	got := truncate("a longer string", 8)
	if len([]rune(got)) > 8 {
		t.Fatalf("truncate too long: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated string should end with ellipsis: %q", got)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)

	if app.activeView != viewTimer {
		t.Fatal("default view should be the timer")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppLoadingState(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)

	if app.View() != "Loading..." {
		t.Fatal("unsized app should render the loading state")
	}
}

func TestAppViewsRender(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)
	app.width = 120
	app.height = 40
	app.form.setSize(120, 36)
	app.table.setSize(120, 36)

	for _, v := range []viewState{viewTimer, viewEntries} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppHeaderContainsTabs(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)
	app.width = 120

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusInFooter(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)
	app.width = 120
	app.status = "saved ok"

	if !strings.Contains(app.renderFooter(), "saved ok") {
		t.Fatal("footer should contain the status message")
	}
}

func TestAppErrorStatusStyledDistinctly(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)
	app.width = 120

	model, _ := app.Update(statusMsg{text: "Delete failed: boom", isError: true})
	app = model.(App)
	if !app.statusIsError {
		t.Fatal("error status should be flagged as an error")
	}
	if !strings.Contains(app.renderFooter(), "Delete failed: boom") {
		t.Fatal("footer should contain the error status")
	}

	model, _ = app.Update(entryDeletedMsg{id: 1})
	app = model.(App)
	if app.statusIsError {
		t.Fatal("a later success status should clear the error flag")
	}
}

func TestAppTickOnlyWhileRunning(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)

	model, cmd := app.Update(tickMsg(time.Now()))
	app = model.(App)
	if cmd != nil {
		t.Fatal("idle app should not reschedule the tick")
	}

	app.form.running = true
	app.form.startedAt = time.Now().Add(-time.Minute)
	model, cmd = app.Update(tickMsg(time.Now()))
	app = model.(App)
	if cmd == nil {
		t.Fatal("running app should reschedule the tick")
	}
	if app.form.elapsed < time.Minute {
		t.Fatalf("elapsed not advanced: %v", app.form.elapsed)
	}
}

func TestAppTimerStartSchedulesTick(t *testing.T) {
	a := newTestAPI(t)
	app := NewApp(a, nil)

	entry := &domain.LogEntry{ID: 1, TaskName: "Focus", StartTime: time.Now()}
	_, cmd := app.Update(timerStartedMsg{entry: entry})
	if cmd == nil {
		t.Fatal("starting the timer should schedule the first tick")
	}

	_, cmd = app.Update(runningLoadedMsg{entry: entry})
	if cmd == nil {
		t.Fatal("resuming a running timer should schedule the first tick")
	}
}

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, group := range keys.FullHelp() {
		if len(group) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/reign/calleditor/internal/calllog"
	"github.com/reign/calleditor/internal/edit"
	"github.com/reign/calleditor/internal/permission"
	"github.com/reign/calleditor/internal/repository"
	"github.com/reign/calleditor/internal/ui"
	"github.com/rs/zerolog"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen is the page currently shown.
type Screen int

const (
	ScreenList Screen = iota
	ScreenEdit
)

const readRequiredMessage = "Read Call Log permission is required."

// Model is the root bubbletea model for the call-log editor. It holds the
// permission flags, the fetched entries, the loading flag and the last
// error, and owns the edit session while one is open.
type Model struct {
	repo   *repository.Repository
	grants permission.GrantStore
	log    zerolog.Logger
	loc    *time.Location
	now    func() time.Time

	// Permissions
	gate      permission.Gate
	prompting bool
	requested bool

	// Call log
	entries []calllog.Entry
	loading bool

	// Single in-flight fetch slot
	fetchID     string
	cancelFetch context.CancelFunc

	// Errors
	errorMessage   string
	errorTransient bool
	transientTTL   time.Duration

	// Navigation
	screen          Screen
	selected        int
	scroll          int
	form            *editForm
	submitting      bool
	closeEditOnLoad bool

	width  int
	height int
}

// New creates a Model over repo and the grant registry.
func New(repo *repository.Repository, grants permission.GrantStore, log zerolog.Logger) Model {
	return Model{
		repo:         repo,
		grants:       grants,
		log:          log.With().Str("component", "tui").Logger(),
		loc:          repo.Location(),
		now:          time.Now,
		transientTTL: 5 * time.Second,
	}
}

// Init reads the stored grants.
func (m Model) Init() tea.Cmd {
	return loadGrantsCmd(m.grants)
}

func loadGrantsCmd(store permission.GrantStore) tea.Cmd {
	return func() tea.Msg {
		gate, err := permission.Check(context.Background(), store)
		return GrantsLoadedMsg{Gate: gate, Err: err}
	}
}

// answerCmd records the user's answer for both capabilities.
func answerCmd(store permission.GrantStore, granted bool) tea.Cmd {
	return func() tea.Msg {
		result, err := permission.Answer(context.Background(), store, granted, granted)
		return PermissionResultMsg{Result: result, Err: err}
	}
}

func fetchCmd(ctx context.Context, repo *repository.Repository, gate permission.Gate, id string) tea.Cmd {
	return func() tea.Msg {
		entries, err := repo.Fetch(ctx, gate)
		return CallLogsLoadedMsg{RequestID: id, Entries: entries, Err: err}
	}
}

func writeCmd(repo *repository.Repository, gate permission.Gate, payload calllog.EditPayload) tea.Cmd {
	return func() tea.Msg {
		return WriteDoneMsg{Err: repo.Write(context.Background(), gate, payload)}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// startFetch takes the fetch slot, cancelling whatever held it.
func (m *Model) startFetch() tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.fetchID = uuid.NewString()
	m.cancelFetch = cancel
	m.loading = true
	if !m.errorTransient {
		m.errorMessage = ""
	}
	m.log.Debug().Str("request_id", m.fetchID).Msg("fetch call logs")
	return fetchCmd(ctx, m.repo, m.gate, m.fetchID)
}

func (m *Model) releaseFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	m.cancelFetch = nil
	m.fetchID = ""
}

func (m *Model) setError(msg string) {
	m.errorMessage = msg
	m.errorTransient = false
}

func (m *Model) setTransientError(msg string) tea.Cmd {
	m.errorMessage = msg
	m.errorTransient = true
	return clearTransientErrorCmd(m.transientTTL)
}

// applyPermissions merges a request result and decides whether to fetch.
func (m *Model) applyPermissions(result map[calllog.Capability]bool) tea.Cmd {
	change := m.gate.Apply(result)
	m.log.Info().
		Bool("read", m.gate.HasRead).
		Bool("write", m.gate.HasWrite).
		Msg("permissions updated")

	if change != permission.ReadMissing {
		if change == permission.ReadGained || len(m.entries) == 0 || m.errorMessage != "" {
			return m.startFetch()
		}
		return nil
	}

	m.releaseFetch()
	m.loading = false
	m.entries = nil
	m.selected, m.scroll = 0, 0
	m.setError(readRequiredMessage)
	return nil
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case GrantsLoadedMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("read grants")
			m.setError(msg.Err.Error())
		}
		m.gate = msg.Gate
		var cmd tea.Cmd
		if m.gate.HasRead {
			cmd = m.startFetch()
		}
		if m.gate.NeedsRequest() && !m.requested {
			m.requested = true
			m.prompting = true
		}
		return m, cmd

	case PermissionResultMsg:
		m.prompting = false
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("record grants")
			return m, m.setTransientError(msg.Err.Error())
		}
		return m, m.applyPermissions(msg.Result)

	case CallLogsLoadedMsg:
		if msg.RequestID != m.fetchID {
			m.log.Debug().Str("request_id", msg.RequestID).Msg("dropping stale fetch result")
			return m, nil
		}
		m.releaseFetch()
		m.loading = false
		if msg.Err != nil {
			m.entries = nil
			m.setError(msg.Err.Error())
		} else {
			m.entries = msg.Entries
		}
		m.clampScroll()
		if m.closeEditOnLoad {
			m.closeForm()
		}
		return m, nil

	case WriteDoneMsg:
		m.submitting = false
		m.closeEditOnLoad = true
		var clearCmd tea.Cmd
		if msg.Err != nil {
			clearCmd = m.setTransientError(msg.Err.Error())
		}
		return m, tea.Batch(clearCmd, m.startFetch())

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

// handleKey routes key presses to the dialog, the form or the list.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		m.releaseFetch()
		return m, tea.Quit
	}
	if m.prompting {
		return m.handleDialogKey(msg)
	}
	if m.screen == ScreenEdit {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyYes:
		return m, answerCmd(m.grants, true)
	case KeyNo:
		return m, answerCmd(m.grants, false)
	case KeyEsc:
		m.prompting = false
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper:
		m.releaseFetch()
		return m, tea.Quit

	case KeyJ, KeyDown:
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
		m.clampScroll()

	case KeyK, KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		m.clampScroll()

	case KeyEnter, KeyEdit:
		if m.selected < len(m.entries) {
			entry := m.entries[m.selected]
			return m, m.openForm(&entry)
		}

	case KeyAdd:
		return m, m.openForm(nil)

	case KeyRefresh:
		return m, m.startFetch()

	case KeyPerms:
		m.prompting = true
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	f := m.form

	switch msg.String() {
	case KeyEsc:
		m.closeForm()
		return m, nil

	case KeySubmit:
		return m, m.submit()

	case KeyTab, KeyDown:
		return m, f.setFocus(f.focus + 1)

	case KeyShiftTab, KeyUp:
		return m, f.setFocus(f.focus - 1)

	case KeyEnter:
		if f.focus == fieldSubmit {
			return m, m.submit()
		}
		return m, f.setFocus(f.focus + 1)

	case KeyLeft, KeyH:
		if f.focus == fieldType {
			f.cycleType(-1)
			return m, nil
		}

	case KeyRight, KeyL:
		if f.focus == fieldType {
			f.cycleType(1)
			return m, nil
		}
	}
	return m, f.update(msg)
}

// openForm starts an edit session for entry, or an add session when nil.
func (m *Model) openForm(entry *calllog.Entry) tea.Cmd {
	m.form = newEditForm(edit.New(entry, m.now(), m.loc))
	m.screen = ScreenEdit
	m.closeEditOnLoad = false
	return m.form.setFocus(fieldName)
}

// closeForm ends the session. A pending post-write close belongs to it and
// is dropped too.
func (m *Model) closeForm() {
	m.closeEditOnLoad = false
	m.form = nil
	m.screen = ScreenList
}

// submit writes the session. The form stays open until the re-fetch lands.
func (m *Model) submit() tea.Cmd {
	payload := m.form.state.Payload()
	m.submitting = true
	m.log.Debug().
		Str("id", payload.ID).
		Stringer("type", payload.Type).
		Int64("duration", payload.DurationSeconds).
		Msg("submit edit")
	return writeCmd(m.repo, m.gate, payload)
}

func (m *Model) clampScroll() {
	if m.selected >= len(m.entries) {
		m.selected = max(0, len(m.entries)-1)
	}
	visible := m.listVisibleLines()
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+visible {
		m.scroll = m.selected - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m Model) listVisibleLines() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + status(1) + dividers(2) + column header(1) + error(1) + footer(1)
	reserved := 7
	return max(3, m.height-reserved)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch {
	case m.prompting:
		sections = append(sections, m.renderPermissionDialog())
	case m.screen == ScreenEdit && m.form != nil:
		sections = append(sections, m.form.view())
	default:
		sections = append(sections, m.renderList())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("CALL EDITOR")
	count := ui.DimStyle.Render(fmt.Sprintf(" · %d calls", len(m.entries)))
	return title + count
}

func (m Model) renderStatusBar() string {
	flag := func(label string, ok bool) string {
		if ok {
			return ui.GrantedStyle.Render("● " + label)
		}
		return ui.DeniedStyle.Render("○ " + label)
	}
	status := ui.StatusStyle.Render("Access ") + flag("READ", m.gate.HasRead) + "  " + flag("WRITE", m.gate.HasWrite)

	if m.loading {
		status += "  " + ui.SpinnerStyle.Render("⟳ Loading")
	}
	if m.submitting {
		status += "  " + ui.SpinnerStyle.Render("⟳ Saving")
	}
	return status
}

func (m Model) renderPermissionDialog() string {
	body := strings.Join([]string{
		ui.PanelTitleStyle.Render("Call log access"),
		"",
		"calleditor needs to read and write your call log",
		"to show recent calls and save edits.",
		"",
		ui.FooterKeyStyle.Render("y") + ui.FooterDescStyle.Render(" Allow") + "   " +
			ui.FooterKeyStyle.Render("n") + ui.FooterDescStyle.Render(" Deny") + "   " +
			ui.FooterKeyStyle.Render("esc") + ui.FooterDescStyle.Render(" Later"),
	}, "\n")
	return ui.DialogStyle.Render(body)
}

const (
	colType   = 20
	colName   = 22
	colNumber = 16
	colDate   = 22
)

func (m Model) renderList() string {
	height := m.listVisibleLines()

	header := "  " +
		padRight("TYPE", colType) +
		padRight("NAME", colName) +
		padRight("NUMBER", colNumber) +
		padRight("DATE", colDate) +
		"DURATION"
	lines := []string{ui.PanelTitleStyle.Render(truncateToWidth(header, m.width))}

	switch {
	case len(m.entries) > 0:
		end := min(len(m.entries), m.scroll+height)
		for i := m.scroll; i < end; i++ {
			lines = append(lines, m.renderRow(i))
		}
	case !m.gate.HasRead:
		lines = append(lines, "", ui.ErrorTextStyle.Render("  "+readRequiredMessage))
		lines = append(lines, ui.DimStyle.Render("  Press p to grant access"))
	case m.loading:
		lines = append(lines, "", ui.DimStyle.Render("  Loading call logs..."))
	case m.errorMessage != "":
		lines = append(lines, "", ui.DimStyle.Render("  Press r to retry"))
	default:
		lines = append(lines, "", ui.DimStyle.Render("  No call logs found."))
		lines = append(lines, ui.DimStyle.Render("  Press r to refresh or a to add a call"))
	}

	for len(lines) < height+1 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int) string {
	e := m.entries[i]

	number := ""
	if e.Number != nil {
		number = *e.Number
	}

	typeCell := ui.TypeStyle(e.Type).Render(padRight(e.Type.String(), colType))
	rest := padRight(truncateToWidth(e.DisplayName(), colName-1), colName) +
		padRight(truncateToWidth(number, colNumber-1), colNumber) +
		ui.TimestampStyle.Render(padRight(e.Time(m.loc).Format(calllog.ListLayout), colDate)) +
		calllog.FormatDuration(e.Duration)

	if i == m.selected {
		return ui.SelectedStyle.Render("> ") + typeCell + ui.SelectedStyle.Render(rest)
	}
	return "  " + typeCell + rest
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	key := func(k, desc string) string {
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	var parts []string
	switch {
	case m.prompting:
		parts = append(parts, key("y/n", "Answer"))
	case m.screen == ScreenEdit:
		parts = append(parts, key("Tab", "Next"), key("←→", "Type"), key("ctrl+s", "Save"), key("esc", "Cancel"))
	default:
		parts = append(parts, key("j/k", "Nav"), key("enter", "Edit"), key("a", "Add"), key("r", "Refresh"), key("p", "Permissions"), key("q", "Quit"))
	}
	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if width > 0 && len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watson-tui/watson-tui/internal/config"
	"github.com/watson-tui/watson-tui/internal/model"
	"github.com/watson-tui/watson-tui/internal/watson"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeMain   ViewMode = iota // Start/stop form and timer
	ViewModeHelp                   // Help overlay
	ViewModeReport                 // Scrollable log/CSV report
)

// focusArea is which form field, if any, receives typed input. Command
// keys (start, stop, reports) only apply while nothing is focused.
type focusArea int

const (
	focusNone focusArea = iota
	focusProject
	focusTags
	focusStartAt
)

// Model is the root Bubble Tea model. It owns the session state machine:
// Idle (no start time) or Running (watson reported a start time), and it
// is the only mutator of the widgets that mirror that state. Watson calls
// run synchronously inside Update; they are short-lived local process
// invocations, and every status refresh happens strictly after the
// mutating call that motivated it.
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	tracker watson.Tracker
	keys    KeyMap

	// Session state, mirrored from watson status
	session model.Session

	// Form widgets
	project textinput.Model
	tags    TagList
	startAt model.StartMode
	timer   Timer

	focus    focusArea
	viewMode ViewMode

	// Report overlay
	reportTitle string
	report      viewport.Model

	// Modal alert; non-empty means it is shown and blocks all other input
	alertTitle string
	alert      string
}

// NewRootModel queries watson once for the initial state and builds the
// UI around it. A ProtocolError from the status query is returned to the
// caller; before the first render there is no prior view state to keep.
func NewRootModel(cfg *config.Config, tr watson.Tracker) (Model, error) {
	start, err := tr.Status()
	if err != nil {
		return Model{}, err
	}
	projects, _ := tr.Projects()
	tags, _ := tr.Tags()

	project := textinput.New()
	project.Placeholder = "project"
	project.Prompt = "> "
	project.PromptStyle = DimStyle
	project.CharLimit = 0
	project.Width = 30
	project.ShowSuggestions = true
	project.SetSuggestions(projects)
	project.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("enter"))
	project.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	project.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	if len(projects) > 0 {
		project.SetValue(projects[0])
	}

	tagList := NewTagList()
	tagList.SetOptions(tags)

	timer := NewTimer()
	timer.SetStartTime(start)

	return Model{
		tracker:  tr,
		keys:     DefaultKeyMap(),
		session:  model.Session{ActiveSince: start},
		project:  project,
		tags:     tagList,
		startAt:  cfg.DefaultStartMode(),
		timer:    timer,
		focus:    focusNone,
		viewMode: ViewModeMain,
		report:   viewport.New(0, 0),
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.timer.Init())
}

// Update handles all events on the single UI goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		fieldWidth := m.width - 24
		if fieldWidth > 48 {
			fieldWidth = 48
		}
		if fieldWidth < 16 {
			fieldWidth = 16
		}
		m.project.Width = fieldWidth
		m.tags.SetWidth(fieldWidth)

		m.report.Width = m.width - 6
		m.report.Height = m.height - 6
		if m.report.Height < 1 {
			m.report.Height = 1
		}
		return m, nil

	case timerTickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.timer.Stop()
		return m, tea.Quit
	}

	// The alert is modal: it swallows everything until dismissed.
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
			m.alertTitle = ""
		}
		return m, nil
	}

	switch m.viewMode {
	case ViewModeHelp:
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
			m.viewMode = ViewModeMain
		}
		return m, nil

	case ViewModeReport:
		// Reports are modal: only scrolling and dismissal, no form
		// input behind them.
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
			m.viewMode = ViewModeMain
			return m, nil
		}
		var cmd tea.Cmd
		m.report, cmd = m.report.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Escape):
		m.blurAll()
		return m, nil
	}

	switch m.focus {
	case focusProject:
		var cmd tea.Cmd
		m.project, cmd = m.project.Update(msg)
		return m, cmd

	case focusTags:
		switch {
		case key.Matches(msg, m.keys.Up):
			cmd, _ := m.tags.FocusPrev()
			return m, cmd
		case key.Matches(msg, m.keys.Down):
			cmd, _ := m.tags.FocusNext()
			return m, cmd
		}
		cmd := m.tags.Update(msg)
		return m, cmd

	case focusStartAt:
		if key.Matches(msg, m.keys.Cycle) {
			if m.startAt == model.StartNow {
				m.startAt = model.StartAtLastStop
			} else {
				m.startAt = model.StartNow
			}
		}
		return m, nil
	}

	// Nothing focused: command keys. Start is only reachable while Idle
	// and Stop while Running; in the wrong state the key does nothing,
	// which is how button availability is enforced.
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.timer.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewModeHelp
	case key.Matches(msg, m.keys.Start):
		if !m.session.Running() {
			m.startSession()
		}
	case key.Matches(msg, m.keys.Stop):
		if m.session.Running() {
			m.stopSession()
		}
	case key.Matches(msg, m.keys.Log):
		m.showReport("WATSON LOG", m.tracker.Log)
	case key.Matches(msg, m.keys.CSV):
		m.showReport("WATSON REPORT (CSV)", m.tracker.ReportCSV)
	}
	return m, nil
}

// startSession issues the start operation and re-synchronizes from the
// status query that follows it.
func (m *Model) startSession() {
	projectName := m.project.Value()
	if projectName == "" {
		verr := &model.ValidationError{Field: "Project", Reason: "name cannot be empty"}
		m.showAlert("Invalid input", verr.Error())
		return
	}

	if err := m.tracker.Start(projectName, m.tags.Values(), m.startAt.NoGap()); err != nil {
		m.showAlert("Watson error", err.Error())
		// fall through: the status query below reports what actually happened
	}

	start, err := m.tracker.Status()
	if err != nil {
		// Protocol violation: halt here and keep prior state. An alert
		// from the failed start call stays up; it names the root cause.
		if m.alert == "" {
			m.showAlert("Watson error", err.Error())
		}
		return
	}
	m.session.ActiveSince = start
	m.timer.SetStartTime(start)
}

// stopSession issues the stop operation, refreshes both option sets
// (a newly used project or tag may now be listed) and resets the timer.
func (m *Model) stopSession() {
	if err := m.tracker.Stop(); err != nil {
		m.showAlert("Watson error", err.Error())
		if start, serr := m.tracker.Status(); serr == nil {
			m.session.ActiveSince = start
			m.timer.SetStartTime(start)
		}
		return
	}

	if projects, err := m.tracker.Projects(); err == nil {
		m.project.SetSuggestions(projects)
	}
	if tags, err := m.tracker.Tags(); err == nil {
		m.tags.SetOptions(tags)
	}
	m.session.ActiveSince = nil
	m.timer.SetStartTime(nil)
}

// showReport fetches a text report and opens it in the scrollable
// overlay. Reports never alter the session or the option sets.
func (m *Model) showReport(title string, fetch func() (string, error)) {
	text, err := fetch()
	if err != nil {
		m.showAlert("Watson error", err.Error())
		return
	}
	m.reportTitle = title
	m.report.SetContent(text)
	m.report.GotoTop()
	m.viewMode = ViewModeReport
}

func (m *Model) showAlert(title, text string) {
	m.alertTitle = title
	m.alert = text
}

// cycleFocus moves focus along project -> tag slots -> start-at -> none.
func (m Model) cycleFocus(dir int) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusNone:
		if dir > 0 {
			m.focus = focusProject
			cmd = m.project.Focus()
		} else {
			m.focus = focusStartAt
		}
	case focusProject:
		m.project.Blur()
		if dir > 0 {
			m.focus = focusTags
			cmd = m.tags.Focus()
		} else {
			m.focus = focusNone
		}
	case focusTags:
		if dir > 0 {
			if c, ok := m.tags.FocusNext(); ok {
				return m, c
			}
			m.tags.Blur()
			m.focus = focusStartAt
		} else {
			if c, ok := m.tags.FocusPrev(); ok {
				return m, c
			}
			m.tags.Blur()
			m.focus = focusProject
			cmd = m.project.Focus()
		}
	case focusStartAt:
		if dir > 0 {
			m.focus = focusNone
		} else {
			m.focus = focusTags
			cmd = m.tags.FocusLast()
		}
	}
	return m, cmd
}

func (m *Model) blurAll() {
	m.project.Blur()
	m.tags.Blur()
	m.focus = focusNone
}

// View renders the current view
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.alert != "" {
		return m.alertView()
	}
	switch m.viewMode {
	case ViewModeHelp:
		return m.helpView()
	case ViewModeReport:
		return m.reportView()
	default:
		return m.mainView()
	}
}

func (m Model) mainView() string {
	header := m.renderHeader()
	form := m.renderForm()
	timer := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingTop(1).
		PaddingBottom(1).
		Render(m.timer.View())
	statusBar := m.renderStatusBar()

	body := lipgloss.JoinVertical(lipgloss.Left, header, form, timer)

	// Pin the status bar to the bottom row
	bodyHeight := lipgloss.Height(body)
	if pad := m.height - bodyHeight - 1; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("WATSON")

	subtitle := lipgloss.NewStyle().
		Foreground(ColorFgMuted).
		Render("Time Tracker")

	return lipgloss.NewStyle().
		Width(m.width).
		Render(title+"  "+subtitle) + "\n"
}

func (m Model) renderForm() string {
	label := func(s string, focused bool) string {
		if focused {
			return FormLabelStyle.Render(s)
		}
		return lipgloss.NewStyle().Foreground(ColorFgSecondary).Render(s)
	}

	field := func(s string, focused bool) string {
		if focused {
			return FieldFocusedStyle.Render(s)
		}
		return FieldBlurredStyle.Render(s)
	}

	rows := []string{
		label("Project", m.focus == focusProject) + "\n" + field(m.project.View(), m.focus == focusProject),
		label("Tags", m.focus == focusTags) + "\n" + field(m.tags.View(), m.focus == focusTags),
		label("Start at", m.focus == focusStartAt) + "\n" + field(m.renderStartAt(), m.focus == focusStartAt),
	}

	return FormStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderStartAt() string {
	var choices []string
	for _, mode := range model.StartModes() {
		if mode == m.startAt {
			choices = append(choices, ChoiceSelectedStyle.Render(mode.String()))
		} else {
			choices = append(choices, ChoiceStyle.Render(mode.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, choices...)
}

func (m Model) renderStatusBar() string {
	var status string
	if m.session.Running() {
		status = StatusRunningStyle.Render("● Running") +
			DimStyle.Render(" since "+m.session.ActiveSince.Format("15:04:05"))
	} else {
		status = StatusIdleStyle.Render("○ Idle")
	}

	mutedStyle := lipgloss.NewStyle().Foreground(ColorFgMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorFgPrimary)

	var helpHint string
	if m.focus != focusNone {
		helpHint = mutedStyle.Render(" │ ") +
			keyStyle.Render("Tab") + mutedStyle.Render(" next field │ ") +
			keyStyle.Render("Enter") + mutedStyle.Render(" complete │ ") +
			keyStyle.Render("Esc") + mutedStyle.Render(" done")
	} else {
		var action string
		if m.session.Running() {
			action = keyStyle.Render("x") + mutedStyle.Render(" stop │ ")
		} else {
			action = keyStyle.Render("s") + mutedStyle.Render(" start │ ")
		}
		helpHint = mutedStyle.Render(" │ ") + action +
			keyStyle.Render("l") + mutedStyle.Render(" log │ ") +
			keyStyle.Render("c") + mutedStyle.Render(" csv │ ") +
			keyStyle.Render("Tab") + mutedStyle.Render(" edit │ ") +
			keyStyle.Render("?") + mutedStyle.Render(" help │ ") +
			keyStyle.Render("q") + mutedStyle.Render(" quit")
	}

	return StatusBarStyle.Render(status + helpHint)
}

func (m Model) reportView() string {
	title := ReportTitleStyle.Render(m.reportTitle)
	hint := DimStyle.Render("↑/↓ scroll · Esc close")
	box := ReportStyle.Width(m.width - 2).Render(m.report.View())
	return lipgloss.JoinVertical(lipgloss.Left, " "+title, box, " "+hint)
}

func (m Model) alertView() string {
	content := AlertTitleStyle.Render(m.alertTitle) + "\n\n" +
		m.alert + "\n\n" +
		DimStyle.Render("Press Enter to dismiss")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		AlertStyle.Render(content),
	)
}

// helpView renders the help overlay
func (m Model) helpView() string {
	title := HelpTitleStyle.Render("Keyboard Shortcuts")

	help := `
` + HelpKeyStyle.Render("s") + HelpDescStyle.Render("       Start tracking (when idle)") + `
` + HelpKeyStyle.Render("x") + HelpDescStyle.Render("       Stop tracking (when running)") + `
` + HelpKeyStyle.Render("l") + HelpDescStyle.Render("       Show log") + `
` + HelpKeyStyle.Render("c") + HelpDescStyle.Render("       Show CSV report") + `
` + HelpKeyStyle.Render("Tab") + HelpDescStyle.Render("     Next field") + `
` + HelpKeyStyle.Render("↑/↓") + HelpDescStyle.Render("     Move between tag slots") + `
` + HelpKeyStyle.Render("←/→") + HelpDescStyle.Render("     Change start-at choice") + `
` + HelpKeyStyle.Render("Enter") + HelpDescStyle.Render("   Accept suggestion") + `
` + HelpKeyStyle.Render("Esc") + HelpDescStyle.Render("     Leave field / close view") + `
` + HelpKeyStyle.Render("q") + HelpDescStyle.Render("       Quit") + `
`

	content := title + "\n" + help + "\n" + HelpDescStyle.Render("Press ? or Esc to close")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		HelpStyle.Render(content),
	)
}

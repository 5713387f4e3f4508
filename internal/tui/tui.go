package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackout/internal/deck"
	"github.com/lox/blackout/internal/game"
	"github.com/lox/blackout/internal/play"
	"github.com/lox/blackout/internal/session"
)

// Model is the Bubble Tea model for a party session. With no game open the
// input goes to the hub; otherwise it goes to the open game's driver.
type Model struct {
	session *session.Session
	logger  *log.Logger
	driver  play.Driver
	hub     []hubCommand

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	width       int
	height      int
	initialized bool

	testMode    bool
	capturedLog []string
}

type hubCommand struct {
	name, usage, description string
	aliases                  []string
	run                      func(args []string) error
}

func (m *Model) initHub() {
	m.hub = []hubCommand{
		{name: "games", description: "List the games", run: m.listGames},
		{name: "open", aliases: []string{"o", "play"}, usage: "<game>", description: "Open a game", run: m.openGame},
		{name: "back", aliases: []string{"hub"}, description: "Close the open game", run: m.closeGame},
		{name: "leaderboard", aliases: []string{"lb"}, description: "Show who drank what", run: m.showLeaderboard},
		{name: "help", aliases: []string{"?"}, description: "Show available commands", run: m.showHelp},
		{name: "quit", aliases: []string{"q", "exit"}, description: "Leave the party", run: m.quit},
	}
}

func (m *Model) findHubCommand(name string) (hubCommand, bool) {
	for _, c := range m.hub {
		if c.name == name {
			return c, true
		}
		for _, a := range c.aliases {
			if a == name {
				return c, true
			}
		}
	}
	return hubCommand{}, false
}

// NewModel creates the model for a session
func NewModel(s *session.Session, logger *log.Logger) *Model {
	return NewModelWithOptions(s, logger, false)
}

// NewModelWithOptions creates a model; test mode captures the log instead of
// drawing it
func NewModelWithOptions(s *session.Session, logger *log.Logger, testMode bool) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:     s,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
		testMode:    testMode,
	}
	m.initHub()
	m.AddLogEntry(HeaderStyle.Render(" Blackout ") + " " + strings.Join(s.Names(), ", "))
	m.AddLogEntry("Type 'games' to see what's on, 'open <game>' to start one, 'help' for commands.")
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.Submit(m.input.Value())
				m.input.SetValue("")
				if m.quitting {
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit runs one line of input. Hub commands work everywhere; anything
// else goes to the open game.
func (m *Model) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	m.AddLogEntry(InputEchoStyle.Render("> " + line))

	fields := strings.Fields(line)
	if hc, ok := m.findHubCommand(strings.ToLower(fields[0])); ok {
		if err := hc.run(fields[1:]); err != nil {
			m.AddLogEntry(ErrorStyle.Render(err.Error()))
		}
		return
	}

	if m.driver == nil {
		m.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("unknown command %q, try 'help'", fields[0])))
		return
	}

	resp, err := m.driver.Exec(line)
	if err != nil {
		m.logger.Debug("Command rejected", "game", m.driver.Kind(), "line", line, "error", err)
		m.AddLogEntry(ErrorStyle.Render(describeError(err)))
		return
	}
	for _, l := range resp.Lines {
		m.AddLogEntry(colorize(l))
	}
	if m.driver.Done() {
		m.AddLogEntry(WarningStyle.Render(m.driver.Title() + " is over. 'back' for the hub."))
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, play.ErrUnknownCommand):
		return err.Error() + ", try 'help'"
	case errors.Is(err, game.ErrInvalidOperation):
		return "Not now: " + err.Error()
	}
	return err.Error()
}

func (m *Model) listGames([]string) error {
	for _, k := range game.Kinds {
		m.AddLogEntry("  " + k.String())
	}
	return nil
}

func (m *Model) openGame(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: open <game>", play.ErrUsage)
	}
	kind, err := game.ParseKind(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	d, err := play.New(m.session, kind)
	if err != nil {
		return err
	}
	m.driver = d
	m.logger.Debug("Opened game", "game", kind)
	m.AddLogEntry(HeaderStyle.Render(" " + d.Title() + " "))
	return m.showHelp(nil)
}

func (m *Model) closeGame([]string) error {
	if m.driver == nil {
		return nil
	}
	m.AddLogEntry("Closed " + m.driver.Title())
	m.driver = nil
	return nil
}

func (m *Model) showLeaderboard([]string) error {
	for i, t := range m.session.Ledger().Leaderboard() {
		m.AddLogEntry(fmt.Sprintf("%d. %s: %s, %s, handed out %s",
			i+1, t.Name,
			play.Amount(t.DrankShots, deck.Shot), play.Amount(t.DrankSips, deck.Sips),
			play.Amount(t.GaveSips, deck.Sips)))
	}
	return nil
}

func (m *Model) showHelp([]string) error {
	if m.driver != nil {
		for _, c := range m.driver.Commands() {
			m.AddLogEntry(fmt.Sprintf("  %-28s %s", c.Synopsis(), c.Description))
		}
	}
	for _, c := range m.hub {
		syn := c.name
		if c.usage != "" {
			syn += " " + c.usage
		}
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("  %-28s %s", syn, c.description)))
	}
	return nil
}

func (m *Model) quit([]string) error {
	m.quitting = true
	return nil
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusColor).
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight-2))
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(30, lipgloss.Width(sidebarContent))
	paneHeight := max(1, m.height-actionHeight-4)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = paneHeight
	if !m.initialized && m.logViewport.Width > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(m.logViewport.Width).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(FocusColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderSidebarPane() string {
	var b strings.Builder
	if m.driver != nil {
		b.WriteString(HandInfoStyle.Render(m.driver.Title()))
		b.WriteString("\n")
		for _, line := range m.driver.Status() {
			b.WriteString(colorize(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("Leaderboard"))
	b.WriteString("\n")
	for _, t := range m.session.Ledger().Leaderboard() {
		b.WriteString(fmt.Sprintf("  %s: %d shots, %d sips\n", t.Name, t.DrankShots, t.DrankSips))
	}
	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder
	if m.driver != nil {
		names := make([]string, 0, len(m.driver.Commands()))
		for _, c := range m.driver.Commands() {
			names = append(names, c.Name)
		}
		b.WriteString(ActionsStyle.Render("Actions: " + strings.Join(names, " ")))
		m.input.Placeholder = "Enter a command ('help' for the list)"
	} else {
		b.WriteString(ActionsStyle.Render("Hub: games, open <game>, leaderboard, quit"))
		m.input.Placeholder = "open blackjack"
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.focusedPane == 0 {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

// colorize paints suit symbols in card colours
func colorize(line string) string {
	return suitReplacer.Replace(line)
}

var suitReplacer = strings.NewReplacer(
	"♥", RedCardStyle.Render("♥"),
	"♦", RedCardStyle.Render("♦"),
	"♣", BlackCardStyle.Render("♣"),
	"♠", BlackCardStyle.Render("♠"),
)

// AddLogEntry appends to the log and scrolls to the bottom
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// Driver returns the open game, if any
func (m *Model) Driver() play.Driver { return m.driver }

// Quitting reports whether the user asked to leave
func (m *Model) Quitting() bool { return m.quitting }

// Run starts the full-screen program
func Run(s *session.Session, logger *log.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(s, logger), opts...).Run()
	return err
}

package tui

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/timekeeper/internal/config"
	"github.com/tatianab/timekeeper/internal/console"
	"github.com/tatianab/timekeeper/internal/engine"
	"github.com/tatianab/timekeeper/internal/input"
	"github.com/tatianab/timekeeper/internal/models"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateHelp
	stateName
	statePlaying
	stateEnding
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	report    models.Report
	textInput textinput.Model
	viewport  viewport.Model
	width     int
	height    int
	notice    string

	gameLog string
	typer   typewriter
	delay   time.Duration
	ticking bool
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)
)

// NewModel returns the main-menu model. delay is the per-character reveal
// interval of narration; zero shows text at once.
func NewModel(delay time.Duration) model {
	ti := textinput.New()
	ti.Placeholder = "1, 2 or 3"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		state:     stateMenu,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		width:     80,
		height:    26,
		delay:     delay,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type tickMsg struct{}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.typer.busy() {
				m.typer.skip()
				m.flushTyped()
				return m, nil
			}
			value := m.textInput.Value()
			m.textInput.Reset()
			return m.submit(value)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = max(msg.Height-12, 3)
		m.viewport.SetContent(m.renderLog())

	case tickMsg:
		m.ticking = false
		if m.typer.advance() {
			m.ticking = true
			m.viewport.SetContent(m.renderLog())
			m.viewport.GotoBottom()
			return m, m.tick()
		}
		m.flushTyped()
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) submit(value string) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch m.state {
	case stateMenu:
		tok, ok := input.Resolve(value, console.MenuChoices)
		if !ok {
			m.notice = "Please enter one of: 1, 2, 3"
			return m, nil
		}
		switch tok {
		case "1":
			m.state = stateName
			m.textInput.Placeholder = models.DefaultName
		case "2":
			m.state = stateHelp
			m.textInput.Placeholder = "Press Enter to return"
		case "3":
			return m, tea.Quit
		}

	case stateHelp:
		m.state = stateMenu
		m.textInput.Placeholder = "1, 2 or 3"

	case stateName:
		m.engine = engine.New(strings.TrimSpace(value))
		log.Printf("run started for %q", m.engine.State().Name)
		return m.begin()

	case statePlaying:
		value = strings.TrimSpace(value)
		switch value {
		case "/quit":
			return m, tea.Quit
		case "/restart":
			log.Printf("run abandoned in %s", m.engine.Scene().ID)
			m.state = stateMenu
			m.engine = nil
			m.gameLog = ""
			m.typer = typewriter{}
			m.textInput.Placeholder = "1, 2 or 3"
			return m, nil
		}
		return m.choose(value)

	case stateEnding:
		tok, ok := input.Resolve(value, console.AgainChoices)
		if !ok {
			m.notice = "Please enter one of: 1, 2"
			return m, nil
		}
		if tok == "2" {
			return m, tea.Quit
		}
		m.engine.Reset()
		log.Printf("run restarted for %q", m.engine.State().Name)
		return m.begin()
	}
	return m, nil
}

// begin shows the opening of a fresh run.
func (m model) begin() (tea.Model, tea.Cmd) {
	m.state = statePlaying
	m.gameLog = ""
	m.typer = typewriter{}
	m.textInput.Placeholder = "What will you do?"
	welcome := fmt.Sprintf("Welcome, %s! Your journey begins...", m.engine.State().Name)
	m.appendLines(append([]string{welcome}, m.engine.Start().Lines...)...)
	m.appendScene()
	cmd := m.startTyping()
	return m, cmd
}

func (m model) choose(value string) (tea.Model, tea.Cmd) {
	choices := m.engine.Choices()
	tok, ok := input.Resolve(value, choices)
	if !ok {
		m.notice = "Please enter one of: " + strings.Join(m.engine.Tokens(), ", ")
		return m, nil
	}
	label := tok
	for _, c := range choices {
		if c.Token == tok {
			label = c.Label
		}
	}

	step, err := m.engine.Choose(tok)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	log.Printf("chose %s: outcomes=%v scene=%s", tok, step.Outcomes, step.Scene)

	m.flushTyped()
	logWidth := m.viewport.Width
	m.gameLog += "\n" + userStyle.Width(logWidth).Render("> "+label) + "\n\n"
	m.appendLines(step.Lines...)

	if step.Ending != nil {
		log.Printf("run ended: %s", step.Ending.Title)
		m.appendLines("", "ENDING: "+step.Ending.Title)
		m.report = models.NewReport(m.engine.State())
		m.state = stateEnding
		m.textInput.Placeholder = "1 or 2"
	} else {
		m.appendScene()
	}
	cmd := m.startTyping()
	return m, cmd
}

func (m *model) appendScene() {
	sc := m.engine.Scene()
	lines := append([]string{"", strings.ToUpper(sc.Title)}, m.engine.Describe()...)
	m.appendLines(lines...)
}

func (m *model) appendLines(lines ...string) {
	for _, l := range lines {
		m.typer.push(l + "\n")
	}
}

// startTyping reveals queued text immediately when no delay is configured,
// otherwise schedules the first tick.
func (m *model) startTyping() tea.Cmd {
	if m.delay <= 0 {
		m.typer.skip()
		m.flushTyped()
		return nil
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
	if m.ticking || !m.typer.busy() {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *model) flushTyped() {
	m.gameLog += m.typer.take()
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateMenu:
		s = lipgloss.JoinVertical(lipgloss.Left,
			bannerStyle.Render("TIMEKEEPER CHRONICLES"),
			"An epic text adventure with multiple endings",
			"",
			renderChoices(console.MenuChoices),
			"",
			m.textInput.View(),
		)

	case stateHelp:
		s = lipgloss.JoinVertical(lipgloss.Left,
			bannerStyle.Render("HOW TO PLAY"),
			console.HowToPlay,
			"",
			helpStyle.Render("Press Enter to return to the menu."),
		)

	case stateName:
		s = fmt.Sprintf("%s\n\n%s\n\n%s",
			bannerStyle.Render("TIMEKEEPER CHRONICLES"),
			engine.NamePrompt,
			m.textInput.View(),
		)

	case statePlaying:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"",
			renderChoices(m.engine.Choices()),
			"\n"+m.textInput.View(),
			"\n"+helpStyle.Render("Type a number or keyword. Commands: /restart, /quit. Enter skips text."),
		)

	case stateEnding:
		s = lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			"",
			renderReport(m.report),
			"",
			renderChoices(console.AgainChoices),
			"\n"+m.textInput.View(),
		)
	}

	if m.notice != "" {
		s += "\n" + noticeStyle.Render(m.notice)
	}
	return "\n" + s + "\n"
}

func renderChoices(cs []engine.Choice) string {
	lines := make([]string, len(cs))
	for i, c := range cs {
		lines[i] = fmt.Sprintf("%s. %s", c.Token, c.Label)
	}
	return strings.Join(lines, "\n")
}

func (m model) renderState() string {
	if m.engine == nil {
		return ""
	}

	state := m.engine.State()

	location := titleStyle.Render("LOCATION") + "\n" +
		fmt.Sprintf("Chapter %d\n%s\n\n", state.Chapter, m.engine.Scene().Title)

	statsTitle := titleStyle.Render("STATS") + "\n"
	stats := fmt.Sprintf("Health: %d/%d\nKnowledge: %d\nCourage: %d\nCompassion: %d\n\n",
		state.Health, models.MaxHealth, state.Knowledge, state.Courage, state.Compassion)

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(state.Inventory) == 0 {
		inventory = "(empty)"
	} else {
		for _, item := range state.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	content := location + statsTitle + stats + invTitle + inventory

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func renderReport(r models.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ADVENTURE COMPLETE") + "\n")
	fmt.Fprintf(&b, "HERO: %s\nENDING: %s\n\n", r.Hero, r.Ending)
	fmt.Fprintf(&b, "Health: %d/%d  Knowledge: %d  Courage: %d  Compassion: %d\n\n",
		r.Health, models.MaxHealth, r.Knowledge, r.Courage, r.Compassion)
	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	if len(r.Inventory) == 0 {
		b.WriteString("(Empty)\n")
	}
	for _, item := range r.Inventory {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n" + titleStyle.Render("ACHIEVEMENTS") + "\n")
	if len(r.Achievements) == 0 {
		b.WriteString("(No achievements)")
	}
	for _, a := range r.Achievements {
		b.WriteString("- " + a + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderLog() string {
	return gameStyle.Width(m.viewport.Width).Render(m.gameLog + m.typer.visible())
}

// Run starts the bubbletea program. Log output goes to cfg.LogFile when set
// and is discarded otherwise, since the terminal belongs to the TUI.
func Run(cfg *config.Config) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "timekeeper")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(NewModel(cfg.TypingDelay), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

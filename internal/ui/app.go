package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skyhook/neotrack/internal/dates"
	"github.com/skyhook/neotrack/internal/neows"
)

// Terminal literals. These match the original tracker's output exactly.
const (
	titleText        = "NEO (Near Earth Object) Tracker"
	optionsHeading   = "Options:"
	invalidOptionMsg = "Invalid option selected, please try again:"
	promptStartDate  = "Enter start date (YYYY-MM-DD) - leave blank to start from now:"
	promptEndDate    = "Enter end date (YYYY-MM-DD) - leave blank to default to 7 days from start date:"
	promptNeoID      = "Enter id of NEO to inspect"
	fetchedDataMsg   = "Fetched data"
	notFoundMsg      = "Couldn't find NEO with that ID!"
	exitHint         = "press any key to exit"

	optionMargin     = "  "
	defaultExitAfter = 10 * time.Second
)

var titleRunes = []rune(titleText)

// phase tracks where the session is in the menu/flow state machine.
type phase int

const (
	phaseMenu phase = iota
	phaseFeedStart
	phaseFeedEnd
	phaseLookupID
	phaseFetching
	phaseDone
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Fetcher neows.Fetcher

	ThemeName string

	// TypingDelay paces the title's typewriter rendering. Zero renders
	// the title whole; tests always run with zero.
	TypingDelay time.Duration

	// ExitAfter bounds how long the final screen stays up without a
	// keypress. Zero uses the default.
	ExitAfter time.Duration
}

// Model is the root session state for Bubble Tea.
type Model struct {
	ctx     context.Context
	fetcher neows.Fetcher

	theme  Theme
	styles Styles

	typingDelay time.Duration
	exitAfter   time.Duration

	phase phase
	flow  Flow
	input textinput.Model

	// lines is the session transcript rendered below the option list:
	// prompts, echoed input, retry messages, fetch results.
	lines []string

	feedStart string

	titleShown int
	width      int
	height     int

	// err is the fatal error the program exits with; the terminal is
	// restored before it surfaces.
	err error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	exitAfter := opts.ExitAfter
	if exitAfter <= 0 {
		exitAfter = defaultExitAfter
	}

	theme := GetTheme(opts.ThemeName)

	shown := 0
	if opts.TypingDelay <= 0 {
		shown = len(titleRunes)
	}

	return Model{
		ctx:         ctx,
		fetcher:     opts.Fetcher,
		theme:       theme,
		styles:      theme.Styles(),
		typingDelay: opts.TypingDelay,
		exitAfter:   exitAfter,
		phase:       phaseMenu,
		titleShown:  shown,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.titleShown < len(titleRunes) {
		return typeTickCmd(m.typingDelay)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case typeTickMsg:
		if m.titleShown < len(titleRunes) {
			m.titleShown++
			if m.titleShown < len(titleRunes) {
				return m, typeTickCmd(m.typingDelay)
			}
		}
		return m, nil

	case fetchSuccessMsg:
		m.lines = append(m.lines, fetchedDataMsg, strings.Join(msg.fields, "|"))
		return m.finishFlow()

	case fetchNotFoundMsg:
		m.lines = append(m.lines, "", notFoundMsg)
		return m.finishFlow()

	case fetchErrorMsg:
		m.err = fmt.Errorf("request failed: %w", msg.err)
		return m, tea.Quit

	case exitTickMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input for the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseMenu:
		return m.handleMenuKey(msg)

	case phaseFeedStart, phaseFeedEnd, phaseLookupID:
		if msg.Type == tea.KeyEnter {
			return m.submitInput()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseFetching:
		// A fetch is in flight; input resumes when its message lands.
		return m, nil

	case phaseDone:
		return m, tea.Quit
	}

	return m, nil
}

// handleMenuKey resolves one keystroke against the option table. An
// unknown key appends the retry message and keeps reading; the loop is
// one Update pass per key, unbounded.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if len(key) == 1 {
		if opt, ok := lookupOption(key[0]); ok {
			m.lines = append(m.lines, fmt.Sprintf("You selected %c", opt.Key))
			m.flow = opt.Flow
			return m.enterFlow()
		}
	}
	m.lines = append(m.lines, "", invalidOptionMsg)
	return m, nil
}

// enterFlow moves from the menu into the selected flow's first prompt.
func (m Model) enterFlow() (tea.Model, tea.Cmd) {
	switch m.flow {
	case FlowFeed:
		m.phase = phaseFeedStart
		m.lines = append(m.lines, promptStartDate)
	case FlowLookup:
		m.phase = phaseLookupID
		m.lines = append(m.lines, promptNeoID)
	}
	m.input = newInput()
	return m, textinput.Blink
}

// submitInput consumes the pending line for the current prompt.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	m.lines = append(m.lines, m.input.Prompt+value)
	m.input.Reset()

	switch m.phase {
	case phaseFeedStart:
		m.feedStart = parseBound(value)
		m.phase = phaseFeedEnd
		m.lines = append(m.lines, promptEndDate)
		return m, nil

	case phaseFeedEnd:
		r := neows.DateRange{Start: m.feedStart, End: parseBound(value)}
		m.phase = phaseFetching
		return m, fetchFeedCmd(m.ctx, m.fetcher, r)

	case phaseLookupID:
		m.phase = phaseFetching
		return m, lookupNeoCmd(m.ctx, m.fetcher, value)
	}

	return m, nil
}

// finishFlow parks the session on the final screen until a keypress or
// the exit pause elapses.
func (m Model) finishFlow() (tea.Model, tea.Cmd) {
	m.phase = phaseDone
	return m, exitTickCmd(m.exitAfter)
}

// parseBound treats a blank or invalid date as an unset bound; the
// server default applies and no message is shown. Invalid input is
// deliberately indistinguishable from blank input here.
func parseBound(raw string) string {
	if dates.IsValid(raw) {
		return raw
	}
	return ""
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()
	return ti
}

// View implements tea.Model.
func (m Model) View() string {
	out := []string{
		m.styles.Title.Render(string(titleRunes[:m.titleShown])),
		"",
	}

	// The option list lands once the title finishes typing.
	if m.titleShown == len(titleRunes) {
		out = append(out, m.styles.Text.Render(optionsHeading))
		for _, opt := range menuOptions {
			out = append(out, optionMargin+fmt.Sprintf("%c) %s", opt.Key, opt.Label))
		}
		out = append(out, "")
	}

	for _, line := range m.lines {
		out = append(out, m.renderLine(line))
	}

	switch m.phase {
	case phaseFeedStart, phaseFeedEnd, phaseLookupID:
		out = append(out, m.input.View())
	case phaseFetching:
		out = append(out, m.styles.MutedText.Render("fetching..."))
	case phaseDone:
		out = append(out, "", m.styles.FaintText.Render(exitHint))
	}

	return m.styles.Box.Render(strings.Join(out, "\n")) + "\n"
}

func (m Model) renderLine(line string) string {
	switch line {
	case fetchedDataMsg:
		return m.styles.SuccessText.Render(line)
	case invalidOptionMsg, notFoundMsg:
		return m.styles.DangerText.Render(line)
	default:
		return m.styles.Text.Render(line)
	}
}

// Messages

type typeTickMsg time.Time

type exitTickMsg time.Time

type fetchSuccessMsg struct {
	fields []string
}

type fetchNotFoundMsg struct{}

type fetchErrorMsg struct {
	err error
}

// Commands

func typeTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return typeTickMsg(t)
	})
}

func exitTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return exitTickMsg(t)
	})
}

func fetchFeedCmd(ctx context.Context, fetcher neows.Fetcher, r neows.DateRange) tea.Cmd {
	return func() tea.Msg {
		fields, err := fetcher.FetchFeed(ctx, r)
		if err != nil {
			return fetchErrorMsg{err: err}
		}
		return fetchSuccessMsg{fields: fields}
	}
}

func lookupNeoCmd(ctx context.Context, fetcher neows.Fetcher, id string) tea.Cmd {
	return func() tea.Msg {
		fields, err := fetcher.FetchNeo(ctx, id)
		switch {
		case err == nil:
			return fetchSuccessMsg{fields: fields}
		case errors.Is(err, neows.ErrNotFound):
			return fetchNotFoundMsg{}
		default:
			return fetchErrorMsg{err: err}
		}
	}
}

// Run starts the Bubble Tea program and blocks until the session ends.
// The tea runtime owns raw-mode setup and restores the terminal on
// every exit path before any error is returned.
func Run(opts Options) error {
	if opts.Fetcher == nil {
		return fmt.Errorf("ui requires a fetcher")
	}
	m := New(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

package repl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/specialize/log"
)

const (
	evalPrompt   = "➜ "
	ctrlPrompt   = " :"
	defaultWidth = 80
)

// inputMode selects whether a line is an expression or a command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

func (mode inputMode) prompt() string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

var idleHint = [...]string{
	modeEval: "Type an expression, or press Esc for commands",
	modeCtrl: "Type a command such as help, list or env (Esc returns)",
}

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// draft is unsubmitted input and its cursor, counted in runes.
type draft struct {
	text   string
	cursor int
}

// recall tracks history browsing. An index equal to the history length
// means the input is not a recalled entry.
type recall struct {
	index int

	// detour is set while Alt browses command history; origin and saved
	// are restored when it runs off either end.
	detour bool
	origin inputMode
	saved  draft
}

func (r *recall) reset(n int) { *r = recall{index: n} }

// model is the Bubble Tea model of the REPL. Each mode keeps its own draft,
// so toggling modes does not lose typed input.
type model struct {
	ctx     func() context.Context
	session *Session
	logger  log.Logger
	history *History

	input  textinput.Model
	mode   inputMode
	drafts [2]draft
	comp   completion
	recall recall

	width    int
	quitting bool
}

// Run starts the REPL over session. History is kept in cacheDir.
func Run(
	ctx context.Context,
	session *Session,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		logger.WarnContext(ctx, "history will not persist",
			slog.String("cache_dir", cacheDir),
			slog.String("error", err.Error()),
		)
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("file", history.path),
			slog.String("error", err.Error()),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("environment", session.Environment()),
		slog.Int("history", history.Len()),
	)

	_, err = tea.NewProgram(newModel(ctx, session, history, logger), tea.WithContext(ctx)).Run()

	return err
}

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	input := textinput.New()
	input.Prompt = modeEval.prompt()
	input.CharLimit = 1024
	input.Width = defaultWidth
	input.Focus()

	return model{
		ctx:     func() context.Context { return ctx },
		session: session,
		logger:  logger,
		history: history,
		input:   input,
		comp:    completion{selected: -1},
		recall:  recall{index: history.Len()},
		width:   defaultWidth,
	}
}

// cursor returns the byte offset of the cursor, which the text input counts
// in runes.
func (m model) cursor() int {
	runes := []rune(m.input.Value())

	return len(string(runes[:min(m.input.Position(), len(runes))]))
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.statusLine() + "\n"
}

// statusLine is the line under the input: the history position while
// browsing, a signature inside a call, or else the completion candidates.
func (m model) statusLine() string {
	input := m.input.Value()

	if n := m.history.Len(); m.recall.index < n {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.recall.index + 1))

		return hintStyle.Render(fmt.Sprintf("%s/%d", pos, n))
	}

	if strings.TrimSpace(input) == "" {
		return hintStyle.Render(idleHint[m.mode])
	}

	if m.mode == modeEval {
		if call, ok := callAt(input, m.cursor()); ok {
			if sig, ok := signatureOf(call.name); ok {
				return sig.hint(call.arg)
			}
		}
	}

	return renderCandidateBar(m.comp.matches, m.comp.selected, m.width)
}

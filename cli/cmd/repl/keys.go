package repl

import (
	"log/slog"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx(), "repl key", slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.recall.reset(m.history.Len())

		return m.refresh(false), nil

	case tea.KeyEnter:
		if m.comp.cycling() {
			return m.refresh(true), nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp, tea.KeyDown, tea.KeyShiftUp, tea.KeyShiftDown:
		return m.browseKey(msg), nil

	case tea.KeyEsc:
		if m.comp.cycling() {
			m.input.SetValue(m.comp.before.text)
			m.input.SetCursor(m.comp.before.cursor)

			return m.refresh(false), nil
		}

		m.recall.detour = false

		return m.toggleMode(), nil
	}

	var cmd tea.Cmd

	m.recall.reset(m.history.Len())
	m.input, cmd = m.input.Update(msg)

	// Only typed runes may auto-confirm; deleting or moving must not.
	return m.refresh(msg.Type == tea.KeyRunes), cmd
}

// refresh recomputes the completion for the word at the cursor and ends any
// Tab cycle. With autoConfirm, a word that already equals its sole
// candidate is taken as complete.
func (m model) refresh(autoConfirm bool) model {
	matches, start, end := m.computeMatches()
	m.comp = completion{matches: matches, start: start, end: end, selected: -1}

	if autoConfirm && len(matches) == 1 && m.input.Value()[start:end] == matches[0].Str {
		m.comp.matches = nil
	}

	return m
}

// cycle steps the selected candidate forward or backward, writing it into
// the input. A sole candidate is accepted outright.
func (m model) cycle(step int) model {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m = m.replaceWord(m.comp.matches[0].Str)
		m.comp = completion{selected: -1}

		return m

	case !m.comp.cycling():
		m.comp.before = draft{m.input.Value(), m.input.Position()}

		m.comp.selected = 0
		if step < 0 {
			m.comp.selected = n - 1
		}

	default:
		m.comp.selected = (m.comp.selected + step + n) % n
	}

	return m.replaceWord(m.comp.matches[m.comp.selected].Str)
}

func (m model) replaceWord(word string) model {
	input := m.input.Value()

	input = input[:m.comp.start] + word + input[m.comp.end:]
	m.comp.end = m.comp.start + len(word)

	m.input.SetValue(input)
	m.input.SetCursor(utf8.RuneCountInString(input[:m.comp.end]))

	return m
}

func (m model) browseKey(msg tea.KeyMsg) model {
	step := 1
	if msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftUp {
		step = -1
	}

	switch {
	case msg.Alt:
		if !m.recall.detour {
			m.recall.detour = true
			m.recall.origin = m.mode
			m.recall.saved = draft{m.input.Value(), m.input.Position()}
			m = m.switchToMode(modeCtrl)
		}

		return m.browse(step, inMode(modeCtrl))

	case msg.Type == tea.KeyShiftUp || msg.Type == tea.KeyShiftDown:
		return m.browse(step, inMode(m.mode))
	}

	m.recall.detour = false

	return m.browse(step, func(HistoryEntry) bool { return true })
}

func inMode(mode inputMode) func(HistoryEntry) bool {
	return func(e HistoryEntry) bool { return e.Mode == mode }
}

// browse recalls the next history entry in the direction of step that keep
// accepts, switching to its mode. Running past the newest entry clears the
// input, and a detour returns to where it started from either end.
func (m model) browse(step int, keep func(HistoryEntry) bool) model {
	n := m.history.Len()

	for i := m.recall.index + step; i >= 0 && i < n; i += step {
		if e, ok := m.history.Entry(i); ok && keep(e) {
			m.recall.index = i

			if m.mode != e.Mode {
				m = m.switchToMode(e.Mode)
			}

			m.input.SetValue(e.Line)
			m.input.SetCursor(len(e.Line))

			return m.refresh(false)
		}
	}

	switch {
	case m.recall.detour:
		origin, saved := m.recall.origin, m.recall.saved

		m.recall.reset(n)
		m = m.switchToMode(origin)
		m.input.SetValue(saved.text)
		m.input.SetCursor(saved.cursor)

		return m.refresh(false)

	case step > 0 && m.recall.index < n:
		m.recall.index = n
		m.input.SetValue("")

		return m.refresh(false)
	}

	return m
}

func (m model) toggleMode() model {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode stores the input as the current mode's draft and restores
// the draft of mode.
func (m model) switchToMode(mode inputMode) model {
	m.drafts[m.mode] = draft{m.input.Value(), m.input.Position()}

	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.input.SetValue(m.drafts[mode].text)
	m.input.SetCursor(m.drafts[mode].cursor)

	return m.refresh(false)
}

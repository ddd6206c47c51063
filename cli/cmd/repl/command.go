package repl

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/specialize/lang"
)

// command is a control-mode command.
type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     func(m *model, args []string) tea.Cmd
}

func commandList() []command {
	return []command{
		{"help", []string{"h", "?"}, "", "Print this message", (*model).help},
		{"list", []string{"l", "ls"}, "", "List environments (* marks the selected one)", (*model).list},
		{"env", []string{"e"}, "[NAME]", "Select environment NAME, or print the selection", (*model).env},
		{"clear", []string{"c"}, "", "Clear the screen", (*model).clear},
		{"quit", []string{"q", "exit"}, "", "Leave the REPL", (*model).quit},
	}
}

// commandNames returns the command names offered for completion.
func commandNames() []string {
	var names []string
	for _, c := range commandList() {
		names = append(names, c.name)
	}

	return names
}

func findCommand(name string) (command, bool) {
	for _, c := range commandList() {
		if c.name == name || slices.Contains(c.aliases, name) {
			return c, true
		}
	}

	return command{}, false
}

const keyHelp = `
Keys:
  Enter             Evaluate the expression, or run the command
  Esc               Switch between expression and command mode
  Tab, Shift-Tab    Cycle through completions (Space accepts)
  Up, Down          Browse history, switching mode to match each entry
  Shift-Up/Down     Browse history of the current mode only
  Alt-Up/Down       Browse command history, then return to where you were
  Ctrl-C, Ctrl-D    Clear the line, or leave when it is empty
`

func helpText() string {
	var b strings.Builder

	b.WriteString("\nCommands:\n")

	for _, c := range commandList() {
		fmt.Fprintf(&b, "  %-12s %s\n", strings.TrimSpace(c.name+" "+c.usage), c.summary)
	}

	b.WriteString(keyHelp)

	return b.String()
}

// submit evaluates or runs the input line, records it in the history and
// clears the input of both modes.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	if err := m.history.Add(m.mode, line); err != nil {
		m.logger.WarnContext(m.ctx(), "could not save history", slog.String("error", err.Error()))
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")
	m.recall.reset(m.history.Len())
	m = m.refresh(false)

	m.logger.TraceContext(m.ctx(), "repl submit",
		slog.String("mode", modeTag[m.mode]),
		slog.String("input", line),
	)

	if m.mode == modeCtrl {
		return m.runCommand(line)
	}

	echo := tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(line))

	return m, tea.Sequence(echo, m.evaluate(line))
}

func (m model) evaluate(source string) tea.Cmd {
	result, err := m.session.Eval(source)
	if err != nil {
		m.logger.TraceContext(m.ctx(), "repl eval failed", slog.String("error", err.Error()))

		return printError(err)
	}

	m.logger.TraceContext(m.ctx(), "repl eval result", slog.String("type", fmt.Sprintf("%T", result)))

	return tea.Println(resultStyle.Render(formatResult(m.ctx(), result)))
}

func (m model) runCommand(line string) (model, tea.Cmd) {
	fields := strings.Fields(line)
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(line))

	c, ok := findCommand(fields[0])
	if !ok {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("unknown command "+fields[0]+" (try help)")))
	}

	cmd := c.run(&m, fields[1:])
	if c.name == "clear" {
		return m, cmd
	}

	return m, tea.Sequence(echo, cmd)
}

func (m *model) help([]string) tea.Cmd { return tea.Println(helpText()) }

func (m *model) list([]string) tea.Cmd {
	var b strings.Builder

	for env := range m.session.Environments() {
		mark := " "
		if env.Name == m.session.Environment() {
			mark = "*"
		}

		fmt.Fprintf(&b, "%s %s\n", mark, hintStyle.Render(env.String()))
	}

	return tea.Println(b.String())
}

func (m *model) env(args []string) tea.Cmd {
	switch len(args) {
	case 0:
		if name := m.session.Environment(); name != "" {
			return tea.Println(resultStyle.Render(name))
		}

		return tea.Println(hintStyle.Render("no environment selected"))

	case 1:
		if err := m.session.Select(m.ctx(), args[0]); err != nil {
			return printError(err)
		}

		return tea.Println(resultStyle.Render("selected " + args[0]))
	}

	return tea.Println(errorStyle.Render("usage: env [NAME]"))
}

func (m *model) clear([]string) tea.Cmd { return tea.ClearScreen }

func (m *model) quit([]string) tea.Cmd {
	m.quitting = true

	return tea.Quit
}

func printError(err error) tea.Cmd {
	return tea.Println(errorStyle.Render("error: " + err.Error()))
}

// formatResult renders containers as YAML and everything else with fmt.
func formatResult(ctx context.Context, value any) string {
	if value == nil {
		return "nil"
	}

	switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if text, err := lang.EncodeString(ctx, value, lang.EncodingYAML, lang.DefaultIndent); err == nil {
			return text
		}
	}

	return fmt.Sprint(value)
}

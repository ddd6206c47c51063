package repl

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/specialize/render"
)

// isWordBoundary reports whether r separates completion words: whitespace,
// the member-access dot, or expr-lang punctuation.
func isWordBoundary(r rune) bool {
	return strings.ContainsRune(" \t.()[]+-*/%<>=!&|,?:;", r)
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	// Boundaries are all ASCII, so the byte after one starts a rune.
	start = strings.LastIndexFunc(input[:cursor], isWordBoundary) + 1

	end = len(input)
	if i := strings.IndexFunc(input[cursor:], isWordBoundary); i >= 0 {
		end = cursor + i
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain that ends right before
// wordStart: "server.http" for "x + server.http.ho" with the word "ho".
// It is empty for a top-level word.
func parentPath(input string, wordStart int) string {
	chain := strings.TrimRight(input[:wordStart], ".")

	start := strings.LastIndexFunc(chain, func(r rune) bool {
		return r != '.' && isWordBoundary(r)
	}) + 1

	return strings.TrimSpace(chain[start:])
}

// completion is the candidate list offered for the word at the cursor.
type completion struct {
	matches    fuzzy.Matches
	start, end int // word offsets in the input

	// While cycling with Tab, selected indexes matches and before holds the
	// input as it was typed. Otherwise selected is -1.
	selected int
	before   draft
}

func (c completion) cycling() bool { return c.selected >= 0 }

// computeMatches ranks the completion candidates for the word at the
// cursor. Commands complete in command mode; variables, builtins and their
// members complete in eval mode. An empty word completes only after a dot,
// where every member is offered.
func (m model) computeMatches() (matches fuzzy.Matches, start, end int) {
	input := m.input.Value()

	word, start, end := wordBounds(input, m.cursor())

	var candidates []string

	switch {
	case m.mode == modeCtrl && word != "":
		candidates = commandNames()

	case m.mode == modeEval:
		parent := parentPath(input, start)
		candidates = m.session.Children(parent)

		if word == "" && parent != "" {
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, start, end
		}
	}

	if word == "" || len(candidates) == 0 {
		return nil, start, end
	}

	return fuzzy.Find(word, candidates), start, end
}

type candidateStyle struct{ plain, hit lipgloss.Style }

var candidateStyles = map[bool]candidateStyle{
	false: {
		plain: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		hit:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
	},
	true: {
		plain: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4")),
		hit:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4")).Bold(true),
	},
}

// renderCandidateBar lays matches out on one line of at most width cells,
// ending with an ellipsis when they do not all fit.
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	const gap = "  "

	ellipsis := hintStyle.Render("...")
	room := width - lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		cell := renderCandidate(match, i == selected)
		cellWidth := lipgloss.Width(cell)

		if i > 0 {
			if used+len(gap)+cellWidth > room {
				b.WriteString(gap + ellipsis)

				break
			}

			b.WriteString(gap)
			used += len(gap)
		}

		b.WriteString(cell)
		used += cellWidth
	}

	return b.String()
}

// renderCandidate highlights the matched characters of a candidate, and
// marks functions with "()".
func renderCandidate(match fuzzy.Match, selected bool) string {
	style := candidateStyles[selected]
	hits := make(map[int]bool, len(match.MatchedIndexes))

	for _, i := range match.MatchedIndexes {
		hits[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if hits[i] {
			b.WriteString(style.hit.Render(string(r)))
		} else {
			b.WriteString(style.plain.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(style.plain.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is an expr-lang builtin function or a
// top-level builtin function of the expression environment.
func isFunction(name string) bool {
	if _, ok := builtin.Index[name]; ok {
		return true
	}

	t := reflect.TypeOf(render.Env(nil)[name])

	return t != nil && t.Kind() == reflect.Func
}

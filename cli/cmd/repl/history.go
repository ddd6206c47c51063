package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// modeTag prefixes each history line with the mode it was entered in.
var modeTag = [...]string{modeEval: "E:", modeCtrl: "C:"}

// HistoryEntry is one line of input and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) String() string { return modeTag[e.Mode] + e.Line }

func parseHistoryEntry(line string) HistoryEntry {
	if rest, ok := strings.CutPrefix(line, modeTag[modeCtrl]); ok {
		return HistoryEntry{Line: rest, Mode: modeCtrl}
	}

	return HistoryEntry{Line: strings.TrimPrefix(line, modeTag[modeEval]), Mode: modeEval}
}

// History is the REPL input history, oldest first. Each entry appears once;
// entering it again moves it to the end. It is persisted to a file with one
// tagged entry per line.
type History struct {
	mu      sync.Mutex
	path    string
	entries []HistoryEntry
}

// NewHistory returns an empty history persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those in the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	defer f.Close()

	h.entries = h.entries[:0]

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			h.entries = append(h.entries, parseHistoryEntry(line))
		}
	}

	return sc.Err()
}

// Add records line as the newest entry for mode and persists the history.
// Blank lines are ignored.
func (h *History) Add(mode inputMode, line string) error {
	e := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if e.Line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := slices.Index(h.entries, e)

	switch {
	case i == len(h.entries)-1 && i >= 0:
		return nil

	case i >= 0:
		h.entries = append(slices.Delete(h.entries, i, i+1), e)

		return h.save(os.O_TRUNC, h.entries...)
	}

	h.entries = append(h.entries, e)

	return h.save(os.O_APPEND, e)
}

// save writes entries to the history file, truncating or appending per
// flag.
func (h *History) save(flag int, entries ...HistoryEntry) error {
	f, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|flag, 0o600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)

	for _, e := range entries {
		_, _ = w.WriteString(e.String() + "\n")
	}

	return errors.Join(w.Flush(), f.Close())
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, false
	}

	return h.entries[i], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return slices.Clone(h.entries)
}

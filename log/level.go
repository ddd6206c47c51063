package log

//go:generate go tool stringer --linecomment --type Level,Format --output level_string.go

import (
	"iter"
	"log/slog"
	"strings"
)

// Level is the severity of a log record. It extends [slog.Level] with
// [LevelTrace], used for the step-by-step account of parsing, checking and
// rendering.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the level of a logger made without [WithLevel].
const DefaultLevel = LevelInfo

var allLevels = [...]Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns an iterator over level names, least severe first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range allLevels {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// ParseLevel returns the level named s, ignoring case. Anything else,
// including the offset forms accepted by [slog.Level.UnmarshalText], maps to
// the nearest named level at or below it. Unparsable input yields
// [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	for _, l := range allLevels {
		if strings.EqualFold(s, l.String()) {
			return l
		}
	}

	var sl slog.Level
	if err := sl.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(sl).named()
}

// named rounds l down to a defined level.
func (l Level) named() Level {
	named := allLevels[0]

	for _, n := range allLevels {
		if n <= l {
			named = n
		}
	}

	return named
}

// Format selects how records are written.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format of a logger made without [WithFormat].
const DefaultFormat = FormatJSON

// Formats returns an iterator over format names.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range [...]Format{FormatJSON, FormatText} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named s, ignoring case, or [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatText.String():
		return FormatText
	case FormatJSON.String():
		return FormatJSON
	}

	return DefaultFormat
}

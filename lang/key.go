package lang

import (
	"cmp"
	"errors"
	"strconv"
	"strings"
)

// Segment is one element of a [Key]: either a non-negative list index or a
// map field name.
type Segment struct {
	name  string
	index int
	list  bool
}

// Field returns a map field segment.
func Field(name string) Segment { return Segment{name: name} }

// Index returns a list index segment.
func Index(i int) Segment { return Segment{index: i, list: true} }

// IsIndex reports whether s is a list index.
func (s Segment) IsIndex() bool { return s.list }

// Index returns the list index of s, or -1 for a field segment.
func (s Segment) Index() int {
	if !s.list {
		return -1
	}

	return s.index
}

// Name returns the field name of s, or "" for an index segment.
func (s Segment) Name() string { return s.name }

// String returns the segment as it appears in a dotted key.
func (s Segment) String() string {
	if s.list {
		return strconv.Itoa(s.index)
	}

	return s.name
}

// Compare orders segments with indexes before names, indexes numerically,
// and names lexically.
func (s Segment) Compare(t Segment) int {
	switch {
	case s.list && t.list:
		return cmp.Compare(s.index, t.index)
	case s.list:
		return -1
	case t.list:
		return 1
	default:
		return strings.Compare(s.name, t.name)
	}
}

// Key is a path into a nested structure of maps and lists.
type Key []Segment

// ParseKey splits s on "." into segments. A segment made only of decimal
// digits is a list index; anything else is a field name.
func ParseKey(s string) Key {
	parts := strings.Split(s, ".")
	key := make(Key, len(parts))

	for i, part := range parts {
		key[i] = parseSegment(part)
	}

	return key
}

func parseSegment(s string) Segment {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return Field(s)
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		// Too large for an index.
		return Field(s)
	}

	return Index(i)
}

// String returns the dotted form of k.
func (k Key) String() string {
	var sb strings.Builder

	for i, seg := range k {
		if i > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(seg.String())
	}

	return sb.String()
}

// Equal reports whether k and o have identical segments.
func (k Key) Equal(o Key) bool {
	if len(k) != len(o) {
		return false
	}

	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}

	return true
}

// Compare orders keys segment by segment; a key sorts before any longer key
// it is a prefix of.
func (k Key) Compare(o Key) int {
	for i := range min(len(k), len(o)) {
		if c := k[i].Compare(o[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(k), len(o))
}

// ParseValue converts the text of a literal into a bool, int64, float64 or
// string. Text starting with a double quote is a quoted string and loses its
// first and last characters; no escapes are processed. Text that is not a
// boolean, quoted string or number is returned verbatim, as is an integer
// literal outside the range of int64, so that no digits are lost.
func ParseValue(s string) any {
	switch {
	case s == "true":
		return true
	case s == "false":
		return false
	case strings.HasPrefix(s, `"`):
		if len(s) < 2 {
			return ""
		}

		return s[1 : len(s)-1]
	}

	i, err := strconv.ParseInt(s, 10, 64)

	switch {
	case err == nil:
		return i
	case errors.Is(err, strconv.ErrRange):
		return s
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	return s
}

// KeyValue is one recorded assignment. Two KeyValues are the same assignment
// target when their keys are equal.
type KeyValue struct {
	Key   Key
	Value any

	Location
}

// NewKeyValue parses keyText and valueText into a KeyValue at loc.
func NewKeyValue(keyText, valueText string, loc Location) KeyValue {
	return KeyValue{
		Key:      ParseKey(keyText),
		Value:    ParseValue(valueText),
		Location: loc,
	}
}

// compareKeyValues orders assignments by key.
func compareKeyValues(a, b KeyValue) int { return a.Key.Compare(b.Key) }

package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Encoding is an output format for resolved structures.
type Encoding int

const (
	EncodingYAML Encoding = iota // yaml
	EncodingJSON                 // json
	EncodingTOML                 // toml
)

// DefaultIndent is the indentation width used when none is given.
const DefaultIndent = 2

var encodingName = [...]string{
	EncodingYAML: "yaml",
	EncodingJSON: "json",
	EncodingTOML: "toml",
}

func (e Encoding) String() string {
	if e < 0 || int(e) >= len(encodingName) {
		return fmt.Sprintf("Encoding(%d)", int(e))
	}

	return encodingName[e]
}

// Encodings returns an iterator over the names of all encodings.
func Encodings() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range encodingName {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseEncoding returns the encoding named s, ignoring case.
func ParseEncoding(s string) (Encoding, error) {
	for i, name := range encodingName {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Encoding(i), nil
		}
	}

	return 0, ErrInvalidFormat.With(slog.String("format", s))
}

// Encode writes v to w in the given encoding, followed by a newline.
//
// An indent of zero selects the most compact form of each encoding: a
// single line for JSON, flow style for YAML and no nested-table indentation
// for TOML.
func Encode(ctx context.Context, w io.Writer, v any, enc Encoding, indent int) error {
	var (
		data []byte
		err  error
	)

	switch enc {
	case EncodingYAML:
		data, err = encodeYAML(ctx, v, indent)

	case EncodingJSON:
		data, err = encodeJSON(v, indent)

	case EncodingTOML:
		data, err = encodeTOML(v, indent)

	default:
		return ErrInvalidFormat.With(slog.String("format", enc.String()))
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", enc.String()))
	}

	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	_, err = w.Write(data)

	return err
}

// EncodeString is like [Encode] but returns the encoded text without its
// trailing newline.
func EncodeString(ctx context.Context, v any, enc Encoding, indent int) (string, error) {
	var buf bytes.Buffer

	if err := Encode(ctx, &buf, v, enc, indent); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func encodeYAML(ctx context.Context, v any, indent int) ([]byte, error) {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	return yaml.MarshalContext(ctx, v, opts...)
}

func encodeJSON(v any, indent int) ([]byte, error) {
	if indent > 0 {
		return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	}

	return json.Marshal(v)
}

// errTOMLTable is returned for values TOML cannot hold at the top level.
var errTOMLTable = errors.New("top-level value must be a table")

func encodeTOML(v any, indent int) ([]byte, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if k := rv.Kind(); k != reflect.Map && k != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", errTOMLTable, v)
	}

	var buf bytes.Buffer

	enc := toml.NewEncoder(&buf)
	enc.Indent = strings.Repeat(" ", max(indent, 0))

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

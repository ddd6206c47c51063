package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/specialize/log"
	"github.com/ardnew/specialize/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	text := i.buildConfig(ctx)

	err = os.WriteFile(confPath, []byte(text), 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig renders the current flag values as the environment named by
// [ConfigIdentifier].
func (i *Init) buildConfig(ctx context.Context) string {
	ktx := kongContextFrom(ctx)

	var sb strings.Builder

	sb.WriteString(ConfigIdentifier + ":\n")

	prefixIgnore := []string{"help", "version", profile.Tag}
	indent := strings.Repeat(" ", defaultConfigIndent)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		key := strings.ReplaceAll(flag.Name, "-", "_")

		for _, line := range assignments(key, ktx.FlagValue(flag)) {
			sb.WriteString(indent + line + "\n")
		}
	}

	return sb.String()
}

// assignments returns the "key = value" lines for v. Lists become one line
// per index. Values the environment format cannot express, such as negative
// numbers or strings containing a double quote, are left out.
func assignments(key string, v any) []string {
	switch v := v.(type) {
	case nil:
		return nil

	case []string:
		return listAssignments(key, v)

	case []int:
		return listAssignments(key, v)

	case []int64:
		return listAssignments(key, v)

	case []float64:
		return listAssignments(key, v)

	case []bool:
		return listAssignments(key, v)
	}

	lit, ok := literal(v)
	if !ok {
		return nil
	}

	return []string{key + " = " + lit}
}

func listAssignments[T any](key string, list []T) []string {
	var lines []string

	for i, v := range list {
		lit, ok := literal(v)
		if !ok {
			return nil
		}

		lines = append(lines, key+"."+strconv.Itoa(i)+" = "+lit)
	}

	return lines
}

// literal formats v as an environment-format literal.
func literal(v any) (string, bool) {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v), true

	case string:
		if v == "" || strings.ContainsAny(v, "\"\n") {
			return "", false
		}

		return `"` + v + `"`, true

	case int, int8, int16, int32, int64:
		s := fmt.Sprint(v)

		return s, !strings.HasPrefix(s, "-")

	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true

	case float32, float64:
		s := strconv.FormatFloat(toFloat(v), 'f', -1, 64)

		return s, !strings.HasPrefix(s, "-")

	default:
		return literal(fmt.Sprint(v))
	}
}

func toFloat(v any) float64 {
	if f, ok := v.(float32); ok {
		return float64(f)
	}

	f, _ := v.(float64)

	return f
}

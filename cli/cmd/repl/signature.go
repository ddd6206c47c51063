package repl

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/specialize/render"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// exprBuiltinParams lists the parameters of the expr-lang builtins offered
// in completion (https://expr-lang.org/docs/language-definition).
var exprBuiltinParams = map[string]string{
	"len": "v", "int": "v", "float": "v", "string": "v", "type": "v",

	"all": "array, predicate", "any": "array, predicate", "one": "array, predicate",
	"none": "array, predicate", "filter": "array, predicate", "count": "array, predicate",
	"find": "array, predicate", "findIndex": "array, predicate",
	"findLast": "array, predicate", "findLastIndex": "array, predicate",
	"map": "array, mapper", "groupBy": "array, mapper", "sortBy": "array, mapper",

	"sum": "array", "mean": "array", "median": "array", "min": "array", "max": "array",
	"join": "array, separator",

	"split": "string, separator", "replace": "string, old, new",
	"trim": "string", "trimLeft": "string", "trimRight": "string",
	"upper": "string", "lower": "string", "title": "string",
}

// exprBuiltinNames returns the sorted names of the described expr-lang
// builtins.
func exprBuiltinNames() []string {
	return slices.Sorted(maps.Keys(exprBuiltinParams))
}

// signature is a function name and its parameter names. A variadic last
// parameter carries a "..." prefix.
type signature struct {
	name   string
	params []string
}

func (s signature) String() string {
	return s.name + "(" + strings.Join(s.params, ", ") + ")"
}

// current returns the index of the parameter receiving argument arg, or -1
// past the last non-variadic parameter.
func (s signature) current(arg int) int {
	if n := len(s.params); n > 0 && arg >= n-1 && strings.HasPrefix(s.params[n-1], "...") {
		return n - 1
	}

	if arg < len(s.params) {
		return arg
	}

	return -1
}

// hint renders s with the parameter receiving argument arg highlighted.
func (s signature) hint(arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(s.name))
	b.WriteString(signatureStyle.Render("("))

	cur := s.current(arg)

	for i, p := range s.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == cur {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}

// signatureOf describes the expr-lang builtin or expression builtin function
// called name. Parameters of expression builtins are named by type.
func signatureOf(name string) (signature, bool) {
	if params, ok := exprBuiltinParams[name]; ok {
		return signature{name, strings.Split(params, ", ")}, true
	}

	v, ok := lookup(render.Env(nil), name)
	if !ok {
		return signature{}, false
	}

	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Func {
		return signature{}, false
	}

	params := make([]string, t.NumIn())
	for i := range params {
		if t.IsVariadic() && i == len(params)-1 {
			params[i] = "..." + typeParam(t.In(i).Elem())
		} else {
			params[i] = typeParam(t.In(i))
		}
	}

	return signature{name, params}, true
}

func typeParam(t reflect.Type) string {
	switch k := t.Kind(); k {
	case reflect.Pointer:
		return typeParam(t.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Func, reflect.String, reflect.Bool, reflect.Slice, reflect.Map:
		return k.String()
	}

	if t.Name() != "" {
		return t.Name()
	}

	return "arg"
}

// functionCall is the innermost call whose argument list holds the cursor.
type functionCall struct {
	name string // dotted for builtin members, as in "path.join"
	arg  int    // 0-based argument under the cursor
}

// callAt finds the innermost named call open at byte offset cursor. A
// parenthesis with no name before it, such as grouping, ends the search.
func callAt(input string, cursor int) (functionCall, bool) {
	cursor = min(cursor, len(input))

	depth, arg := 0, 0

	// Parentheses and commas are ASCII, so a byte scan cannot split a rune.
	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++

		case ',':
			if depth == 0 {
				arg++
			}

		case '(':
			if depth > 0 {
				depth--

				continue
			}

			start := strings.LastIndexFunc(input[:i], func(r rune) bool {
				return r != '.' && r != '_' && !isAlnum(r)
			}) + 1

			if start == i {
				return functionCall{}, false
			}

			return functionCall{name: input[start:i], arg: arg}, true
		}
	}

	return functionCall{}, false
}

func isAlnum(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9'
}

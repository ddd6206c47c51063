package lang

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// OverlayName is the name of the private environment holding command-line
// overrides. It cannot collide with a parsed environment name.
const OverlayName = ""

// Environment is a named, inheritable set of assignments.
type Environment struct {
	Name    string
	Parents []string
	Values  []KeyValue

	// Where the environment was first declared, and where its parent list
	// was given (if ever).
	declared   Location
	inherited  Location
	hasParents bool
}

// Location returns where the environment was first declared.
func (e *Environment) Location() Location { return e.declared }

// ParentsLocation returns where the environment's parent list was declared,
// or its first declaration if it has no parents.
func (e *Environment) ParentsLocation() Location {
	if e.hasParents {
		return e.inherited
	}

	return e.declared
}

// String returns "name (parent, ...): N values".
func (e *Environment) String() string {
	var sb strings.Builder

	sb.WriteString(e.Name)

	if len(e.Parents) > 0 {
		sb.WriteString(" (" + strings.Join(e.Parents, ", ") + ")")
	}

	sb.WriteString(": " + strconv.Itoa(len(e.Values)))

	if len(e.Values) == 1 {
		sb.WriteString(" value")
	} else {
		sb.WriteString(" values")
	}

	return sb.String()
}

// Lookup returns the environment's own assignment to key, if any.
func (e *Environment) Lookup(key Key) (KeyValue, bool) {
	i := slices.IndexFunc(e.Values, func(kv KeyValue) bool {
		return kv.Key.Equal(key)
	})
	if i < 0 {
		return KeyValue{}, false
	}

	return e.Values[i], true
}

// AddValue records an assignment. A key already assigned in e is a value
// redefinition: the new value is dropped and a diagnostic is added to diags
// (if non-nil). It reports whether kv was recorded.
func (e *Environment) AddValue(kv KeyValue, keyText string, diags *Diagnostics) bool {
	if _, ok := e.Lookup(kv.Key); ok {
		if diags != nil {
			diags.Add(newDiagnostic(kv.Location, ErrValueRedefinition,
				"Redefinition of value "+quote(keyText)))
		}

		return false
	}

	e.Values = append(e.Values, kv)

	return true
}

// Store is an insertion-ordered collection of environments keyed by name.
// A Store must not be mutated while it is being checked or resolved; any
// number of concurrent reads are safe.
type Store struct {
	envs  map[string]*Environment
	order []string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{envs: make(map[string]*Environment)}
}

// Define declares the environment name with the given parents, or continues
// an existing declaration. A repeat with no parents continues the earlier
// declaration; a repeat with parents must give exactly the parent list of the
// first declaration, or an environment redefinition diagnostic is added to
// diags (if non-nil). The environment is returned in every case so that
// following assignments attach to it.
func (s *Store) Define(
	name string,
	parents []string,
	loc Location,
	diags *Diagnostics,
) *Environment {
	if s.envs == nil {
		s.envs = make(map[string]*Environment)
	}

	env, ok := s.envs[name]
	if !ok {
		env = newEnvironment(name, parents, loc)
		s.envs[name] = env
		s.order = append(s.order, name)

		return env
	}

	if len(parents) > 0 && !slices.Equal(env.Parents, parents) {
		if diags != nil {
			diags.Add(newDiagnostic(loc, ErrEnvironmentRedefinition,
				"Redefinition of environment "+quote(name)))
		}
	}

	return env
}

func newEnvironment(name string, parents []string, loc Location) *Environment {
	env := &Environment{Name: name, declared: loc}

	if len(parents) > 0 {
		env.Parents = slices.Clone(parents)
		env.inherited = loc
		env.hasParents = true
	}

	return env
}

// Override is a command-line assignment of a literal to a dotted key.
type Override struct {
	Key   string
	Value string
}

// Overlay creates the private environment [OverlayName] holding overrides,
// replacing any overlay created before. When parent is non-empty it becomes
// the overlay's only parent, so resolving the overlay yields parent's values
// with overrides applied last. Override diagnostics have an empty file name
// and the 1-based override index as line.
func (s *Store) Overlay(
	parent string,
	overrides []Override,
	diags *Diagnostics,
) *Environment {
	if s.envs == nil {
		s.envs = make(map[string]*Environment)
	}

	var parents []string
	if parent != "" {
		parents = []string{parent}
	}

	if _, ok := s.envs[OverlayName]; !ok {
		s.order = append(s.order, OverlayName)
	}

	env := newEnvironment(OverlayName, parents, Location{})
	s.envs[OverlayName] = env

	for i, o := range overrides {
		loc := Location{Line: i + 1}
		env.AddValue(NewKeyValue(o.Key, o.Value, loc), o.Key, diags)
	}

	return env
}

// Get returns the environment called name.
func (s *Store) Get(name string) (*Environment, bool) {
	env, ok := s.envs[name]

	return env, ok
}

// Has reports whether an environment called name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.envs[name]

	return ok
}

// Len returns the number of environments.
func (s *Store) Len() int { return len(s.order) }

// Names returns environment names in declaration order.
func (s *Store) Names() []string { return slices.Clone(s.order) }

// Sorted returns environment names in lexical order.
func (s *Store) Sorted() []string { return slices.Sorted(slices.Values(s.order)) }

// All returns an iterator over environments in declaration order.
func (s *Store) All() iter.Seq[*Environment] {
	return func(yield func(*Environment) bool) {
		for _, name := range s.order {
			if !yield(s.envs[name]) {
				return
			}
		}
	}
}

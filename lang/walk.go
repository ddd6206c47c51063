package lang

import (
	"iter"
	"slices"
)

// shape is the kind of value implied at a path: a leaf scalar, or the
// container type required by the segment that follows the path.
type shape int

const (
	shapeLeaf shape = iota
	shapeList
	shapeMap
)

func shapeOf(next Segment) shape {
	if next.IsIndex() {
		return shapeList
	}

	return shapeMap
}

// walker expands one environment's inheritance graph into the ordered
// sequence of assignments visible to it, dropping (and optionally reporting)
// unknown parents, inheritance cycles, container type conflicts and
// non-contiguous list indexes.
type walker struct {
	store  *Store
	diags  *Diagnostics // nil discards diagnostics
	onPath map[string]struct{}
	lists  map[string]int
	shapes map[string]shape
}

// Values returns the assignments visible to the environment called name:
// each parent's (recursively, in declared order), then the environment's own
// in ascending key order. Assignments that conflict with the shape already
// established by earlier ones are left out. Problems are added to diags
// unless it is nil; identical diagnostics are reported once.
//
// An unknown name yields nothing. The sequence is finite even when the
// inheritance graph has cycles.
func (s *Store) Values(name string, diags *Diagnostics) iter.Seq[KeyValue] {
	return func(yield func(KeyValue) bool) {
		env, ok := s.Get(name)
		if !ok {
			return
		}

		w := &walker{
			store:  s,
			diags:  diags,
			onPath: map[string]struct{}{name: {}},
			lists:  make(map[string]int),
			shapes: make(map[string]shape),
		}

		w.visit(env, func(kv KeyValue) bool {
			if !w.accept(kv) {
				return true
			}

			return yield(kv)
		})
	}
}

// visit yields the assignments of env's ancestors and then env's own.
// It returns false once yield does.
func (w *walker) visit(env *Environment, yield func(KeyValue) bool) bool {
	for _, name := range env.Parents {
		parent, known := w.store.Get(name)
		if !known {
			w.report(env.ParentsLocation(), ErrUnknownParent,
				"Environment "+quote(env.Name)+" has unknown parent environment "+quote(name))
		}

		_, cyclic := w.onPath[name]
		if cyclic {
			w.report(env.ParentsLocation(), ErrCircularParent,
				"Environment "+quote(env.Name)+" has circular parent environment "+quote(name))
		}

		if !known || cyclic {
			continue
		}

		w.onPath[name] = struct{}{}
		more := w.visit(parent, yield)
		delete(w.onPath, name)

		if !more {
			return false
		}
	}

	for _, kv := range slices.SortedStableFunc(slices.Values(env.Values), compareKeyValues) {
		if !yield(kv) {
			return false
		}
	}

	return true
}

// accept records the shapes implied by kv and reports whether kv is
// consistent with everything accepted before it.
func (w *walker) accept(kv KeyValue) bool {
	key := kv.Key
	ok := true

	for i := range len(key) - 1 {
		prefix := key[:i+1].String()
		next := key[i+1]

		if next.IsIndex() {
			n := w.lists[prefix]
			if next.Index() > n {
				ok = false
				w.report(kv.Location, ErrInvalidListIndex,
					"Invalid list index "+quote(key[:i+2].String()))
			} else {
				w.lists[prefix] = max(n, next.Index()+1)
			}
		}

		want := shapeOf(next)
		if have, seen := w.shapes[prefix]; !seen {
			w.shapes[prefix] = want
		} else if have != want {
			ok = false
			w.report(kv.Location, ErrContainerRedefinition,
				"Redefinition of container type "+quote(prefix))
		}
	}

	full := key.String()
	if have, seen := w.shapes[full]; !seen {
		w.shapes[full] = shapeLeaf
	} else if have != shapeLeaf {
		ok = false
		w.report(kv.Location, ErrContainerRedefinition,
			"Redefinition of container type "+quote(full))
	}

	return ok
}

func (w *walker) report(loc Location, kind *Error, message string) {
	if w.diags != nil {
		w.diags.AddUnique(newDiagnostic(loc, kind, message))
	}
}

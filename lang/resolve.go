package lang

import (
	"context"
	"log/slog"
)

// Resolve materializes the environment called name into nested maps
// (map[string]any) and lists ([]any) of scalars (bool, int64, float64,
// string).
//
// Assignments are applied in the order of [Store.Values], so a later parent
// overrides an earlier one and the environment's own values override all of
// its parents. Intermediate containers are created on demand: a map when the
// next key segment is a field name, a list when it is an index. Values that
// do not fit the structure built so far are skipped, and an index past the
// end of a list appends.
//
// Resolve never fails. An unknown name resolves to an empty map. Run
// [Store.Check] first to learn whether anything was skipped.
func (s *Store) Resolve(ctx context.Context, name string, opts ...Option) map[string]any {
	o := makeOptions(opts...)

	root := make(map[string]any)
	applied, skipped := 0, 0

	for kv := range s.Values(name, nil) {
		if _, ok := put(root, kv.Key, kv.Value); ok {
			applied++
		} else {
			skipped++
		}
	}

	o.logger.TraceContext(ctx, "resolve complete",
		slog.String("environment", name),
		slog.Int("applied", applied),
		slog.Int("skipped", skipped),
	)

	return root
}

// put stores value at key beneath container and returns container, which
// differs from the argument only when container is a list that grew.
func put(container any, key Key, value any) (any, bool) {
	if len(key) == 0 {
		return container, false
	}

	seg := key[0]
	if len(key) == 1 {
		return set(container, seg, value)
	}

	child, found := get(container, seg)

	switch {
	case !found || child == nil:
		child = newContainer(key[1])

	case !holds(child, key[1]):
		return container, false
	}

	child, ok := put(child, key[1:], value)
	if !ok {
		return container, false
	}

	return set(container, seg, child)
}

func newContainer(next Segment) any {
	if next.IsIndex() {
		return []any{}
	}

	return map[string]any{}
}

// holds reports whether container is the kind of container next addresses.
func holds(container any, next Segment) bool {
	switch container.(type) {
	case []any:
		return next.IsIndex()
	case map[string]any:
		return !next.IsIndex()
	default:
		return false
	}
}

func get(container any, seg Segment) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[seg.String()]

		return v, ok

	case []any:
		if i := seg.Index(); i >= 0 && i < len(c) {
			return c[i], true
		}
	}

	return nil, false
}

func set(container any, seg Segment, value any) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		c[seg.String()] = value

		return c, true

	case []any:
		if !seg.IsIndex() {
			return container, false
		}

		if i := seg.Index(); i < len(c) {
			c[i] = value

			return c, true
		}

		return append(c, value), true
	}

	return container, false
}

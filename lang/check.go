package lang

import (
	"context"
	"log/slog"
)

// Check walks the inheritance graph of every environment, in name order, and
// reports unknown parents, inheritance cycles, container type conflicts and
// non-contiguous list indexes.
//
// Diagnostics go to the accumulator given by [WithDiagnostics], or to a new
// one; either way the accumulator is returned. Check never fails: callers
// decide whether diagnostics are fatal.
func (s *Store) Check(ctx context.Context, opts ...Option) *Diagnostics {
	o := makeOptions(opts...)

	diags := o.diags
	if diags == nil {
		diags = new(Diagnostics)
	}

	before := diags.Len()

	for _, name := range s.Sorted() {
		for range s.Values(name, diags) {
		}
	}

	o.logger.TraceContext(ctx, "check complete",
		slog.Int("environment_count", s.Len()),
		slog.Int("diagnostic_count", diags.Len()-before),
	)

	return diags
}

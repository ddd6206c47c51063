// Package lang parses, checks and resolves hierarchical environment
// configuration.
//
// A configuration is a set of named environments. Each environment holds
// dotted-key assignments and may inherit from other environments. Resolving an
// environment merges everything it inherits with its own assignments into a
// nested structure of maps and lists that templates can consume.
//
// # Format
//
// The text format is line oriented. Blank lines and lines whose first
// non-blank character is '#' are ignored.
//
//	# Environment header with optional parent list.
//	base:
//	  log.level = "info"
//	  listen.port = 8080
//
//	prod (base):
//	  log.level = "warn"
//	  hosts.0 = "a.example.com"
//	  hosts.1 = "b.example.com"
//	  tls = true
//
// A header starts in the first column and names an environment, optionally
// followed by a parenthesized, comma-separated parent list, and ends with ':'.
// An assignment is indented and has the form KEY = VALUE. Keys are dotted
// paths whose first segment is an identifier; later segments are identifiers
// (map fields) or non-negative integers (list indexes). Values are
// double-quoted strings without escapes, decimal integers, decimals with an
// optional fractional part, or the literals true and false.
//
// A header for an existing environment continues it; assignments under it are
// added to the same environment, even from another file. A continuing header
// may omit the parent list, but if it gives one it must match the first
// declaration.
//
// # Inheritance
//
// Parents are merged in declared order, each with its own ancestors first, and
// the environment's own assignments are applied last in ascending key order.
// A later assignment to the same key wins. Lists are built by index and must
// be contiguous: index N may only be assigned once indexes 0 through N-1 are.
//
// # Diagnostics
//
// Problems are reported as [Diagnostic] values of the form
// "file:line: message" and collected in a [Diagnostics] accumulator.
// Parsing reports syntax errors and redefinitions; [Store.Check] reports
// unknown and circular parents, container type conflicts and invalid list
// indexes. [Store.Resolve] never fails: it skips whatever does not fit.
//
// # Usage
//
//	store := lang.NewStore()
//	diags := new(lang.Diagnostics)
//
//	for _, file := range files {
//		f, _ := os.Open(file)
//		_ = store.ParseReader(ctx, f, lang.WithFile(file), lang.WithDiagnostics(diags))
//		f.Close()
//	}
//
//	store.Overlay("prod", overrides, diags)
//	store.Check(ctx, lang.WithDiagnostics(diags))
//
//	if err := diags.Err(); err != nil {
//		return err
//	}
//
//	vars := store.Resolve(ctx, lang.OverlayName)
package lang

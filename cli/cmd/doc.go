// Package cmd implements the specialize subcommands.
//
// Every command that reads configuration gets its environment files from the
// global -c flag through [WithSources], parses them into a single
// [lang.Store] and reports problems as [lang.Diagnostics].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It is also the name of the environment in that
	// file whose values become flag defaults.
	ConfigIdentifier = "config"

	// EncodingsIdentifier is the kong variable identifier containing the
	// comma-separated names of the output encodings.
	EncodingsIdentifier = "encodings"
)

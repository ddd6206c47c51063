// Package render renders text templates with variables resolved from an
// environment configuration.
//
// Templates use [text/template] syntax with the resolved variables as dot, so
// a value assigned to a.b is written {{ .a.b }}. Referencing a variable that
// does not exist is an error.
//
// Besides the standard template functions, templates may call:
//
//	env NAME                   process environment variable
//	platform, target           host OS and architecture (Go and GNU naming)
//	hostname, cwd              host name and working directory
//	fileExists, fileIsDir      filesystem predicates
//	pathAbs, pathJoin, pathRel path manipulation
//	mungPrefix LIST PREFIX...  prepend to a PATH-like list
//	mungPrefixIf LIST PREFIX...  as mungPrefix, keeping existing directories
//	toJson, toYaml, toToml     encode a value
//	expr SOURCE                evaluate an expr-lang expression
//	awsParameterStore NAME     look up a secret
//	rename PATH [NAME]         rename or delete a rendered file
//
// The rename function exists only when rendering a directory. PATH is
// relative to the destination directory and NAME is a bare file name. All
// renames run after every file is rendered.
package render

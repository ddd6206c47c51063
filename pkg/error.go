package pkg

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Error is a chain of errors, innermost first. Packages declare their
// sentinels with [MakeErrorf] and attach causes with [Error.Wrap], so that
// "rename error: path escapes destination" both reads naturally and matches
// the sentinel under [errors.Is].
type Error []error

// MakeErrorf returns a one-link chain holding a formatted error.
func MakeErrorf(format string, args ...any) Error {
	return Error{fmt.Errorf(format, args...)}
}

// Error joins the messages of the chain with ": ".
func (e Error) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, ": ")
}

// Wrap returns a new chain extending e with errs, flattening any chains
// found in them. Nil errors are dropped.
func (e Error) Wrap(errs ...error) Error {
	chain := slices.Clip(e)

	for _, err := range errs {
		chain = append(chain, flatten(err)...)
	}

	return chain
}

// Wrapf is like [Error.Wrap] with a single formatted error.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap exposes every link to [errors.Is] and [errors.As].
func (e Error) Unwrap() []error { return e }

// Is reports whether every link of target is also a link of e. A sentinel
// therefore matches every chain wrapped from it, but a sentinel built
// separately with the same text does not.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) || len(t) == 0 {
		return false
	}

	for _, link := range t {
		if !slices.Contains(e, link) {
			return false
		}
	}

	return true
}

// flatten returns the links of err: the links of an Error as they are, or
// err itself.
func flatten(err error) []error {
	if err == nil {
		return nil
	}

	if chain, ok := err.(Error); ok {
		return chain
	}

	return []error{err}
}

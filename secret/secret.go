package secret

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"

	"github.com/ardnew/specialize/pkg"
)

// Provider looks up secret values by name.
type Provider interface {
	Lookup(ctx context.Context, name string) (string, error)
}

var (
	// ErrNotFound is the cause of a [LookupError] for a name a provider does
	// not know.
	ErrNotFound = pkg.MakeErrorf("parameter not found")

	// ErrNoProvider is returned by templates that look up a secret when no
	// provider is configured.
	ErrNoProvider = pkg.MakeErrorf("no secret provider configured")

	// ErrConfig is returned when the AWS configuration cannot be loaded.
	ErrConfig = pkg.MakeErrorf("load AWS configuration")
)

// LookupError reports a failed lookup of Name. Code is the provider's error
// code when one is available, or the text of the underlying error.
type LookupError struct {
	Name string
	Code string
	Err  error
}

func (e *LookupError) Error() string {
	return `Failed to retrieve value "` + e.Name +
		`" from parameter store with error: ` + e.Code
}

func (e *LookupError) Unwrap() error { return e.Err }

func newLookupError(name string, err error) *LookupError {
	code := err.Error()

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		code = apiErr.ErrorCode()
	}

	return &LookupError{Name: name, Code: code, Err: err}
}

// Static is a Provider backed by a map.
type Static map[string]string

// Lookup returns the value of name.
func (s Static) Lookup(_ context.Context, name string) (string, error) {
	if v, ok := s[name]; ok {
		return v, nil
	}

	return "", &LookupError{Name: name, Code: "ParameterNotFound", Err: ErrNotFound}
}

package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by upstream API calls.
var (
	ErrNotFound          = errors.New("upstream resource not found")
	ErrUnauthorized      = errors.New("upstream API unauthorized (invalid API key)")
	ErrMalformedResponse = errors.New("upstream returned malformed response")
	ErrEmptyResult       = errors.New("upstream returned empty result")
)

// StatusError is returned for any non-2xx response.
// It unwraps to ErrNotFound or ErrUnauthorized for 404 and 401.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return nil
	}
}

// Kind classifies an upstream failure.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindUnauthorized
	KindMalformed
	KindEmpty
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindMalformed:
		return "malformed"
	case KindEmpty:
		return "empty"
	default:
		return "upstream"
	}
}

// KindOf maps an error returned by this package (or wrapping one) to its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, ErrEmptyResult):
		return KindEmpty
	default:
		return KindUpstream
	}
}

package trends

import (
	"errors"
	"strings"

	"github.com/valyala/fasthttp"
)

// ErrorKind groups provider failures for logging and metrics
type ErrorKind int

const (
	ErrorKindProvider    ErrorKind = iota // provider reported a failure
	ErrorKindTransport                    // request never got a response
	ErrorKindAuth                         // credentials rejected
	ErrorKindRateLimited                  // throttled by the provider
	ErrorKindDecode                       // response body unreadable
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindAuth:
		return "auth"
	case ErrorKindRateLimited:
		return "rate_limited"
	case ErrorKindDecode:
		return "decode"
	default:
		return "provider"
	}
}

// APIError is the single error value a failed fetch produces. Error() returns
// the provider's own message so it can be shown to operators unchanged.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or ErrorKindProvider when err
// did not come from this package
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrorKindProvider
}

// classifyError maps a status code and provider message to an ErrorKind
func classifyError(statusCode int, message string) ErrorKind {
	switch statusCode {
	case fasthttp.StatusTooManyRequests:
		return ErrorKindRateLimited
	case fasthttp.StatusUnauthorized, fasthttp.StatusForbidden:
		return ErrorKindAuth
	}

	msg := strings.ToLower(message)

	if strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "429") {
		return ErrorKindRateLimited
	}

	if strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "forbidden") {
		return ErrorKindAuth
	}

	if strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "dns") {
		return ErrorKindTransport
	}

	return ErrorKindProvider
}

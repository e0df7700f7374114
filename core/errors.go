package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies pipeline failures so callers can react per category.
type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindNetwork        Kind = "network_error"
	KindUpstreamHTTP   Kind = "upstream_http_error"
	KindMalformedData  Kind = "malformed_structured_data"
	KindRecipeNotFound Kind = "recipe_not_found"
	KindInternal       Kind = "internal_error"
)

// Error is the structured failure returned by every pipeline stage.
type Error struct {
	Kind    Kind
	Message string
	Status  int    // upstream HTTP status, KindUpstreamHTTP only
	Reason  string // upstream reason phrase
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same request may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork
}

// ErrRecipeNotFound matches any KindRecipeNotFound error under errors.Is.
var ErrRecipeNotFound = &Error{Kind: KindRecipeNotFound, Message: "no recipe data found"}

// Is treats two *Error values of the same kind as equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// InvalidRequest reports a caller error such as a missing URL.
func InvalidRequest(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

// NetworkError reports a fetch that could not complete.
func NetworkError(url string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: "fetching " + url, Err: err}
}

// UpstreamHTTPError reports a completed fetch with a non-2xx status.
func UpstreamHTTPError(url string, status int, reason string) *Error {
	if reason == "" {
		reason = http.StatusText(status)
	}
	return &Error{
		Kind:    KindUpstreamHTTP,
		Message: fmt.Sprintf("unexpected status %d for %s", status, url),
		Status:  status,
		Reason:  reason,
	}
}

// MalformedData reports one JSON-LD block that failed to parse.
func MalformedData(block int, err error) *Error {
	return &Error{Kind: KindMalformedData, Message: fmt.Sprintf("JSON-LD block %d", block), Err: err}
}

// RecipeNotFound reports a document with no Recipe entity in any block.
func RecipeNotFound(blocks int) *Error {
	return &Error{Kind: KindRecipeNotFound, Message: fmt.Sprintf("no Recipe entity in %d JSON-LD block(s)", blocks)}
}

// Internal wraps an unanticipated failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf classifies err. Errors outside the taxonomy are KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

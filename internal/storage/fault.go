package storage

import (
	"errors"
	"fmt"
)

// FaultKind classifies why a backend list call failed.
type FaultKind string

const (
	// FaultBackendHTTP means the proxy answered with a non-2xx status.
	FaultBackendHTTP FaultKind = "backend_http_error"
	// FaultEndpointUnavailable means the proxy is unreachable, not deployed,
	// or answered with an HTML page instead of JSON.
	FaultEndpointUnavailable FaultKind = "endpoint_unavailable"
	// FaultInvalidResponse means the proxy answered with malformed JSON.
	FaultInvalidResponse FaultKind = "invalid_response"
	// FaultUpstreamTimeout means the call or the upstream login timed out.
	FaultUpstreamTimeout FaultKind = "upstream_timeout"
)

// Sentinel errors for use with errors.Is.
var (
	ErrBackendHTTP         = errors.New(string(FaultBackendHTTP))
	ErrEndpointUnavailable = errors.New(string(FaultEndpointUnavailable))
	ErrInvalidResponse     = errors.New(string(FaultInvalidResponse))
	ErrUpstreamTimeout     = errors.New(string(FaultUpstreamTimeout))
)

var sentinels = map[FaultKind]error{
	FaultBackendHTTP:         ErrBackendHTTP,
	FaultEndpointUnavailable: ErrEndpointUnavailable,
	FaultInvalidResponse:     ErrInvalidResponse,
	FaultUpstreamTimeout:     ErrUpstreamTimeout,
}

// Fault is the error returned by every Lister implementation.
type Fault struct {
	Kind    FaultKind
	Backend string
	// StatusCode and Body are set for FaultBackendHTTP, and for
	// FaultUpstreamTimeout when the proxy reported the timeout.
	StatusCode int
	Body       string
	// Detail is a human readable explanation, e.g. the title of an HTML page.
	Detail string
	Err    error
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("%s backend: %s", f.Backend, f.Kind)
	switch {
	case f.StatusCode != 0 && f.Body != "":
		msg += fmt.Sprintf(": HTTP %d: %s", f.StatusCode, f.Body)
	case f.StatusCode != 0:
		msg += fmt.Sprintf(": HTTP %d", f.StatusCode)
	}
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Is reports whether target is the sentinel for this fault's kind.
func (f *Fault) Is(target error) bool {
	sentinel, ok := sentinels[f.Kind]
	return ok && target == sentinel
}

// Outcome returns the metric label for the result of a list call:
// "success" for nil, the fault kind for a *Fault, and "error" otherwise.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	var fault *Fault
	if errors.As(err, &fault) {
		return string(fault.Kind)
	}
	return "error"
}

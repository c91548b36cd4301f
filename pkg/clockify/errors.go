package clockify

import (
	"errors"
	"fmt"
)

type UpstreamErrorKind string

const (
	KindUnauthorized      UpstreamErrorKind = "unauthorized"
	KindRateLimited       UpstreamErrorKind = "rate_limited"
	KindServerError       UpstreamErrorKind = "server_error"
	KindTimeout           UpstreamErrorKind = "timeout"
	KindNetwork           UpstreamErrorKind = "network"
	KindUnexpectedStatus  UpstreamErrorKind = "unexpected_status"
	KindMalformedResponse UpstreamErrorKind = "malformed_response"
)

var ErrInvalidConfiguration = errors.New("invalid Clockify client configuration")

// UpstreamError is returned for every failed call to the Clockify API. Nothing is retried.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Endpoint   string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("clockify %s", e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Endpoint != "" {
		msg = fmt.Sprintf("%s calling %s", msg, e.Endpoint)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an UpstreamError of the given kind.
func IsKind(err error, kind UpstreamErrorKind) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr) && upstreamErr.Kind == kind
}

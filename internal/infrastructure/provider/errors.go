package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed provider call. Every error returned by the
// client is one of these three; callers never inspect raw transport errors.
type ErrorKind int

const (
	// KindNetwork is a connection-level failure (DNS, refused, reset).
	KindNetwork ErrorKind = iota
	// KindTimeout is a call that exceeded its per-call deadline.
	KindTimeout
	// KindHTTP is a non-2xx response from the provider.
	KindHTTP
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	default:
		return "network"
	}
}

// Error is the classified failure of one provider call.
type Error struct {
	Kind     ErrorKind
	Status   int // HTTP status, set only for KindHTTP
	Endpoint string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("provider call %s failed with status %d", e.Endpoint, e.Status)
	case KindTimeout:
		return fmt.Sprintf("provider call %s timed out", e.Endpoint)
	default:
		return fmt.Sprintf("provider call %s failed: %v", e.Endpoint, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a classified provider timeout.
func IsTimeout(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == KindTimeout
}

// HTTPStatus extracts the status code when err is a classified non-2xx
// provider response.
func HTTPStatus(err error) (int, bool) {
	var perr *Error
	if errors.As(err, &perr) && perr.Kind == KindHTTP {
		return perr.Status, true
	}
	return 0, false
}

package api

import (
	"errors"
	"fmt"
)

// NetworkError is returned for every failed request: transport errors,
// non-2xx responses and bodies that cannot be decoded.
type NetworkError struct {
	Op         string // list or get
	URL        string
	StatusCode int    // 0 when no response was received
	Message    string // "error" field of the API body, if any
	Err        error
}

func (e *NetworkError) Error() string {
	msg := "network response was not ok"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.URL, msg)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

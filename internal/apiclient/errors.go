package apiclient

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNetwork  = errors.New("network error")
	ErrServer   = errors.New("server error")
	ErrNotFound = errors.New("task not found")
)

// NetworkError means no response was received: the server was unreachable,
// the connection broke or the timeout expired.
type NetworkError struct {
	Op      string
	Method  string
	URL     string
	Timeout bool
	Elapsed time.Duration
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: network error: %s %s timed out after %s", e.Op, e.Method, e.URL, e.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s: network error: unable to connect to the server: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ServerError is a response with a non-2xx status.
type ServerError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Message is the server's own explanation, when the body carried one.
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("%s: API request failed: %d %s", e.Op, e.StatusCode, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ServerError) Unwrap() error { return e.Err }

func (e *ServerError) Is(target error) bool { return target == ErrServer }

// NotFoundError is the 404 case of ServerError for calls addressing one task.
type NotFoundError struct {
	ID  string
	Err *ServerError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

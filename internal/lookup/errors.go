package lookup

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a failed lookup.
type Kind int

const (
	ConnectionError Kind = iota + 1
	TimeoutError
	HttpError
	DecodeError
)

func (k Kind) String() string {
	switch k {
	case ConnectionError:
		return "connection_error"
	case TimeoutError:
		return "timeout_error"
	case HttpError:
		return "http_error"
	case DecodeError:
		return "decode_error"
	default:
		return "unknown"
	}
}

// Error is the only error type returned by Client.
type Error struct {
	Kind       Kind
	StatusCode int // set for HttpError
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case HttpError:
		return fmt.Sprintf("API Error: HTTP %d: %s", e.StatusCode, e.Message)
	case TimeoutError:
		return "API Error: request timed out: " + e.Message
	case ConnectionError:
		return "API Error: connection failed: " + e.Message
	default:
		return "API Error: invalid product data: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the lookup error kind of err, or 0 when err is not a *Error.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return 0
}

func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return &Error{Kind: TimeoutError, Message: err.Error(), Err: err}
	}
	return &Error{Kind: ConnectionError, Message: err.Error(), Err: err}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func decodeError(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: DecodeError, Message: err.Error(), Err: err}
}

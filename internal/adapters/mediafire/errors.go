package mediafire

import (
	"errors"
	"fmt"

	"github.com/bnema/mfimport/internal/ports"
)

// ErrorHashNotFound is the upload/instant code for a hash the service does
// not host.
const ErrorHashNotFound = 129

// ErrRequestTimeout is returned when one call outlives the configured request
// timeout. It matches context.DeadlineExceeded.
var ErrRequestTimeout = ports.ErrRequestTimeout

// ErrClosed is returned by Login after Close.
var ErrClosed = errors.New("mediafire client closed")

// APIError is a logical error envelope or a non-2xx reply.
type APIError struct {
	Path       string
	HTTPStatus int
	Code       int
	Message    string
	// Raw is the response body when it could not be parsed.
	Raw      string
	Envelope *Envelope
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Code != 0 && e.Message != "":
		return fmt.Sprintf("mediafire: %s: [%d] %s", e.Path, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("mediafire: %s: %s", e.Path, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("mediafire: %s: error code %d", e.Path, e.Code)
	case e.Raw != "":
		return fmt.Sprintf("mediafire: %s: status %d: %s", e.Path, e.HTTPStatus, e.Raw)
	default:
		return fmt.Sprintf("mediafire: %s: status %d", e.Path, e.HTTPStatus)
	}
}

// Is lets errors.Is match ports.ErrHashNotFound.
func (e *APIError) Is(target error) bool {
	return e != nil && target == ports.ErrHashNotFound && e.Code == ErrorHashNotFound
}

// UserMessage is the server's own message, falling back to Error.
func (e *APIError) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Raw != "" {
		return e.Raw
	}
	return e.Error()
}

// NetworkError wraps a failure to obtain any response.
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("mediafire: %s: network error: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError is a 2xx reply whose body is not a JSON envelope.
type DecodeError struct {
	Status int
	Raw    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mediafire: decode response (status=%d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) UserMessage() string {
	if e.Raw != "" {
		return e.Raw
	}
	return e.Error()
}

// IsHashNotFound reports whether err is the "hash not found" API error.
func IsHashNotFound(err error) bool {
	return errors.Is(err, ports.ErrHashNotFound)
}

// Message extracts the most useful human-readable text from err.
func Message(err error) string {
	return ports.ErrorMessage(err)
}

package openai

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoCredential = errors.New("no api key configured")
	ErrEmptyContent = errors.New("empty response content")
	ErrTimeout      = errors.New("completion timed out")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Type    string
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.Code, e.Type, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Body)
}

// Error codes used as metric labels.
const (
	CodeNoCredential = "NO_CREDENTIAL"
	CodeTimeout      = "TIMEOUT"
	CodeHTTPStatus   = "HTTP_STATUS"
	CodeEmpty        = "EMPTY"
	CodeTransport    = "TRANSPORT"
)

// ErrorCode classifies a Chat error into a short code.
func ErrorCode(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCredential):
		return CodeNoCredential
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.As(err, &se):
		return CodeHTTPStatus
	case errors.Is(err, ErrEmptyContent):
		return CodeEmpty
	default:
		return CodeTransport
	}
}

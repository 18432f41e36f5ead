package mercury

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	// KindConfig is a missing or unusable client setting.
	KindConfig ErrorKind = "config"
	// KindInvalid is a request rejected before any backend call was made.
	KindInvalid ErrorKind = "invalid"
	// KindTransport is a network failure, a cancelled call or a non-2xx response.
	KindTransport ErrorKind = "transport"
	// KindProtocol is a response the backend delivered but that reports or causes a failure.
	KindProtocol ErrorKind = "protocol"
	// KindAggregate is the synthetic failure of a composite operation.
	KindAggregate ErrorKind = "aggregate"
)

// TokenEventsFailedMessage is the message of the aggregate token subscription failure.
const TokenEventsFailedMessage = "Failed to subscribe to token events"

// Error is the tagged error carried by every failed Result.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

// NewError wraps err with a kind and the name of the operation that failed.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf creates an Error with a formatted message and no cause.
func Errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind) + " error"
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the error as {"kind","op","message","cause"}.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind    ErrorKind `json:"kind"`
		Op      string    `json:"op,omitempty"`
		Message string    `json:"message"`
		Cause   string    `json:"cause,omitempty"`
	}{
		Kind:    e.Kind,
		Op:      e.Op,
		Message: e.Error(),
	}

	if e.Message != "" && e.Err != nil {
		out.Cause = e.Err.Error()
	}

	return json.Marshal(out)
}

// AsError converts any error into a tagged Error reported under op. A tagged
// error keeps its kind and message; any other error is classified as kind.
func AsError(kind ErrorKind, op string, err error) *Error {
	if err == nil {
		return nil
	}

	var me *Error
	if errors.As(err, &me) {
		if op == "" || me.Op == op {
			return me
		}
		return &Error{Kind: me.Kind, Op: op, Message: me.Message, Err: me.Err}
	}

	return NewError(kind, op, err)
}

// KindOf returns the kind of the first tagged error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// HTTPStatusError is returned by the backend channels for non-2xx responses.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// IsUnauthorized reports whether err is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
}

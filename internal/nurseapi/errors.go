package nurseapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound matches any 404 from the backend via errors.Is.
	ErrNotFound = errors.New("nurse not found")

	// ErrEmailTaken and ErrUsernameTaken match a 409 whose cause is known.
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already exists")
)

// ServerError is a non-2xx response. Reason, when set, names the cause of a
// conflict and is matched by errors.Is.
type ServerError struct {
	StatusCode int
	Body       string
	Reason     error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) hold for 404 responses and
// errors.Is(err, e.Reason) for conflicts.
func (e *ServerError) Is(target error) bool {
	if target == ErrNotFound && e.StatusCode == http.StatusNotFound {
		return true
	}
	return e.Reason != nil && target == e.Reason
}

func conflict(reason error) *ServerError {
	return &ServerError{StatusCode: http.StatusConflict, Body: reason.Error(), Reason: reason}
}

// conflictReason recognizes the backend's {"error": "..."} body for a 409.
func conflictReason(body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return nil
	}
	for _, reason := range []error{ErrEmailTaken, ErrUsernameTaken} {
		if strings.HasPrefix(payload.Error, reason.Error()) {
			return reason
		}
	}
	return nil
}

// TransportError is a failure before a usable response arrived: dial, timeout,
// cancellation, or a body that could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

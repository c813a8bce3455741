package firebase

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a path holds no data (the REST API answers null).
var ErrNotFound = errors.New("firebase: no data at path")

// Error is a non-2xx answer from the database REST API.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("firebase %s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// IsPermissionDenied reports whether err is a rules rejection from the database.
func IsPermissionDenied(err error) bool {
	var fbErr *Error
	if errors.As(err, &fbErr) {
		return fbErr.StatusCode == http.StatusUnauthorized || fbErr.StatusCode == http.StatusForbidden
	}
	return false
}

// ABOUTME: Errors returned while caching a single file
// ABOUTME: HTTP status failures carry the URL and status for the console message

package cache

import (
	"errors"
	"fmt"
)

// ErrNoFileName is returned when a resolved URL has no usable last path segment
var ErrNoFileName = errors.New("cannot derive a file name from url")

// StatusError records a file response other than 200 OK
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response %s for %s", e.Status, e.URL)
}

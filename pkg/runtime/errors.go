// Package runtime provides the pooled database handle and statement execution.
package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolClosed is returned when acquiring from a closed DB.
	ErrPoolClosed = errors.New("connection pool closed")

	// ErrArgumentCount is returned when a statement's markers and arguments disagree.
	ErrArgumentCount = errors.New("placeholder and argument count mismatch")

	// ErrNoConnection is returned when a Conn is used after release.
	ErrNoConnection = errors.New("no database connection")
)

// ConfigurationError is returned when the pool configuration is missing a required
// key or holds an invalid value. The pool is never created.
type ConfigurationError struct {
	Key     string
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("configuration error: missing required key %q", e.Key)
	}
	return fmt.Sprintf("configuration error on key %q: %s", e.Key, e.Message)
}

// QueryError represents a query execution error.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a write that must change exactly one row did not.
type WriteError struct {
	Query    string
	Affected int64
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: expected 1 affected row, got %d\nQuery: %s", e.Affected, e.Query)
}

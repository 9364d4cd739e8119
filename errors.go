package hiveserver2

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchObject is returned when a catalog lookup matches nothing.
	ErrNoSuchObject = errors.New("no such object")

	// ErrNotSupported is returned by facade methods that have no
	// HiveServer2 equivalent.
	ErrNotSupported = errors.New("not supported in HiveServer2")

	// ErrNoSession is returned when an explicit session operation finds no
	// tracked session for the (user, server) key.
	ErrNoSession = errors.New("no open session")
)

// QueryServerError is returned when the query server answers an RPC with a
// non-retryable error status, or when a retried call fails again. Request
// and Response carry the offending pair for diagnostics.
type QueryServerError struct {
	Message  string
	Request  any
	Response any
}

func (e *QueryServerError) Error() string {
	return fmt.Sprintf("query server error: %s", e.Message)
}

// ColumnNotFoundError is returned when a name-based lookup misses the schema.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in schema", e.Column)
}

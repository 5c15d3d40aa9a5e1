package posts

import "errors"

var (
	// ErrNilQuery is returned when a host answers a query with no handle
	ErrNilQuery = errors.New("query cannot be nil")
	// ErrNilHost is returned when a builder has no host to query
	ErrNilHost = errors.New("host cannot be nil")
)

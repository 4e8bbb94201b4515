package domain

import "errors"

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Page is a limit/offset window over a list endpoint.
type Page struct {
	Limit  int
	Offset int
}

// NewPage clamps limit into [1, max] (using def when unset) and offset to >= 0.
func NewPage(limit, offset, def, max int) Page {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

package service

import "errors"

// Domain errors translated to HTTP status codes at the API boundary.
var (
	ErrNotFound     = errors.New("not found")                      // Missing or not-owned resource
	ErrConflict     = errors.New("username already exists")        // Duplicate username on register
	ErrUnauthorized = errors.New("incorrect username or password") // Bad credentials, single kind on purpose
	ErrEmptyTitle   = errors.New("title is required")              // Task validation failure
)

package store

import "errors"

// Sentinel errors returned by Store implementations. Services translate
// these into user-facing errors with HTTP status codes.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)

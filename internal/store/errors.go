package store

import "errors"

// ErrNotFound is returned when the requested key holds no value.
var ErrNotFound = errors.New("key not found")

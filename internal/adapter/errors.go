package adapter

import "errors"

var (
	// ErrUnauthorized marks an expired or invalid credential (HTTP 401).
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrCursorInvalid marks a sync cursor the service no longer accepts
	// (HTTP 409); the fetch policy retries once with a full fetch.
	ErrCursorInvalid = errors.New("sync cursor invalid")
)

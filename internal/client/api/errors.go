package api

import "errors"

var (
	// ErrUnavailable covers network failures and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized covers 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected covers the remaining 4xx responses, typically
	// server-side validation failures.
	ErrRejected = errors.New("request rejected")
)

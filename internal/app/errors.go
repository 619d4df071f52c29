package service

import "errors"

// Sentinel error kinds returned by the service.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrInvalidRequest = errors.New("invalid request")
)

package queue

import "errors"

// Sentinel errors returned by Submit.
var (
	ErrClosed = errors.New("queue closed")
)

package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("game not found")
	ErrExists   = errors.New("game already exists")
	ErrCapacity = errors.New("game store is full")
)

// Leaderboard errors.
var (
	ErrNotRanked    = errors.New("name not ranked")
	ErrInvalidLimit = errors.New("limit must be positive")
)

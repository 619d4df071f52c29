package model

import "errors"

// Sentinel errors for model parsing.
var (
	ErrInvalidGender = errors.New("invalid gender")
)

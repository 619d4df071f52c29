package catalog

import "errors"

// Sentinel errors returned while loading a catalog.
var (
	ErrDecode          = errors.New("catalog decode failed")
	ErrInvalidTemplate = errors.New("invalid template")
	ErrEmptyCategory   = errors.New("empty category")
)

package config

import "errors"

var (
	// ErrInvalidConfig marks a value outside its allowed range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks an unreadable config file or an undecodable value.
	ErrLoadConfig = errors.New("load config failed")
)

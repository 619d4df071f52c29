package game

import "errors"

// Sentinel errors returned by Game. Callers match them with errors.Is.
var (
	ErrInvalidRoster   = errors.New("invalid roster")
	ErrGameOver        = errors.New("game is over")
	ErrEventsPending   = errors.New("events pending reveal")
	ErrNothingToReveal = errors.New("nothing to reveal")
	ErrUnknownTribute  = errors.New("unknown tribute")
	ErrTributeDead     = errors.New("tribute already dead")
	ErrTickLimit       = errors.New("tick limit reached")
)

// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// EnvironmentalKiller is recorded as KilledBy when no tribute gets credit.
const EnvironmentalKiller = "arena"

// Gender selects the pronoun class used in rendered text.
type Gender string

// Supported genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender accepts male, female or other (case-insensitive). Empty
// input maps to other.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	case "":
		return GenderOther, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

// Subject returns he, she or they.
func (g Gender) Subject() string {
	switch g {
	case GenderMale:
		return "he"
	case GenderFemale:
		return "she"
	default:
		return "they"
	}
}

// Object returns him, her or them.
func (g Gender) Object() string {
	switch g {
	case GenderMale:
		return "him"
	case GenderFemale:
		return "her"
	default:
		return "them"
	}
}

// Possessive returns his, her or their.
func (g Gender) Possessive() string {
	switch g {
	case GenderMale:
		return "his"
	case GenderFemale:
		return "her"
	default:
		return "their"
	}
}

// Tribute is one contestant. Alive flips to false exactly once.
type Tribute struct {
	ID         string
	Name       string
	Gender     Gender
	ImageURL   string
	DistrictID int
	Alive      bool
	Kills      int

	// Set when the tribute dies.
	DeathDay   int
	DeathPhase Phase
	KilledBy   string // killer tribute ID or EnvironmentalKiller
}

// District pairs two tributes.
type District struct {
	ID       int
	Tributes [2]string
}

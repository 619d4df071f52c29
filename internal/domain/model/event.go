package model

import "time"

// Template is an immutable, catalog-defined event pattern.
type Template struct {
	ID             string
	Text           string
	Tributes       int   // participants required, >= 1
	Deaths         []int // fatal slots, 0-based
	Killer         *int  // nil: no credit, -1: environmental, else a slot
	RequiresWeapon bool
	RequiresItem   bool
}

// Fatal reports whether the template kills anyone.
func (t Template) Fatal() bool { return len(t.Deaths) > 0 }

// Solo reports whether the template needs a single tribute.
func (t Template) Solo() bool { return t.Tributes == 1 }

// KillerSlot returns the credited slot, if any.
func (t Template) KillerSlot() (int, bool) {
	if t.Killer == nil || *t.Killer < 0 {
		return 0, false
	}
	return *t.Killer, true
}

// Event is a template instantiated against concrete tributes. Never mutated
// after creation.
type Event struct {
	ID         string
	Day        int
	Phase      Phase
	Text       string
	TemplateID string
	Tributes   []string // ordered tribute IDs
	Deaths     []string // tribute IDs who die
	Killer     string   // credited tribute ID, empty if none
	Timestamp  time.Time
}

// StepResult is what one simulated phase produces.
type StepResult struct {
	Events    []Event
	Deaths    []string
	NextPhase Phase
	NextDay   int
	GameOver  bool
	Winner    *Tribute
}

package model

// Phase names a stage of the day/night cycle.
type Phase string

// Phases of a game. Setup precedes the opening bloodbath and finished is terminal.
const (
	PhaseSetup     Phase = "setup"
	PhaseBloodbath Phase = "bloodbath"
	PhaseDay       Phase = "day"
	PhaseNight     Phase = "night"
	PhaseFeast     Phase = "feast"
	PhaseArena     Phase = "arena-event"
	PhaseFinished  Phase = "finished"
)

// Categories lists the phases that carry a template category, in catalog order.
func Categories() []Phase {
	return []Phase{PhaseBloodbath, PhaseDay, PhaseNight, PhaseFeast, PhaseArena}
}

// IsCategory reports whether p selects a template category.
func (p Phase) IsCategory() bool {
	switch p {
	case PhaseBloodbath, PhaseDay, PhaseNight, PhaseFeast, PhaseArena:
		return true
	default:
		return false
	}
}

// Special reports whether p preempts a normal daytime phase.
func (p Phase) Special() bool {
	return p == PhaseFeast || p == PhaseArena
}

// Order ranks phases within one day for standings: a death in a later
// phase places higher. Night closes the day.
func (p Phase) Order() int {
	switch p {
	case PhaseBloodbath:
		return 0
	case PhaseDay:
		return 1
	case PhaseFeast:
		return 2
	case PhaseArena:
		return 3
	case PhaseNight:
		return 4
	default:
		return 1
	}
}

func (p Phase) String() string { return string(p) }

package timer

import "time"

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventComplete    EventType = "complete"
	EventManipulate  EventType = "manipulate"
	EventSound       EventType = "sound"
)

// Event represents a Timer update for observers.
type Event struct {
	Type  EventType
	State State
	// Completed holds the mode that just finished on EventComplete.
	Completed Mode
	At        time.Time
}

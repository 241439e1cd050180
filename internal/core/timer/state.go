package timer

import (
	"fmt"
	"math"
)

// State is a snapshot of the timer taken under its lock.
type State struct {
	Mode                  Mode
	Label                 string
	Remaining             int
	Duration              int
	Running               bool
	Manipulating          bool
	CompletedWorkSessions int
	SoundEnabled          bool
	// DialAngle is the hand position while manipulating.
	DialAngle float64
}

// Clock renders the remaining time as MM:SS.
func (state State) Clock() string {
	return FormatClock(state.Remaining)
}

// Rotation returns the dial hand rotation in [0, 360).
func (state State) Rotation() float64 {
	if state.Manipulating {
		return normalizeAngle(state.DialAngle)
	}
	return normalizeAngle(AngleForRemaining(state.Remaining, state.Duration))
}

// Progress returns the elapsed fraction of the current countdown.
func (state State) Progress() float64 {
	if state.Duration <= 0 {
		return 0
	}
	return float64(state.Duration-state.Remaining) / float64(state.Duration)
}

// SessionDots returns how many of the session indicators are lit.
func (state State) SessionDots() int {
	return state.CompletedWorkSessions % SessionsPerLongBreak
}

// ShowWindHint reports whether the dial sits untouched at full duration.
func (state State) ShowWindHint() bool {
	return !state.Running && !state.Manipulating && state.Remaining == state.Duration
}

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		return 0
	}
	return angle
}

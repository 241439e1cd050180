package timer

import (
	"time"

	"pomodial/internal/core/model"
)

// Mode identifies one of the countdown configurations.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// SessionsPerLongBreak is the number of completed work sessions that earns a long break.
const SessionsPerLongBreak = 4

// Modes lists every mode in display order.
var Modes = []Mode{ModeWork, ModeShortBreak, ModeLongBreak}

// Valid reports whether mode is a known mode.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// NextMode picks the mode that follows a naturally completed countdown.
// completedWorkSessions must already include the completion being routed.
func NextMode(current Mode, completedWorkSessions int) Mode {
	if current != ModeWork {
		return ModeWork
	}
	if completedWorkSessions%SessionsPerLongBreak == 0 {
		return ModeLongBreak
	}
	return ModeShortBreak
}

func modeConfig(config model.TimerConfig, mode Mode) model.ModeConfig {
	switch mode {
	case ModeShortBreak:
		return config.ShortBreak
	case ModeLongBreak:
		return config.LongBreak
	default:
		return config.Work
	}
}

// durationSeconds returns the mode's full countdown in whole seconds, never less than one.
func durationSeconds(config model.TimerConfig, mode Mode) int {
	seconds := int(modeConfig(config, mode).Duration / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

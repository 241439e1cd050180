package model

import "time"

// ModeConfig defines the nominal countdown of a single timer mode.
type ModeConfig struct {
	Duration time.Duration
	Label    string
}

// TimerConfig contains runtime settings for the pomodoro state machine.
type TimerConfig struct {
	Work       ModeConfig
	ShortBreak ModeConfig
	LongBreak  ModeConfig

	SoundEnabled bool
}

// DefaultTimerConfig returns the classic 25/5/15 minute cycle.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work:         ModeConfig{Duration: 25 * time.Minute, Label: "Focus"},
		ShortBreak:   ModeConfig{Duration: 5 * time.Minute, Label: "Short Break"},
		LongBreak:    ModeConfig{Duration: 15 * time.Minute, Label: "Long Break"},
		SoundEnabled: true,
	}
}

package preferences

import (
	"fmt"
	"time"

	"pomodial/internal/core/model"
)

// Bounds accepted for every mode duration.
const (
	MinDuration = time.Minute
	MaxDuration = 180 * time.Minute
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	SoundEnabled       bool
}

// DefaultSettings returns default settings for Pomodial.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerConfig()
	return Settings{
		WorkDuration:       defaults.Work.Duration,
		ShortBreakDuration: defaults.ShortBreak.Duration,
		LongBreakDuration:  defaults.LongBreak.Duration,
		SoundEnabled:       defaults.SoundEnabled,
	}
}

// Validate reports the first out-of-range duration.
func (settings Settings) Validate() error {
	if !inRange(settings.WorkDuration) {
		return fmt.Errorf("%w: %s", ErrInvalidWorkDuration, settings.WorkDuration)
	}
	if !inRange(settings.ShortBreakDuration) {
		return fmt.Errorf("%w: %s", ErrInvalidShortBreakDuration, settings.ShortBreakDuration)
	}
	if !inRange(settings.LongBreakDuration) {
		return fmt.Errorf("%w: %s", ErrInvalidLongBreakDuration, settings.LongBreakDuration)
	}
	return nil
}

// Sanitize replaces out-of-range durations with their defaults.
func (settings Settings) Sanitize() Settings {
	defaults := DefaultSettings()
	if !inRange(settings.WorkDuration) {
		settings.WorkDuration = defaults.WorkDuration
	}
	if !inRange(settings.ShortBreakDuration) {
		settings.ShortBreakDuration = defaults.ShortBreakDuration
	}
	if !inRange(settings.LongBreakDuration) {
		settings.LongBreakDuration = defaults.LongBreakDuration
	}
	return settings
}

// SameDurations reports whether both settings use the same mode durations.
func (settings Settings) SameDurations(other Settings) bool {
	return settings.WorkDuration == other.WorkDuration &&
		settings.ShortBreakDuration == other.ShortBreakDuration &&
		settings.LongBreakDuration == other.LongBreakDuration
}

// TimerConfig converts settings to the timer configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	config := model.DefaultTimerConfig()
	config.Work.Duration = settings.WorkDuration
	config.ShortBreak.Duration = settings.ShortBreakDuration
	config.LongBreak.Duration = settings.LongBreakDuration
	config.SoundEnabled = settings.SoundEnabled
	return config
}

func inRange(duration time.Duration) bool {
	return duration >= MinDuration && duration <= MaxDuration
}

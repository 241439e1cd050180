package preferences

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.WorkDuration != 25*time.Minute ||
		settings.ShortBreakDuration != 5*time.Minute ||
		settings.LongBreakDuration != 15*time.Minute {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if !settings.SoundEnabled {
		t.Fatalf("sound should default to on")
	}
	if err := settings.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   error
	}{
		{name: "valid bounds", mutate: func(s *Settings) { s.WorkDuration = MinDuration; s.LongBreakDuration = MaxDuration }},
		{name: "zero work", mutate: func(s *Settings) { s.WorkDuration = 0 }, want: ErrInvalidWorkDuration},
		{name: "seconds only", mutate: func(s *Settings) { s.ShortBreakDuration = 30 * time.Second }, want: ErrInvalidShortBreakDuration},
		{name: "too long", mutate: func(s *Settings) { s.LongBreakDuration = MaxDuration + time.Minute }, want: ErrInvalidLongBreakDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			err := settings.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	settings := Settings{WorkDuration: 50 * time.Minute, ShortBreakDuration: -time.Minute, LongBreakDuration: 999 * time.Hour}
	got := settings.Sanitize()
	if got.WorkDuration != 50*time.Minute {
		t.Fatalf("valid work duration replaced: %s", got.WorkDuration)
	}
	if got.ShortBreakDuration != 5*time.Minute || got.LongBreakDuration != 15*time.Minute {
		t.Fatalf("invalid durations kept: %+v", got)
	}
}

func TestTimerConfig(t *testing.T) {
	settings := Settings{
		WorkDuration:       50 * time.Minute,
		ShortBreakDuration: 10 * time.Minute,
		LongBreakDuration:  30 * time.Minute,
		SoundEnabled:       false,
	}
	config := settings.TimerConfig()
	if config.Work.Duration != 50*time.Minute || config.ShortBreak.Duration != 10*time.Minute || config.LongBreak.Duration != 30*time.Minute {
		t.Fatalf("durations not carried: %+v", config)
	}
	if config.Work.Label != "Focus" || config.LongBreak.Label != "Long Break" {
		t.Fatalf("labels lost: %+v", config)
	}
	if config.SoundEnabled {
		t.Fatalf("sound flag not carried")
	}
}

func TestSameDurations(t *testing.T) {
	base := DefaultSettings()

	soundOnly := base
	soundOnly.SoundEnabled = false
	if !base.SameDurations(soundOnly) {
		t.Fatalf("a sound change is not a duration change")
	}

	longer := base
	longer.LongBreakDuration = 20 * time.Minute
	if base.SameDurations(longer) {
		t.Fatalf("long break change not detected")
	}
}

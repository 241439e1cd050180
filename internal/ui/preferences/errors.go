package preferences

import "errors"

var (
	ErrInvalidWorkDuration       = errors.New("focus duration must be between 1 and 180 minutes")
	ErrInvalidShortBreakDuration = errors.New("short break duration must be between 1 and 180 minutes")
	ErrInvalidLongBreakDuration  = errors.New("long break duration must be between 1 and 180 minutes")
)

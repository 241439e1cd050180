package animation

import "time"

// DefaultConfig returns the timings of the first-visit wind demo.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		Delay: Range{
			Min: 400 * time.Millisecond,
			Max: 700 * time.Millisecond,
		},
		WindDuration:   900 * time.Millisecond,
		HoldDuration:   500 * time.Millisecond,
		ReturnDuration: 1200 * time.Millisecond,
		SweepAngle:     120,
	}
}

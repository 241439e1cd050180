package timer

import "math"

// ClickThreshold is the angular step, in degrees, between two wind clicks.
const ClickThreshold = 6.0

// Point is a pointer or dial position in screen coordinates (y grows downwards).
type Point struct {
	X float64
	Y float64
}

type pin int

const (
	pinNone pin = iota
	pinEmpty
	pinFull
)

type gestureState struct {
	angle       float64
	clickAngle  float64
	lastPointer float64
	hasPointer  bool
	pin         pin
}

// BeginManipulation hands the remaining time over to the dial.
func (timer *Timer) BeginManipulation() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.stopLocked()
	timer.manipulating = true

	angle := AngleForRemaining(timer.remaining, timer.durationLocked())
	timer.gesture = gestureState{angle: angle, clickAngle: angle}
	timer.emitLocked(EventManipulate)
}

// UpdateManipulation sets the remaining time from the pointer angle around center.
// Degenerate samples are ignored.
func (timer *Timer) UpdateManipulation(pointer, center Point) {
	pointerAngle, ok := PointerAngle(pointer, center)
	if !ok {
		return
	}

	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.manipulating {
		return
	}

	duration := timer.durationLocked()
	switch timer.gesture.follow(pointerAngle) {
	case pinEmpty:
		timer.gesture.angle = 360
		timer.remaining = 0
	case pinFull:
		timer.gesture.angle = 0
		timer.remaining = duration
	default:
		timer.gesture.angle = pointerAngle
		timer.remaining = RemainingForAngle(pointerAngle, duration)
	}

	if AngularDistance(timer.gesture.angle, timer.gesture.clickAngle) > ClickThreshold {
		timer.playLocked(timer.options.Cues.PlayWindClick)
		timer.gesture.clickAngle = timer.gesture.angle
	}
	timer.emitLocked(EventManipulate)
}

// EndManipulation releases the dial. A partially wound dial starts counting.
func (timer *Timer) EndManipulation() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.manipulating {
		return
	}
	timer.manipulating = false
	if timer.remaining > 0 && timer.remaining < timer.durationLocked() {
		timer.startLocked()
	}
	timer.emitLocked(EventStateChange)
}

// follow tracks 12 o'clock crossings between consecutive samples. Winding
// clockwise past the top pins the dial at empty, counter-clockwise at full,
// until the pointer crosses back.
func (gesture *gestureState) follow(pointerAngle float64) pin {
	if gesture.hasPointer {
		delta := pointerAngle - gesture.lastPointer
		switch {
		case delta < -180:
			if gesture.pin == pinFull {
				gesture.pin = pinNone
			} else {
				gesture.pin = pinEmpty
			}
		case delta > 180:
			if gesture.pin == pinEmpty {
				gesture.pin = pinNone
			} else {
				gesture.pin = pinFull
			}
		}
	}
	gesture.lastPointer = pointerAngle
	gesture.hasPointer = true
	return gesture.pin
}

// PointerAngle returns the clockwise angle of pointer around center, with 0 at
// the top, in [0, 360). ok is false for coincident or non-finite points.
func PointerAngle(pointer, center Point) (angle float64, ok bool) {
	dx := pointer.X - center.X
	dy := pointer.Y - center.Y
	if !finite(dx) || !finite(dy) || math.Hypot(dx, dy) < 1e-9 {
		return 0, false
	}
	angle = math.Atan2(dx, -dy) * 180 / math.Pi
	return normalizeAngle(angle), true
}

// RemainingForAngle maps a dial angle to whole remaining seconds. A full turn
// is the whole duration, so 0 and 360 both mean nothing has elapsed.
func RemainingForAngle(angle float64, duration int) int {
	if duration <= 0 {
		return 0
	}
	if !finite(angle) {
		return duration
	}
	angle = normalizeAngle(angle)
	remaining := int(math.Round(float64(duration) - angle/360*float64(duration)))
	return clamp(remaining, 0, duration)
}

// AngleForRemaining maps remaining seconds back to the dial angle in [0, 360].
func AngleForRemaining(remaining, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	elapsed := duration - clamp(remaining, 0, duration)
	return float64(elapsed) / float64(duration) * 360
}

// AngularDistance returns the shorter arc between two angles in degrees.
func AngularDistance(first, second float64) float64 {
	distance := math.Abs(normalizeAngle(first) - normalizeAngle(second))
	if distance > 180 {
		distance = 360 - distance
	}
	return distance
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

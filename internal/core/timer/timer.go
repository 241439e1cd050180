package timer

import (
	"sync"
	"time"

	"pomodial/internal/core/model"
)

// Cues plays the three audio cues of the dial. Implementations must not block.
type Cues interface {
	PlayTick()
	PlayWindClick()
	PlayBell()
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	Cues         Cues
	Now          func() time.Time
}

// Timer is the pomodoro state machine: countdown, dial manipulation and mode cycling.
type Timer struct {
	mu      sync.Mutex
	config  model.TimerConfig
	pending *model.TimerConfig
	options Config

	mode         Mode
	remaining    int
	running      bool
	manipulating bool
	completed    int
	soundEnabled bool

	gesture gestureState

	cancelTick func()
	generation uint64

	events []chan Event
	closed bool
}

// New creates a Timer in Work mode at full duration, stopped.
func New(config model.TimerConfig, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Cues == nil {
		options.Cues = silentCues{}
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	timer := &Timer{
		config:       config,
		options:      options,
		mode:         ModeWork,
		soundEnabled: config.SoundEnabled,
	}
	timer.remaining = timer.durationLocked()
	return timer
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	if timer.closed {
		close(ch)
	} else {
		timer.events = append(timer.events, ch)
	}
	timer.mu.Unlock()
	return ch
}

// Close stops the countdown and closes observers.
func (timer *Timer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.closed = true
	timer.stopLocked()
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns the current state.
func (timer *Timer) Snapshot() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.snapshotLocked()
}

// Start begins the countdown. It is a no-op while running, while the dial
// is being manipulated or when nothing is left to count.
func (timer *Timer) Start() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.startLocked() {
		return
	}
	timer.emitLocked(EventStateChange)
}

// Pause freezes the countdown.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return
	}
	timer.stopLocked()
	timer.emitLocked(EventStateChange)
}

// Toggle starts a stopped countdown or pauses a running one.
func (timer *Timer) Toggle() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.running {
		timer.stopLocked()
	} else if !timer.startLocked() {
		return
	}
	timer.emitLocked(EventStateChange)
}

// Reset rewinds the current mode to its full duration.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.stopLocked()
	timer.manipulating = false
	timer.applyPendingLocked()
	timer.remaining = timer.durationLocked()
	timer.emitLocked(EventStateChange)
}

// SwitchMode selects a mode explicitly. The session count is untouched.
func (timer *Timer) SwitchMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.stopLocked()
	timer.manipulating = false
	timer.mode = mode
	timer.applyPendingLocked()
	timer.remaining = timer.durationLocked()
	timer.emitLocked(EventStateChange)
}

// SetSoundEnabled sets the mute flag.
func (timer *Timer) SetSoundEnabled(enabled bool) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.soundEnabled == enabled {
		return
	}
	timer.soundEnabled = enabled
	timer.emitLocked(EventSound)
}

// ToggleSound flips the mute flag.
func (timer *Timer) ToggleSound() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.soundEnabled = !timer.soundEnabled
	timer.emitLocked(EventSound)
}

// UpdateConfig replaces the mode durations. A dial resting at full duration
// takes the new duration at once; otherwise the countdown in progress is left
// alone and the new durations apply from the next reset, mode switch or
// completion. The sound flag is not touched.
func (timer *Timer) UpdateConfig(config model.TimerConfig) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.running || timer.manipulating || timer.remaining != timer.durationLocked() {
		timer.pending = &config
		return
	}
	timer.pending = nil
	timer.config = config
	timer.remaining = timer.durationLocked()
	timer.emitLocked(EventStateChange)
}

func (timer *Timer) startLocked() bool {
	if timer.closed || timer.running || timer.manipulating || timer.remaining <= 0 {
		return false
	}
	timer.running = true
	timer.generation++
	generation := timer.generation
	timer.cancelTick = timer.options.Scheduler.Every(timer.options.TickInterval, func() {
		timer.tick(generation)
	})
	return true
}

func (timer *Timer) stopLocked() {
	timer.running = false
	timer.generation++
	if timer.cancelTick != nil {
		timer.cancelTick()
		timer.cancelTick = nil
	}
}

func (timer *Timer) tick(generation uint64) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if generation != timer.generation || !timer.running || timer.manipulating {
		return
	}

	timer.playLocked(timer.options.Cues.PlayTick)
	timer.remaining--
	if timer.remaining > 0 {
		timer.emitLocked(EventTick)
		return
	}

	finished := timer.mode
	timer.stopLocked()
	timer.playLocked(timer.options.Cues.PlayBell)
	if finished == ModeWork {
		timer.completed++
	}
	timer.mode = NextMode(finished, timer.completed)
	timer.applyPendingLocked()
	timer.remaining = timer.durationLocked()

	event := timer.eventLocked(EventComplete)
	event.Completed = finished
	timer.sendLocked(event)
}

func (timer *Timer) playLocked(play func()) {
	if !timer.soundEnabled {
		return
	}
	play()
}

func (timer *Timer) applyPendingLocked() {
	if timer.pending == nil {
		return
	}
	timer.config = *timer.pending
	timer.pending = nil
}

func (timer *Timer) durationLocked() int {
	return durationSeconds(timer.config, timer.mode)
}

func (timer *Timer) snapshotLocked() State {
	return State{
		Mode:                  timer.mode,
		Label:                 modeConfig(timer.config, timer.mode).Label,
		Remaining:             timer.remaining,
		Duration:              timer.durationLocked(),
		Running:               timer.running,
		Manipulating:          timer.manipulating,
		CompletedWorkSessions: timer.completed,
		SoundEnabled:          timer.soundEnabled,
		DialAngle:             timer.gesture.angle,
	}
}

func (timer *Timer) eventLocked(eventType EventType) Event {
	return Event{
		Type:  eventType,
		State: timer.snapshotLocked(),
		At:    timer.options.Now(),
	}
}

func (timer *Timer) emitLocked(eventType EventType) {
	timer.sendLocked(timer.eventLocked(eventType))
}

func (timer *Timer) sendLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type silentCues struct{}

func (silentCues) PlayTick()      {}
func (silentCues) PlayWindClick() {}
func (silentCues) PlayBell()      {}

package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	FrameInterval time.Duration

	Delay          Range
	WindDuration   time.Duration
	HoldDuration   time.Duration
	ReturnDuration time.Duration

	// SweepAngle is how far the hand is wound during the demo, in degrees.
	SweepAngle float64
}

// Engine plays the intro sweep of the dial hand: it winds the hand out,
// holds, and lets it run back to the top. Frames are delivered from a
// background goroutine.
type Engine struct {
	mu     sync.Mutex
	config Config
	frame  func(angle float64)
	cancel context.CancelFunc
	rng    *rand.Rand
}

// New creates a new animation engine.
func New(config Config, frame func(angle float64)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = 16 * time.Millisecond
	}
	return &Engine{
		config: config,
		frame:  frame,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PlayIntro starts the sweep. onDone runs after the last frame unless the
// sweep is stopped first.
func (engine *Engine) PlayIntro(ctx context.Context, onDone func()) {
	engine.start(ctx, func(runCtx context.Context) {
		if !sleepWithContext(runCtx, engine.config.Delay.Random(engine.rng)) {
			return
		}
		if !engine.tween(runCtx, 0, engine.config.SweepAngle, engine.config.WindDuration) {
			return
		}
		if !sleepWithContext(runCtx, engine.config.HoldDuration) {
			return
		}
		if !engine.tween(runCtx, engine.config.SweepAngle, 0, engine.config.ReturnDuration) {
			return
		}
		if onDone != nil {
			onDone()
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func (engine *Engine) tween(ctx context.Context, from, to float64, duration time.Duration) bool {
	steps := int(duration / engine.config.FrameInterval)
	if steps < 1 {
		steps = 1
	}
	engine.emit(ctx, from)
	for step := 1; step <= steps; step++ {
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return false
		}
		if !engine.emit(ctx, lerp(from, to, easeInOut(float64(step)/float64(steps)))) {
			return false
		}
	}
	return true
}

func (engine *Engine) emit(ctx context.Context, angle float64) bool {
	if ctx.Err() != nil {
		return false
	}
	if engine.frame != nil {
		engine.frame(angle)
	}
	return true
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pomodial/internal/core/timer"
)

var (
	_ timer.Cues = (*Speaker)(nil)
	_ timer.Cues = Nop{}
	_ timer.Cues = (*Recorder)(nil)
)

func peak(samples []float64) float64 {
	var max float64
	for _, sample := range samples {
		max = math.Max(max, math.Abs(sample))
	}
	return max
}

func TestRenderCueLengths(t *testing.T) {
	tests := []struct {
		cue     Cue
		samples int
		maxPeak float64
	}{
		{cue: CueTick, samples: SampleRate * 50 / 1000, maxPeak: 0.15},
		{cue: CueWindClick, samples: SampleRate * 20 / 1000, maxPeak: 0.2},
		{cue: CueBell, samples: SampleRate * 1700 / 1000, maxPeak: 0.9},
	}

	for _, tt := range tests {
		t.Run(string(tt.cue), func(t *testing.T) {
			samples := Render(tt.cue.Tones())
			if len(samples) != tt.samples {
				t.Fatalf("len = %d, want %d", len(samples), tt.samples)
			}
			got := peak(samples)
			if got == 0 || got > tt.maxPeak+1e-9 {
				t.Fatalf("peak = %v, want (0, %v]", got, tt.maxPeak)
			}
		})
	}
}

func TestRenderDecays(t *testing.T) {
	samples := Render(TickTones())
	quarter := len(samples) / 4
	head := peak(samples[:quarter])
	tail := peak(samples[len(samples)-quarter:])
	if tail >= head/4 {
		t.Fatalf("tick does not decay: head %v tail %v", head, tail)
	}
}

func TestRenderSquareWaveIsTwoLevel(t *testing.T) {
	samples := Render([]Tone{{Frequency: 300, Wave: Square, Gain: 0.2, Length: 20 * time.Millisecond}})
	if samples[0] != 0.2 {
		t.Fatalf("first square sample = %v, want 0.2", samples[0])
	}
	for i, sample := range samples {
		if sample == 0 {
			t.Fatalf("square wave crossed zero at %d", i)
		}
	}
}

func TestRenderBellStaggersNotes(t *testing.T) {
	samples := Render(BellTones())
	firstEntry := SampleRate / 10
	// Only C5 sounds before E5 enters, so the early peak stays under one note's gain.
	if got := peak(samples[:firstEntry]); got > 0.3+1e-9 {
		t.Fatalf("peak before second note = %v", got)
	}
	if peak(samples[len(samples)-SampleRate/10:]) == 0 {
		t.Fatalf("last note should still ring at the end")
	}
}

func TestRenderEmpty(t *testing.T) {
	if samples := Render(nil); len(samples) != 0 {
		t.Fatalf("empty recipe rendered %d samples", len(samples))
	}
	if tones := Cue("unknown").Tones(); tones != nil {
		t.Fatalf("unknown cue has tones")
	}
}

func TestEncodePCM16(t *testing.T) {
	pcm := EncodePCM16([]float64{0, 1, -1, 2, 0.5})
	want := []int16{0, 32767, -32767, 32767, 16384}
	if len(pcm) != len(want)*2 {
		t.Fatalf("len = %d, want %d", len(pcm), len(want)*2)
	}
	for i, expected := range want {
		got := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		if got != expected {
			t.Errorf("sample %d = %d, want %d", i, got, expected)
		}
	}
}

type fakeDevice struct {
	mu      sync.Mutex
	played  [][]byte
	active  int32
	maxSeen int32
	hold    chan struct{}
	err     error
	panics  bool
}

func (device *fakeDevice) Play(pcm []byte) error {
	if device.panics {
		panic("device exploded")
	}
	current := atomic.AddInt32(&device.active, 1)
	defer atomic.AddInt32(&device.active, -1)
	for {
		seen := atomic.LoadInt32(&device.maxSeen)
		if current <= seen || atomic.CompareAndSwapInt32(&device.maxSeen, seen, current) {
			break
		}
	}
	if device.hold != nil {
		<-device.hold
	}
	device.mu.Lock()
	device.played = append(device.played, pcm)
	device.mu.Unlock()
	return device.err
}

func TestSpeakerOpensDeviceOnce(t *testing.T) {
	device := &fakeDevice{}
	var opens int32
	speaker := NewSpeakerWithOpener(func() (Device, error) {
		atomic.AddInt32(&opens, 1)
		return device, nil
	})
	if atomic.LoadInt32(&opens) != 0 {
		t.Fatalf("device opened before first cue")
	}

	speaker.PlayTick()
	speaker.PlayWindClick()
	speaker.PlayBell()
	speaker.Wait()

	if got := atomic.LoadInt32(&opens); got != 1 {
		t.Fatalf("opened %d times, want 1", got)
	}
	device.mu.Lock()
	defer device.mu.Unlock()
	if len(device.played) != 3 {
		t.Fatalf("played %d cues, want 3", len(device.played))
	}
}

func TestSpeakerOverlappingCuesMix(t *testing.T) {
	device := &fakeDevice{hold: make(chan struct{})}
	speaker := NewSpeakerWithOpener(func() (Device, error) { return device, nil })

	speaker.PlayTick()
	speaker.PlayWindClick()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&device.active) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(device.hold)
	speaker.Wait()

	if got := atomic.LoadInt32(&device.maxSeen); got != 2 {
		t.Fatalf("max concurrent cues = %d, want 2", got)
	}
}

func TestSpeakerSwallowsFailures(t *testing.T) {
	tests := []struct {
		name string
		open Opener
	}{
		{name: "no opener", open: nil},
		{name: "open error", open: func() (Device, error) { return nil, ErrNoDevice }},
		{name: "nil device", open: func() (Device, error) { return nil, nil }},
		{name: "play error", open: func() (Device, error) { return &fakeDevice{err: errors.New("underrun")}, nil }},
		{name: "play panic", open: func() (Device, error) { return &fakeDevice{panics: true}, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker := NewSpeakerWithOpener(tt.open)
			speaker.PlayTick()
			speaker.PlayBell()
			speaker.Wait()
		})
	}
}

func TestRecorder(t *testing.T) {
	recorder := &Recorder{}
	recorder.PlayTick()
	recorder.PlayWindClick()
	recorder.PlayBell()

	got := recorder.Played()
	want := []Cue{CueTick, CueWindClick, CueBell}
	if len(got) != len(want) {
		t.Fatalf("played %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("played %v, want %v", got, want)
		}
	}
}

func TestSpeakerStopsAfterFirstFailure(t *testing.T) {
	device := &fakeDevice{err: errors.New("underrun")}
	opens := 0
	speaker := NewSpeakerWithOpener(func() (Device, error) {
		opens++
		return device, nil
	})

	speaker.PlayTick()
	speaker.Wait()
	speaker.PlayBell()
	speaker.PlayWindClick()
	speaker.Wait()

	device.mu.Lock()
	defer device.mu.Unlock()
	if len(device.played) != 1 {
		t.Fatalf("device asked to play %d cues after a failure, want 1", len(device.played))
	}
	if opens != 1 {
		t.Fatalf("opened %d times, want 1", opens)
	}
}

package audio

import "sync"

// Cue names one of the dial sounds.
type Cue string

const (
	CueTick      Cue = "tick"
	CueWindClick Cue = "wind_click"
	CueBell      Cue = "bell"
)

// Tones returns the synthesis recipe of a cue.
func (cue Cue) Tones() []Tone {
	switch cue {
	case CueTick:
		return TickTones()
	case CueWindClick:
		return WindClickTones()
	case CueBell:
		return BellTones()
	default:
		return nil
	}
}

// Nop discards every cue.
type Nop struct{}

func (Nop) PlayTick()      {}
func (Nop) PlayWindClick() {}
func (Nop) PlayBell()      {}

// Recorder remembers the cues it was asked to play.
type Recorder struct {
	mu     sync.Mutex
	played []Cue
}

func (recorder *Recorder) PlayTick()      { recorder.record(CueTick) }
func (recorder *Recorder) PlayWindClick() { recorder.record(CueWindClick) }
func (recorder *Recorder) PlayBell()      { recorder.record(CueBell) }

// Played returns a copy of the recorded cues in call order.
func (recorder *Recorder) Played() []Cue {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]Cue(nil), recorder.played...)
}

func (recorder *Recorder) record(cue Cue) {
	recorder.mu.Lock()
	recorder.played = append(recorder.played, cue)
	recorder.mu.Unlock()
}

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrNoDevice indicates that no audio output could be opened.
var ErrNoDevice = errors.New("audio output unavailable")

// Device plays a mono 16-bit PCM buffer and returns when playback ends.
type Device interface {
	Play(pcm []byte) error
}

// Opener creates the output device on first use.
type Opener func() (Device, error)

// Speaker plays synthesized cues. The device is opened lazily and reused;
// each cue plays on its own goroutine so overlapping cues mix. The first
// failure is logged and every later cue is dropped.
type Speaker struct {
	open Opener

	openOnce sync.Once
	device   Device
	openErr  error

	failOnce sync.Once
	disabled atomic.Bool
	pcm      map[Cue][]byte
	wg       sync.WaitGroup
}

// NewSpeaker creates a Speaker backed by the system audio output.
func NewSpeaker() *Speaker {
	return NewSpeakerWithOpener(OpenSystemDevice)
}

// NewSpeakerWithOpener creates a Speaker with a custom device opener.
func NewSpeakerWithOpener(open Opener) *Speaker {
	pcm := make(map[Cue][]byte, 3)
	for _, cue := range []Cue{CueTick, CueWindClick, CueBell} {
		pcm[cue] = EncodePCM16(Render(cue.Tones()))
	}
	return &Speaker{open: open, pcm: pcm}
}

func (speaker *Speaker) PlayTick()      { speaker.play(CueTick) }
func (speaker *Speaker) PlayWindClick() { speaker.play(CueWindClick) }
func (speaker *Speaker) PlayBell()      { speaker.play(CueBell) }

// Wait blocks until every cue started so far has finished.
func (speaker *Speaker) Wait() {
	speaker.wg.Wait()
}

func (speaker *Speaker) play(cue Cue) {
	if speaker.disabled.Load() {
		return
	}
	speaker.wg.Add(1)
	go func() {
		defer speaker.wg.Done()
		defer func() {
			if recovered := recover(); recovered != nil {
				speaker.fail(fmt.Errorf("play %s: %v", cue, recovered))
			}
		}()

		device, err := speaker.output()
		if err != nil {
			speaker.fail(err)
			return
		}
		if err := device.Play(speaker.pcm[cue]); err != nil {
			speaker.fail(fmt.Errorf("play %s: %w", cue, err))
		}
	}()
}

func (speaker *Speaker) output() (Device, error) {
	speaker.openOnce.Do(func() {
		if speaker.open == nil {
			speaker.openErr = ErrNoDevice
			return
		}
		speaker.device, speaker.openErr = speaker.open()
		if speaker.openErr == nil && speaker.device == nil {
			speaker.openErr = ErrNoDevice
		}
	})
	return speaker.device, speaker.openErr
}

func (speaker *Speaker) fail(err error) {
	speaker.disabled.Store(true)
	speaker.failOnce.Do(func() {
		log.Printf("audio: %v (sounds disabled)", err)
	})
}

type otoDevice struct {
	context *oto.Context
}

// OpenSystemDevice opens the platform audio output through oto.
func OpenSystemDevice() (Device, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	<-ready
	return &otoDevice{context: context}, nil
}

func (device *otoDevice) Play(pcm []byte) error {
	player := device.context.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	// oto has no completion callback; the player must stay referenced until drained.
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Err()
}

package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the PCM rate used for every cue.
const SampleRate = 44100

// Waveform selects the oscillator shape of a tone.
type Waveform int

const (
	Sine Waveform = iota
	Square
)

// silenceLevel is the gain an exponential decay ends at.
const silenceLevel = 0.001

// Tone is a single decaying oscillator burst.
type Tone struct {
	Frequency float64
	Wave      Waveform
	Gain      float64
	Offset    time.Duration
	Length    time.Duration
}

// TickTones is a short high-pitched sine decay.
func TickTones() []Tone {
	return []Tone{{Frequency: 800, Wave: Sine, Gain: 0.15, Length: 50 * time.Millisecond}}
}

// WindClickTones is a shorter square-wave pop.
func WindClickTones() []Tone {
	return []Tone{{Frequency: 300, Wave: Square, Gain: 0.2, Length: 20 * time.Millisecond}}
}

// BellTones is a C major chord whose notes enter 100ms apart and ring for 1.5s.
func BellTones() []Tone {
	frequencies := []float64{523.25, 659.25, 783.99}
	tones := make([]Tone, 0, len(frequencies))
	for i, frequency := range frequencies {
		tones = append(tones, Tone{
			Frequency: frequency,
			Wave:      Sine,
			Gain:      0.3,
			Offset:    time.Duration(i) * 100 * time.Millisecond,
			Length:    1500 * time.Millisecond,
		})
	}
	return tones
}

// Render mixes tones into mono samples in [-1, 1].
func Render(tones []Tone) []float64 {
	var total time.Duration
	for _, tone := range tones {
		if end := tone.Offset + tone.Length; end > total {
			total = end
		}
	}
	samples := make([]float64, sampleCount(total))

	for _, tone := range tones {
		start := sampleCount(tone.Offset)
		length := sampleCount(tone.Length)
		if length == 0 || tone.Gain <= 0 {
			continue
		}
		for i := 0; i < length && start+i < len(samples); i++ {
			progress := float64(i) / float64(length)
			envelope := tone.Gain * math.Pow(silenceLevel/tone.Gain, progress)
			phase := 2 * math.Pi * tone.Frequency * float64(i) / SampleRate
			samples[start+i] += envelope * oscillate(tone.Wave, phase)
		}
	}

	for i, sample := range samples {
		samples[i] = math.Max(-1, math.Min(1, sample))
	}
	return samples
}

// EncodePCM16 converts samples to signed 16-bit little-endian PCM.
func EncodePCM16(samples []float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		sample = math.Max(-1, math.Min(1, sample))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(math.Round(sample*math.MaxInt16))))
	}
	return out
}

func oscillate(wave Waveform, phase float64) float64 {
	value := math.Sin(phase)
	if wave == Square {
		if value >= 0 {
			return 1
		}
		return -1
	}
	return value
}

func sampleCount(duration time.Duration) int {
	if duration <= 0 {
		return 0
	}
	return int(duration * SampleRate / time.Second)
}

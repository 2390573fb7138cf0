// Package tone synthesizes fallback tones: oscillator -> biquad -> gain.
package tone

import (
	"log/slog"
	"math"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-padkit/audio"
	"github.com/cwbudde/algo-padkit/dsp"
)

// Voice is one transient oscillator/filter/gain graph. Each trigger gets its
// own voice; nothing is shared between them.
type Voice struct {
	spec   Spec
	sr     float64
	n, i   int
	phase  float64
	step   float64
	rate   float32 // envelope exponent per second
	filter *dsp.Biquad
}

// NewVoice builds the signal graph for spec at sampleRate.
func NewVoice(spec Spec, sampleRate int) *Voice {
	sr := float64(sampleRate)
	v := &Voice{
		spec: spec,
		sr:   sr,
		n:    int(math.Round(spec.Duration * sr)),
		step: spec.Frequency / sr,
	}
	if spec.Envelope.Start > 0 && spec.Envelope.Floor > 0 && spec.Duration > 0 {
		v.rate = float32(math.Log(spec.Envelope.Floor/spec.Envelope.Start) / spec.Duration)
	}
	v.filter = dsp.NewFilter(spec.Filter, float32(spec.Cutoff()), float32(sr), dsp.DefaultQ)
	return v
}

// Spec returns the parameters the voice was built from.
func (v *Voice) Spec() Spec { return v.spec }

// Frames returns the total voice length in samples.
func (v *Voice) Frames() int { return v.n }

// Gain returns the envelope value at t seconds after the start.
func (v *Voice) Gain(t float64) float64 {
	return v.spec.Envelope.Start * float64(approx.FastExp(v.rate*float32(t)))
}

func (v *Voice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	x := oscillate(v.spec.Waveform, v.phase)
	v.phase += v.step
	v.phase -= math.Floor(v.phase)
	if v.filter != nil {
		x = float64(v.filter.Process(float32(x)))
	}
	x *= v.Gain(float64(v.i) / v.sr)
	v.i++
	return x, false
}

// oscillate evaluates a unit waveform at phase in [0,1). All shapes start at
// zero and rise, like a browser OscillatorNode.
func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		p := phase + 0.5
		return 2*(p-math.Floor(p)) - 1
	case Triangle:
		p := phase + 0.75
		return 4*math.Abs(p-math.Floor(p)-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Synthesizer renders specs onto a long-lived output. Each call builds a
// fresh voice.
type Synthesizer struct {
	sink       audio.Sink
	sampleRate int
	logger     *slog.Logger
}

func NewSynthesizer(sink audio.Sink, sampleRate int, logger *slog.Logger) *Synthesizer {
	if sink == nil {
		sink = audio.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{sink: sink, sampleRate: sampleRate, logger: logger}
}

// SampleRate returns the rate voices are rendered at.
func (s *Synthesizer) SampleRate() int { return s.sampleRate }

// Synthesize starts a tone for spec. It never fails; invalid specs are
// logged and dropped.
func (s *Synthesizer) Synthesize(spec Spec) {
	if err := spec.Validate(); err != nil {
		s.logger.Warn("tone dropped", "err", err)
		return
	}
	s.logger.Debug("synthesize tone",
		"tone", spec.ID,
		"waveform", spec.Waveform.String(),
		"freq", spec.Frequency,
		"duration", spec.Duration,
		"filter", spec.Filter.String(),
	)
	s.sink.Play(NewVoice(spec, s.sampleRate))
}

// Render synthesizes spec offline and returns the whole voice.
func Render(spec Spec, sampleRate int) []float32 {
	v := NewVoice(spec, sampleRate)
	return audio.Drain(v, v.Frames())
}

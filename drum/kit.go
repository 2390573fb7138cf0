// Package drum implements the drum pad dispatcher and the sample-or-synth
// sound renderer behind it.
package drum

import (
	"github.com/cwbudde/algo-padkit/dsp"
	"github.com/cwbudde/algo-padkit/tone"
)

// DefaultSound is used for identifiers the kit does not know.
const DefaultSound = "kick"

// Envelope is the fallback gain ramp shared by all drum tones.
var Envelope = tone.Envelope{Start: 0.5, Floor: 0.01}

// Sounds lists the kit identifiers in pad order.
var Sounds = []string{"kick", "snare", "hihat-closed", "hihat-open", "tom1", "tom2", "crash", "ride"}

// Kit maps sound identifiers to their fallback tone.
type Kit map[string]tone.Spec

// DefaultKit returns the built-in fallback tones.
func DefaultKit() Kit {
	k := Kit{}
	add := func(id string, w tone.Waveform, freq, dur float64, f dsp.FilterKind) {
		k[id] = tone.Spec{ID: id, Waveform: w, Frequency: freq, Duration: dur, Filter: f, Envelope: Envelope}
	}
	add("kick", tone.Sine, 60, 0.5, dsp.FilterLowpass)
	add("snare", tone.Sawtooth, 200, 0.2, dsp.FilterHighpass)
	add("hihat-closed", tone.Square, 8000, 0.1, dsp.FilterHighpass)
	add("hihat-open", tone.Square, 6000, 0.3, dsp.FilterHighpass)
	add("tom1", tone.Sine, 150, 0.3, dsp.FilterLowpass)
	add("tom2", tone.Sine, 100, 0.3, dsp.FilterLowpass)
	add("crash", tone.Sawtooth, 5000, 1.0, dsp.FilterBandpass)
	add("ride", tone.Triangle, 3000, 0.8, dsp.FilterBandpass)
	return k
}

// Spec returns the tone for id, falling back to the kick.
func (k Kit) Spec(id string) tone.Spec {
	if s, ok := k[id]; ok {
		return s
	}
	if s, ok := k[DefaultSound]; ok {
		return s
	}
	return DefaultKit()[DefaultSound]
}

package tone

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-padkit/dsp"
)

// Waveform is the oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// ParseWaveform parses a waveform name, ignoring case and surrounding space.
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "sawtooth":
		return Sawtooth, nil
	case "triangle":
		return Triangle, nil
	}
	return Sine, fmt.Errorf("unknown waveform %q", s)
}

// Envelope is an exponential gain ramp from Start to Floor over the tone's
// duration. Floor must stay above zero.
type Envelope struct {
	Start float64
	Floor float64
}

// Spec describes a synthesized tone.
type Spec struct {
	ID        string
	Waveform  Waveform
	Frequency float64 // Hz
	Duration  float64 // seconds
	Filter    dsp.FilterKind
	Envelope  Envelope
}

// CutoffRatio places the filter cutoff relative to the oscillator frequency.
const CutoffRatio = 1.5

// Cutoff returns the filter cutoff in Hz.
func (s Spec) Cutoff() float64 {
	return s.Frequency * CutoffRatio
}

// Validate reports parameters the synthesizer cannot render.
func (s Spec) Validate() error {
	switch {
	case s.Frequency <= 0:
		return fmt.Errorf("tone %q: frequency must be > 0", s.ID)
	case s.Duration <= 0:
		return fmt.Errorf("tone %q: duration must be > 0", s.ID)
	case s.Envelope.Floor <= 0:
		return fmt.Errorf("tone %q: envelope floor must be > 0", s.ID)
	case s.Envelope.Start < s.Envelope.Floor:
		return fmt.Errorf("tone %q: envelope start must be >= floor", s.ID)
	}
	return nil
}

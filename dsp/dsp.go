package dsp

import (
	"fmt"
	"math"
	"strings"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// FilterKind selects the biquad response used by a tone.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterLowpass
	FilterHighpass
	FilterBandpass
)

// DefaultQ matches the default quality factor of a browser BiquadFilterNode.
const DefaultQ = 1.0

func (k FilterKind) String() string {
	switch k {
	case FilterNone:
		return "none"
	case FilterLowpass:
		return "lowpass"
	case FilterHighpass:
		return "highpass"
	case FilterBandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// ParseFilterKind parses the lowercase filter names used in presets.
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FilterNone, nil
	case "lowpass":
		return FilterLowpass, nil
	case "highpass":
		return FilterHighpass, nil
	case "bandpass":
		return FilterBandpass, nil
	}
	return FilterNone, fmt.Errorf("unknown filter kind %q", s)
}

// Biquad implements a second-order IIR filter (no heap allocations in Process)
type Biquad struct {
	// Coefficients
	b0, b1, b2 float32
	a1, a2     float32

	// State (previous samples)
	x1, x2 float32 // input history
	y1, y2 float32 // output history
}

// NewBiquad creates a new biquad filter with the given coefficients
func NewBiquad(b0, b1, b2, a1, a2 float32) *Biquad {
	return &Biquad{
		b0: b0,
		b1: b1,
		b2: b2,
		a1: a1,
		a2: a2,
	}
}

// Process processes one sample through the biquad filter
func (b *Biquad) Process(input float32) float32 {
	// Direct Form I
	output := b.b0*input + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2
	output = float32(dspcore.FlushDenormals(float64(output)))

	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = output

	return output
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// NewFilter builds a biquad of the given kind. FilterNone returns nil.
// The cutoff is clamped below Nyquist so bright sounds stay stable at low
// sample rates.
func NewFilter(kind FilterKind, cutoff, sampleRate, q float32) *Biquad {
	if maxCutoff := 0.49 * sampleRate; cutoff > maxCutoff {
		cutoff = maxCutoff
	}
	if cutoff < 1 {
		cutoff = 1
	}
	switch kind {
	case FilterLowpass:
		return NewLowpass(cutoff, sampleRate, q)
	case FilterHighpass:
		return NewHighpass(cutoff, sampleRate, q)
	case FilterBandpass:
		return NewBandpass(cutoff, sampleRate, q)
	default:
		return nil
	}
}

// NewLowpass creates a simple lowpass biquad filter
func NewLowpass(cutoff, sampleRate, q float32) *Biquad {
	cosw0, alpha := prewarp(cutoff, sampleRate, q)
	return normalize(
		(1.0-cosw0)/2.0,
		1.0-cosw0,
		(1.0-cosw0)/2.0,
		1.0+alpha,
		-2.0*cosw0,
		1.0-alpha,
	)
}

// NewHighpass creates a highpass biquad filter
func NewHighpass(cutoff, sampleRate, q float32) *Biquad {
	cosw0, alpha := prewarp(cutoff, sampleRate, q)
	return normalize(
		(1.0+cosw0)/2.0,
		-(1.0 + cosw0),
		(1.0+cosw0)/2.0,
		1.0+alpha,
		-2.0*cosw0,
		1.0-alpha,
	)
}

// NewBandpass creates a constant 0 dB peak gain bandpass centered on cutoff.
func NewBandpass(cutoff, sampleRate, q float32) *Biquad {
	cosw0, alpha := prewarp(cutoff, sampleRate, q)
	return normalize(
		alpha,
		0,
		-alpha,
		1.0+alpha,
		-2.0*cosw0,
		1.0-alpha,
	)
}

func prewarp(cutoff, sampleRate, q float32) (cosw0, alpha float64) {
	if q <= 0 {
		q = DefaultQ
	}
	w0 := 2.0 * math.Pi * float64(cutoff) / float64(sampleRate)
	return math.Cos(w0), math.Sin(w0) / (2.0 * float64(q))
}

func normalize(b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return NewBiquad(
		float32(b0/a0),
		float32(b1/a0),
		float32(b2/a0),
		float32(a1/a0),
		float32(a2/a0),
	)
}

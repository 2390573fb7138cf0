package drum

import (
	"testing"

	"github.com/cwbudde/algo-padkit/dsp"
	"github.com/cwbudde/algo-padkit/tone"
)

func TestDefaultKitSpecs(t *testing.T) {
	tests := []struct {
		id     string
		freq   float64
		w      tone.Waveform
		dur    float64
		filter dsp.FilterKind
	}{
		{"kick", 60, tone.Sine, 0.5, dsp.FilterLowpass},
		{"snare", 200, tone.Sawtooth, 0.2, dsp.FilterHighpass},
		{"hihat-closed", 8000, tone.Square, 0.1, dsp.FilterHighpass},
		{"hihat-open", 6000, tone.Square, 0.3, dsp.FilterHighpass},
		{"tom1", 150, tone.Sine, 0.3, dsp.FilterLowpass},
		{"tom2", 100, tone.Sine, 0.3, dsp.FilterLowpass},
		{"crash", 5000, tone.Sawtooth, 1.0, dsp.FilterBandpass},
		{"ride", 3000, tone.Triangle, 0.8, dsp.FilterBandpass},
	}
	kit := DefaultKit()
	if len(kit) != len(tests) || len(Sounds) != len(tests) {
		t.Fatalf("kit has %d sounds, want %d", len(kit), len(tests))
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := kit.Spec(tt.id)
			if s.ID != tt.id || s.Frequency != tt.freq || s.Waveform != tt.w || s.Duration != tt.dur || s.Filter != tt.filter {
				t.Fatalf("spec mismatch: %+v", s)
			}
			if s.Envelope != (tone.Envelope{Start: 0.5, Floor: 0.01}) {
				t.Fatalf("envelope mismatch: %+v", s.Envelope)
			}
			if err := s.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
		})
	}
}

func TestUnknownSoundFallsBackToKick(t *testing.T) {
	s := DefaultKit().Spec("splash")
	if s.ID != "kick" || s.Frequency != 60 || s.Waveform != tone.Sine || s.Duration != 0.5 || s.Filter != dsp.FilterLowpass {
		t.Fatalf("expected kick spec, got %+v", s)
	}
	if got := (Kit{}).Spec("splash"); got.ID != "kick" {
		t.Fatalf("empty kit should still fall back to the built-in kick, got %+v", got)
	}
}

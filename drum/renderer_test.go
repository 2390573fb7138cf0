package drum

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-padkit/audio"
	"github.com/cwbudde/algo-padkit/dsp"
	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
)

func TestRenderPlaysSampleAtFixedVolume(t *testing.T) {
	samples := &fakeSamples{}
	synth := &fakeSynth{}
	r := NewRenderer(samples, synth, RendererConfig{}, nil)

	r.Render("snare")

	want := filepath.Join("drumkit", "snare.mp3")
	if len(samples.paths) != 1 || samples.paths[0] != want {
		t.Fatalf("sample paths %v, want [%s]", samples.paths, want)
	}
	if samples.volume != 0.8 {
		t.Fatalf("volume %f, want 0.8", samples.volume)
	}
	if len(synth.specs) != 0 {
		t.Fatalf("synthesizer must not run when the sample plays")
	}
}

func TestRenderFallsBackToSynthesis(t *testing.T) {
	failures := []error{
		fmt.Errorf("drumkit/snare.mp3: %w", audio.ErrSampleNotFound),
		fmt.Errorf("decode: %w", errors.New("bad frame header")),
		audio.ErrPlaybackRejected,
	}
	for _, failure := range failures {
		synth := &fakeSynth{}
		r := NewRenderer(&fakeSamples{err: failure}, synth, RendererConfig{}, nil)
		r.Render("snare")

		if len(synth.specs) != 1 {
			t.Fatalf("%v: expected one synthesized tone, got %d", failure, len(synth.specs))
		}
		got := synth.specs[0]
		want := tone.Spec{ID: "snare", Waveform: tone.Sawtooth, Frequency: 200, Duration: 0.2, Filter: dsp.FilterHighpass, Envelope: Envelope}
		if got != want {
			t.Fatalf("%v: synthesized %+v, want %+v", failure, got, want)
		}
	}
}

func TestRenderEveryKitSoundFallsBackToItsOwnSpec(t *testing.T) {
	kit := DefaultKit()
	for _, id := range Sounds {
		synth := &fakeSynth{}
		r := NewRenderer(&fakeSamples{err: audio.ErrSampleNotFound}, synth, RendererConfig{}, nil)
		r.Render(id)
		if len(synth.specs) != 1 || synth.specs[0] != kit[id] {
			t.Fatalf("%s: synthesized %+v, want %+v", id, synth.specs, kit[id])
		}
	}
}

func TestRenderUnknownSoundSynthesizesKick(t *testing.T) {
	synth := &fakeSynth{}
	r := NewRenderer(&fakeSamples{err: audio.ErrSampleNotFound}, synth, RendererConfig{}, nil)
	r.Render("splash")
	if len(synth.specs) != 1 || synth.specs[0] != DefaultKit()["kick"] {
		t.Fatalf("expected kick fallback, got %+v", synth.specs)
	}
}

func TestRenderWithoutSamplePlayerSynthesizes(t *testing.T) {
	synth := &fakeSynth{}
	r := NewRenderer(nil, synth, RendererConfig{}, nil)
	r.Play(trigger.NewRequest("tom1"))
	if len(synth.specs) != 1 || synth.specs[0].ID != "tom1" {
		t.Fatalf("expected tom1 fallback, got %+v", synth.specs)
	}
}

func TestRendererConfigOverrides(t *testing.T) {
	samples := &fakeSamples{}
	r := NewRenderer(samples, &fakeSynth{}, RendererConfig{SampleDir: "Sounds/drumkit", SampleExt: ".wav", Volume: 0.5}, nil)
	r.Render("ride")
	if want := filepath.Join("Sounds", "drumkit", "ride.wav"); samples.paths[0] != want {
		t.Fatalf("path %q, want %q", samples.paths[0], want)
	}
	if samples.volume != 0.5 {
		t.Fatalf("volume %f, want 0.5", samples.volume)
	}
}

func TestRendererWithRealSamplePlayerFallsBackOnMissingFile(t *testing.T) {
	sink := &voiceSink{}
	synth := tone.NewSynthesizer(sink, 44100, nil)
	samples := audio.NewSamplePlayer(sink, 44100)
	r := NewRenderer(samples, synth, RendererConfig{SampleDir: t.TempDir()}, nil)

	r.Render("hihat-closed")

	if len(sink.voices) != 1 {
		t.Fatalf("expected one voice on the output, got %d", len(sink.voices))
	}
	v, ok := sink.voices[0].(*tone.Voice)
	if !ok {
		t.Fatalf("expected a synthesized voice, got %T", sink.voices[0])
	}
	if v.Spec() != DefaultKit()["hihat-closed"] {
		t.Fatalf("voice spec %+v", v.Spec())
	}
}

type voiceSink struct{ voices []audio.Voice }

func (s *voiceSink) Play(v audio.Voice) { s.voices = append(s.voices, v) }

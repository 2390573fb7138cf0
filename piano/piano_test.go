package piano

import (
	"reflect"
	"testing"
	"time"

	"github.com/cwbudde/algo-padkit/dsp"
	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
	"github.com/cwbudde/algo-padkit/trigger/triggertest"
)

type fakeSynth struct{ specs []tone.Spec }

func (f *fakeSynth) Synthesize(spec tone.Spec) { f.specs = append(f.specs, spec) }

type keySurface struct {
	*triggertest.Surface
	keys []Key
}

func (s keySurface) Keys() []Key { return s.keys }

func newTestDispatcher(keys []Key) (*Dispatcher, *triggertest.Scheduler, *triggertest.Surface, *fakeSynth) {
	clock := &triggertest.Scheduler{}
	surface := &triggertest.Surface{Clock: clock}
	synth := &fakeSynth{}
	d := NewDispatcher(keySurface{Surface: surface, keys: keys}, synth, clock, nil, nil)
	return d, clock, surface, synth
}

func TestFrequencyTable(t *testing.T) {
	want := map[string]float64{
		"C4": 261.63, "C#4": 277.18, "D4": 293.66, "D#4": 311.13,
		"E4": 329.63, "F4": 349.23, "F#4": 369.99, "G4": 392.00,
		"G#4": 415.30, "A4": 440.00, "A#4": 466.16, "B4": 493.88,
		"C5": 523.25, "C#5": 554.37, "D5": 587.33, "D#5": 622.25,
		"E5": 659.25, "F5": 698.46, "F#5": 739.99, "G5": 783.99,
		"G#5": 830.61, "A5": 880.00, "A#5": 932.33, "B5": 987.77,
		"C6": 1046.50,
	}
	if len(Notes) != len(want) {
		t.Fatalf("%d notes, want %d", len(Notes), len(want))
	}
	for _, n := range Notes {
		if got := Frequency(n); got != want[n] {
			t.Errorf("Frequency(%s) = %v, want %v", n, got, want[n])
		}
	}
	for _, n := range []string{"", "H4", "C7", "c4", "Db4"} {
		if got := Frequency(n); got != 440.0 {
			t.Errorf("Frequency(%q) = %v, want 440", n, got)
		}
	}
}

func TestDefaultKeyMapBindings(t *testing.T) {
	m := DefaultKeyMap()
	if len(m) != 25 {
		t.Fatalf("%d bindings, want 25", len(m))
	}
	var naturals, accidentals int
	for key, note := range m {
		if !HasNote(note) {
			t.Fatalf("key %q bound to unknown note %q", key, note)
		}
		if len(note) == 3 {
			accidentals++
		} else {
			naturals++
		}
	}
	if naturals != 15 || accidentals != 10 {
		t.Fatalf("naturals=%d accidentals=%d, want 15 and 10", naturals, accidentals)
	}
}

func TestKeyQPlaysC4(t *testing.T) {
	d, _, _, synth := newTestDispatcher(DefaultKeys())
	d.KeyDown("Q")
	want := tone.Spec{ID: "C4", Waveform: tone.Sine, Frequency: 261.63, Duration: 1.0, Filter: dsp.FilterNone, Envelope: tone.Envelope{Start: 0.3, Floor: 0.001}}
	if len(synth.specs) != 1 || synth.specs[0] != want {
		t.Fatalf("synthesized %+v, want %+v", synth.specs, want)
	}
}

func TestClickClearsAfter150msRegardlessOfRelease(t *testing.T) {
	d, clock, surface, synth := newTestDispatcher(DefaultKeys())
	el := trigger.Element("key-C4")

	d.Click(el)
	if len(synth.specs) != 1 || synth.specs[0].ID != "C4" {
		t.Fatalf("click should play C4, got %+v", synth.specs)
	}
	clock.Advance(149 * time.Millisecond)
	if !surface.IsActive(el) {
		t.Fatalf("key cleared before 150ms")
	}
	clock.Advance(time.Millisecond)
	if surface.IsActive(el) {
		t.Fatalf("key still active at 150ms")
	}
}

func TestKeyReleaseClearsImmediately(t *testing.T) {
	d, clock, surface, _ := newTestDispatcher(DefaultKeys())
	d.KeyDown("1")
	clock.Advance(10 * time.Millisecond)
	d.KeyUp("1")
	want := []triggertest.Event{
		{At: 0, El: "key-C#4", Active: true},
		{At: 10 * time.Millisecond, El: "key-C#4", Active: false},
	}
	if !reflect.DeepEqual(surface.Events, want) {
		t.Fatalf("events %+v, want %+v", surface.Events, want)
	}
}

func TestUnmappedKeyAndNonKeyElementAreIgnored(t *testing.T) {
	d, clock, surface, synth := newTestDispatcher(DefaultKeys())
	d.KeyDown("z")
	d.KeyUp("z")
	d.Click("nav-menu")
	clock.Advance(time.Second)
	if len(synth.specs) != 0 || len(surface.Events) != 0 {
		t.Fatalf("expected nothing, got specs=%+v events=%+v", synth.specs, surface.Events)
	}
}

func TestClickOnKeyWithUnknownNotePlaysA4(t *testing.T) {
	d, _, _, synth := newTestDispatcher([]Key{{Element: "odd", Note: "H9"}})
	d.Click("odd")
	if len(synth.specs) != 1 || synth.specs[0].Frequency != 440.0 {
		t.Fatalf("expected 440 Hz fallback, got %+v", synth.specs)
	}
}

func TestKeyWithoutElementStillPlays(t *testing.T) {
	d, clock, surface, synth := newTestDispatcher(nil)
	d.KeyDown("g")
	clock.Advance(time.Second)
	if len(synth.specs) != 1 || synth.specs[0].Frequency != 1046.50 {
		t.Fatalf("expected C6 tone, got %+v", synth.specs)
	}
	if len(surface.Events) != 0 {
		t.Fatalf("no element to highlight, got %+v", surface.Events)
	}
}

func TestCustomKeyMap(t *testing.T) {
	clock := &triggertest.Scheduler{}
	synth := &fakeSynth{}
	d := NewDispatcher(keySurface{Surface: &triggertest.Surface{Clock: clock}}, synth, clock, map[string]string{"Z": "A4"}, nil)
	d.KeyDown("z")
	d.KeyDown("q")
	if len(synth.specs) != 1 || synth.specs[0].ID != "A4" {
		t.Fatalf("custom map should replace defaults, got %+v", synth.specs)
	}
}

func TestPressAndReleaseNote(t *testing.T) {
	d, _, surface, synth := newTestDispatcher(DefaultKeys())
	d.PressNote("E5")
	if !surface.IsActive("key-E5") || synth.specs[0].Frequency != 659.25 {
		t.Fatalf("PressNote did not play and highlight E5")
	}
	d.ReleaseNote("E5")
	if surface.IsActive("key-E5") {
		t.Fatalf("ReleaseNote must clear immediately")
	}
}

func TestClickOnKeyWithoutNotePlaysDefaultPitch(t *testing.T) {
	d, clock, surface, synth := newTestDispatcher([]Key{{Element: "key-0"}})

	d.Click("key-0")
	if len(synth.specs) != 1 || synth.specs[0].Frequency != DefaultFrequency {
		t.Fatalf("expected one %v Hz tone, got %+v", DefaultFrequency, synth.specs)
	}
	if !surface.IsActive("key-0") {
		t.Fatalf("key without a note should still animate")
	}
	clock.Advance(ReleaseDelay)
	if surface.IsActive("key-0") {
		t.Fatalf("key still active after %v", ReleaseDelay)
	}
}

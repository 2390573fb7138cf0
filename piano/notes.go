// Package piano implements the virtual piano dispatcher: key and click
// triggers resolve to notes, notes to equal-tempered frequencies, and every
// note is played as a decaying sine tone.
package piano

import "github.com/cwbudde/algo-padkit/tone"

// DefaultFrequency is returned for notes outside the table (A4).
const DefaultFrequency = 440.0

// NoteDuration is the length of every piano tone in seconds.
const NoteDuration = 1.0

// Envelope is the gain ramp of every piano tone.
var Envelope = tone.Envelope{Start: 0.3, Floor: 0.001}

// Notes lists the playable range C4..C6 in ascending order.
var Notes = []string{
	"C4", "C#4", "D4", "D#4", "E4", "F4", "F#4", "G4", "G#4", "A4", "A#4", "B4",
	"C5", "C#5", "D5", "D#5", "E5", "F5", "F#5", "G5", "G#5", "A5", "A#5", "B5",
	"C6",
}

var frequencies = map[string]float64{
	"C4": 261.63, "C#4": 277.18, "D4": 293.66, "D#4": 311.13,
	"E4": 329.63, "F4": 349.23, "F#4": 369.99, "G4": 392.00,
	"G#4": 415.30, "A4": 440.00, "A#4": 466.16, "B4": 493.88,
	"C5": 523.25, "C#5": 554.37, "D5": 587.33, "D#5": 622.25,
	"E5": 659.25, "F5": 698.46, "F#5": 739.99, "G5": 783.99,
	"G#5": 830.61, "A5": 880.00, "A#5": 932.33, "B5": 987.77,
	"C6": 1046.50,
}

// Frequency returns the equal-tempered pitch of note in Hz, or 440 for
// anything outside the table.
func Frequency(note string) float64 {
	if f, ok := frequencies[note]; ok {
		return f
	}
	return DefaultFrequency
}

// HasNote reports whether note is in the playable range.
func HasNote(note string) bool {
	_, ok := frequencies[note]
	return ok
}

// DefaultKeyMap binds the top letter rows to naturals and the number row to
// accidentals.
func DefaultKeyMap() map[string]string {
	return map[string]string{
		"q": "C4", "w": "D4", "e": "E4", "r": "F4", "t": "G4", "y": "A4", "u": "B4",
		"i": "C5", "o": "D5", "p": "E5", "a": "F5", "s": "G5", "d": "A5", "f": "B5",
		"g": "C6",

		"1": "C#4", "2": "D#4", "3": "F#4", "4": "G#4", "5": "A#4",
		"6": "C#5", "7": "D#5", "8": "F#5", "9": "G#5", "0": "A#5",
	}
}

// ToneSpec returns the tone played for note, at freq Hz.
func ToneSpec(note string, freq float64) tone.Spec {
	return tone.Spec{
		ID:        note,
		Waveform:  tone.Sine,
		Frequency: freq,
		Duration:  NoteDuration,
		Envelope:  Envelope,
	}
}

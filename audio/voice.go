// Package audio is the output side of padkit: voices, the mixer that sums
// them, the sound device and sample playback.
package audio

// Voice generates mono samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// Sink accepts voices for playback. Play must not block on the voice.
type Sink interface {
	Play(v Voice)
}

// Discard is a Sink that drops every voice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Play(Voice) {}

// Gain scales the output of v.
func Gain(v Voice, gain float64) Voice {
	return &scaledVoice{v: v, gain: gain}
}

type scaledVoice struct {
	v    Voice
	gain float64
}

func (s *scaledVoice) Sample() (float64, bool) {
	f, done := s.v.Sample()
	return f * s.gain, done
}

// BufferVoice plays a decoded buffer once from the beginning.
type BufferVoice struct {
	buf []float32
	pos int
}

// NewBufferVoice returns a voice positioned at the start of buf. The buffer
// is shared, not copied.
func NewBufferVoice(buf []float32) *BufferVoice {
	return &BufferVoice{buf: buf}
}

func (b *BufferVoice) Sample() (float64, bool) {
	if b.pos >= len(b.buf) {
		return 0, true
	}
	v := float64(b.buf[b.pos])
	b.pos++
	return v, false
}

// Drain renders v until it finishes or maxFrames samples were produced.
func Drain(v Voice, maxFrames int) []float32 {
	out := make([]float32, 0, maxFrames)
	for len(out) < maxFrames {
		s, done := v.Sample()
		if done {
			break
		}
		out = append(out, float32(s))
	}
	return out
}

package audio

import "sync"

// Mixer sums active voices into a mono stream, clipped to [-1, 1]. Voices
// are dropped once they report done.
type Mixer struct {
	mu     sync.Mutex
	voices []Voice
}

func NewMixer() *Mixer {
	return &Mixer{}
}

// Play starts v with the next block read from the mixer.
func (m *Mixer) Play(v Voice) {
	m.mu.Lock()
	m.voices = append(m.voices, v)
	m.mu.Unlock()
}

// Active reports the number of voices still playing.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for the output device: 16-bit little-endian
// mono PCM.
func (m *Mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < samples; i++ {
		v := int16(m.next() * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	return samples * 2, nil
}

// ReadFloat fills dst with mixed samples for hosts that pull float blocks.
func (m *Mixer) ReadFloat(dst []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range dst {
		dst[i] = float32(m.next())
	}
}

func (m *Mixer) next() float64 {
	var sum float64
	for idx := 0; idx < len(m.voices); idx++ {
		val, done := m.voices[idx].Sample()
		if done {
			m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
			idx--
			continue
		}
		sum += val
	}
	if sum > 1 {
		return 1
	} else if sum < -1 {
		return -1
	}
	return sum
}

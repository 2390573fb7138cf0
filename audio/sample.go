package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/cwbudde/algo-padkit/internal/pcm"
)

var (
	// ErrSampleNotFound means the sample resource does not exist.
	ErrSampleNotFound = errors.New("sample not found")
	// ErrPlaybackRejected means the output refused to start playback.
	ErrPlaybackRejected = errors.New("playback rejected")
	// ErrUnsupportedFormat means the resource is not a decodable format.
	ErrUnsupportedFormat = pcm.ErrUnsupportedFormat
)

// SamplePlayer decodes sample files, converts them to the output rate and
// plays them on a sink. Decoded samples are cached by path; failures are not,
// so a sample that appears later is picked up on the next trigger.
type SamplePlayer struct {
	sink       Sink
	sampleRate int

	mu    sync.Mutex
	cache map[string][]float32
}

func NewSamplePlayer(sink Sink, sampleRate int) *SamplePlayer {
	return &SamplePlayer{
		sink:       sink,
		sampleRate: sampleRate,
		cache:      make(map[string][]float32),
	}
}

// Load returns the decoded sample at path, resampled to the output rate.
func (p *SamplePlayer) Load(path string) ([]float32, error) {
	p.mu.Lock()
	buf, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return buf, nil
	}

	data, rate, err := pcm.ReadMono(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrSampleNotFound)
		}
		return nil, fmt.Errorf("load sample %s: %w", path, err)
	}
	return p.store(path, data, rate)
}

// Store decodes an in-memory sample and caches it under path, for hosts
// without a file system.
func (p *SamplePlayer) Store(path string, encoded []byte) error {
	data, rate, err := pcm.DecodeMono(path, encoded)
	if err != nil {
		return fmt.Errorf("load sample %s: %w", path, err)
	}
	_, err = p.store(path, data, rate)
	return err
}

func (p *SamplePlayer) store(path string, data []float64, rate int) ([]float32, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("load sample %s: empty audio", path)
	}
	data, err := pcm.Resample(data, rate, p.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("resample %s: %w", path, err)
	}
	buf := make([]float32, len(data))
	for i, v := range data {
		buf[i] = float32(v)
	}

	p.mu.Lock()
	p.cache[path] = buf
	p.mu.Unlock()
	return buf, nil
}

// PlaySample plays the sample at path from its start at the given volume.
func (p *SamplePlayer) PlaySample(path string, volume float64) error {
	if p.sink == nil {
		return ErrPlaybackRejected
	}
	if r, ok := p.sink.(interface{ Err() error }); ok {
		if err := r.Err(); err != nil {
			return err
		}
	}
	buf, err := p.Load(path)
	if err != nil {
		return err
	}
	p.sink.Play(Gain(NewBufferVoice(buf), volume))
	return nil
}

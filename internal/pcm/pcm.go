// Package pcm reads and writes mono sample buffers in the formats used for
// drum kit samples and offline renders.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
	"github.com/gopxl/beep/v2/mp3"
)

// ErrUnsupportedFormat is returned for files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// ReadMono decodes a WAV or MP3 file (chosen by extension) and downmixes it
// to mono.
func ReadMono(path string) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return ReadWAVMono(path)
	case ".mp3":
		return ReadMP3Mono(path)
	default:
		return nil, 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// DecodeMono is ReadMono for audio already in memory. name only selects the
// format and labels errors.
func DecodeMono(name string, data []byte) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return decodeWAV(bytes.NewReader(data), name)
	case ".mp3":
		return decodeMP3(io.NopCloser(bytes.NewReader(data)), name)
	default:
		return nil, 0, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}

func ReadWAVMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return decodeWAV(f, path)
}

func decodeWAV(r io.ReadSeeker, name string) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", name)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", name)
	}
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, buf.Format.SampleRate, nil
}

func ReadMP3Mono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	return decodeMP3(f, path)
}

// decodeMP3 takes ownership of rc and closes it.
func decodeMP3(rc io.ReadCloser, name string) ([]float64, int, error) {
	s, format, err := mp3.Decode(rc)
	if err != nil {
		rc.Close()
		return nil, 0, fmt.Errorf("decode mp3 %s: %w", name, err)
	}
	defer s.Close()

	var out []float64
	block := make([][2]float64, 1024)
	for {
		n, ok := s.Stream(block)
		for i := 0; i < n; i++ {
			out = append(out, 0.5*(block[i][0]+block[i][1]))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, 0, fmt.Errorf("decode mp3 %s: %w", name, err)
	}
	return out, int(format.SampleRate), nil
}

// Resample converts in from fromRate to toRate. Equal rates return in as is.
func Resample(in []float64, fromRate int, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("invalid sample rates %d -> %d", fromRate, toRate)
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

func WriteMonoWAV(path string, data []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

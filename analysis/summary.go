// Package analysis measures rendered tones: level, dominant pitch and decay.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

const maxFFTSize = 16384

// Summary describes one rendered mono signal.
type Summary struct {
	SampleRate  int     `json:"sample_rate"`
	Frames      int     `json:"frames"`
	DurationSec float64 `json:"duration_sec"`
	Peak        float64 `json:"peak"`
	RMS         float64 `json:"rms"`
	PeakHz      float64 `json:"peak_hz"`
	DecayDBPerS float64 `json:"decay_db_per_s"`
}

func (s Summary) String() string {
	return fmt.Sprintf("frames=%d duration=%.3fs peak=%.4f rms=%.4f pitch=%.2fHz decay=%.1fdB/s",
		s.Frames, s.DurationSec, s.Peak, s.RMS, s.PeakHz, s.DecayDBPerS)
}

// Summarize analyses x. Signals shorter than 256 frames are rejected.
func Summarize(x []float64, sampleRate int) (Summary, error) {
	s := Summary{SampleRate: sampleRate, Frames: len(x)}
	if sampleRate <= 0 {
		return s, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if len(x) < 256 {
		return s, fmt.Errorf("signal too short: %d frames", len(x))
	}
	s.DurationSec = float64(len(x)) / float64(sampleRate)
	for _, v := range x {
		if a := math.Abs(v); a > s.Peak {
			s.Peak = a
		}
	}
	s.RMS = rms1(x)

	hz, err := dominantFrequency(x, sampleRate)
	if err != nil {
		return s, err
	}
	s.PeakHz = hz

	frame := sampleRate / 50
	env := rmsEnvelope(x, frame, frame/2)
	s.DecayDBPerS = decaySlopeDBPerS(env, float64(frame/2)/float64(sampleRate))
	return s, nil
}

// dominantFrequency returns the strongest spectral peak of the first
// power-of-two window, refined by parabolic interpolation.
func dominantFrequency(x []float64, sampleRate int) (float64, error) {
	n := maxFFTSize
	for n > len(x) {
		n /= 2
	}
	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return 0, fmt.Errorf("fft plan: %w", err)
	}
	buf := make([]float64, n)
	for i := range buf {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		buf[i] = x[i] * w
	}
	spec := make([]complex128, n/2+1)
	plan.Forward(spec, buf)

	mags := make([]float64, len(spec))
	best := 1
	for k := 1; k < len(spec); k++ {
		mags[k] = cmplx.Abs(spec[k])
		if mags[k] > mags[best] {
			best = k
		}
	}
	offset := 0.0
	if best > 1 && best < len(mags)-1 {
		a, b, c := mags[best-1], mags[best], mags[best+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}
	return (float64(best) + offset) * float64(sampleRate) / float64(n), nil
}

func rms1(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func rmsEnvelope(x []float64, frame int, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * hop
		out[i] = rms1(x[start : start+frame])
	}
	return out
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

// decaySlopeDBPerS fits a line to the envelope in dB from its peak down to
// 60 dB below it. NaN means the envelope is too short to fit.
func decaySlopeDBPerS(env []float64, hopSec float64) float64 {
	if len(env) < 8 || hopSec <= 0 {
		return math.NaN()
	}
	peak := -math.MaxFloat64
	peakIdx := 0
	for i, v := range env {
		db := linToDB(v)
		if db > peak {
			peak = db
			peakIdx = i
		}
	}
	start := peakIdx + 1
	if start >= len(env)-4 {
		return math.NaN()
	}

	threshold := peak - 60.0
	end := len(env)
	for i := start; i < len(env); i++ {
		if linToDB(env[i]) < threshold {
			end = i
			break
		}
	}
	if end-start < 6 {
		return math.NaN()
	}

	var sx, sy, sxx, sxy float64
	n := float64(end - start)
	for i := start; i < end; i++ {
		x := float64(i-start) * hopSec
		y := linToDB(env[i])
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if math.Abs(den) < 1e-12 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}

package drum

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
)

// Sample defaults: drumkit/<id>.mp3 played at 80% volume.
const (
	DefaultSampleDir = "drumkit"
	DefaultSampleExt = "mp3"
	DefaultVolume    = 0.8
)

// SamplePlayer plays a sample file. audio.SamplePlayer implements it.
type SamplePlayer interface {
	PlaySample(path string, volume float64) error
}

// ToneSynthesizer renders a fallback tone. tone.Synthesizer implements it.
type ToneSynthesizer interface {
	Synthesize(spec tone.Spec)
}

// RendererConfig locates samples and sets their level.
type RendererConfig struct {
	SampleDir string
	SampleExt string
	Volume    float64
	Kit       Kit
}

// Renderer plays a drum sound from its sample, or synthesizes it when the
// sample cannot be played.
type Renderer struct {
	samples SamplePlayer
	synth   ToneSynthesizer
	cfg     RendererConfig
	logger  *slog.Logger
}

// NewRenderer fills unset config fields with the defaults. samples may be nil,
// in which case every sound is synthesized.
func NewRenderer(samples SamplePlayer, synth ToneSynthesizer, cfg RendererConfig, logger *slog.Logger) *Renderer {
	if cfg.SampleDir == "" {
		cfg.SampleDir = DefaultSampleDir
	}
	if cfg.SampleExt == "" {
		cfg.SampleExt = DefaultSampleExt
	}
	cfg.SampleExt = strings.TrimPrefix(cfg.SampleExt, ".")
	if cfg.Volume <= 0 {
		cfg.Volume = DefaultVolume
	}
	if cfg.Kit == nil {
		cfg.Kit = DefaultKit()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{samples: samples, synth: synth, cfg: cfg, logger: logger}
}

// SamplePath returns the resource played for id.
func (r *Renderer) SamplePath(id string) string {
	return filepath.Join(r.cfg.SampleDir, id+"."+r.cfg.SampleExt)
}

// Render plays id. It never fails: sample errors fall back to synthesis.
func (r *Renderer) Render(id string) {
	r.render(id, "")
}

// Play renders a dispatcher request, tagging log records with its id.
func (r *Renderer) Play(req trigger.Request) {
	r.render(req.Target, req.ID)
}

func (r *Renderer) render(id, requestID string) {
	path := r.SamplePath(id)
	var err error
	if r.samples == nil {
		err = errNoSamplePlayer
	} else {
		err = r.samples.PlaySample(path, r.cfg.Volume)
	}
	if err == nil {
		return
	}
	r.logger.Warn("sample playback failed, synthesizing",
		"sound", id,
		"path", path,
		"request", requestID,
		"err", err,
	)
	if r.synth != nil {
		r.synth.Synthesize(r.cfg.Kit.Spec(id))
	}
}

var errNoSamplePlayer = errors.New("no sample player configured")

// Package otoout plays an audio.Mixer on the system output through oto. It is
// kept apart from package audio so that rendering and dispatch do not link
// the platform driver.
package otoout

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-padkit/audio"
)

const bufferDuration = 10 // milliseconds of buffered audio

// output is the part of *oto.Context the device uses.
type output interface {
	Resume() error
	Suspend() error
	Err() error
}

// Device plays mixed voices on the system audio output.
type Device struct {
	sampleRate int
	ctx        output
	player     io.Closer
	mix        *audio.Mixer
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens the default output at sampleRate, mono, 16-bit.
func Open(sampleRate int, logger *slog.Logger) (*Device, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	<-ready

	mix := audio.NewMixer()
	p := ctx.NewPlayer(mix)
	p.SetBufferSize(sampleRate * bufferDuration / 1000 * 2)
	p.Play()
	return newDevice(sampleRate, ctx, p, mix, logger), nil
}

func newDevice(sampleRate int, ctx output, player io.Closer, mix *audio.Mixer, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{sampleRate: sampleRate, ctx: ctx, player: player, mix: mix, logger: logger}
}

// SampleRate returns the output rate voices must be rendered at.
func (d *Device) SampleRate() int { return d.sampleRate }

// Play resumes a suspended output and starts v. A failed resume is logged;
// the voice is still queued and plays once the output runs.
func (d *Device) Play(v audio.Voice) {
	if d.Err() != nil {
		return
	}
	if err := d.ctx.Resume(); err != nil {
		d.logger.Debug("audio output resume failed", "err", err)
	}
	d.mix.Play(v)
}

// Err reports why the device cannot play, if anything.
func (d *Device) Err() error {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return fmt.Errorf("audio device closed: %w", audio.ErrPlaybackRejected)
	}
	if err := d.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", audio.ErrPlaybackRejected, err)
	}
	return nil
}

// Close stops playback. Later voices are rejected.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	err := d.player.Close()
	if serr := d.ctx.Suspend(); err == nil {
		err = serr
	}
	return err
}

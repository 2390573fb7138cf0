package drum

import (
	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
	"github.com/cwbudde/algo-padkit/trigger/triggertest"
)

type fakeSamples struct {
	err    error
	paths  []string
	volume float64
}

func (f *fakeSamples) PlaySample(path string, volume float64) error {
	f.paths = append(f.paths, path)
	f.volume = volume
	return f.err
}

type fakeSynth struct{ specs []tone.Spec }

func (f *fakeSynth) Synthesize(spec tone.Spec) { f.specs = append(f.specs, spec) }

type recordingPlayer struct{ reqs []trigger.Request }

func (r *recordingPlayer) Play(req trigger.Request) { r.reqs = append(r.reqs, req) }

func (r *recordingPlayer) targets() []string {
	out := make([]string, len(r.reqs))
	for i, req := range r.reqs {
		out[i] = req.Target
	}
	return out
}

type padSurface struct {
	*triggertest.Surface
	pads []Pad
}

func (s padSurface) Pads() []Pad { return s.pads }

func newTestDispatcher() (*Dispatcher, *triggertest.Scheduler, *triggertest.Surface, *recordingPlayer) {
	clock := &triggertest.Scheduler{}
	surface := &triggertest.Surface{Clock: clock}
	player := &recordingPlayer{}
	d := NewDispatcher(padSurface{Surface: surface, pads: DefaultPads()}, player, clock, nil)
	return d, clock, surface, player
}

package drum

import (
	"log/slog"
	"time"

	"github.com/cwbudde/algo-padkit/trigger"
)

const (
	// ReleaseDelay clears a pad after a click, touch-start or key press.
	ReleaseDelay = 200 * time.Millisecond
	// TouchReleaseDelay clears a pad after touch-end.
	TouchReleaseDelay = 100 * time.Millisecond
)

// Pad is one drum pad declared by the surface.
type Pad struct {
	Element trigger.Element
	Sound   string
	Key     string // optional keyboard binding
}

// Surface is a presentation surface that declares drum pads.
type Surface interface {
	trigger.Surface
	Pads() []Pad
}

// Player starts playback for a request. Renderer implements it.
type Player interface {
	Play(req trigger.Request)
}

// Dispatcher turns click, touch and keyboard triggers into drum playback and
// pad highlighting. All methods must be called from the event loop.
type Dispatcher struct {
	surface Surface
	player  Player
	sched   trigger.Scheduler
	logger  *slog.Logger

	pads map[trigger.Element]Pad
	keys trigger.Bindings
}

// NewDispatcher discovers the surface's pads and binds their keys. When two
// pads declare the same key the first one wins.
func NewDispatcher(surface Surface, player Player, sched trigger.Scheduler, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		surface: surface,
		player:  player,
		sched:   sched,
		logger:  logger,
		pads:    make(map[trigger.Element]Pad),
	}
	keys := make(map[string]string)
	for _, p := range surface.Pads() {
		d.pads[p.Element] = p
		if p.Key == "" {
			continue
		}
		if _, taken := keys[p.Key]; !taken {
			keys[p.Key] = string(p.Element)
		}
	}
	d.keys = trigger.NewBindings(keys)
	return d
}

// Click plays the clicked pad.
func (d *Dispatcher) Click(el trigger.Element) {
	if p, ok := d.pad(el); ok {
		d.play(p)
	}
}

// TouchStart plays the touched pad.
func (d *Dispatcher) TouchStart(el trigger.Element) {
	if p, ok := d.pad(el); ok {
		d.play(p)
	}
}

// TouchEnd clears the pad shortly after the finger lifts.
func (d *Dispatcher) TouchEnd(el trigger.Element) {
	if p, ok := d.pad(el); ok {
		d.sched.AfterFunc(TouchReleaseDelay, func() { d.surface.Deactivate(p.Element) })
	}
}

// KeyDown plays the pad bound to key. Unbound keys are ignored.
func (d *Dispatcher) KeyDown(key string) {
	if p, ok := d.padForKey(key); ok {
		d.play(p)
	}
}

// KeyUp clears the pad bound to key immediately.
func (d *Dispatcher) KeyUp(key string) {
	if p, ok := d.padForKey(key); ok {
		d.surface.Deactivate(p.Element)
	}
}

func (d *Dispatcher) play(p Pad) {
	req := trigger.NewRequest(p.Sound)
	d.logger.Debug("drum trigger", "pad", p.Element, "sound", p.Sound, "request", req.ID)
	d.player.Play(req)
	d.surface.Activate(p.Element)
	d.sched.AfterFunc(ReleaseDelay, func() { d.surface.Deactivate(p.Element) })
}

func (d *Dispatcher) pad(el trigger.Element) (Pad, bool) {
	p, ok := d.pads[el]
	if !ok {
		d.logger.Debug("ignoring trigger on unknown element", "element", el)
	}
	return p, ok
}

func (d *Dispatcher) padForKey(key string) (Pad, bool) {
	el, ok := d.keys.Lookup(key)
	if !ok {
		d.logger.Debug("ignoring unbound key", "key", key)
		return Pad{}, false
	}
	return d.pads[trigger.Element(el)], true
}

// DefaultPads returns one pad per kit sound with home-row key bindings.
func DefaultPads() []Pad {
	keys := []string{"a", "s", "d", "f", "g", "h", "j", "k"}
	pads := make([]Pad, len(Sounds))
	for i, s := range Sounds {
		pads[i] = Pad{Element: trigger.Element("pad-" + s), Sound: s, Key: keys[i]}
	}
	return pads
}

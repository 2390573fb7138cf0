package piano

import (
	"log/slog"
	"time"

	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
)

// ReleaseDelay clears a key after a click or key press.
const ReleaseDelay = 150 * time.Millisecond

// Key is one piano key declared by the surface.
type Key struct {
	Element trigger.Element
	Note    string
}

// Surface is a presentation surface that declares piano keys.
type Surface interface {
	trigger.Surface
	Keys() []Key
}

// ToneSynthesizer renders a tone. tone.Synthesizer implements it.
type ToneSynthesizer interface {
	Synthesize(spec tone.Spec)
}

// Dispatcher turns clicks, key presses and note events into piano tones and
// key highlighting. All methods must be called from the event loop.
type Dispatcher struct {
	surface Surface
	synth   ToneSynthesizer
	sched   trigger.Scheduler
	logger  *slog.Logger

	keyMap    trigger.Bindings
	byElement map[trigger.Element]string
	byNote    map[string]trigger.Element
}

// NewDispatcher discovers the surface's keys. A nil keyMap uses
// DefaultKeyMap.
func NewDispatcher(surface Surface, synth ToneSynthesizer, sched trigger.Scheduler, keyMap map[string]string, logger *slog.Logger) *Dispatcher {
	if keyMap == nil {
		keyMap = DefaultKeyMap()
	}
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		surface:   surface,
		synth:     synth,
		sched:     sched,
		logger:    logger,
		keyMap:    trigger.NewBindings(keyMap),
		byElement: make(map[trigger.Element]string),
		byNote:    make(map[string]trigger.Element),
	}
	for _, k := range surface.Keys() {
		d.byElement[k.Element] = k.Note
		if _, taken := d.byNote[k.Note]; !taken {
			d.byNote[k.Note] = k.Element
		}
	}
	return d
}

// Click plays the clicked key's declared note. Elements that are not keys
// are ignored.
func (d *Dispatcher) Click(el trigger.Element) {
	note, ok := d.byElement[el]
	if !ok {
		d.logger.Debug("ignoring click on non-key element", "element", el)
		return
	}
	d.play(note)
	d.animate(el)
}

// KeyDown plays the note bound to key. Unbound keys are ignored.
func (d *Dispatcher) KeyDown(key string) {
	note, ok := d.keyMap.Lookup(key)
	if !ok {
		d.logger.Debug("ignoring unbound key", "key", key)
		return
	}
	d.PressNote(note)
}

// KeyUp clears the key of the note bound to key immediately.
func (d *Dispatcher) KeyUp(key string) {
	if note, ok := d.keyMap.Lookup(key); ok {
		d.ReleaseNote(note)
	}
}

// PressNote plays note and highlights its key, if the surface has one.
func (d *Dispatcher) PressNote(note string) {
	d.play(note)
	if el, ok := d.byNote[note]; ok {
		d.animate(el)
	}
}

// ReleaseNote clears the key of note immediately.
func (d *Dispatcher) ReleaseNote(note string) {
	if el, ok := d.byNote[note]; ok {
		d.surface.Deactivate(el)
	}
}

func (d *Dispatcher) play(note string) {
	req := trigger.NewRequest(note)
	req.Frequency = Frequency(note)
	d.logger.Debug("piano trigger", "note", note, "freq", req.Frequency, "request", req.ID)
	d.synth.Synthesize(ToneSpec(req.Target, req.Frequency))
}

func (d *Dispatcher) animate(el trigger.Element) {
	d.surface.Activate(el)
	d.sched.AfterFunc(ReleaseDelay, func() { d.surface.Deactivate(el) })
}

// DefaultKeys returns one key element per playable note.
func DefaultKeys() []Key {
	keys := make([]Key, len(Notes))
	for i, n := range Notes {
		keys[i] = Key{Element: trigger.Element("key-" + n), Note: n}
	}
	return keys
}

package main

import (
	"sync"

	"github.com/cwbudde/algo-padkit/drum"
	"github.com/cwbudde/algo-padkit/piano"
	"github.com/cwbudde/algo-padkit/trigger"
)

// surface is the terminal presentation surface. The dispatchers write active
// flags from the event loop; the UI reads them while rendering.
type surface struct {
	pads []drum.Pad
	keys []piano.Key

	mu     sync.Mutex
	active map[trigger.Element]bool
	notify func()
}

func newSurface(pads []drum.Pad, keys []piano.Key) *surface {
	return &surface{
		pads:   pads,
		keys:   keys,
		active: make(map[trigger.Element]bool),
		notify: func() {},
	}
}

func (s *surface) Pads() []drum.Pad  { return s.pads }
func (s *surface) Keys() []piano.Key { return s.keys }

func (s *surface) Activate(el trigger.Element)   { s.set(el, true) }
func (s *surface) Deactivate(el trigger.Element) { s.set(el, false) }

func (s *surface) set(el trigger.Element, on bool) {
	s.mu.Lock()
	s.active[el] = on
	notify := s.notify
	s.mu.Unlock()
	notify()
}

func (s *surface) isActive(el trigger.Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[el]
}

func (s *surface) setNotify(f func()) {
	s.mu.Lock()
	s.notify = f
	s.mu.Unlock()
}

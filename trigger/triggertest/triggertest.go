// Package triggertest provides a manual clock and a recording surface for
// dispatcher tests.
package triggertest

import (
	"sort"
	"time"

	"github.com/cwbudde/algo-padkit/trigger"
)

type timer struct {
	at  time.Duration
	seq int
	f   func()
}

// Scheduler is a trigger.Scheduler driven by Advance.
type Scheduler struct {
	now    time.Duration
	seq    int
	timers []timer
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) {
	s.seq++
	s.timers = append(s.timers, timer{at: s.now + d, seq: s.seq, f: f})
}

// Now returns the elapsed manual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of timers that have not fired.
func (s *Scheduler) Pending() int { return len(s.timers) }

// Advance moves the clock forward by d, firing due timers in deadline order.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		sort.Slice(s.timers, func(i, j int) bool {
			if s.timers[i].at != s.timers[j].at {
				return s.timers[i].at < s.timers[j].at
			}
			return s.timers[i].seq < s.timers[j].seq
		})
		if len(s.timers) == 0 || s.timers[0].at > target {
			break
		}
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.at
		t.f()
	}
	s.now = target
}

// Event is one surface signal.
type Event struct {
	At     time.Duration
	El     trigger.Element
	Active bool
}

// Surface records activate/deactivate signals and tracks the active flags.
type Surface struct {
	Clock  *Scheduler
	Events []Event
	active map[trigger.Element]bool
}

func (s *Surface) Activate(el trigger.Element)   { s.record(el, true) }
func (s *Surface) Deactivate(el trigger.Element) { s.record(el, false) }

// IsActive reports the current flag of el.
func (s *Surface) IsActive(el trigger.Element) bool { return s.active[el] }

func (s *Surface) record(el trigger.Element, on bool) {
	if s.active == nil {
		s.active = make(map[trigger.Element]bool)
	}
	s.active[el] = on
	var at time.Duration
	if s.Clock != nil {
		at = s.Clock.Now()
	}
	s.Events = append(s.Events, Event{At: at, El: el, Active: on})
}

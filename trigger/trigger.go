// Package trigger holds the pieces shared by the drum and piano dispatchers:
// element references, the presentation surface contract, key bindings,
// playback requests and the event loop that serializes all of them.
package trigger

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Element identifies one visual element on the presentation surface.
type Element string

// Surface receives visual feedback signals. Calls arrive on the event loop.
type Surface interface {
	Activate(el Element)
	Deactivate(el Element)
}

// Scheduler runs f once after d. Callbacks must run on the event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Bindings maps lowercased key codes to target identifiers (sound or note
// names). It is built once and never mutated.
type Bindings struct {
	m map[string]string
}

// NewBindings copies keys into a binding table, lowercasing every key.
func NewBindings(keys map[string]string) Bindings {
	m := make(map[string]string, len(keys))
	for k, target := range keys {
		m[strings.ToLower(k)] = target
	}
	return Bindings{m: m}
}

// Lookup resolves a pressed key; the key is lowercased first.
func (b Bindings) Lookup(key string) (string, bool) {
	target, ok := b.m[strings.ToLower(key)]
	return target, ok
}

// Len returns the number of bindings.
func (b Bindings) Len() int { return len(b.m) }

// Request is one playback request, created per trigger and consumed
// immediately.
type Request struct {
	ID     string
	Target string
	// Frequency overrides the target's pitch in Hz; 0 means none.
	Frequency float64
}

// NewRequest returns a request for target with a fresh correlation id.
func NewRequest(target string) Request {
	return Request{ID: uuid.NewString(), Target: target}
}

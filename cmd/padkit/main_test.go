package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-padkit/drum"
	"github.com/cwbudde/algo-padkit/trigger"
)

type keyRecorder struct{ down []string }

func (k *keyRecorder) KeyDown(key string) { k.down = append(k.down, key) }
func (k *keyRecorder) KeyUp(string)       {}

func TestSurfaceTracksActiveAndNotifies(t *testing.T) {
	s := newSurface(drum.DefaultPads(), nil)
	notified := 0
	s.setNotify(func() { notified++ })

	s.Activate("pad-kick")
	if !s.isActive("pad-kick") || notified != 1 {
		t.Fatalf("activate: active=%v notified=%d", s.isActive("pad-kick"), notified)
	}
	s.Deactivate("pad-kick")
	if s.isActive("pad-kick") || notified != 2 {
		t.Fatalf("deactivate: active=%v notified=%d", s.isActive("pad-kick"), notified)
	}
}

func TestModelPostsKeysAndQuits(t *testing.T) {
	kb := &keyRecorder{}
	m := model{
		surf: newSurface(nil, nil),
		kb:   kb,
		post: func(f func()) { f() },
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if len(kb.down) != 1 || kb.down[0] != "a" {
		t.Fatalf("expected key a to be posted, got %v", kb.down)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape}); cmd == nil {
		t.Fatalf("escape should quit")
	}
	if len(kb.down) != 1 {
		t.Fatalf("escape must not reach the dispatcher")
	}
}

func TestViewHighlightsActiveCell(t *testing.T) {
	s := newSurface(nil, nil)
	m := model{
		title: "padkit",
		cells: []cell{{el: trigger.Element("pad-kick"), label: "kick", key: "a"}},
		surf:  s,
	}
	idle := m.View()
	s.Activate("pad-kick")
	active := m.View()
	if !strings.Contains(idle, "kick") {
		t.Fatalf("view missing pad label: %q", idle)
	}
	if idle == active && activeStyle.Render("x") != cellStyle.Render("x") {
		t.Fatalf("active pad rendered like an idle one")
	}
}

func TestKeyLabelsPicksFirstKey(t *testing.T) {
	got := keyLabels(map[string]string{"z": "C4", "q": "C4", "w": "D4"})
	if got["C4"] != "q" || got["D4"] != "w" {
		t.Fatalf("unexpected labels %v", got)
	}
}

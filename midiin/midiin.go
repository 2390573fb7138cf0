// Package midiin feeds MIDI note messages into the piano dispatcher.
package midiin

import (
	"fmt"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"
)

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName converts a MIDI key number to the piano's note naming, with
// middle C (60) as "C4".
func NoteName(key uint8) string {
	return fmt.Sprintf("%s%d", pitchClasses[key%12], int(key)/12-1)
}

// Piano is the part of the piano dispatcher driven by MIDI.
type Piano interface {
	PressNote(note string)
	ReleaseNote(note string)
}

// Handler maps note-on/note-off messages to presses and releases. Notes the
// piano cannot play are ignored.
type Handler struct {
	piano  Piano
	known  func(note string) bool
	logger *slog.Logger
}

// NewHandler returns a handler for piano. known reports playable notes; nil
// accepts every note.
func NewHandler(piano Piano, known func(note string) bool, logger *slog.Logger) *Handler {
	if known == nil {
		known = func(string) bool { return true }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{piano: piano, known: known, logger: logger}
}

// Handle processes one message. It must run on the event loop.
func (h *Handler) Handle(msg midi.Message) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if note, ok := h.note(key); ok {
			h.logger.Debug("midi note on", "ch", ch, "key", key, "vel", vel, "note", note)
			h.piano.PressNote(note)
		}
	case msg.GetNoteEnd(&ch, &key):
		if note, ok := h.note(key); ok {
			h.logger.Debug("midi note off", "ch", ch, "key", key, "note", note)
			h.piano.ReleaseNote(note)
		}
	default:
		h.logger.Debug("midi: unhandled message", "msg", msg.String())
	}
}

func (h *Handler) note(key uint8) (string, bool) {
	note := NoteName(key)
	if !h.known(note) {
		h.logger.Debug("midi note out of range", "key", key, "note", note)
		return "", false
	}
	return note, true
}

// Listen opens the named input port and posts every message to post, which
// must hand it to the event loop. The returned func stops listening.
func Listen(portName string, h *Handler, post func(func())) (func(), error) {
	in, err := midi.FindInPort(portName)
	if err != nil {
		return nil, fmt.Errorf("input %q not found: %w", portName, err)
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		post(func() { h.Handle(msg) })
	}, midi.HandleError(func(listenErr error) {
		h.logger.Warn("midi: listener error", "port", portName, "err", listenErr)
	}))
	if err != nil {
		return nil, fmt.Errorf("listen on %q: %w", portName, err)
	}
	return stop, nil
}

package main

import (
	"strconv"

	"github.com/cwbudde/algo-padkit/trigger"
)

// blockFrames is the largest block the audio worklet may request.
const blockFrames = 128

// clampFrames bounds a block size requested by the page to [0, blockFrames].
func clampFrames(n int) int {
	if n < 0 {
		return 0
	}
	if n > blockFrames {
		return blockFrames
	}
	return n
}

// keyElement names the i-th .key node. Keys without a note still get a
// unique element; they play the default pitch.
func keyElement(i int, note string) trigger.Element {
	if note == "" {
		return trigger.Element("key-" + strconv.Itoa(i))
	}
	return trigger.Element("key-" + note)
}

//go:build js && wasm

package main

import (
	"context"
	"log/slog"
	"strings"
	"syscall/js"
	"unsafe"

	"github.com/cwbudde/algo-padkit/audio"
	"github.com/cwbudde/algo-padkit/drum"
	"github.com/cwbudde/algo-padkit/piano"
	"github.com/cwbudde/algo-padkit/preset"
	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
)

var (
	mixer        = audio.NewMixer()
	samples      *audio.SamplePlayer
	loop         = trigger.NewLoop()
	outputBuffer []float32
)

func main() {
	c := make(chan struct{})

	js.Global().Set("wasmInit", js.FuncOf(wasmInit))
	js.Global().Set("wasmLoadSample", js.FuncOf(wasmLoadSample))
	js.Global().Set("wasmProcessBlock", js.FuncOf(wasmProcessBlock))
	js.Global().Set("wasmGetMemoryBuffer", js.FuncOf(wasmGetMemoryBuffer))

	go loop.Run(context.Background())
	println("WASM padkit module loaded")
	<-c
}

// wasmInit(sampleRate) wires the page: drum pads (.drum), piano keys (.key)
// and the side menu toggle.
func wasmInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	sampleRate := args[0].Int()
	outputBuffer = make([]float32, blockFrames)

	cfg := preset.Default()
	cfg.SampleRate = sampleRate
	logger := slog.Default()

	doc := js.Global().Get("document")
	surf := newDOMSurface(doc)
	synth := tone.NewSynthesizer(mixer, sampleRate, logger)
	samples = audio.NewSamplePlayer(mixer, sampleRate)

	if len(surf.pads) > 0 {
		renderer := drum.NewRenderer(samples, synth, drum.RendererConfig{
			SampleDir: cfg.SampleDir,
			SampleExt: cfg.SampleExt,
			Volume:    cfg.Volume,
			Kit:       cfg.Kit,
		}, logger)
		drums := drum.NewDispatcher(surf, renderer, loop, logger)
		for _, p := range surf.pads {
			el := p.Element
			node := surf.nodes[el]
			listen(node, "click", false, func(js.Value) { drums.Click(el) })
			listen(node, "touchstart", true, func(js.Value) { drums.TouchStart(el) })
			listen(node, "touchend", true, func(js.Value) { drums.TouchEnd(el) })
		}
		listen(doc, "keydown", false, func(e js.Value) { drums.KeyDown(e.Get("key").String()) })
		listen(doc, "keyup", false, func(e js.Value) { drums.KeyUp(e.Get("key").String()) })
	}

	if len(surf.keys) > 0 {
		keys := piano.NewDispatcher(surf, synth, loop, cfg.PianoKeys, logger)
		for _, k := range surf.keys {
			el := k.Element
			listen(surf.nodes[el], "click", false, func(js.Value) { keys.Click(el) })
		}
		listen(doc, "keydown", false, func(e js.Value) { keys.KeyDown(e.Get("key").String()) })
		listen(doc, "keyup", false, func(e js.Value) { keys.KeyUp(e.Get("key").String()) })
	}

	wireMenu(doc)
	println("padkit initialized at", sampleRate, "Hz:", len(surf.pads), "pads,", len(surf.keys), "keys")
	return nil
}

// wasmLoadSample(path, arrayBuffer) caches a fetched sample so the drum
// renderer can play it without a file system.
func wasmLoadSample(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || samples == nil {
		return nil
	}
	path := args[0].String()
	arrayBuffer := args[1]
	data := make([]byte, arrayBuffer.Get("byteLength").Int())
	js.CopyBytesToGo(data, js.Global().Get("Uint8Array").New(arrayBuffer))
	if err := samples.Store(path, data); err != nil {
		println("Failed to load sample", path+":", err.Error())
		return false
	}
	return true
}

func wasmProcessBlock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || outputBuffer == nil {
		return 0
	}
	mixer.ReadFloat(outputBuffer[:clampFrames(args[0].Int())])

	ptr := &outputBuffer[0]
	return js.ValueOf(uintptr(unsafe.Pointer(ptr)))
}

func wasmGetMemoryBuffer(this js.Value, args []js.Value) interface{} {
	return js.Global().Get("Go").Get("_inst").Get("exports").Get("mem").Get("buffer")
}

// listen registers handler for event on target. Handlers run on the event
// loop, never on the JS callback.
func listen(target js.Value, event string, preventDefault bool, handler func(js.Value)) {
	target.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		e := args[0]
		if preventDefault {
			e.Call("preventDefault")
		}
		loop.Post(func() { handler(e) })
		return nil
	}))
}

func wireMenu(doc js.Value) {
	icon := doc.Call("querySelector", ".side_icon")
	menu := doc.Call("querySelector", ".nav-menu")
	if icon.IsNull() || menu.IsNull() {
		return
	}
	icon.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		style := menu.Get("style")
		if style.Get("display").String() == "flex" {
			style.Set("display", "none")
		} else {
			style.Set("display", "flex")
		}
		return nil
	}))
}

// domSurface maps elements to DOM nodes and toggles their "active" class.
type domSurface struct {
	nodes map[trigger.Element]js.Value
	pads  []drum.Pad
	keys  []piano.Key
}

func newDOMSurface(doc js.Value) *domSurface {
	s := &domSurface{nodes: make(map[trigger.Element]js.Value)}
	each(doc.Call("querySelectorAll", ".drum"), func(i int, node js.Value) {
		sound := attr(node, "data-sound")
		if sound == "" {
			return
		}
		el := trigger.Element("pad-" + sound)
		s.nodes[el] = node
		s.pads = append(s.pads, drum.Pad{
			Element: el,
			Sound:   sound,
			Key:     strings.ToLower(attr(node, "data-key")),
		})
	})
	each(doc.Call("querySelectorAll", ".key"), func(i int, node js.Value) {
		note := attr(node, "data-note")
		el := keyElement(i, note)
		s.nodes[el] = node
		s.keys = append(s.keys, piano.Key{Element: el, Note: note})
	})
	return s
}

func (s *domSurface) Pads() []drum.Pad  { return s.pads }
func (s *domSurface) Keys() []piano.Key { return s.keys }

func (s *domSurface) Activate(el trigger.Element) {
	if node, ok := s.nodes[el]; ok {
		node.Get("classList").Call("add", "active")
	}
}

func (s *domSurface) Deactivate(el trigger.Element) {
	if node, ok := s.nodes[el]; ok {
		node.Get("classList").Call("remove", "active")
	}
}

func each(list js.Value, f func(int, js.Value)) {
	n := list.Get("length").Int()
	for i := 0; i < n; i++ {
		f(i, list.Index(i))
	}
}

func attr(node js.Value, name string) string {
	v := node.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

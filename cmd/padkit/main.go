package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/cwbudde/algo-padkit/audio"
	"github.com/cwbudde/algo-padkit/audio/otoout"
	"github.com/cwbudde/algo-padkit/drum"
	"github.com/cwbudde/algo-padkit/midiin"
	"github.com/cwbudde/algo-padkit/piano"
	"github.com/cwbudde/algo-padkit/preset"
	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("padkit", flag.ContinueOnError)
	instrument := fs.String("instrument", "drum", "Instrument to play: drum or piano")
	presetPath := fs.String("preset", "", "Kit preset JSON file path (optional)")
	midiPort := fs.String("midi", "", "MIDI input port to play the piano from (optional)")
	logPath := fs.String("log", "", "Write logs to this file (the terminal is owned by the UI)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *instrument != "drum" && *instrument != "piano" {
		return fmt.Errorf("unknown instrument %q (want drum or piano)", *instrument)
	}

	logger, closeLog, err := newLogger(*logPath, *debug)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := preset.Default()
	if *presetPath != "" {
		c, err := preset.LoadJSON(*presetPath)
		if err != nil {
			return fmt.Errorf("loading preset %q: %w", *presetPath, err)
		}
		cfg = c
	}

	var sink audio.Sink = audio.Discard
	dev, err := otoout.Open(cfg.SampleRate, logger)
	if err != nil {
		logger.Warn("audio output unavailable, running silent", "err", err)
	} else {
		defer dev.Close()
		sink = dev
	}
	synth := tone.NewSynthesizer(sink, cfg.SampleRate, logger)

	loop := trigger.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		surf  *surface
		kb    keyboard
		cells []cell
		title string
	)
	switch *instrument {
	case "drum":
		surf = newSurface(cfg.Pads, nil)
		var samples drum.SamplePlayer
		if dev != nil {
			samples = audio.NewSamplePlayer(dev, cfg.SampleRate)
		}
		renderer := drum.NewRenderer(samples, synth, drum.RendererConfig{
			SampleDir: cfg.SampleDir,
			SampleExt: cfg.SampleExt,
			Volume:    cfg.Volume,
			Kit:       cfg.Kit,
		}, logger)
		kb = drum.NewDispatcher(surf, renderer, loop, logger)
		for _, p := range cfg.Pads {
			cells = append(cells, cell{el: p.Element, label: p.Sound, key: p.Key})
		}
		title = "padkit drum machine"
	case "piano":
		surf = newSurface(nil, piano.DefaultKeys())
		d := piano.NewDispatcher(surf, synth, loop, cfg.PianoKeys, logger)
		kb = d
		labels := keyLabels(cfg.PianoKeys)
		for _, k := range surf.Keys() {
			cells = append(cells, cell{el: k.Element, label: k.Note, key: labels[k.Note]})
		}
		title = "padkit piano"

		if *midiPort != "" {
			defer midi.CloseDriver()
			h := midiin.NewHandler(d, piano.HasNote, logger)
			stop, err := midiin.Listen(*midiPort, h, loop.Post)
			if err != nil {
				return fmt.Errorf("opening midi port %q: %w", *midiPort, err)
			}
			defer stop()
			logger.Info("listening for midi", "port", *midiPort)
		}
	}

	p := tea.NewProgram(model{
		title: title,
		cells: cells,
		surf:  surf,
		kb:    kb,
		post:  loop.Post,
	}, tea.WithAltScreen())
	surf.setNotify(func() { p.Send(redrawMsg{}) })

	go func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("event loop stopped", "err", err)
		}
	}()

	logger.Info("padkit started", "instrument", *instrument, "sample_rate", cfg.SampleRate)
	_, err = p.Run()
	return err
}

func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := tea.LogToFile(path, "padkit")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, func() { f.Close() }, nil
}

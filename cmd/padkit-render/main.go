package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-padkit/analysis"
	"github.com/cwbudde/algo-padkit/internal/pcm"
	"github.com/cwbudde/algo-padkit/piano"
	"github.com/cwbudde/algo-padkit/preset"
	"github.com/cwbudde/algo-padkit/tone"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("padkit-render", flag.ContinueOnError)
	sound := fs.String("sound", "", "Drum sound to render (kick, snare, hihat-closed, ...)")
	note := fs.String("note", "", "Piano note to render (C4..C6)")
	sampleRate := fs.Int("sample-rate", 0, "Render sample rate in Hz (default from preset)")
	presetPath := fs.String("preset", "", "Kit preset JSON file path (optional)")
	output := fs.String("output", "output.wav", "Output WAV file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*sound == "") == (*note == "") {
		return fmt.Errorf("exactly one of -sound or -note is required")
	}

	cfg := preset.Default()
	if *presetPath != "" {
		c, err := preset.LoadJSON(*presetPath)
		if err != nil {
			return fmt.Errorf("loading preset %q: %w", *presetPath, err)
		}
		cfg = c
	}
	sr := cfg.SampleRate
	if *sampleRate > 0 {
		sr = *sampleRate
	}

	var spec tone.Spec
	if *sound != "" {
		spec = cfg.Kit.Spec(*sound)
	} else {
		spec = piano.ToneSpec(*note, piano.Frequency(*note))
	}
	fmt.Fprintf(stdout, "Rendering %s (%s %.2f Hz, %.2fs, filter %s) at %d Hz...\n",
		spec.ID, spec.Waveform, spec.Frequency, spec.Duration, spec.Filter, sr)

	samples := tone.Render(spec, sr)
	if err := pcm.WriteMonoWAV(*output, samples, sr); err != nil {
		return fmt.Errorf("writing WAV file: %w", err)
	}

	x := make([]float64, len(samples))
	for i, v := range samples {
		x[i] = float64(v)
	}
	if s, err := analysis.Summarize(x, sr); err == nil {
		fmt.Fprintf(stdout, "Analysis: %s\n", s)
	}
	fmt.Fprintf(stdout, "Successfully wrote %s (%d frames)\n", *output, len(samples))
	return nil
}

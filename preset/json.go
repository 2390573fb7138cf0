package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-padkit/drum"
	"github.com/cwbudde/algo-padkit/dsp"
	"github.com/cwbudde/algo-padkit/piano"
	"github.com/cwbudde/algo-padkit/tone"
	"github.com/cwbudde/algo-padkit/trigger"
)

const DefaultSampleRate = 44100

// Config is the resolved kit configuration used by the commands.
type Config struct {
	SampleRate int
	SampleDir  string
	SampleExt  string
	Volume     float64
	Kit        drum.Kit
	Pads       []drum.Pad
	PianoKeys  map[string]string
}

// Default returns the built-in kit configuration.
func Default() *Config {
	return &Config{
		SampleRate: DefaultSampleRate,
		SampleDir:  drum.DefaultSampleDir,
		SampleExt:  drum.DefaultSampleExt,
		Volume:     drum.DefaultVolume,
		Kit:        drum.DefaultKit(),
		Pads:       drum.DefaultPads(),
		PianoKeys:  piano.DefaultKeyMap(),
	}
}

// File is the JSON schema for kit presets.
type File struct {
	SampleRate *int                    `json:"sample_rate"`
	SampleDir  string                  `json:"sample_dir"`
	SampleExt  string                  `json:"sample_ext"`
	Volume     *float64                `json:"volume"`
	Sounds     map[string]SoundSetting `json:"sounds"`
	Pads       map[string]string       `json:"pads"`
	PianoKeys  map[string]string       `json:"piano_keys"`
}

// SoundSetting is a partial fallback tone override. New sounds must set
// freq, waveform and duration.
type SoundSetting struct {
	Frequency *float64 `json:"freq"`
	Waveform  string   `json:"waveform"`
	Duration  *float64 `json:"duration"`
	Filter    string   `json:"filter"`
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
func LoadJSON(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}

	c := Default()
	if err := ApplyFile(c, &f); err != nil {
		return nil, err
	}

	if f.SampleDir != "" && !filepath.IsAbs(c.SampleDir) {
		base := filepath.Dir(path)
		c.SampleDir = filepath.Clean(filepath.Join(base, c.SampleDir))
	}
	return c, nil
}

// ApplyFile applies a parsed preset file onto an existing config.
func ApplyFile(dst *Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination config")
	}
	if f == nil {
		return nil
	}

	if f.SampleRate != nil {
		if *f.SampleRate < 8000 || *f.SampleRate > 192000 {
			return fmt.Errorf("sample_rate must be in [8000,192000]")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.SampleDir != "" {
		dst.SampleDir = strings.TrimSpace(f.SampleDir)
	}
	if f.SampleExt != "" {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f.SampleExt), "."))
		if ext != "mp3" && ext != "wav" {
			return fmt.Errorf("sample_ext must be mp3 or wav")
		}
		dst.SampleExt = ext
	}
	if f.Volume != nil {
		if *f.Volume <= 0 || *f.Volume > 1 {
			return fmt.Errorf("volume must be in (0,1]")
		}
		dst.Volume = *f.Volume
	}

	if err := applySounds(dst, f.Sounds); err != nil {
		return err
	}
	if err := applyPads(dst, f.Pads); err != nil {
		return err
	}
	return applyPianoKeys(dst, f.PianoKeys)
}

func applySounds(dst *Config, sounds map[string]SoundSetting) error {
	if len(sounds) == 0 {
		return nil
	}
	kit := make(drum.Kit, len(dst.Kit)+len(sounds))
	for id, s := range dst.Kit {
		kit[id] = s
	}
	for _, id := range sortedKeys(sounds) {
		override := sounds[id]
		spec, known := kit[id]
		if !known {
			if override.Frequency == nil || override.Waveform == "" || override.Duration == nil {
				return fmt.Errorf("sounds[%s]: new sounds need freq, waveform and duration", id)
			}
			spec = tone.Spec{ID: id, Envelope: drum.Envelope}
		}
		if override.Frequency != nil {
			if *override.Frequency <= 0 {
				return fmt.Errorf("sounds[%s].freq must be > 0", id)
			}
			spec.Frequency = *override.Frequency
		}
		if override.Waveform != "" {
			w, err := tone.ParseWaveform(override.Waveform)
			if err != nil {
				return fmt.Errorf("sounds[%s]: %w", id, err)
			}
			spec.Waveform = w
		}
		if override.Duration != nil {
			if *override.Duration <= 0 || *override.Duration > 10 {
				return fmt.Errorf("sounds[%s].duration must be in (0,10]", id)
			}
			spec.Duration = *override.Duration
		}
		if override.Filter != "" {
			k, err := dsp.ParseFilterKind(override.Filter)
			if err != nil {
				return fmt.Errorf("sounds[%s]: %w", id, err)
			}
			spec.Filter = k
		}
		kit[id] = spec
	}
	dst.Kit = kit
	return nil
}

// applyPads rebinds existing pads and adds pads for sounds that have none.
func applyPads(dst *Config, pads map[string]string) error {
	if len(pads) == 0 {
		return nil
	}
	out := make([]drum.Pad, len(dst.Pads))
	copy(out, dst.Pads)
	for _, sound := range sortedKeys(pads) {
		if _, ok := dst.Kit[sound]; !ok {
			return fmt.Errorf("pads[%s]: unknown sound", sound)
		}
		key := strings.ToLower(strings.TrimSpace(pads[sound]))
		found := false
		for i := range out {
			if out[i].Sound == sound {
				out[i].Key = key
				found = true
			}
		}
		if !found {
			out = append(out, drum.Pad{Element: trigger.Element("pad-" + sound), Sound: sound, Key: key})
		}
	}
	bound := make(map[string]string, len(out))
	for _, p := range out {
		if p.Key == "" {
			continue
		}
		if other, taken := bound[p.Key]; taken && other != p.Sound {
			return fmt.Errorf("pads: key %q bound to both %s and %s", p.Key, other, p.Sound)
		}
		bound[p.Key] = p.Sound
	}
	dst.Pads = out
	return nil
}

func applyPianoKeys(dst *Config, keys map[string]string) error {
	if len(keys) == 0 {
		return nil
	}
	m := make(map[string]string, len(dst.PianoKeys)+len(keys))
	for k, n := range dst.PianoKeys {
		m[k] = n
	}
	for _, k := range sortedKeys(keys) {
		note := strings.TrimSpace(keys[k])
		if !piano.HasNote(note) {
			return fmt.Errorf("piano_keys[%s]: unknown note %q (expected C4..C6)", k, note)
		}
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			return fmt.Errorf("piano_keys: empty key")
		}
		m[key] = note
	}
	dst.PianoKeys = m
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

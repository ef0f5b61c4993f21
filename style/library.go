package style

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/caption-timeline-cli/transcript"
)

// DefaultPresetID is the preset used when none is chosen or the chosen one
// is unknown.
const DefaultPresetID = "classic"

// ErrUnknownPreset is returned for ids that are not in the library.
var ErrUnknownPreset = errors.New("unknown lyric preset")

// Library is an ordered set of presets keyed by id.
type Library struct {
	byID  map[string]Preset
	order []string
}

// NewLibrary returns a library holding presets in order. Later presets
// replace earlier ones with the same id.
func NewLibrary(presets ...Preset) *Library {
	l := &Library{byID: make(map[string]Preset)}
	for _, p := range presets {
		_ = l.Add(p)
	}
	return l
}

// Builtin returns a library of the built-in presets.
func Builtin() *Library {
	return NewLibrary(builtinPresets()...)
}

// Add inserts or replaces p.
func (l *Library) Add(p Preset) error {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return errors.New("preset id is required")
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if _, ok := l.byID[p.ID]; !ok {
		l.order = append(l.order, p.ID)
	}
	l.byID[p.ID] = p
	return nil
}

// Get returns the preset with id.
func (l *Library) Get(id string) (Preset, bool) {
	p, ok := l.byID[id]
	return p, ok
}

// Lookup returns the preset with id, falling back to the default preset and
// then to an empty preset that resolves to the hard defaults.
func (l *Library) Lookup(id string) Preset {
	if p, ok := l.byID[id]; ok {
		return p
	}
	if p, ok := l.byID[DefaultPresetID]; ok {
		return p
	}
	return Preset{ID: DefaultPresetID, Name: "Classic"}
}

// Has reports whether id is known.
func (l *Library) Has(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// List returns the presets in insertion order.
func (l *Library) List() []Preset {
	out := make([]Preset, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// IDs returns the preset ids sorted alphabetically.
func (l *Library) IDs() []string {
	ids := append([]string(nil), l.order...)
	sort.Strings(ids)
	return ids
}

// Len returns the number of presets.
func (l *Library) Len() int { return len(l.order) }

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// ParsePresets decodes a YAML preset file.
func ParsePresets(data []byte) ([]Preset, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	for i, p := range f.Presets {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("preset %d: id is required", i)
		}
		if p.Color != "" && p.Gradient != nil {
			return nil, fmt.Errorf("preset %q: color and gradient are mutually exclusive", p.ID)
		}
		for e, v := range p.Effects {
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("preset %q: effect %s intensity %v outside [0,1]", p.ID, e, v)
			}
		}
	}
	return f.Presets, nil
}

// LoadLibrary returns the built-in presets overlaid with the user presets
// in the YAML file at path. An empty path or a missing file yields the
// built-ins alone.
func LoadLibrary(path string) (*Library, error) {
	lib := Builtin()
	if path == "" {
		return lib, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lib, nil
		}
		return nil, fmt.Errorf("read preset file %s: %w", path, err)
	}
	presets, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, p := range presets {
		if err := lib.Add(p); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// WritePresets encodes presets as a YAML preset file.
func WritePresets(path string, presets []Preset) error {
	data, err := yaml.Marshal(presetFile{Presets: presets})
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preset file %s: %w", path, err)
	}
	return nil
}

func grad(from, to string, angle float64) *transcript.Gradient {
	return &transcript.Gradient{From: from, To: to, AngleDeg: angle}
}

func pill(color string, opacity float64) *Background {
	return &Background{Color: color, Opacity: opacity, PaddingPx: 12, RadiusPx: 16}
}

func builtinPresets() []Preset {
	return []Preset{
		{ID: "classic", Name: "Classic", Color: "#FFFFFF", OutlineColor: "#000000", OutlineWidthPx: 3},
		{ID: "bold-pop", Name: "Bold Pop", FontWeight: 900, FontSizePx: 80, TextTransform: "uppercase", Color: "#FFFFFF", HighlightColor: "#FFD400", OutlineColor: "#000000", OutlineWidthPx: 5},
		{ID: "minimal", Name: "Minimal", FontWeight: 500, FontSizePx: 56, Color: "#F5F5F5"},
		{ID: "subtitle", Name: "Subtitle", FontWeight: 600, FontSizePx: 48, Color: "#FFFFFF", Background: pill("#000000", 0.6)},
		{ID: "boxed", Name: "Boxed", FontWeight: 800, Color: "#111111", Background: pill("#FFFFFF", 0.95)},
		{ID: "neon-pink", Name: "Neon Pink", Color: "#FF3EA5", Effects: map[Effect]float64{EffectNeon: 0.8, EffectGlow: 0.6}},
		{ID: "neon-blue", Name: "Neon Blue", Color: "#3EC9FF", Effects: map[Effect]float64{EffectNeon: 0.8, EffectGlow: 0.6}},
		{ID: "glow", Name: "Soft Glow", Color: "#FFF6D5", Effects: map[Effect]float64{EffectGlow: 0.5}},
		{ID: "fire", Name: "Fire", FontWeight: 900, Gradient: grad("#FFD200", "#FF3C00", 90), Effects: map[Effect]float64{EffectFire: 0.9, EffectGlow: 0.4}},
		{ID: "ice", Name: "Ice", Gradient: grad("#E0F7FF", "#5BC0EB", 90), Effects: map[Effect]float64{EffectShimmer: 0.5}},
		{ID: "electric", Name: "Electric", FontWeight: 800, Color: "#B4F8FF", Effects: map[Effect]float64{EffectElectric: 0.9, EffectGlow: 0.7}},
		{ID: "sunset", Name: "Sunset", Gradient: grad("#FF7E5F", "#FEB47B", 45)},
		{ID: "ocean", Name: "Ocean", Gradient: grad("#2193B0", "#6DD5ED", 45)},
		{ID: "gold", Name: "Gold", FontWeight: 800, Gradient: grad("#F7E7A1", "#C9A227", 90), Effects: map[Effect]float64{EffectShimmer: 0.7}},
		{ID: "chrome", Name: "Chrome", FontWeight: 900, Gradient: grad("#FFFFFF", "#8E9EAB", 90), Effects: map[Effect]float64{EffectChrome: 0.8}},
		{ID: "rainbow", Name: "Rainbow", FontWeight: 800, Color: "#FFFFFF", Effects: map[Effect]float64{EffectRainbow: 1}},
		{ID: "karaoke-yellow", Name: "Karaoke Yellow", Color: "#FFFFFF", HighlightColor: "#FFE600", OutlineColor: "#1A1A1A", OutlineWidthPx: 3},
		{ID: "karaoke-green", Name: "Karaoke Green", Color: "#FFFFFF", HighlightColor: "#39FF14", OutlineColor: "#1A1A1A", OutlineWidthPx: 3},
		{ID: "typewriter", Name: "Typewriter", FontFamily: "Courier Prime", FontWeight: 400, FontSizePx: 52, Color: "#EDEDED", Effects: map[Effect]float64{EffectTypewriter: 1}},
		{ID: "glitch", Name: "Glitch", FontWeight: 800, Color: "#FFFFFF", Effects: map[Effect]float64{EffectGlitch: 0.7}},
		{ID: "shadow", Name: "Drop Shadow", Color: "#FFFFFF", TextShadow: "4px 4px 0 #000000", Effects: map[Effect]float64{EffectShadow: 0.8}},
		{ID: "outline", Name: "Outline", FontWeight: 900, Color: "#00000000", OutlineColor: "#FFFFFF", OutlineWidthPx: 4, Effects: map[Effect]float64{EffectOutline: 1}},
		{ID: "pulse", Name: "Pulse", FontWeight: 800, Color: "#FF4D6D", Effects: map[Effect]float64{EffectPulse: 0.6}},
		{ID: "bounce", Name: "Bounce", FontWeight: 900, TextTransform: "uppercase", Color: "#FFFFFF", Effects: map[Effect]float64{EffectBounce: 0.6}},
		{ID: "dreamy", Name: "Dreamy", FontFamily: "Playfair Display", FontWeight: 500, Gradient: grad("#E0C3FC", "#8EC5FC", 135), Effects: map[Effect]float64{EffectBlur: 0.2, EffectGlow: 0.4}},
		{ID: "retro", Name: "Retro", FontFamily: "Press Start 2P", FontWeight: 400, FontSizePx: 40, Color: "#FFCC00", TextShadow: "3px 3px 0 #FF0066"},
		{ID: "handwritten", Name: "Handwritten", FontFamily: "Caveat", FontWeight: 600, FontSizePx: 72, Color: "#FFFFFF"},
		{ID: "serif", Name: "Serif", FontFamily: "Merriweather", FontWeight: 700, Color: "#FFFFFF", LetterSpacingPx: 1},
		{ID: "lowercase", Name: "Lowercase", FontWeight: 600, TextTransform: "lowercase", Color: "#FFFFFF", Background: pill("#222222", 0.7)},
		{ID: "title-card", Name: "Title Card", FontWeight: 800, TextTransform: "capitalize", FontSizePx: 76, Color: "#FFFFFF", LetterSpacingPx: 2},
		{ID: "highlighter", Name: "Highlighter", FontWeight: 800, Color: "#111111", Background: &Background{Color: "#FFF200", Opacity: 1, PaddingPx: 6, RadiusPx: 4}},
		{ID: "cinematic", Name: "Cinematic", FontFamily: "Bebas Neue", FontWeight: 400, FontSizePx: 72, TextTransform: "uppercase", LetterSpacingPx: 4, Color: "#F0F0F0"},
	}
}

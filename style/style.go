// Package style resolves the concrete look of a caption word from a named
// lyric preset and the word's sparse override.
package style

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/user/caption-timeline-cli/transcript"
)

// Hard defaults, used when neither the override nor the preset sets a value.
const (
	DefaultColor      = "#FFFFFF"
	DefaultFontFamily = "Inter"
	DefaultFontWeight = 700
	DefaultFontSizePx = 64.0
	DefaultTextAlign  = "center"
	DefaultOpacity    = 1.0
)

// Effect names a toggleable visual effect.
type Effect string

const (
	EffectGlow       Effect = "glow"
	EffectShimmer    Effect = "shimmer"
	EffectFire       Effect = "fire"
	EffectElectric   Effect = "electric"
	EffectNeon       Effect = "neon"
	EffectOutline    Effect = "outline"
	EffectShadow     Effect = "shadow"
	EffectPulse      Effect = "pulse"
	EffectBounce     Effect = "bounce"
	EffectRainbow    Effect = "rainbow"
	EffectGlitch     Effect = "glitch"
	EffectBlur       Effect = "blur"
	EffectTypewriter Effect = "typewriter"
	EffectChrome     Effect = "chrome"
)

// Background is a rounded pill drawn behind the text.
type Background struct {
	Color     string  `yaml:"color" json:"color"`
	Opacity   float64 `yaml:"opacity" json:"opacity"`
	PaddingPx float64 `yaml:"padding_px" json:"paddingPx"`
	RadiusPx  float64 `yaml:"radius_px" json:"radiusPx"`
}

// Preset is a named lyric style. Zero values mean "not set".
//
// Effects is sparse: only effects the preset turns on appear, mapped to an
// intensity in (0, 1].
type Preset struct {
	ID              string               `yaml:"id"`
	Name            string               `yaml:"name"`
	FontFamily      string               `yaml:"font_family,omitempty"`
	FontWeight      int                  `yaml:"font_weight,omitempty"`
	FontSizePx      float64              `yaml:"font_size_px,omitempty"`
	LetterSpacingPx float64              `yaml:"letter_spacing_px,omitempty"`
	TextTransform   string               `yaml:"text_transform,omitempty"`
	TextAlign       string               `yaml:"text_align,omitempty"`
	TextShadow      string               `yaml:"text_shadow,omitempty"`
	Color           string               `yaml:"color,omitempty"`
	Gradient        *transcript.Gradient `yaml:"gradient,omitempty"`
	HighlightColor  string               `yaml:"highlight_color,omitempty"`
	OutlineColor    string               `yaml:"outline_color,omitempty"`
	OutlineWidthPx  float64              `yaml:"outline_width_px,omitempty"`
	Background      *Background          `yaml:"background,omitempty"`
	Effects         map[Effect]float64   `yaml:"effects,omitempty"`
}

// EffectLevel is an active effect and its intensity.
type EffectLevel struct {
	Effect    Effect
	Intensity float64
}

// Resolved is the concrete style of one word.
type Resolved struct {
	FontFamily      string
	FontWeight      int
	FontSizePx      float64
	LetterSpacingPx float64
	TextTransform   string
	TextAlign       string
	TextShadow      string
	// Color is always set. In gradient mode it holds the first stop so
	// renderers without gradient support still draw something sensible.
	Color          string
	Gradient       *transcript.Gradient
	HighlightColor string
	OutlineColor   string
	OutlineWidthPx float64
	Background     *Background
	Opacity        float64
	// Effects are sorted by name.
	Effects []EffectLevel
}

// Intensity returns the level of e, or 0 when inactive.
func (r Resolved) Intensity(e Effect) float64 {
	for _, lv := range r.Effects {
		if lv.Effect == e {
			return lv.Intensity
		}
	}
	return 0
}

// Transform applies TextTransform to text.
func (r Resolved) Transform(text string) string {
	switch strings.ToLower(r.TextTransform) {
	case "uppercase", "upper":
		return cases.Upper(language.Und).String(text)
	case "lowercase", "lower":
		return cases.Lower(language.Und).String(text)
	case "capitalize", "title":
		return cases.Title(language.Und).String(text)
	default:
		return text
	}
}

// Resolve merges override over p over the hard defaults. A nil override
// resolves the preset alone. The result shares no memory with its inputs.
func Resolve(p Preset, override *transcript.StyleOverride) Resolved {
	r := Resolved{
		FontFamily:      firstString(p.FontFamily, DefaultFontFamily),
		FontWeight:      DefaultFontWeight,
		FontSizePx:      DefaultFontSizePx,
		LetterSpacingPx: p.LetterSpacingPx,
		TextTransform:   p.TextTransform,
		TextAlign:       firstString(p.TextAlign, DefaultTextAlign),
		TextShadow:      p.TextShadow,
		Color:           firstString(p.Color, DefaultColor),
		HighlightColor:  p.HighlightColor,
		OutlineColor:    p.OutlineColor,
		OutlineWidthPx:  p.OutlineWidthPx,
		Opacity:         DefaultOpacity,
		Effects:         activeEffects(p.Effects),
	}
	if p.FontWeight > 0 {
		r.FontWeight = p.FontWeight
	}
	if p.FontSizePx > 0 {
		r.FontSizePx = p.FontSizePx
	}
	if p.Gradient != nil {
		g := *p.Gradient
		r.Gradient = &g
	}
	if p.Background != nil {
		bg := *p.Background
		r.Background = &bg
	}

	if o := override; o != nil {
		if o.FontFamily != nil {
			r.FontFamily = *o.FontFamily
		}
		if o.FontWeight != nil {
			r.FontWeight = *o.FontWeight
		}
		if o.FontSizePx != nil {
			r.FontSizePx = *o.FontSizePx
		}
		if o.LetterSpacingPx != nil {
			r.LetterSpacingPx = *o.LetterSpacingPx
		}
		if o.TextTransform != nil {
			r.TextTransform = *o.TextTransform
		}
		if o.TextAlign != nil {
			r.TextAlign = *o.TextAlign
		}
		if o.TextShadow != nil {
			r.TextShadow = *o.TextShadow
		}
		if o.Opacity != nil {
			r.Opacity = clamp01(*o.Opacity)
		}
		switch {
		case o.Color != nil:
			r.Color = *o.Color
			r.Gradient = nil
		case o.Gradient != nil:
			g := *o.Gradient
			r.Gradient = &g
		}
	}
	if r.Gradient != nil {
		r.Color = r.Gradient.From
	}
	return r
}

func activeEffects(m map[Effect]float64) []EffectLevel {
	if len(m) == 0 {
		return nil
	}
	out := make([]EffectLevel, 0, len(m))
	for e, v := range m {
		if v <= 0 {
			continue
		}
		out = append(out, EffectLevel{Effect: e, Intensity: clamp01(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Effect < out[j].Effect })
	return out
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package transcript

// Gradient is a two-stop linear text fill.
type Gradient struct {
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	AngleDeg float64 `json:"angleDeg,omitempty" yaml:"angle_deg,omitempty"`
}

// StyleOverride is a sparse per-word override merged on top of a lyric preset.
// A nil field means "inherit from the preset".
//
// Color and Gradient are mutually exclusive; use WithColor and WithGradient
// to set one while clearing the other.
type StyleOverride struct {
	Color           *string   `json:"color,omitempty"`
	Gradient        *Gradient `json:"gradient,omitempty"`
	FontFamily      *string   `json:"fontFamily,omitempty"`
	FontWeight      *int      `json:"fontWeight,omitempty"`
	FontSizePx      *float64  `json:"fontSizePx,omitempty"`
	LetterSpacingPx *float64  `json:"letterSpacingPx,omitempty"`
	TextTransform   *string   `json:"textTransform,omitempty"`
	TextAlign       *string   `json:"textAlign,omitempty"`
	TextShadow      *string   `json:"textShadow,omitempty"`
	Opacity         *float64  `json:"opacity,omitempty"`
}

// Empty reports whether no field is overridden.
func (s StyleOverride) Empty() bool {
	return s.Color == nil && s.Gradient == nil && s.FontFamily == nil &&
		s.FontWeight == nil && s.FontSizePx == nil && s.LetterSpacingPx == nil &&
		s.TextTransform == nil && s.TextAlign == nil && s.TextShadow == nil &&
		s.Opacity == nil
}

// Clone returns a deep copy.
func (s StyleOverride) Clone() StyleOverride {
	out := StyleOverride{
		Color:           clonePtr(s.Color),
		FontFamily:      clonePtr(s.FontFamily),
		FontWeight:      clonePtr(s.FontWeight),
		FontSizePx:      clonePtr(s.FontSizePx),
		LetterSpacingPx: clonePtr(s.LetterSpacingPx),
		TextTransform:   clonePtr(s.TextTransform),
		TextAlign:       clonePtr(s.TextAlign),
		TextShadow:      clonePtr(s.TextShadow),
		Opacity:         clonePtr(s.Opacity),
	}
	if s.Gradient != nil {
		g := *s.Gradient
		out.Gradient = &g
	}
	return out
}

// WithColor returns a copy with a solid colour and no gradient.
func (s StyleOverride) WithColor(color string) StyleOverride {
	out := s.Clone()
	out.Color = &color
	out.Gradient = nil
	return out
}

// WithGradient returns a copy with a gradient fill and no solid colour.
func (s StyleOverride) WithGradient(g Gradient) StyleOverride {
	out := s.Clone()
	out.Gradient = &g
	out.Color = nil
	return out
}

// Merge returns s with every non-nil field of other applied on top.
// Applying a colour clears an inherited gradient and the reverse.
func (s StyleOverride) Merge(other StyleOverride) StyleOverride {
	out := s.Clone()
	if other.Color != nil {
		out = out.WithColor(*other.Color)
	}
	if other.Gradient != nil {
		out = out.WithGradient(*other.Gradient)
	}
	if other.FontFamily != nil {
		out.FontFamily = clonePtr(other.FontFamily)
	}
	if other.FontWeight != nil {
		out.FontWeight = clonePtr(other.FontWeight)
	}
	if other.FontSizePx != nil {
		out.FontSizePx = clonePtr(other.FontSizePx)
	}
	if other.LetterSpacingPx != nil {
		out.LetterSpacingPx = clonePtr(other.LetterSpacingPx)
	}
	if other.TextTransform != nil {
		out.TextTransform = clonePtr(other.TextTransform)
	}
	if other.TextAlign != nil {
		out.TextAlign = clonePtr(other.TextAlign)
	}
	if other.TextShadow != nil {
		out.TextShadow = clonePtr(other.TextShadow)
	}
	if other.Opacity != nil {
		out.Opacity = clonePtr(other.Opacity)
	}
	return out
}

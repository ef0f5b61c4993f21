// Package ass renders caption tokens and transcripts as Advanced SubStation
// Alpha text: event lines for the mpv OSD overlay and whole .ass files for
// a burn-in renderer.
package ass

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/style"
)

// OverlayEvents renders tokens as newline-separated ASS event texts for an
// osd-overlay whose resolution is frame. Each token is centred on its
// position with \an5\pos. Placeholders and fully transparent tokens are
// skipped, and tokens are ordered by ZIndex so higher ones draw last.
//
// Font sizes come from the resolved style, so the tokens' preview scale does
// not leak into the overlay.
func OverlayEvents(tokens []arrange.Token, frame arrange.Frame) string {
	visible := make([]arrange.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Placeholder || tok.Opacity <= 0 || strings.TrimSpace(tok.Text) == "" {
			continue
		}
		visible = append(visible, tok)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].ZIndex < visible[j].ZIndex
	})

	lines := make([]string, 0, len(visible))
	for _, tok := range visible {
		lines = append(lines, Event(tok, frame))
	}
	return strings.Join(lines, "\n")
}

// Event renders one token as an override block followed by its text.
func Event(tok arrange.Token, frame arrange.Frame) string {
	var b strings.Builder
	b.WriteString(`{\an5`)
	fmt.Fprintf(&b, `\pos(%s,%s)`, num(tok.XPct/100*frame.Width), num(tok.YPct/100*frame.Height))
	b.WriteString(Overrides(tok.Style, tok.State, tok.Opacity))
	if tok.RotationDeg != 0 {
		// ASS rotates counter-clockwise.
		fmt.Fprintf(&b, `\frz%s`, num(-tok.RotationDeg))
	}
	if tok.Scale > 0 && tok.Scale != 1 {
		pct := num(tok.Scale * 100)
		fmt.Fprintf(&b, `\fscx%s\fscy%s`, pct, pct)
	}
	b.WriteString("}")
	b.WriteString(Sanitize(tok.Text))
	return b.String()
}

// Overrides renders the style tags of rs for a word in karaoke state st,
// drawn at opacity. The highlight colour replaces the fill while the word is
// being sung.
func Overrides(rs style.Resolved, st arrange.State, opacity float64) string {
	var b strings.Builder
	if rs.FontFamily != "" {
		fmt.Fprintf(&b, `\fn%s`, rs.FontFamily)
	}
	if rs.FontWeight >= 600 {
		b.WriteString(`\b1`)
	} else {
		b.WriteString(`\b0`)
	}
	fmt.Fprintf(&b, `\fs%s`, num(rs.FontSizePx))
	if rs.LetterSpacingPx != 0 {
		fmt.Fprintf(&b, `\fsp%s`, num(rs.LetterSpacingPx))
	}

	fill := rs.Color
	if st == arrange.StateActive && rs.HighlightColor != "" {
		fill = rs.HighlightColor
	}
	fc := parseOr(fill, style.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	fmt.Fprintf(&b, `\1c%s\1a%s`, fc.ASS(), alpha(fc.A, opacity))

	switch {
	case rs.Background != nil:
		bg := parseOr(rs.Background.Color, style.RGBA{A: 0xff})
		bgOpacity := rs.Background.Opacity
		if bgOpacity <= 0 {
			bgOpacity = 1
		}
		pad := rs.Background.PaddingPx
		if pad <= 0 {
			pad = rs.FontSizePx * 0.2
		}
		fmt.Fprintf(&b, `\3c%s\3a%s\bord%s\shad0`, bg.ASS(), alpha(bg.A, opacity*bgOpacity), num(pad))
	case rs.OutlineWidthPx > 0 || rs.Intensity(style.EffectOutline) > 0:
		oc := parseOr(rs.OutlineColor, style.RGBA{A: 0xff})
		width := rs.OutlineWidthPx
		if width <= 0 {
			width = math.Round(rs.Intensity(style.EffectOutline) * 6)
		}
		fmt.Fprintf(&b, `\3c%s\3a%s\bord%s`, oc.ASS(), alpha(oc.A, opacity), num(width))
	default:
		b.WriteString(`\bord0`)
	}

	if v := rs.Intensity(style.EffectShadow); v > 0 {
		fmt.Fprintf(&b, `\shad%s`, num(math.Round(v*6)))
	}
	// Glow has no direct ASS form; a soft blur of the edge is the closest.
	blur := max(rs.Intensity(style.EffectGlow), rs.Intensity(style.EffectNeon), rs.Intensity(style.EffectBlur))
	if blur > 0 {
		fmt.Fprintf(&b, `\blur%s`, num(math.Round(blur*80)/10))
	}
	return b.String()
}

// Sanitize makes text safe inside an ASS event: braces would open override
// blocks and backslashes start escapes.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// Time formats ms as an ASS timestamp, H:MM:SS.cc.
func Time(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := ms / 10
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// alpha combines a colour's own alpha with an opacity into an ASS alpha
// value, where &H00& is opaque.
func alpha(a uint8, opacity float64) string {
	if opacity < 0 || opacity != opacity {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	eff := math.Round(float64(a) * opacity)
	return fmt.Sprintf("&H%02X&", 0xff-int(eff))
}

func parseOr(hex string, fallback style.RGBA) style.RGBA {
	if hex == "" {
		return fallback
	}
	c, err := style.ParseHex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

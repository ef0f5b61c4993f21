// Package arrange projects the caption lines active at the playhead into
// positioned, styled tokens using the strategy named by a layout preset.
//
// Every strategy works in the frame's native pixels and reports positions
// as percentages of the frame, so the result is independent of how large
// the preview is drawn. Render is a pure function of its Input.
package arrange

import (
	"github.com/user/caption-timeline-cli/captions"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

// State is a token's karaoke progress.
type State string

const (
	StateUpcoming State = "upcoming"
	StateActive   State = "active"
	StateSung     State = "sung"
)

// Frame is the native video size in pixels.
type Frame struct {
	Width  float64
	Height float64
}

// DefaultFrame returns the standard 1080p frame for the orientation.
func DefaultFrame(portrait bool) Frame {
	if portrait {
		return Frame{Width: 1080, Height: 1920}
	}
	return Frame{Width: 1920, Height: 1080}
}

// Portrait reports whether the frame is taller than wide.
func (f Frame) Portrait() bool { return f.Height > f.Width }

// Input is everything a strategy may look at.
type Input struct {
	Lyric  style.Preset
	Layout LayoutPreset
	// Lines are the grouped caption lines for NowMs.
	Lines []captions.Line
	// Words is the whole transcript. Karaoke batches over it and every
	// strategy emits its active positioned words verbatim.
	Words    transcript.Transcript
	NowMs    int64
	Portrait bool
	// Scale is the render scale of the preview, container / native width.
	Scale float64
	Frame Frame
}

func (in Input) withDefaults() Input {
	if in.Frame.Width <= 0 || in.Frame.Height <= 0 {
		in.Frame = DefaultFrame(in.Portrait)
	}
	if in.Scale <= 0 {
		in.Scale = 1
	}
	in.Layout = in.Layout.withDefaults(in.Portrait)
	return in
}

// Token is one word ready to draw. XPct/YPct locate the word's centre.
type Token struct {
	Index       int
	Text        string
	XPct        float64
	YPct        float64
	FontSizePx  float64
	RotationDeg float64
	Scale       float64
	Opacity     float64
	ZIndex      int
	State       State
	// Row is the visual line the token was laid out on, -1 for positioned
	// words.
	Row         int
	Positioned  bool
	Placeholder bool
	Style       style.Resolved
}

// Render lays out in according to in.Layout.Kind.
func Render(in Input) []Token {
	in = in.withDefaults()

	var flow []Token
	switch in.Layout.Kind {
	case KindKaraoke:
		flow = karaoke(in)
	case KindGrid:
		flow = grid(in)
	case KindWave:
		flow = wave(in)
	case KindScrolling:
		flow = scrolling(in)
	case KindCustom:
		flow = custom(in)
	default:
		flow = centered(in)
	}
	return append(flow, positioned(in)...)
}

// positioned emits the active words that carry an explicit frame position,
// exactly where they were put.
func positioned(in Input) []Token {
	var out []Token
	idx := 0
	for _, l := range in.Words {
		for _, w := range l.Words {
			if w.Positioned() && w.ActiveAt(in.NowMs) {
				tok := newToken(in, idx, w)
				tok.XPct = *w.XPct
				tok.YPct = *w.YPct
				tok.Row = -1
				tok.Positioned = true
				out = append(out, tok)
			}
			idx++
		}
	}
	return out
}

// newToken builds a token for w with its style resolved and no position.
func newToken(in Input, idx int, w transcript.Word) Token {
	rs := style.Resolve(in.Lyric, w.Style)
	tok := Token{
		Index:      idx,
		Text:       rs.Transform(w.Text),
		FontSizePx: rs.FontSizePx * in.Scale,
		Scale:      1,
		Opacity:    rs.Opacity,
		State:      karaokeState(w, in.NowMs),
		Style:      rs,
	}
	if w.Scale != nil && *w.Scale > 0 {
		tok.Scale = *w.Scale
	}
	if w.RotationDeg != nil {
		tok.RotationDeg = *w.RotationDeg
	}
	if w.Opacity != nil {
		tok.Opacity *= clamp(*w.Opacity, 0, 1)
	}
	if w.ZIndex != nil {
		tok.ZIndex = *w.ZIndex
	}
	return tok
}

func itemToken(in Input, it captions.Item) Token {
	tok := newToken(in, it.Index, it.Word)
	if it.Placeholder {
		tok.Placeholder = true
		tok.Opacity = 0
	}
	return tok
}

func karaokeState(w transcript.Word, nowMs int64) State {
	switch {
	case nowMs >= w.End:
		return StateSung
	case nowMs >= w.Start:
		return StateActive
	default:
		return StateUpcoming
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || v != v {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package ass

import (
	"fmt"
	"strings"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/captions"
	"github.com/user/caption-timeline-cli/segments"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

// StyleName is the name of the single style a Document declares.
const StyleName = "Caption"

// DocumentOptions control Document.
type DocumentOptions struct {
	Title  string
	Lyric  style.Preset
	Layout arrange.LayoutPreset
	Frame  arrange.Frame
	// Karaoke adds \k timing tags so the highlight sweeps word by word.
	Karaoke bool
	// MaxWords caps the words in one caption event.
	MaxWords int
	// GapMs is the silence that closes a caption event early.
	GapMs int64
	// AlignSectionEnd keeps each event up until the next one starts, and the
	// last event of a section up until the section ends.
	AlignSectionEnd bool
}

func (o DocumentOptions) withDefaults() DocumentOptions {
	if o.Frame.Width <= 0 || o.Frame.Height <= 0 {
		o.Frame = arrange.DefaultFrame(false)
	}
	if o.MaxWords <= 0 {
		o.MaxWords = captions.DefaultMaxWords
	}
	if o.GapMs <= 0 {
		o.GapMs = segments.CaptionGapMs
	}
	if o.Title == "" {
		o.Title = "Captions"
	}
	return o
}

// Document renders t as a complete .ass file.
//
// Flow words are grouped per section into caption events of at most
// MaxWords words, closed early at sentence ends. Words with an explicit frame
// position become their own \pos event on layer 1 over their timing.
func Document(t transcript.Transcript, opts DocumentOptions) string {
	opts = opts.withDefaults()
	base := style.Resolve(opts.Lyric, nil)

	var b strings.Builder
	b.WriteString(header(opts, base))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	items := captions.Items(t)
	words := make([]transcript.Word, len(items))
	for i, it := range items {
		words[i] = it.Word
	}

	var segs []segments.Segment
	if opts.AlignSectionEnd {
		segs = segments.Compute(words, segments.Options{GapMs: opts.GapMs, AlignSectionEnd: true})
	}
	for _, sec := range segments.Sections(words, opts.GapMs) {
		var flow []captions.Item
		for _, it := range items[sec.StartIdx : sec.EndIdx+1] {
			if !it.Word.Positioned() {
				flow = append(flow, it)
			}
		}
		lines := captions.Chunk(flow, opts.MaxWords)
		for k, line := range lines {
			end := line.End()
			if segs != nil {
				end = segments.HeldEnd(segs, line[len(line)-1].Index, end, nextStart(lines, k))
			}
			dialogue(&b, 0, line.Start(), end, lineText(line, opts))
		}
	}

	for _, it := range items {
		if !it.Word.Positioned() {
			continue
		}
		w := it.Word
		rs := style.Resolve(opts.Lyric, w.Style)
		opacity := rs.Opacity
		if w.Opacity != nil {
			opacity *= *w.Opacity
		}
		tok := arrange.Token{
			Index:      it.Index,
			Text:       rs.Transform(w.Text),
			XPct:       *w.XPct,
			YPct:       *w.YPct,
			FontSizePx: rs.FontSizePx,
			Scale:      1,
			Opacity:    opacity,
			State:      arrange.StateUpcoming,
			Row:        -1,
			Positioned: true,
			Style:      rs,
		}
		if w.RotationDeg != nil {
			tok.RotationDeg = *w.RotationDeg
		}
		if w.Scale != nil && *w.Scale > 0 {
			tok.Scale = *w.Scale
		}
		if opacity <= 0 {
			continue
		}
		dialogue(&b, 1, w.Start, w.End, Event(tok, opts.Frame))
	}
	return b.String()
}

func nextStart(lines []captions.Line, k int) int64 {
	if k+1 < len(lines) {
		return lines[k+1].Start()
	}
	return -1
}

func dialogue(b *strings.Builder, layer int, start, end int64, text string) {
	fmt.Fprintf(b, "Dialogue: %d,%s,%s,%s,,0,0,0,,%s\n", layer, Time(start), Time(end), StyleName, text)
}

// lineText renders the words of a caption event. Words with their own style
// override get inline tags and a reset after them.
func lineText(line captions.Line, opts DocumentOptions) string {
	var b strings.Builder
	cursor := line.Start()
	for i, it := range line {
		w := it.Word
		if i > 0 {
			b.WriteString(" ")
		}
		if opts.Karaoke {
			if gap := (w.Start - cursor) / 10; gap > 0 {
				fmt.Fprintf(&b, `{\k%d}`, gap)
			}
			fmt.Fprintf(&b, `{\k%d}`, max(1, (w.End-w.Start)/10))
			cursor = max(cursor, w.End)
		}
		rs := style.Resolve(opts.Lyric, w.Style)
		text := Sanitize(rs.Transform(w.Text))
		if w.Style != nil {
			fmt.Fprintf(&b, `{%s}%s{\r}`, Overrides(rs, arrange.StateUpcoming, rs.Opacity), text)
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}

func header(opts DocumentOptions, rs style.Resolved) string {
	layout := opts.Layout.Effective(opts.Frame.Portrait())
	// \k sweeps each word from SecondaryColour to PrimaryColour.
	primary, secondary := rs.Color, rs.Color
	if rs.HighlightColor != "" {
		if opts.Karaoke {
			primary = rs.HighlightColor
		} else {
			secondary = rs.HighlightColor
		}
	}
	outlineColor := "#000000"
	if rs.OutlineColor != "" {
		outlineColor = rs.OutlineColor
	}
	backColor := "#00000080"
	borderStyle := 1
	outline := max(rs.OutlineWidthPx, 2)
	if rs.Background != nil {
		borderStyle = 3
		outlineColor = rs.Background.Color
		if rs.Background.Opacity > 0 && rs.Background.Opacity < 1 {
			c := parseOr(rs.Background.Color, style.RGBA{A: 0xff})
			c.A = uint8(float64(c.A) * rs.Background.Opacity)
			outlineColor = c.Hex()
		}
		outline = max(rs.Background.PaddingPx, 1)
	}
	bold := 0
	if rs.FontWeight >= 600 {
		bold = -1
	}

	alignment, marginV := 2, 0
	offset := layout.OffsetPct
	switch layout.Anchor {
	case arrange.AnchorTop:
		alignment = 8
		marginV = int(offset / 100 * opts.Frame.Height)
	case arrange.AnchorCenter:
		alignment = 5
	default:
		marginV = int(offset / 100 * opts.Frame.Height)
	}

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	fmt.Fprintf(&b, "Title: %s\n", Sanitize(opts.Title))
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", int(opts.Frame.Width))
	fmt.Fprintf(&b, "PlayResY: %d\n", int(opts.Frame.Height))
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: %s,%s,%s,%s,%s,%s,%s,%d,0,0,0,100,100,%s,0,%d,%s,0,%d,60,60,%d,1\n",
		StyleName,
		rs.FontFamily,
		num(rs.FontSizePx),
		style.ASSStyleColor(primary),
		style.ASSStyleColor(secondary),
		style.ASSStyleColor(outlineColor),
		style.ASSStyleColor(backColor),
		bold,
		num(rs.LetterSpacingPx),
		borderStyle,
		num(outline),
		alignment,
		marginV,
	)
	return b.String()
}

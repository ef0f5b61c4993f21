package arrange

import "unicode/utf8"

// Text metrics are estimates: no font is loaded, so a glyph is taken to be
// a fixed fraction of the font size wide.
const (
	glyphWidthEm  = 0.55
	lineHeightEm  = 1.25
	avgWordGlyphs = 5
)

// wordWidthPx estimates the rendered width of tok in native pixels.
func wordWidthPx(tok Token) float64 {
	n := float64(utf8.RuneCountInString(tok.Text))
	return n * (tok.Style.FontSizePx*glyphWidthEm + tok.Style.LetterSpacingPx) * tok.Scale
}

// lineHeightPx is the height of a row of tokens, set by the largest word.
func lineHeightPx(toks []Token) float64 {
	h := 0.0
	for _, t := range toks {
		h = max(h, t.Style.FontSizePx*t.Scale*lineHeightEm)
	}
	return h
}

// layoutRow centres toks horizontally on centerXPct, gapPx apart, and sets
// their XPct.
func layoutRow(in Input, toks []Token, gapPx, centerXPct float64) {
	if len(toks) == 0 {
		return
	}
	widths := make([]float64, len(toks))
	total := gapPx * float64(len(toks)-1)
	for i, t := range toks {
		widths[i] = wordWidthPx(t)
		total += widths[i]
	}
	x := centerXPct/100*in.Frame.Width - total/2
	for i := range toks {
		toks[i].XPct = x / in.Frame.Width * 100
		toks[i].XPct += widths[i] / 2 / in.Frame.Width * 100
		x += widths[i] + gapPx
	}
}

// anchorY returns the YPct of a block's top edge so that a block of
// heightPct sits at the anchor.
func anchorY(a Anchor, offsetPct, heightPct float64) float64 {
	switch a {
	case AnchorTop:
		return offsetPct
	case AnchorBottom:
		return 100 - offsetPct - heightPct
	default:
		return 50 - heightPct/2
	}
}

// stackRows lays rows top to bottom at the preset anchor. Row heights
// follow their largest word; gapEm is extra space between rows.
func stackRows(in Input, rows [][]Token, wordGapEm, lineGapEm float64) []Token {
	if len(rows) == 0 {
		return nil
	}
	heights := make([]float64, len(rows))
	total := 0.0
	for i, r := range rows {
		heights[i] = lineHeightPx(r)
		total += heights[i]
	}
	em := rows[0][0].Style.FontSizePx
	gap := lineGapEm * em
	total += gap * float64(len(rows)-1)

	heightPct := total / in.Frame.Height * 100
	y := anchorY(in.Layout.Anchor, in.Layout.OffsetPct, heightPct) / 100 * in.Frame.Height

	var out []Token
	for i, r := range rows {
		layoutRow(in, r, wordGapEm*em, in.Layout.CenterXPct)
		cy := (y + heights[i]/2) / in.Frame.Height * 100
		for j := range r {
			r[j].YPct = cy
			r[j].Row = i
		}
		out = append(out, r...)
		y += heights[i] + gap
	}
	return out
}

package arrange

import (
	"math"

	"github.com/user/caption-timeline-cli/captions"
)

// lastLines keeps the newest n lines.
func lastLines(lines []captions.Line, n int) []captions.Line {
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

func lineTokens(in Input, l captions.Line) []Token {
	toks := make([]Token, len(l))
	for i, it := range l {
		toks[i] = itemToken(in, it)
	}
	return toks
}

func flowTokens(in Input) []Token {
	var out []Token
	for _, l := range in.Lines {
		out = append(out, lineTokens(in, l)...)
	}
	return out
}

// centered stacks the newest MaxLines lines, newest at the bottom.
func centered(in Input) []Token {
	lines := lastLines(in.Lines, in.Layout.MaxLines)
	rows := make([][]Token, 0, len(lines))
	for _, l := range lines {
		if len(l) > 0 {
			rows = append(rows, lineTokens(in, l))
		}
	}
	return stackRows(in, rows, in.Layout.WordGapEm, in.Layout.LineGapEm)
}

// scrolling stacks lines like centered but dims older lines, so the block
// reads as text scrolling up and away.
func scrolling(in Input) []Token {
	toks := centered(in)
	if len(toks) == 0 {
		return nil
	}
	newest := toks[len(toks)-1].Row
	for i := range toks {
		age := float64(newest - toks[i].Row)
		toks[i].Opacity *= math.Max(0.25, 1-0.25*age)
	}
	return toks
}

// grid packs every grouped word left to right, wrapping when the estimated
// row width would exceed the budget or the row holds Columns words.
func grid(in Input) []Token {
	toks := flowTokens(in)
	if len(toks) == 0 {
		return nil
	}
	em := toks[0].Style.FontSizePx
	gap := in.Layout.WordGapEm * em
	budget := in.Layout.WidthBudgetPct / 100 * in.Frame.Width

	var rows [][]Token
	var row []Token
	width := 0.0
	for _, t := range toks {
		w := wordWidthPx(t)
		if len(row) > 0 && (width+gap+w > budget || len(row) >= in.Layout.Columns) {
			rows = append(rows, row)
			row, width = nil, 0
		}
		if len(row) > 0 {
			width += gap
		}
		row = append(row, t)
		width += w
	}
	rows = append(rows, row)
	return stackRows(in, rows, in.Layout.WordGapEm, in.Layout.LineGapEm)
}

// wave sets every grouped word on one row, each lifted by
// amplitude * sin(phase * frequency). The phase counts from the left, or from
// the right for a reverse wave.
func wave(in Input) []Token {
	toks := flowTokens(in)
	if len(toks) == 0 {
		return nil
	}
	out := stackRows(in, [][]Token{toks}, in.Layout.WordGapEm, in.Layout.LineGapEm)
	for i := range out {
		phase := i
		if in.Layout.Direction == DirectionReverse {
			phase = len(out) - 1 - i
		}
		out[i].YPct += in.Layout.AmplitudePct * math.Sin(float64(phase)*in.Layout.Frequency)
	}
	return out
}

// custom drops grouped words into the preset's fixed slots in turn.
func custom(in Input) []Token {
	if len(in.Layout.Slots) == 0 {
		return centered(in)
	}
	toks := flowTokens(in)
	for i := range toks {
		s := in.Layout.Slots[i%len(in.Layout.Slots)]
		toks[i].XPct = s.XPct
		toks[i].YPct = s.YPct
		toks[i].Row = i / len(in.Layout.Slots)
	}
	return toks
}

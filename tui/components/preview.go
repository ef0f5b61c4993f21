package components

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/tui/layout"
	"github.com/user/caption-timeline-cli/tui/styles"
)

// TokenBox is where a token landed in the preview, in frame cells.
type TokenBox struct {
	Index int
	Rect  layout.Rect
	Token arrange.Token
}

// FrameSize fits frame into width x height cells, keeping its aspect ratio.
// A cell is CellPx wide and RowPx tall.
func FrameSize(frame arrange.Frame, width, height int) (w, h int) {
	if frame.Width <= 0 || frame.Height <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	aspect := frame.Width / frame.Height * RowPx / CellPx
	w = width
	h = int(math.Round(float64(w) / aspect))
	if h > height {
		h = height
		w = int(math.Round(float64(h) * aspect))
	}
	return max(w, 1), max(h, 1)
}

// PlaceTokens maps the visible tokens onto a w x h cell grid, centred on
// their anchors and kept inside the frame. Boxes come back in paint order.
func PlaceTokens(tokens []arrange.Token, w, h int) []TokenBox {
	var out []TokenBox
	for _, tok := range tokens {
		if tok.Placeholder || tok.Opacity <= 0 || strings.TrimSpace(tok.Text) == "" {
			continue
		}
		tw := min(lipgloss.Width(tok.Text), w)
		cx := tok.XPct / 100 * float64(w)
		left := min(max(int(math.Round(cx-float64(tw)/2)), 0), max(w-tw, 0))
		row := min(max(int(tok.YPct/100*float64(h)), 0), h-1)
		out = append(out, TokenBox{Index: tok.Index, Rect: layout.Rect{X: left, Y: row, Width: tw, Height: 1}, Token: tok})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Token.ZIndex < out[j].Token.ZIndex })
	return out
}

// TokenAt returns the topmost box under frame cell (x, y).
func TokenAt(boxes []TokenBox, x, y int) (TokenBox, bool) {
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].Rect.Contains(x, y) {
			return boxes[i], true
		}
	}
	return TokenBox{}, false
}

// FramePreview draws the boxes on a w x h frame inside a titled border.
// Words are drawn in their resolved colours; the active karaoke word uses the
// highlight colour and the selected word is underlined.
func FramePreview(title string, boxes []TokenBox, selected, w, h int) string {
	bg := lipgloss.NewStyle().Background(styles.DarkPurple)
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{' ', bg}
		}
	}

	for _, b := range boxes {
		st := tokenStyle(b.Token, b.Index == selected)
		for i, r := range []rune(b.Token.Text) {
			x := b.Rect.X + i
			if i >= b.Rect.Width || x >= w {
				break
			}
			grid[b.Rect.Y][x] = cell{r, st}
		}
	}

	rows := make([]string, h)
	for y := range grid {
		rows[y] = renderCells(grid[y])
	}
	return RenderInfoBox(title, rows, w+2)
}

func tokenStyle(tok arrange.Token, selected bool) lipgloss.Style {
	rs := tok.Style
	st := lipgloss.NewStyle().Background(styles.DarkPurple)
	color := rs.Color
	switch tok.State {
	case arrange.StateActive:
		if rs.HighlightColor != "" {
			color = rs.HighlightColor
		}
		st = st.Bold(true)
	case arrange.StateUpcoming:
		if tok.Row >= 0 && tok.Opacity < 1 {
			st = st.Faint(true)
		}
	}
	if color != "" {
		st = st.Foreground(lipgloss.Color(hex6(color)))
	}
	if rs.Background != nil && rs.Background.Color != "" {
		st = st.Background(lipgloss.Color(hex6(rs.Background.Color)))
	}
	if rs.FontWeight >= 600 {
		st = st.Bold(true)
	}
	if tok.Positioned {
		st = st.Italic(true)
	}
	if selected {
		st = st.Underline(true).Foreground(styles.Pink)
	}
	return st
}

// hex6 drops an alpha channel terminals cannot show.
func hex6(c string) string {
	if len(c) == 9 && c[0] == '#' {
		return c[:7]
	}
	return c
}

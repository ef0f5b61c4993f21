package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/segments"
	"github.com/user/caption-timeline-cli/transcript"
	"github.com/user/caption-timeline-cli/tui/styles"
)

// Terminal cells are mapped to a pixel space so the pointer controllers can
// work in the same units as any other front end.
const (
	CellPx = 8.0
	RowPx  = 16.0
)

// MaxVisibleLanes caps the lane rows drawn on screen.
const MaxVisibleLanes = 6

// trackLeft is the first track column inside the box: border plus one space.
const trackLeft = 2

// ResizeHandlePx is the grab width of a bar edge.
const ResizeHandlePx = CellPx

// TimelineState is everything the lane timeline draws.
type TimelineState struct {
	Words    []transcript.Word
	Segments []segments.Segment
	Selected int
	NowMs    int64
	// DurationMs spans the scrub bar
	DurationMs int64
	// OffsetMs is the time at the left edge of the track
	OffsetMs        int64
	PixelsPerSecond float64
}

// MsPerCell is the time one column covers.
func (s TimelineState) MsPerCell() float64 {
	if s.PixelsPerSecond <= 0 {
		return 100
	}
	return CellPx * 1000 / s.PixelsPerSecond
}

// Bar is one word drawn on a lane. Col and Width are clipped to the track;
// LeftPx and WidthPx are the unclipped extent in pointer pixels, relative to
// the box origin.
type Bar struct {
	Index   int
	Lane    int
	Col     int
	Width   int
	LeftPx  float64
	WidthPx float64
}

// TimelineLayout is the geometry of a rendered timeline, shared by the
// renderer and the mouse hit tests. Rows and columns are relative to the
// box's top-left corner.
type TimelineLayout struct {
	Width     int
	TrackCols int
	Lanes     int
	Bars      []Bar
	// PlayheadCol is the track column of the playhead, -1 when off screen
	PlayheadCol int
	ScrubCols   int
	state       TimelineState
}

// LayoutTimeline computes the timeline geometry for a box of width columns.
func LayoutTimeline(state TimelineState, width int) TimelineLayout {
	l := TimelineLayout{Width: width, state: state, PlayheadCol: -1}
	l.TrackCols = max(width-trackLeft*2, 1)
	l.ScrubCols = max(l.TrackCols-timeLabelWidth, 1)
	l.Lanes = min(max(segments.LaneCount(state.Segments), 1), MaxVisibleLanes)

	msPerCell := state.MsPerCell()
	pxPerMs := CellPx / msPerCell
	if c := float64(state.NowMs-state.OffsetMs) / msPerCell; c >= 0 && c < float64(l.TrackCols) {
		l.PlayheadCol = int(c)
	}

	for _, seg := range state.Segments {
		if seg.Lane >= l.Lanes || seg.Index >= len(state.Words) {
			continue
		}
		w := state.Words[seg.Index]
		startCol := float64(w.Start-state.OffsetMs) / msPerCell
		endCol := float64(w.End-state.OffsetMs) / msPerCell
		if endCol <= 0 || startCol >= float64(l.TrackCols) {
			continue
		}
		col := max(int(math.Floor(startCol)), 0)
		end := min(max(int(math.Ceil(endCol)), col+1), l.TrackCols)
		l.Bars = append(l.Bars, Bar{
			Index:   seg.Index,
			Lane:    seg.Lane,
			Col:     col,
			Width:   end - col,
			LeftPx:  trackLeft*CellPx + float64(w.Start-state.OffsetMs)*pxPerMs,
			WidthPx: float64(w.End-w.Start) * pxPerMs,
		})
	}
	return l
}

// Height is the number of lines the timeline box occupies.
func (l TimelineLayout) Height() int { return l.Lanes + 4 }

// LaneRow is the box row of lane i.
func (l TimelineLayout) LaneRow(i int) int { return 2 + i }

// ScrubRow is the box row of the scrub bar.
func (l TimelineLayout) ScrubRow() int { return 2 + l.Lanes }

// TrackLeftPx is the pointer x of the first track column.
func (l TimelineLayout) TrackLeftPx() float64 { return trackLeft * CellPx }

// ScrubWidthPx is the pointer width of the scrub bar.
func (l TimelineLayout) ScrubWidthPx() float64 { return float64(l.ScrubCols) * CellPx }

// PointerX maps box column x to the pointer x at the centre of the cell.
func PointerX(col int) float64 { return (float64(col) + 0.5) * CellPx }

// BarAt returns the bar under box cell (x, y). Later bars on a lane win,
// matching the draw order.
func (l TimelineLayout) BarAt(x, y int) (Bar, bool) {
	lane := y - 2
	if lane < 0 || lane >= l.Lanes {
		return Bar{}, false
	}
	col := x - trackLeft
	for i := len(l.Bars) - 1; i >= 0; i-- {
		b := l.Bars[i]
		if b.Lane == lane && col >= b.Col && col < b.Col+b.Width {
			return b, true
		}
	}
	return Bar{}, false
}

// InTrack reports whether box cell (x, y) is on a lane row.
func (l TimelineLayout) InTrack(x, y int) bool {
	return y >= 2 && y < 2+l.Lanes && x >= trackLeft && x < trackLeft+l.TrackCols
}

// InScrub reports whether box cell (x, y) is on the scrub bar.
func (l TimelineLayout) InScrub(x, y int) bool {
	return y == l.ScrubRow() && x >= trackLeft && x < trackLeft+l.ScrubCols
}

// MsAt maps a track column to media time.
func (l TimelineLayout) MsAt(x int) int64 {
	return l.state.OffsetMs + int64(float64(x-trackLeft)*l.state.MsPerCell())
}

const timeLabelWidth = 20

// Timeline renders the lane view with a ruler, one row per lane and the
// scrub bar, inside a bordered box.
func Timeline(l TimelineLayout) string {
	if l.Width < 20 {
		return ""
	}
	rows := []string{" " + renderRuler(l)}
	for lane := range l.Lanes {
		if lane == 0 && len(l.state.Segments) == 0 {
			hint := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true)
			rows = append(rows, hint.Render(" No words yet. Press A to add one at the playhead."))
			continue
		}
		rows = append(rows, " "+renderLane(l, lane))
	}
	rows = append(rows, " "+renderScrub(l))
	return RenderInfoBox("Timeline", rows, l.Width)
}

func renderRuler(l TimelineLayout) string {
	state := l.state
	msPerCell := state.MsPerCell()
	interval := labelInterval(msPerCell)
	cells := []rune(strings.Repeat(" ", l.TrackCols))

	first := (state.OffsetMs/interval + 1) * interval
	if state.OffsetMs%interval == 0 {
		first = state.OffsetMs
	}
	for t := first; ; t += interval {
		col := int(float64(t-state.OffsetMs) / msPerCell)
		if col >= l.TrackCols {
			break
		}
		label := []rune("┆" + timeutil.FormatShort(t))
		for i, r := range label {
			if col+i < len(cells) {
				cells[col+i] = r
			}
		}
	}

	rulerStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	if l.PlayheadCol < 0 {
		return rulerStyle.Render(string(cells))
	}
	head := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).Render("▼")
	return rulerStyle.Render(string(cells[:l.PlayheadCol])) + head + rulerStyle.Render(string(cells[l.PlayheadCol+1:]))
}

// labelInterval picks a ruler spacing that leaves room for a label.
func labelInterval(msPerCell float64) int64 {
	for _, ms := range []int64{500, 1000, 2000, 5000, 10_000, 30_000, 60_000, 300_000} {
		if float64(ms)/msPerCell >= 10 {
			return ms
		}
	}
	return 600_000
}

type cell struct {
	r     rune
	style lipgloss.Style
}

func renderLane(l TimelineLayout, lane int) string {
	empty := lipgloss.NewStyle().Foreground(styles.DarkPurple)
	cells := make([]cell, l.TrackCols)
	for i := range cells {
		cells[i] = cell{'·', empty}
	}
	if l.PlayheadCol >= 0 {
		cells[l.PlayheadCol] = cell{'│', lipgloss.NewStyle().Foreground(styles.Pink)}
	}

	for _, b := range l.Bars {
		if b.Lane != lane {
			continue
		}
		st := lipgloss.NewStyle().Background(styles.LaneColor(lane)).Foreground(styles.DeepPurple)
		w := l.state.Words[b.Index]
		if b.Index == l.state.Selected {
			st = lipgloss.NewStyle().Background(styles.Pink).Foreground(styles.LightLavender).Bold(true)
		} else if w.Positioned() {
			st = st.Italic(true)
		}
		label := []rune(w.Text)
		for i := range b.Width {
			r := ' '
			if i < len(label) {
				r = label[i]
			}
			if b.Width > 1 && i == b.Width-1 && len(label) > b.Width {
				r = '…'
			}
			cells[b.Col+i] = cell{r, st}
		}
	}
	return renderCells(cells)
}

// renderCells styles runs of cells that share a style in one call.
func renderCells(cells []cell) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run []rune
		for j < len(cells) && sameStyle(cells[j].style, cells[i].style) {
			run = append(run, cells[j].r)
			j++
		}
		b.WriteString(cells[i].style.Render(string(run)))
		i = j
	}
	return b.String()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground() &&
		a.GetBackground() == b.GetBackground() &&
		a.GetBold() == b.GetBold() &&
		a.GetItalic() == b.GetItalic() &&
		a.GetUnderline() == b.GetUnderline() &&
		a.GetFaint() == b.GetFaint()
}

func renderScrub(l TimelineLayout) string {
	state := l.state
	filledStyle := lipgloss.NewStyle().Foreground(styles.BrightPurple)
	unfilledStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	posStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)

	fill := 0
	if state.DurationMs > 0 {
		fill = int(math.Round(float64(l.ScrubCols) * float64(state.NowMs) / float64(state.DurationMs)))
	}
	fill = min(max(fill, 0), l.ScrubCols-1)

	bar := filledStyle.Render(strings.Repeat("━", fill)) +
		posStyle.Render("╸") +
		unfilledStyle.Render(strings.Repeat("─", l.ScrubCols-fill-1))
	label := " " + timeutil.FormatShort(state.NowMs) + " / " + timeutil.FormatShort(state.DurationMs)
	return bar + timeStyle.Render(label)
}

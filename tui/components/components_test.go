package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/drag"
	"github.com/user/caption-timeline-cli/segments"
	"github.com/user/caption-timeline-cli/transcript"
)

func timelineFixture() TimelineState {
	words := []transcript.Word{
		{Text: "hello", Start: 0, End: 500},
		{Text: "world", Start: 2000, End: 2800},
	}
	return TimelineState{
		Words:           words,
		Segments:        segments.Compute(words, segments.DefaultOptions()),
		Selected:        transcript.NoSelection,
		NowMs:           400,
		DurationMs:      10_000,
		PixelsPerSecond: 100,
	}
}

func TestLayoutTimelineBars(t *testing.T) {
	l := LayoutTimeline(timelineFixture(), 60)

	if l.TrackCols != 56 || l.Lanes != 1 || l.Height() != 5 {
		t.Fatalf("track=%d lanes=%d height=%d", l.TrackCols, l.Lanes, l.Height())
	}
	if len(l.Bars) != 2 {
		t.Fatalf("bars = %d, want 2", len(l.Bars))
	}
	// 80ms per cell at 100px/s.
	a, b := l.Bars[0], l.Bars[1]
	if a.Col != 0 || a.Width != 7 || a.LeftPx != 16 || a.WidthPx != 50 {
		t.Errorf("bar a = %+v", a)
	}
	if b.Col != 25 || b.Width != 10 {
		t.Errorf("bar b = %+v", b)
	}
	if l.PlayheadCol != 5 {
		t.Errorf("playhead col = %d, want 5", l.PlayheadCol)
	}
}

func TestTimelineHitTests(t *testing.T) {
	l := LayoutTimeline(timelineFixture(), 60)

	if bar, ok := l.BarAt(2, l.LaneRow(0)); !ok || bar.Index != 0 {
		t.Errorf("BarAt first cell = %+v, %v", bar, ok)
	}
	if bar, ok := l.BarAt(2+30, l.LaneRow(0)); !ok || bar.Index != 1 {
		t.Errorf("BarAt second word = %+v, %v", bar, ok)
	}
	if _, ok := l.BarAt(2+15, l.LaneRow(0)); ok {
		t.Error("gap between bars should not hit")
	}
	if _, ok := l.BarAt(2, l.ScrubRow()); ok {
		t.Error("scrub row should not hit a bar")
	}
	if !l.InScrub(2, l.ScrubRow()) || l.InScrub(2, l.LaneRow(0)) {
		t.Error("InScrub")
	}
	if !l.InTrack(2+15, l.LaneRow(0)) {
		t.Error("InTrack")
	}
	if got := l.MsAt(2 + 10); got != 800 {
		t.Errorf("MsAt = %d, want 800", got)
	}
}

func TestBarHitModes(t *testing.T) {
	l := LayoutTimeline(timelineFixture(), 60)
	a := l.Bars[0]

	tests := []struct {
		col  int
		want drag.Mode
	}{
		{2, drag.ModeResizeStart},
		{5, drag.ModeMove},
		{8, drag.ModeResizeEnd},
	}
	for _, tt := range tests {
		got := drag.HitMode(PointerX(tt.col), a.LeftPx, a.WidthPx, ResizeHandlePx)
		if got != tt.want {
			t.Errorf("col %d: mode = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestTimelineRender(t *testing.T) {
	l := LayoutTimeline(timelineFixture(), 60)
	out := Timeline(l)
	lines := strings.Split(out, "\n")
	if len(lines) != l.Height() {
		t.Fatalf("rendered %d lines, want %d", len(lines), l.Height())
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "Timeline") {
		t.Errorf("missing content:\n%s", out)
	}
}

func TestTimelineEmptyHint(t *testing.T) {
	out := Timeline(LayoutTimeline(TimelineState{PixelsPerSecond: 100}, 80))
	if !strings.Contains(out, "No words yet") {
		t.Errorf("missing hint:\n%s", out)
	}
}

func TestFrameSize(t *testing.T) {
	tests := []struct {
		name          string
		frame         arrange.Frame
		width, height int
		wantW, wantH  int
	}{
		{"landscape limited by width", arrange.DefaultFrame(false), 60, 40, 60, 17},
		{"portrait limited by height", arrange.DefaultFrame(true), 60, 20, 23, 20},
		{"no frame", arrange.Frame{}, 60, 20, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FrameSize(tt.frame, tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FrameSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPlaceTokens(t *testing.T) {
	tokens := []arrange.Token{
		{Index: 0, Text: "hello", XPct: 50, YPct: 50, Opacity: 1, ZIndex: 2},
		{Index: 1, Text: "gone", XPct: 50, YPct: 50, Opacity: 0},
		{Index: 2, Text: "slot", XPct: 10, YPct: 10, Opacity: 1, Placeholder: true},
		{Index: 3, Text: "edge", XPct: 100, YPct: 100, Opacity: 1, ZIndex: 1},
	}
	boxes := PlaceTokens(tokens, 40, 10)
	if len(boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(boxes))
	}
	// Paint order follows z-index.
	if boxes[0].Index != 3 || boxes[1].Index != 0 {
		t.Fatalf("order = %d, %d", boxes[0].Index, boxes[1].Index)
	}
	if r := boxes[1].Rect; r.X != 18 || r.Y != 5 || r.Width != 5 {
		t.Errorf("centred box = %+v", r)
	}
	if r := boxes[0].Rect; r.X != 36 || r.Y != 9 {
		t.Errorf("edge box not clamped: %+v", r)
	}

	if b, ok := TokenAt(boxes, 20, 5); !ok || b.Index != 0 {
		t.Errorf("TokenAt = %+v, %v", b, ok)
	}
	if _, ok := TokenAt(boxes, 0, 0); ok {
		t.Error("TokenAt on empty cell")
	}
}

func TestFramePreviewSize(t *testing.T) {
	boxes := PlaceTokens([]arrange.Token{{Index: 0, Text: "hi", XPct: 50, YPct: 50, Opacity: 1}}, 30, 8)
	out := FramePreview("Frame", boxes, 0, 30, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("lines = %d, want 10", len(lines))
	}
	if !strings.Contains(out, "hi") {
		t.Error("token text missing")
	}
}

func TestWordListFollow(t *testing.T) {
	tests := []struct {
		name                          string
		offset, selected, rows, total int
		want                          int
	}{
		{"below view", 0, 7, 5, 20, 3},
		{"above view", 6, 1, 5, 20, 1},
		{"inside view", 2, 4, 5, 20, 2},
		{"clamped to end", 18, -1, 5, 20, 15},
		{"short list", 3, -1, 5, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := WordListState{ScrollOffset: tt.offset}
			s.Follow(tt.selected, tt.rows, tt.total)
			if s.ScrollOffset != tt.want {
				t.Errorf("offset = %d, want %d", s.ScrollOffset, tt.want)
			}
		})
	}
}

func TestWordListRows(t *testing.T) {
	words := []transcript.Word{
		{Text: "one", Start: 0, End: 400},
		{Text: "two", Start: 400, End: 800, XPct: transcript.Ptr(10.0), YPct: transcript.Ptr(20.0)},
	}
	out := WordList(WordListState{}, words, 1, 100, 40, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2", len(lines))
	}
	if !strings.Contains(lines[1], "▸") || !strings.Contains(lines[1], "one") {
		t.Errorf("active row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "⌖") {
		t.Errorf("pinned mark missing: %q", lines[2])
	}
}

func TestCommandInputEditing(t *testing.T) {
	var s CommandInputState
	s.Open()
	s.InsertRunes([]rune("sek 1")...)
	s.CursorPos = 2
	s.InsertRunes('e')
	if got := string(s.Input); got != "seek 1" {
		t.Fatalf("input = %q", got)
	}
	s.MoveCursorRight()
	s.Backspace()
	if got := s.GetCommand(); got != "see 1" {
		t.Errorf("command = %q", got)
	}
	if s.Active || len(s.Input) != 0 {
		t.Errorf("GetCommand left %+v", s)
	}
}

func TestControlBoxesFitWidth(t *testing.T) {
	for _, g := range GetControlGroups() {
		box := RenderControlBox(g, 28)
		for i, line := range strings.Split(box, "\n") {
			if w := lipgloss.Width(line); w > 28 {
				t.Errorf("%s line %d width %d", g.Name, i, w)
			}
		}
	}
}

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/caption-timeline-cli/clock"
	"github.com/user/caption-timeline-cli/editor"
	"github.com/user/caption-timeline-cli/transcript"
	"github.com/user/caption-timeline-cli/tui/forms"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	fake := clock.NewFake(10_000)
	s := editor.New(transcript.Transcript{
		{Start: 0, End: 500, Words: []transcript.Word{{Text: "hello", Start: 0, End: 500}}},
		{Start: 2000, End: 2800, Words: []transcript.Word{{Text: "world", Start: 2000, End: 2800}}},
	}, editor.Options{Playhead: clock.NewPlayhead(fake)})
	m := NewModel(Options{Session: s})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(runes(k))
	}
}

func mouse(m *Model, action tea.MouseAction, x, y int) {
	btn := tea.MouseButtonLeft
	if action == tea.MouseActionMotion {
		btn = tea.MouseButtonNone
	}
	m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: btn})
}

func wordTexts(m *Model) []string {
	var out []string
	for _, w := range m.session.Transcript().Flatten() {
		out = append(out, w.Text)
	}
	return out
}

func TestSelectDuplicateDelete(t *testing.T) {
	m := newTestModel(t)

	press(m, "j")
	if got := m.session.Selected(); got != 0 {
		t.Fatalf("selected = %d, want 0", got)
	}
	press(m, "d")
	if got := strings.Join(wordTexts(m), ","); got != "hello,hello,world" {
		t.Fatalf("words after duplicate = %s", got)
	}
	press(m, "x")
	if got := len(wordTexts(m)); got != 2 {
		t.Errorf("words after delete = %d, want 2", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.session.Selected() != transcript.NoSelection {
		t.Error("esc should clear the selection")
	}
	press(m, "x")
	if !m.commandInput.IsError {
		t.Error("delete without selection should flash an error")
	}
}

func TestSeekSteps(t *testing.T) {
	m := newTestModel(t)

	press(m, "l")
	if got := m.session.Now(); got != 1000 {
		t.Fatalf("now = %d, want 1000", got)
	}
	press(m, ">", "l")
	if got := m.session.Now(); got != 3000 {
		t.Fatalf("now = %d, want 3000", got)
	}
	press(m, "<", "<", "h")
	if got := m.session.Now(); got != 2500 {
		t.Errorf("now = %d, want 2500", got)
	}
	press(m, "h", "h", "h", "h", "h", "h")
	if got := m.session.Now(); got != 0 {
		t.Errorf("seek should clamp at zero, got %d", got)
	}
}

func TestNudgeSelected(t *testing.T) {
	m := newTestModel(t)
	press(m, "j", "j", "]", "]")
	w, _ := m.session.SelectedWord()
	if w.Start != 2020 || w.End != 2820 {
		t.Errorf("nudged word = [%d, %d]", w.Start, w.End)
	}
}

func TestCommandLine(t *testing.T) {
	m := newTestModel(t)
	press(m, "j", "j", ":")
	if !m.commandInput.Active {
		t.Fatal("':' should open command mode")
	}
	m.Update(runes("time 2.1 2.9"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.commandInput.Active {
		t.Error("enter should leave command mode")
	}
	w, _ := m.session.SelectedWord()
	if w.Start != 2100 || w.End != 2900 {
		t.Errorf("timing = [%d, %d], want [2100, 2900]", w.Start, w.End)
	}
	if m.commandInput.IsError {
		t.Errorf("unexpected error: %s", m.commandInput.Result)
	}

	press(m, ":")
	m.Update(runes("bogus"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.commandInput.IsError || !strings.Contains(m.commandInput.Result, "unknown command") {
		t.Errorf("result = %q", m.commandInput.Result)
	}
}

func TestDragBarMovesWord(t *testing.T) {
	m := newTestModel(t)
	g := m.geometry()

	var col, row int
	found := false
	for _, b := range g.timeline.Bars {
		if b.Index == 1 {
			col = 2 + b.Col + b.Width/2
			row = g.timelineTop + g.timeline.LaneRow(b.Lane)
			found = true
		}
	}
	if !found {
		t.Fatal("no bar for word 1")
	}

	mouse(m, tea.MouseActionPress, col, row)
	if !m.timeline.Dragging() || m.session.Selected() != 1 {
		t.Fatalf("press did not start a drag (selected %d)", m.session.Selected())
	}
	// Five cells at 100px/s is 400ms.
	mouse(m, tea.MouseActionMotion, col+5, row)
	mouse(m, tea.MouseActionRelease, col+5, row)

	if m.timeline.Dragging() {
		t.Error("release should end the drag")
	}
	w, _ := m.session.SelectedWord()
	if w.Start != 2400 || w.End != 3200 {
		t.Errorf("dragged word = [%d, %d], want [2400, 3200]", w.Start, w.End)
	}
}

func TestResizeCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	g := m.geometry()
	b := g.timeline.Bars[1]
	col := 2 + b.Col + b.Width/2
	row := g.timelineTop + g.timeline.LaneRow(b.Lane)

	mouse(m, tea.MouseActionPress, col, row)
	mouse(m, tea.MouseActionMotion, col+2, row)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mouse(m, tea.MouseActionMotion, col+10, row)

	if m.dragging() {
		t.Fatal("resize should cancel the drag")
	}
	w, _ := m.session.Transcript().WordAt(1)
	if w.Start != 2160 {
		t.Errorf("start = %d, want the last applied 2160", w.Start)
	}
}

func TestScrubBarSeeks(t *testing.T) {
	m := newTestModel(t)
	g := m.geometry()
	row := g.timelineTop + g.timeline.ScrubRow()
	col := 2 + g.timeline.ScrubCols/2

	mouse(m, tea.MouseActionPress, col, row)
	if got := m.session.Now(); got < 4500 || got > 5500 {
		t.Errorf("now = %d, want about half of 10s", got)
	}
	mouse(m, tea.MouseActionRelease, col, row)
	if m.scrubber.Dragging() {
		t.Error("release should end the scrub")
	}
}

func TestClickWordListSelects(t *testing.T) {
	m := newTestModel(t)
	g := m.geometry()
	mouse(m, tea.MouseActionPress, g.wordsLeft+3, g.wordsFirstRow+1)
	if got := m.session.Selected(); got != 1 {
		t.Errorf("selected = %d, want 1", got)
	}
	if m.focus != FocusWords {
		t.Errorf("focus = %v", m.focus)
	}
}

func TestClipboard(t *testing.T) {
	m := newTestModel(t)
	origWrite, origRead := clipboardWrite, clipboardRead
	t.Cleanup(func() { clipboardWrite, clipboardRead = origWrite, origRead })

	var copied string
	clipboardWrite = func(s string) error { copied = s; return nil }
	clipboardRead = func() (string, error) { return "  pasted \n text ", nil }

	press(m, "j", "y")
	if copied != "hello" {
		t.Errorf("copied %q", copied)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	found := false
	for _, text := range wordTexts(m) {
		if text == "pasted text" {
			found = true
		}
	}
	if !found {
		t.Errorf("pasted word missing: %v", wordTexts(m))
	}

	clipboardRead = func() (string, error) { return "", errors.New("no clipboard") }
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if !m.commandInput.IsError {
		t.Error("clipboard failure should flash an error")
	}
}

func TestAddFormOnlyInsertsOnSubmit(t *testing.T) {
	m := newTestModel(t)
	press(m, "a")
	if m.form == nil || m.formKind != formWord {
		t.Fatal("a should open the word form")
	}
	if got := len(wordTexts(m)); got != 2 {
		t.Fatalf("opening the form added a word: %d", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.form != nil || len(wordTexts(m)) != 2 {
		t.Fatal("esc should close the form without changes")
	}

	m.openAddForm()
	m.wordForm = &forms.WordFormResult{Text: " hey ", Start: "1.0", End: "1.5"}
	m.finishForm()
	for _, w := range m.session.Transcript().Flatten() {
		if w.Text == "hey" {
			if w.Start != 1000 || w.End != 1500 {
				t.Errorf("added word = [%d, %d]", w.Start, w.End)
			}
			return
		}
	}
	t.Errorf("submitted word missing: %v", wordTexts(m))
}

func TestZoomLimits(t *testing.T) {
	m := newTestModel(t)
	for range 20 {
		press(m, "+")
	}
	if m.pps != maxPixelsPerSecond || m.timeline.PixelsPerSecond() != maxPixelsPerSecond {
		t.Errorf("pps = %v / %v", m.pps, m.timeline.PixelsPerSecond())
	}
	for range 20 {
		press(m, "-")
	}
	if m.pps != minPixelsPerSecond {
		t.Errorf("pps = %v", m.pps)
	}
}

func TestViewLayout(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Timeline", "Words (2)", "hello", "Nothing selected"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	press(m, "?")
	if !m.showHelp {
		t.Fatal("? should show help")
	}
	press(m, "j")
	if m.showHelp || m.session.Selected() != transcript.NoSelection {
		t.Error("any key should only dismiss help")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit")
	}
	if got := m.View(); got != "Goodbye!\n" {
		t.Errorf("view = %q", got)
	}
}

func TestHelpCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	g := m.geometry()
	b := g.timeline.Bars[1]
	col := 2 + b.Col + b.Width/2
	row := g.timelineTop + g.timeline.LaneRow(b.Lane)

	mouse(m, tea.MouseActionPress, col, row)
	press(m, "?")
	mouse(m, tea.MouseActionRelease, col, row)
	press(m, "j")
	mouse(m, tea.MouseActionMotion, col+10, row)

	if m.dragging() || m.bus.Len() != 0 {
		t.Fatalf("help left the gesture live (subscribers %d)", m.bus.Len())
	}
	w, _ := m.session.Transcript().WordAt(1)
	if w.Start != 2000 {
		t.Errorf("hover after help moved the word to %d", w.Start)
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m := newTestModel(t)
	c := m.session.Playhead().Clock()

	press(m, " ")
	if paused, _ := c.Paused(); paused || m.statusBar.Paused {
		t.Fatal("space should start playback")
	}
	press(m, " ")
	if paused, _ := c.Paused(); !paused || !m.statusBar.Paused {
		t.Error("second space should pause")
	}
}

func TestSpaceWithoutPlayerFlashes(t *testing.T) {
	s := editor.New(transcript.Transcript{}, editor.Options{})
	m := NewModel(Options{Session: s})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	press(m, " ")
	if !m.commandInput.IsError || !strings.Contains(m.commandInput.Result, "Not connected") {
		t.Errorf("result = %q", m.commandInput.Result)
	}
}

package editor

import (
	"errors"
	"testing"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/clock"
	"github.com/user/caption-timeline-cli/drag"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

type call struct {
	kind string
	now  bool
	id   string
	t    transcript.Transcript
}

type recorder struct{ calls []call }

func (r *recorder) SaveTranscript(t transcript.Transcript) {
	r.calls = append(r.calls, call{kind: "transcript", now: true, t: t})
}
func (r *recorder) QueueTranscript(t transcript.Transcript) {
	r.calls = append(r.calls, call{kind: "transcript", t: t})
}
func (r *recorder) SaveLyricPreset(id string) {
	r.calls = append(r.calls, call{kind: "lyric", now: true, id: id})
}
func (r *recorder) SaveLayoutPreset(id string) {
	r.calls = append(r.calls, call{kind: "layout", now: true, id: id})
}

func (r *recorder) last() call {
	if len(r.calls) == 0 {
		return call{}
	}
	return r.calls[len(r.calls)-1]
}

func sample() transcript.Transcript {
	return transcript.Transcript{
		{Start: 0, End: 900, Words: []transcript.Word{
			{Text: "one", Start: 0, End: 400},
			{Text: "two", Start: 500, End: 900},
		}},
		{Start: 2_000, End: 2_400, Words: []transcript.Word{
			{Text: "three", Start: 2_000, End: 2_400},
		}},
	}
}

func newSession(t *testing.T) (*Session, *recorder, *clock.Fake) {
	t.Helper()
	rec := &recorder{}
	fake := clock.NewFake(10_000)
	s := New(sample(), Options{Playhead: clock.NewPlayhead(fake), Saver: rec})
	return s, rec, fake
}

func TestNewFallsBackToDefaultPresets(t *testing.T) {
	s := New(nil, Options{LyricPreset: "nope", LayoutPreset: "nope"})
	if s.LyricID() != style.DefaultPresetID || s.LayoutID() != arrange.DefaultLayoutID {
		t.Fatalf("presets = %q, %q", s.LyricID(), s.LayoutID())
	}
	if s.Selected() != transcript.NoSelection {
		t.Fatalf("selected = %d", s.Selected())
	}
}

func TestAddWordAtPlayhead(t *testing.T) {
	s, rec, _ := newSession(t)
	if err := s.Seek(1_000); err != nil {
		t.Fatal(err)
	}
	s.Select(1)
	s.AddWord("new")
	if s.Selected() != 2 {
		t.Fatalf("selected = %d", s.Selected())
	}
	w, _ := s.SelectedWord()
	if w.Text != "new" || w.Start != 1_000 || w.End != 1_400 {
		t.Fatalf("word = %+v", w)
	}
	if c := rec.last(); c.kind != "transcript" || c.now {
		t.Fatalf("add should queue a save, got %+v", c)
	}
}

func TestDuplicateAndDelete(t *testing.T) {
	s, rec, _ := newSession(t)
	if s.DuplicateSelected() {
		t.Fatal("duplicate without selection should do nothing")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("no-op saved: %+v", rec.calls)
	}
	s.Select(0)
	if !s.DuplicateSelected() || s.Selected() != 1 {
		t.Fatalf("duplicate: selected = %d", s.Selected())
	}
	if s.Transcript().TotalWords() != 4 {
		t.Fatalf("words = %d", s.Transcript().TotalWords())
	}

	s.Select(3)
	if !s.DeleteSelected() {
		t.Fatal("delete failed")
	}
	if s.Transcript().TotalWords() != 3 || len(s.Transcript()) != 1 {
		t.Fatalf("after delete: %+v", s.Transcript())
	}
	if s.Selected() != 2 {
		t.Fatalf("selection not clamped: %d", s.Selected())
	}
}

func TestTextAndStyleEditsAreDebounced(t *testing.T) {
	s, rec, _ := newSession(t)
	s.Select(2)
	s.UpdateSelectedText("THREE")
	s.SetSelectedStyle(transcript.StyleOverride{}.WithColor("#FF0000"))
	for _, c := range rec.calls {
		if c.now {
			t.Fatalf("edit saved immediately: %+v", c)
		}
	}
	w, _ := s.SelectedWord()
	if w.Text != "THREE" || w.Style == nil || *w.Style.Color != "#FF0000" {
		t.Fatalf("word = %+v", w)
	}
}

func TestApplyStyleAllSavesImmediately(t *testing.T) {
	s, rec, _ := newSession(t)
	s.ApplyStyleAll(transcript.StyleOverride{FontWeight: transcript.Ptr(900)})
	if c := rec.last(); !c.now || c.kind != "transcript" {
		t.Fatalf("bulk style not saved at once: %+v", c)
	}
	for _, w := range s.Transcript().Flatten() {
		if w.Style == nil || *w.Style.FontWeight != 900 {
			t.Fatalf("word not styled: %+v", w)
		}
	}
	before := len(rec.calls)
	s.ApplyStyleAll(transcript.StyleOverride{})
	if len(rec.calls) != before {
		t.Fatal("empty override should not save")
	}
}

func TestPresetChanges(t *testing.T) {
	s, rec, _ := newSession(t)
	if err := s.SetLyricPreset("bold-pop"); err != nil {
		t.Fatal(err)
	}
	if c := rec.last(); c.kind != "lyric" || c.id != "bold-pop" {
		t.Fatalf("lyric save = %+v", c)
	}
	if err := s.SetLayoutPreset("karaoke"); err != nil {
		t.Fatal(err)
	}
	if c := rec.last(); c.kind != "layout" || c.id != "karaoke" {
		t.Fatalf("layout save = %+v", c)
	}
	if err := s.SetLyricPreset("missing"); !errors.Is(err, style.ErrUnknownPreset) {
		t.Fatalf("err = %v", err)
	}
	if err := s.SetLayoutPreset("missing"); !errors.Is(err, arrange.ErrUnknownLayout) {
		t.Fatalf("err = %v", err)
	}
	n := len(rec.calls)
	if err := s.SetLayoutPreset("karaoke"); err != nil || len(rec.calls) != n {
		t.Fatal("re-selecting the same layout should not save")
	}
}

func TestCycleLayoutWraps(t *testing.T) {
	s, _, _ := newSession(t)
	list := arrange.List()
	s.CycleLayout(-1)
	if s.LayoutID() != list[len(list)-1].ID {
		t.Fatalf("layout = %q", s.LayoutID())
	}
	s.CycleLayout(1)
	if s.LayoutID() != list[0].ID {
		t.Fatalf("layout = %q", s.LayoutID())
	}
}

func TestSelectionNavigation(t *testing.T) {
	s, _, _ := newSession(t)
	s.SelectPrev()
	if s.Selected() != 2 {
		t.Fatalf("prev from none = %d", s.Selected())
	}
	s.SelectNext()
	if s.Selected() != 2 {
		t.Fatalf("next at end = %d", s.Selected())
	}
	s.Select(99)
	if s.Selected() != transcript.NoSelection {
		t.Fatal("unresolvable index selected")
	}
	if !s.SelectAt(600) || s.Selected() != 1 {
		t.Fatalf("SelectAt = %d", s.Selected())
	}
}

func TestFrameFollowsPlayhead(t *testing.T) {
	s, _, fake := newSession(t)
	fake.Advance(100)
	if _, err := s.Playhead().Sync(); err != nil {
		t.Fatal(err)
	}
	toks := s.Frame(FrameOptions{})
	if len(toks) != 1 || toks[0].Text != "one" {
		t.Fatalf("tokens = %+v", toks)
	}
	if toks := s.FrameAt(5_000, FrameOptions{}); len(toks) != 0 {
		t.Fatalf("silence rendered %d tokens", len(toks))
	}
	if s.Duration() != 10_000 {
		t.Fatalf("duration = %d", s.Duration())
	}
}

func TestSegmentsAndSections(t *testing.T) {
	s, _, _ := newSession(t)
	if got := len(s.Segments()); got != 3 {
		t.Fatalf("segments = %d", got)
	}
	if got := len(s.Sections()); got != 2 {
		t.Fatalf("sections = %d", got)
	}
}

func TestSessionDrivesTimelineDrag(t *testing.T) {
	s, rec, _ := newSession(t)
	bus := drag.NewBus()
	tl := drag.NewTimeline(s, bus, s, 100)
	if !tl.Begin(0, drag.ModeMove, 10) {
		t.Fatal("Begin failed")
	}
	bus.Publish(drag.PointerEvent{Kind: drag.PointerMove, X: 60})
	bus.Publish(drag.PointerEvent{Kind: drag.PointerUp, X: 60})

	w, _ := s.Transcript().WordAt(0)
	if w.Start != 500 || w.End != 900 {
		t.Fatalf("word = %+v", w)
	}
	if c := rec.last(); !c.now || c.t.Flatten()[0].Start != 500 {
		t.Fatalf("release did not commit: %+v", c)
	}
	if s.Selected() != 0 {
		t.Fatalf("selected = %d", s.Selected())
	}
}

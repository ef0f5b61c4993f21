// Package editor owns the state of one editing session: the transcript, the
// selection, the chosen presets and the playhead. It is the single writer
// every input path goes through, and it decides when an edit is saved.
package editor

import (
	"fmt"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/captions"
	"github.com/user/caption-timeline-cli/clock"
	"github.com/user/caption-timeline-cli/segments"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

// Saver is the persistence surface the session uses. Save methods send now,
// Queue methods wait for the debounce window. *persist.Gateway implements it.
type Saver interface {
	SaveTranscript(t transcript.Transcript)
	QueueTranscript(t transcript.Transcript)
	SaveLyricPreset(id string)
	SaveLayoutPreset(id string)
}

type discard struct{}

func (discard) SaveTranscript(transcript.Transcript)  {}
func (discard) QueueTranscript(transcript.Transcript) {}
func (discard) SaveLyricPreset(string)                {}
func (discard) SaveLayoutPreset(string)               {}

// Options configure a Session. Zero values take defaults.
type Options struct {
	Playhead     *clock.Playhead
	Saver        Saver
	Lyrics       *style.Library
	LyricPreset  string
	LayoutPreset string
	Segments     segments.Options
	Captions     captions.Options
}

// Session is the editor state. It is not safe for concurrent use; all calls
// come from the UI loop.
type Session struct {
	t        transcript.Transcript
	selected int
	revision int

	lyricID  string
	layoutID string

	playhead *clock.Playhead
	saver    Saver
	lyrics   *style.Library
	segOpts  segments.Options
	capOpts  captions.Options
}

// New starts a session over t. Unknown preset ids fall back to the defaults.
func New(t transcript.Transcript, opts Options) *Session {
	s := &Session{
		t:        t,
		selected: transcript.NoSelection,
		playhead: opts.Playhead,
		saver:    opts.Saver,
		lyrics:   opts.Lyrics,
		segOpts:  opts.Segments,
		capOpts:  opts.Captions,
	}
	if s.playhead == nil {
		s.playhead = clock.NewPlayhead(nil)
	}
	if s.saver == nil {
		s.saver = discard{}
	}
	if s.lyrics == nil {
		s.lyrics = style.Builtin()
	}
	if s.segOpts == (segments.Options{}) {
		s.segOpts = segments.DefaultOptions()
	}
	if s.capOpts == (captions.Options{}) {
		s.capOpts = captions.DefaultOptions()
	}
	s.lyricID = style.DefaultPresetID
	if s.lyrics.Has(opts.LyricPreset) {
		s.lyricID = opts.LyricPreset
	}
	s.layoutID = arrange.DefaultLayoutID
	if _, ok := arrange.Lookup(opts.LayoutPreset); ok {
		s.layoutID = opts.LayoutPreset
	}
	return s
}

// Transcript returns the current transcript. Callers must not modify it.
func (s *Session) Transcript() transcript.Transcript { return s.t }

// Replace swaps in next without saving. Drag controllers call it on every
// move and commit through the saver on release.
func (s *Session) Replace(next transcript.Transcript) {
	s.t = next
	s.revision++
	s.clampSelection()
}

// Revision increases on every transcript change.
func (s *Session) Revision() int { return s.revision }

// Selected returns the selected global index or transcript.NoSelection.
func (s *Session) Selected() int { return s.selected }

// Select selects idx. Indices that do not resolve clear the selection.
func (s *Session) Select(idx int) {
	if _, ok := s.t.WordAt(idx); !ok {
		idx = transcript.NoSelection
	}
	s.selected = idx
}

// SelectedWord returns the selected word.
func (s *Session) SelectedWord() (transcript.Word, bool) {
	return s.t.WordAt(s.selected)
}

// SelectNext moves the selection forward, starting at the first word.
func (s *Session) SelectNext() {
	total := s.t.TotalWords()
	if total == 0 {
		return
	}
	if s.selected == transcript.NoSelection {
		s.selected = 0
		return
	}
	s.selected = min(s.selected+1, total-1)
}

// SelectPrev moves the selection back, starting at the last word.
func (s *Session) SelectPrev() {
	total := s.t.TotalWords()
	if total == 0 {
		return
	}
	if s.selected == transcript.NoSelection {
		s.selected = total - 1
		return
	}
	s.selected = max(s.selected-1, 0)
}

// SelectAt selects the first word active at ms, if any.
func (s *Session) SelectAt(ms int64) bool {
	for i, w := range s.t.Flatten() {
		if w.ActiveAt(ms) {
			s.selected = i
			return true
		}
	}
	return false
}

func (s *Session) clampSelection() {
	if s.selected == transcript.NoSelection {
		return
	}
	if total := s.t.TotalWords(); s.selected >= total {
		s.selected = total - 1
	}
}

func (s *Session) apply(r transcript.Result) {
	s.t = r.Next
	s.selected = r.Selected
	s.revision++
	s.clampSelection()
}

// AddWord inserts a word at the playhead after the selection and selects it.
func (s *Session) AddWord(text string) {
	s.apply(transcript.AddWord(s.t, s.Now(), s.selected, text))
	s.saver.QueueTranscript(s.t)
}

// DuplicateSelected clones the selected word and selects the clone.
func (s *Session) DuplicateSelected() bool {
	r := transcript.DuplicateWord(s.t, s.selected)
	if r.Next.TotalWords() == s.t.TotalWords() {
		return false
	}
	s.apply(r)
	s.saver.QueueTranscript(s.t)
	return true
}

// DeleteSelected removes the selected word.
func (s *Session) DeleteSelected() bool {
	if _, ok := s.SelectedWord(); !ok {
		return false
	}
	s.apply(transcript.DeleteWord(s.t, s.selected))
	s.saver.QueueTranscript(s.t)
	return true
}

// UpdateSelectedText replaces the selected word's text. The save is debounced.
func (s *Session) UpdateSelectedText(text string) bool {
	if _, ok := s.SelectedWord(); !ok {
		return false
	}
	s.apply(transcript.UpdateWordText(s.t, s.selected, text))
	s.saver.QueueTranscript(s.t)
	return true
}

// SetSelectedTiming sets the selected word's start and end. The save is
// debounced.
func (s *Session) SetSelectedTiming(start, end int64) bool {
	if _, ok := s.SelectedWord(); !ok {
		return false
	}
	s.Replace(transcript.SetWordTiming(s.t, s.selected, start, end))
	s.saver.QueueTranscript(s.t)
	return true
}

// SetSelectedStyle replaces the selected word's style override. The save is
// debounced.
func (s *Session) SetSelectedStyle(o transcript.StyleOverride) bool {
	if _, ok := s.SelectedWord(); !ok {
		return false
	}
	s.Replace(transcript.SetWordStyle(s.t, s.selected, o))
	s.saver.QueueTranscript(s.t)
	return true
}

// SetSelectedLane pins the selected word to a lane, or unpins it with nil.
func (s *Session) SetSelectedLane(lane *int) bool {
	if _, ok := s.SelectedWord(); !ok {
		return false
	}
	s.Replace(transcript.SetWordLane(s.t, s.selected, lane))
	s.saver.QueueTranscript(s.t)
	return true
}

// ClearSelectedPosition returns the selected word to the layout flow.
func (s *Session) ClearSelectedPosition() bool {
	w, ok := s.SelectedWord()
	if !ok || !w.Positioned() {
		return false
	}
	s.Replace(transcript.ClearWordPosition(s.t, s.selected))
	s.saver.SaveTranscript(s.t)
	return true
}

// ApplyStyleAll merges o into every word and saves at once.
func (s *Session) ApplyStyleAll(o transcript.StyleOverride) {
	if o.Empty() {
		return
	}
	s.Replace(transcript.ApplyStyleAll(s.t, o))
	s.saver.SaveTranscript(s.t)
}

// ShiftAll moves every word by deltaMs and saves at once.
func (s *Session) ShiftAll(deltaMs int64) {
	next := transcript.ShiftAll(s.t, deltaMs)
	if len(next) == 0 {
		return
	}
	s.Replace(next)
	s.saver.SaveTranscript(s.t)
}

// Commit saves the current transcript now.
func (s *Session) Commit() {
	s.saver.SaveTranscript(s.t)
}

// SaveTranscript saves t now. It lets the session act as the committer of
// its own drag controllers.
func (s *Session) SaveTranscript(t transcript.Transcript) {
	s.saver.SaveTranscript(t)
}

// LyricID returns the active lyric preset id.
func (s *Session) LyricID() string { return s.lyricID }

// LayoutID returns the active layout preset id.
func (s *Session) LayoutID() string { return s.layoutID }

// Lyric returns the active lyric preset.
func (s *Session) Lyric() style.Preset { return s.lyrics.Lookup(s.lyricID) }

// Layout returns the active layout preset.
func (s *Session) Layout() arrange.LayoutPreset { return arrange.LookupOrDefault(s.layoutID) }

// Lyrics returns the preset library.
func (s *Session) Lyrics() *style.Library { return s.lyrics }

// SetLyricPreset switches the lyric preset and saves the id at once.
func (s *Session) SetLyricPreset(id string) error {
	if !s.lyrics.Has(id) {
		return fmt.Errorf("%w: %q", style.ErrUnknownPreset, id)
	}
	if id == s.lyricID {
		return nil
	}
	s.lyricID = id
	s.revision++
	s.saver.SaveLyricPreset(id)
	return nil
}

// SetLayoutPreset switches the layout preset and saves the id at once.
func (s *Session) SetLayoutPreset(id string) error {
	if _, ok := arrange.Lookup(id); !ok {
		return fmt.Errorf("%w: %q", arrange.ErrUnknownLayout, id)
	}
	if id == s.layoutID {
		return nil
	}
	s.layoutID = id
	s.revision++
	s.saver.SaveLayoutPreset(id)
	return nil
}

// CycleLayout moves to the next (or previous) layout in the catalog.
func (s *Session) CycleLayout(step int) {
	list := arrange.List()
	at := 0
	for i, p := range list {
		if p.ID == s.layoutID {
			at = i
			break
		}
	}
	next := ((at+step)%len(list) + len(list)) % len(list)
	_ = s.SetLayoutPreset(list[next].ID)
}

// CycleLyric moves to the next (or previous) lyric preset by id.
func (s *Session) CycleLyric(step int) {
	ids := s.lyrics.IDs()
	if len(ids) == 0 {
		return
	}
	at := 0
	for i, id := range ids {
		if id == s.lyricID {
			at = i
			break
		}
	}
	next := ((at+step)%len(ids) + len(ids)) % len(ids)
	_ = s.SetLyricPreset(ids[next])
}

// Playhead returns the session's playhead.
func (s *Session) Playhead() *clock.Playhead { return s.playhead }

// Now returns the playhead time.
func (s *Session) Now() int64 { return s.playhead.Now() }

// Seek moves the playhead and the media clock.
func (s *Session) Seek(ms int64) error { return s.playhead.Seek(ms) }

// TogglePlay flips the media clock between playing and paused.
func (s *Session) TogglePlay() (paused bool, err error) { return s.playhead.TogglePlay() }

// Duration is the media duration when the clock knows it, otherwise the
// transcript's last end.
func (s *Session) Duration() int64 {
	if c := s.playhead.Clock(); c != nil {
		if d, err := c.DurationMs(); err == nil && d > 0 {
			return d
		}
	}
	if b, ok := s.t.Span(); ok {
		return b.End
	}
	return 0
}

// Segments returns the timeline segments of the transcript.
func (s *Session) Segments() []segments.Segment {
	return segments.Compute(s.t.Flatten(), s.segOpts)
}

// Sections returns the timeline sections of the transcript.
func (s *Session) Sections() []segments.Section {
	return segments.Sections(s.t.Flatten(), s.segOpts.GapMs)
}

// Lines returns the caption lines at ms.
func (s *Session) Lines(ms int64) []captions.Line {
	return captions.Group(s.t, ms, s.capOpts)
}

// FrameOptions select how Frame lays out the captions.
type FrameOptions struct {
	Portrait bool
	Frame    arrange.Frame
	Scale    float64
}

// Frame lays out the captions at the playhead.
func (s *Session) Frame(opts FrameOptions) []arrange.Token {
	return s.FrameAt(s.Now(), opts)
}

// FrameAt lays out the captions at ms. A given frame decides the
// orientation.
func (s *Session) FrameAt(ms int64, opts FrameOptions) []arrange.Token {
	portrait := opts.Portrait
	if opts.Frame.Width > 0 && opts.Frame.Height > 0 {
		portrait = opts.Frame.Portrait()
	}
	return arrange.Render(arrange.Input{
		Lyric:    s.Lyric(),
		Layout:   s.Layout(),
		Lines:    s.Lines(ms),
		Words:    s.t,
		NowMs:    ms,
		Portrait: portrait,
		Scale:    opts.Scale,
		Frame:    opts.Frame,
	})
}

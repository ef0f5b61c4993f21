package drag

import (
	"math"

	"github.com/user/caption-timeline-cli/transcript"
)

// Mode is what a timeline drag changes.
type Mode int

const (
	// ModeMove shifts the whole word.
	ModeMove Mode = iota
	// ModeResizeStart drags the word's start edge.
	ModeResizeStart
	// ModeResizeEnd drags the word's end edge.
	ModeResizeEnd
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResizeStart:
		return "resize-start"
	case ModeResizeEnd:
		return "resize-end"
	default:
		return "unknown"
	}
}

// DefaultPixelsPerSecond is the timeline zoom used when none is configured.
const DefaultPixelsPerSecond = 100.0

// anchor is what the drag captured at pointer-down.
type anchor struct {
	index     int
	pos       transcript.Position
	startX    float64
	origStart int64
	origEnd   int64
}

// Timeline converts pointer motion into start/end edits of one word.
//
// States are idle and dragging(mode, anchor). Every move re-resolves the word
// by its global index rather than reusing a captured reference, so a
// structural change made during the gesture cannot leave the drag writing to
// a stale word. Release commits the latest transcript; cancel only ends the
// gesture and keeps whatever was already applied.
type Timeline struct {
	doc    Document
	source Source
	commit Committer

	pixelsPerSecond float64

	dragging    bool
	mode        Mode
	anchor      anchor
	unsubscribe func()
}

// NewTimeline wires a timeline drag controller.
func NewTimeline(doc Document, source Source, commit Committer, pixelsPerSecond float64) *Timeline {
	c := &Timeline{doc: doc, source: source, commit: commit}
	c.SetPixelsPerSecond(pixelsPerSecond)
	return c
}

// SetPixelsPerSecond changes the timeline zoom. Non-positive values fall back
// to DefaultPixelsPerSecond.
func (c *Timeline) SetPixelsPerSecond(pps float64) {
	if pps <= 0 || math.IsNaN(pps) || math.IsInf(pps, 0) {
		pps = DefaultPixelsPerSecond
	}
	c.pixelsPerSecond = pps
}

// PixelsPerSecond returns the current zoom.
func (c *Timeline) PixelsPerSecond() float64 {
	return c.pixelsPerSecond
}

// Dragging reports whether a gesture is in progress.
func (c *Timeline) Dragging() bool {
	return c.dragging
}

// Mode returns the active drag mode. It is meaningless when idle.
func (c *Timeline) Mode() Mode {
	return c.mode
}

// Index returns the global index being dragged, or transcript.NoSelection.
func (c *Timeline) Index() int {
	if !c.dragging {
		return transcript.NoSelection
	}
	return c.anchor.index
}

// Begin starts a drag of word idx at pointer x. It selects the word and
// subscribes to the pointer source. It returns false when a drag is already
// running or idx does not resolve.
func (c *Timeline) Begin(idx int, mode Mode, x float64) bool {
	if c.dragging {
		return false
	}
	t := c.doc.Transcript()
	pos, ok := transcript.PositionFromGlobalIndex(t, idx)
	if !ok {
		return false
	}
	w := t[pos.Line].Words[pos.Word]
	c.dragging = true
	c.mode = mode
	c.anchor = anchor{index: idx, pos: pos, startX: x, origStart: w.Start, origEnd: w.End}
	c.doc.Select(idx)
	if c.source != nil {
		c.unsubscribe = c.source.Subscribe(c.handle)
	}
	return true
}

func (c *Timeline) handle(ev PointerEvent) {
	if !c.dragging {
		return
	}
	switch ev.Kind {
	case PointerMove:
		c.Move(ev.X)
	case PointerUp:
		c.end()
		if c.commit != nil {
			c.commit.SaveTranscript(c.doc.Transcript())
		}
	case PointerCancel:
		c.end()
	}
}

// Move applies the pointer position x to the dragged word.
func (c *Timeline) Move(x float64) {
	if !c.dragging {
		return
	}
	delta := DeltaMs(x-c.anchor.startX, c.pixelsPerSecond)
	start, end := Apply(c.mode, c.anchor.origStart, c.anchor.origEnd, delta)
	next, ok := transcript.UpdateWord(c.doc.Transcript(), c.anchor.index, func(w transcript.Word) transcript.Word {
		w.Start = start
		w.End = end
		return w
	})
	if ok {
		c.doc.Replace(next)
	}
}

func (c *Timeline) end() {
	c.dragging = false
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// DeltaMs converts a pointer displacement in pixels to milliseconds.
func DeltaMs(dx, pixelsPerSecond float64) int64 {
	if pixelsPerSecond <= 0 {
		return 0
	}
	return int64(math.Round(dx / pixelsPerSecond * 1000))
}

// Apply computes a word's new timing for a drag of deltaMs in mode, starting
// from the timing captured at pointer-down. The result always satisfies
// start >= 0 and end - start >= MinDurationMs.
func Apply(mode Mode, origStart, origEnd, deltaMs int64) (start, end int64) {
	const minDur = transcript.MinDurationMs
	switch mode {
	case ModeResizeStart:
		start = origStart + deltaMs
		if limit := origEnd - minDur; start > limit {
			start = limit
		}
		if start < 0 {
			start = 0
		}
		end = max(origEnd, start+minDur)
	case ModeResizeEnd:
		start = origStart
		end = max(origStart+minDur, origEnd+deltaMs)
	default:
		start = max(0, origStart+deltaMs)
		end = max(start+minDur, origEnd+deltaMs)
	}
	return start, end
}

// HitMode picks a drag mode from where x lands on a rendered word bar.
// Within handle pixels of either edge it resizes that edge; bars too narrow
// to hold two handles only move.
func HitMode(x, barLeft, barWidth, handle float64) Mode {
	if barWidth <= 2*handle {
		return ModeMove
	}
	switch {
	case x-barLeft < handle:
		return ModeResizeStart
	case barLeft+barWidth-x <= handle:
		return ModeResizeEnd
	default:
		return ModeMove
	}
}

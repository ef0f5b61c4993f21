package drag

import (
	"math"

	"github.com/user/caption-timeline-cli/transcript"
)

// Surface is the drag area laid over the video frame. It has the video's
// native pixel size and is drawn at RenderScale.
type Surface struct {
	Left         float64
	Top          float64
	NativeWidth  float64
	NativeHeight float64
	RenderScale  float64
}

// FitScale is the render scale that fits a native-width frame into a
// container.
func FitScale(containerWidth, nativeWidth float64) float64 {
	if nativeWidth <= 0 || containerWidth <= 0 {
		return 1
	}
	return containerWidth / nativeWidth
}

func (s Surface) scale() float64 {
	if s.RenderScale <= 0 {
		return 1
	}
	return s.RenderScale
}

// Width is the on-screen width.
func (s Surface) Width() float64 { return s.NativeWidth * s.scale() }

// Height is the on-screen height.
func (s Surface) Height() float64 { return s.NativeHeight * s.scale() }

// ToPct converts an on-screen point to frame percentages in [0, 100].
func (s Surface) ToPct(x, y float64) (xPct, yPct float64) {
	return pct(x-s.Left, s.Width()), pct(y-s.Top, s.Height())
}

// FromPct converts frame percentages back to an on-screen point.
func (s Surface) FromPct(xPct, yPct float64) (x, y float64) {
	return s.Left + xPct/100*s.Width(), s.Top + yPct/100*s.Height()
}

func pct(offset, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	return math.Max(0, math.Min(100, offset/extent*100))
}

// Positioner drags a single word to an absolute spot on the frame. Once
// positioned, the word is rendered verbatim instead of by the layout engine.
type Positioner struct {
	doc     Document
	source  Source
	commit  Committer
	surface Surface

	dragging    bool
	index       int
	unsubscribe func()
}

// NewPositioner wires an overlay position controller.
func NewPositioner(doc Document, source Source, commit Committer, surface Surface) *Positioner {
	return &Positioner{doc: doc, source: source, commit: commit, surface: surface, index: transcript.NoSelection}
}

// SetSurface updates the frame geometry.
func (p *Positioner) SetSurface(s Surface) { p.surface = s }

// Surface returns the current frame geometry.
func (p *Positioner) Surface() Surface { return p.surface }

// Dragging reports whether a gesture is in progress.
func (p *Positioner) Dragging() bool { return p.dragging }

// Begin selects word idx and starts dragging it. The word does not move
// until the first pointer move.
func (p *Positioner) Begin(idx int) bool {
	if p.dragging {
		return false
	}
	if _, ok := transcript.PositionFromGlobalIndex(p.doc.Transcript(), idx); !ok {
		return false
	}
	p.dragging = true
	p.index = idx
	p.doc.Select(idx)
	if p.source != nil {
		p.unsubscribe = p.source.Subscribe(p.handle)
	}
	return true
}

func (p *Positioner) handle(ev PointerEvent) {
	if !p.dragging {
		return
	}
	switch ev.Kind {
	case PointerMove:
		p.place(p.index, ev.X, ev.Y)
	case PointerUp:
		p.end()
		if p.commit != nil {
			p.commit.SaveTranscript(p.doc.Transcript())
		}
	case PointerCancel:
		p.end()
	}
}

func (p *Positioner) end() {
	p.dragging = false
	p.index = transcript.NoSelection
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// PlaceSelected positions the selected word at (x, y) without a drag, the
// modifier-click path. It commits immediately.
func (p *Positioner) PlaceSelected(x, y float64) bool {
	if !p.place(p.doc.Selected(), x, y) {
		return false
	}
	if p.commit != nil {
		p.commit.SaveTranscript(p.doc.Transcript())
	}
	return true
}

func (p *Positioner) place(idx int, x, y float64) bool {
	t := p.doc.Transcript()
	if _, ok := transcript.PositionFromGlobalIndex(t, idx); !ok {
		return false
	}
	xPct, yPct := p.surface.ToPct(x, y)
	p.doc.Replace(transcript.SetWordPosition(t, idx, xPct, yPct))
	return true
}

// Package transcript holds the time-stamped word model edited by the caption
// timeline: words grouped into lines, addressed by a flat global index.
//
// Every operation in this package treats its input as immutable. Mutations
// return a new Transcript that shares untouched lines with the input and
// allocates fresh slices only along the mutated path, so a render that holds
// the previous value always sees a consistent snapshot.
package transcript

const (
	// MinDurationMs is the shortest duration a word may have.
	MinDurationMs int64 = 50
	// DefaultWordDurationMs is the duration of a word created by AddWord.
	DefaultWordDurationMs int64 = 400
	// DuplicateOffsetMs is how far a duplicated word is shifted past its original.
	DuplicateOffsetMs int64 = 20
)

// NoSelection is the selection value meaning "no word selected".
const NoSelection = -1

// Word is a single time-stamped text token.
type Word struct {
	Text  string `json:"text"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`

	// Explicit placement on the video frame, in percent of the frame size.
	// A word with both set is rendered verbatim instead of by the layout engine.
	XPct *float64 `json:"xPct,omitempty"`
	YPct *float64 `json:"yPct,omitempty"`

	Lane        *int           `json:"lane,omitempty"`
	RotationDeg *float64       `json:"rotationDeg,omitempty"`
	Scale       *float64       `json:"scale,omitempty"`
	Opacity     *float64       `json:"opacity,omitempty"`
	ZIndex      *int           `json:"zIndex,omitempty"`
	Style       *StyleOverride `json:"style,omitempty"`
}

// Positioned reports whether the word carries an explicit frame position.
func (w Word) Positioned() bool {
	return w.XPct != nil && w.YPct != nil
}

// Duration returns end - start in milliseconds.
func (w Word) Duration() int64 {
	return w.End - w.Start
}

// ActiveAt reports whether nowMs falls inside [Start, End).
func (w Word) ActiveAt(nowMs int64) bool {
	return nowMs >= w.Start && nowMs < w.End
}

// Clone returns a deep copy of w. Pointer fields are re-allocated so the copy
// can be edited without touching the original.
func (w Word) Clone() Word {
	out := w
	out.XPct = clonePtr(w.XPct)
	out.YPct = clonePtr(w.YPct)
	out.Lane = clonePtr(w.Lane)
	out.RotationDeg = clonePtr(w.RotationDeg)
	out.Scale = clonePtr(w.Scale)
	out.Opacity = clonePtr(w.Opacity)
	out.ZIndex = clonePtr(w.ZIndex)
	if w.Style != nil {
		s := w.Style.Clone()
		out.Style = &s
	}
	return out
}

// Line is an ordered group of words whose bounds derive from its members.
type Line struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Words []Word `json:"words"`
}

// Bounds returns the line's stored start and end.
func (l Line) Bounds() Bounds {
	return Bounds{Start: l.Start, End: l.End}
}

// Transcript is the ordered list of lines making up an editable caption track.
type Transcript []Line

// TotalWords returns the number of words across all lines.
func (t Transcript) TotalWords() int {
	n := 0
	for _, l := range t {
		n += len(l.Words)
	}
	return n
}

// Flatten returns every word in global index order.
func (t Transcript) Flatten() []Word {
	out := make([]Word, 0, t.TotalWords())
	for _, l := range t {
		out = append(out, l.Words...)
	}
	return out
}

// WordAt returns the word at global index idx.
func (t Transcript) WordAt(idx int) (Word, bool) {
	pos, ok := PositionFromGlobalIndex(t, idx)
	if !ok {
		return Word{}, false
	}
	return t[pos.Line].Words[pos.Word], true
}

// Span returns the earliest start and latest end across all words.
// ok is false when the transcript has no words.
func (t Transcript) Span() (b Bounds, ok bool) {
	for _, l := range t {
		for _, w := range l.Words {
			if !ok {
				b = Bounds{Start: w.Start, End: w.End}
				ok = true
				continue
			}
			if w.Start < b.Start {
				b.Start = w.Start
			}
			if w.End > b.End {
				b.End = w.End
			}
		}
	}
	return b, ok
}

// Clone returns a deep copy of the transcript.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	for i, l := range t {
		words := make([]Word, len(l.Words))
		for j, w := range l.Words {
			words[j] = w.Clone()
		}
		out[i] = Line{Start: l.Start, End: l.End, Words: words}
	}
	return out
}

// Ptr returns a pointer to v. It keeps optional-field literals short.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

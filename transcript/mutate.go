package transcript

import "math"

// Result is the outcome of a word mutation: the next transcript and the
// selection the editor should adopt.
type Result struct {
	Next     Transcript
	Selected int
}

func unchanged(t Transcript, selected int) Result {
	return Result{Next: t, Selected: selected}
}

// AddWord inserts a DefaultWordDurationMs word starting at atMs.
//
// With an empty transcript a single line holding the new word is created.
// Otherwise the word goes right after the selected word, in its line, or is
// appended to the last line when nothing resolvable is selected. The new
// word's global index is returned as the selection.
func AddWord(t Transcript, atMs int64, selected int, text string) Result {
	if atMs < 0 {
		atMs = 0
	}
	w := Word{Text: text, Start: atMs, End: atMs + DefaultWordDurationMs}

	if len(t) == 0 {
		return Result{
			Next:     Transcript{{Start: w.Start, End: w.End, Words: []Word{w}}},
			Selected: 0,
		}
	}

	li := len(t) - 1
	at := len(t[li].Words)
	if pos, ok := PositionFromGlobalIndex(t, selected); ok {
		li = pos.Line
		at = pos.Word + 1
	}

	words := insertWord(t[li].Words, at, w)
	next := t.replaceLine(li, t[li].withWords(words))
	return Result{Next: next, Selected: GlobalIndexFromPosition(next, li, at)}
}

// DuplicateWord clones the selected word right after itself, shifted by
// DuplicateOffsetMs. The clone becomes the selection. An unresolvable
// selection returns the input unchanged.
func DuplicateWord(t Transcript, selected int) Result {
	pos, ok := PositionFromGlobalIndex(t, selected)
	if !ok {
		return unchanged(t, selected)
	}
	orig := t[pos.Line].Words[pos.Word]
	clone := orig.Clone()
	clone.Start = orig.Start + DuplicateOffsetMs
	clone.End = max(clone.Start+MinDurationMs, orig.End+DuplicateOffsetMs)

	words := insertWord(t[pos.Line].Words, pos.Word+1, clone)
	next := t.replaceLine(pos.Line, t[pos.Line].withWords(words))
	return Result{Next: next, Selected: selected + 1}
}

// DeleteWord removes the selected word. A line left without words is removed
// with it. The selection clamps to the last remaining word, or NoSelection
// once the transcript is empty.
func DeleteWord(t Transcript, selected int) Result {
	pos, ok := PositionFromGlobalIndex(t, selected)
	if !ok {
		return unchanged(t, selected)
	}
	src := t[pos.Line].Words
	words := make([]Word, 0, len(src)-1)
	words = append(words, src[:pos.Word]...)
	words = append(words, src[pos.Word+1:]...)

	var next Transcript
	if len(words) == 0 {
		next = make(Transcript, 0, len(t)-1)
		next = append(next, t[:pos.Line]...)
		next = append(next, t[pos.Line+1:]...)
	} else {
		next = t.replaceLine(pos.Line, t[pos.Line].withWords(words))
	}

	total := next.TotalWords()
	if total == 0 {
		return Result{Next: next, Selected: NoSelection}
	}
	if selected > total-1 {
		selected = total - 1
	}
	return Result{Next: next, Selected: selected}
}

// UpdateWordText replaces the text of the selected word and nothing else.
func UpdateWordText(t Transcript, selected int, text string) Result {
	next, ok := UpdateWord(t, selected, func(w Word) Word {
		w.Text = text
		return w
	})
	if !ok {
		return unchanged(t, selected)
	}
	return Result{Next: next, Selected: selected}
}

// UpdateWord applies fn to a copy of the word at idx and returns the new
// transcript with the containing line's bounds re-derived. ok is false, and
// t is returned as is, when idx does not resolve.
func UpdateWord(t Transcript, idx int, fn func(Word) Word) (Transcript, bool) {
	pos, ok := PositionFromGlobalIndex(t, idx)
	if !ok {
		return t, false
	}
	src := t[pos.Line].Words
	words := make([]Word, len(src))
	copy(words, src)
	words[pos.Word] = fn(src[pos.Word].Clone())
	return t.replaceLine(pos.Line, t[pos.Line].withWords(words)), true
}

// SetWordTiming sets a word's start and end, clamped so that start >= 0 and
// the word lasts at least MinDurationMs.
func SetWordTiming(t Transcript, idx int, start, end int64) Transcript {
	start, end = ClampTiming(start, end)
	next, _ := UpdateWord(t, idx, func(w Word) Word {
		w.Start = start
		w.End = end
		return w
	})
	return next
}

// ClampTiming enforces the word timing invariants on a start/end pair.
func ClampTiming(start, end int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if end < start+MinDurationMs {
		end = start + MinDurationMs
	}
	return start, end
}

// SetWordPosition pins a word to a frame position given in percent. Both
// coordinates are clamped to [0, 100].
func SetWordPosition(t Transcript, idx int, xPct, yPct float64) Transcript {
	x, y := ClampPct(xPct), ClampPct(yPct)
	next, _ := UpdateWord(t, idx, func(w Word) Word {
		w.XPct = &x
		w.YPct = &y
		return w
	})
	return next
}

// ClearWordPosition returns a word to flow layout.
func ClearWordPosition(t Transcript, idx int) Transcript {
	next, _ := UpdateWord(t, idx, func(w Word) Word {
		w.XPct = nil
		w.YPct = nil
		return w
	})
	return next
}

// ClampPct clamps v to [0, 100]. NaN becomes 0.
func ClampPct(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SetWordLane pins a word to a timeline lane, or clears the pin when lane is nil.
func SetWordLane(t Transcript, idx int, lane *int) Transcript {
	next, _ := UpdateWord(t, idx, func(w Word) Word {
		w.Lane = clonePtr(lane)
		return w
	})
	return next
}

// SetWordStyle replaces a word's style override. An empty override clears it.
func SetWordStyle(t Transcript, idx int, style StyleOverride) Transcript {
	next, _ := UpdateWord(t, idx, func(w Word) Word {
		if style.Empty() {
			w.Style = nil
			return w
		}
		s := style.Clone()
		w.Style = &s
		return w
	})
	return next
}

// ApplyStyleAll merges override into every word's style.
func ApplyStyleAll(t Transcript, override StyleOverride) Transcript {
	if len(t) == 0 || override.Empty() {
		return t
	}
	out := make(Transcript, len(t))
	for li, l := range t {
		words := make([]Word, len(l.Words))
		for wi, w := range l.Words {
			w = w.Clone()
			base := StyleOverride{}
			if w.Style != nil {
				base = *w.Style
			}
			merged := base.Merge(override)
			w.Style = &merged
			words[wi] = w
		}
		out[li] = Line{Start: l.Start, End: l.End, Words: words}
	}
	return out
}

// ShiftAll moves every word by deltaMs. A negative delta is limited so that
// the earliest word lands no earlier than 0.
func ShiftAll(t Transcript, deltaMs int64) Transcript {
	span, ok := t.Span()
	if !ok || deltaMs == 0 {
		return t
	}
	if span.Start+deltaMs < 0 {
		deltaMs = -span.Start
	}
	out := make(Transcript, len(t))
	for li, l := range t {
		if len(l.Words) == 0 {
			out[li] = l
			continue
		}
		words := make([]Word, len(l.Words))
		for wi, w := range l.Words {
			w = w.Clone()
			w.Start += deltaMs
			w.End += deltaMs
			words[wi] = w
		}
		out[li] = Line{Start: l.Start + deltaMs, End: l.End + deltaMs, Words: words}
	}
	return out
}

func insertWord(src []Word, at int, w Word) []Word {
	if at < 0 {
		at = 0
	}
	if at > len(src) {
		at = len(src)
	}
	out := make([]Word, 0, len(src)+1)
	out = append(out, src[:at]...)
	out = append(out, w)
	out = append(out, src[at:]...)
	return out
}

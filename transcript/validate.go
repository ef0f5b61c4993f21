package transcript

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNegativeStart is reported for a word starting before 0.
	ErrNegativeStart = errors.New("transcript: word starts before 0")
	// ErrTooShort is reported for a word shorter than MinDurationMs.
	ErrTooShort = errors.New("transcript: word shorter than minimum duration")
	// ErrLineBounds is reported when a line's bounds disagree with its words.
	ErrLineBounds = errors.New("transcript: line bounds do not match words")
)

// ValidationError pins an invariant violation to a global word index
// (or -1 for line-level problems).
type ValidationError struct {
	Line  int
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d word %d: %v", e.Line, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate reports the first violated invariant: start >= 0, a minimum
// duration of MinDurationMs and line bounds that match their words.
func Validate(t Transcript) error {
	idx := 0
	for li, l := range t {
		for _, w := range l.Words {
			if w.Start < 0 {
				return &ValidationError{Line: li, Index: idx, Err: ErrNegativeStart}
			}
			if w.End-w.Start < MinDurationMs {
				return &ValidationError{Line: li, Index: idx, Err: ErrTooShort}
			}
			idx++
		}
		if len(l.Words) == 0 {
			continue
		}
		if b := RecalcBounds(l.Words, l.Bounds()); b != l.Bounds() {
			return &ValidationError{Line: li, Index: -1, Err: ErrLineBounds}
		}
	}
	return nil
}

// Normalize repairs a transcript received from outside the editor: word
// timings are clamped to the invariants, words inside a line are ordered by
// start, line bounds are re-derived and lines without words are dropped.
func Normalize(t Transcript) Transcript {
	out := make(Transcript, 0, len(t))
	for _, l := range t {
		if len(l.Words) == 0 {
			continue
		}
		words := make([]Word, len(l.Words))
		for i, w := range l.Words {
			w = w.Clone()
			w.Start, w.End = ClampTiming(w.Start, w.End)
			if w.XPct != nil {
				v := ClampPct(*w.XPct)
				w.XPct = &v
			}
			if w.YPct != nil {
				v := ClampPct(*w.YPct)
				w.YPct = &v
			}
			words[i] = w
		}
		sort.SliceStable(words, func(i, j int) bool { return words[i].Start < words[j].Start })
		out = append(out, l.withWords(words))
	}
	return out
}

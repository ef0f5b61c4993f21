package transcript

// Position addresses a word by line and word offset.
type Position struct {
	Line int
	Word int
}

// Bounds is a closed-open time range in milliseconds.
type Bounds struct {
	Start int64
	End   int64
}

// PositionFromGlobalIndex maps a global word index to its line/word position.
// It returns false for negative or out-of-range indices.
func PositionFromGlobalIndex(lines Transcript, idx int) (Position, bool) {
	if idx < 0 {
		return Position{}, false
	}
	remaining := idx
	for li, l := range lines {
		if remaining < len(l.Words) {
			return Position{Line: li, Word: remaining}, true
		}
		remaining -= len(l.Words)
	}
	return Position{}, false
}

// GlobalIndexFromPosition returns the global index of the word at
// lines[lineIndex].Words[wordIndex]: the word counts of every preceding line
// plus wordIndex. Line indices past the end count every line.
func GlobalIndexFromPosition(lines Transcript, lineIndex, wordIndex int) int {
	idx := 0
	for li := 0; li < lineIndex && li < len(lines); li++ {
		idx += len(lines[li].Words)
	}
	return idx + wordIndex
}

// RecalcBounds returns the min start and max end of words, or fallback when
// words is empty.
func RecalcBounds(words []Word, fallback Bounds) Bounds {
	if len(words) == 0 {
		return fallback
	}
	b := Bounds{Start: words[0].Start, End: words[0].End}
	for _, w := range words[1:] {
		if w.Start < b.Start {
			b.Start = w.Start
		}
		if w.End > b.End {
			b.End = w.End
		}
	}
	return b
}

// withWords returns a copy of l holding words, bounds re-derived.
func (l Line) withWords(words []Word) Line {
	b := RecalcBounds(words, l.Bounds())
	return Line{Start: b.Start, End: b.End, Words: words}
}

// replaceLine returns a shallow copy of t with line li swapped for l.
func (t Transcript) replaceLine(li int, l Line) Transcript {
	out := make(Transcript, len(t))
	copy(out, t)
	out[li] = l
	return out
}

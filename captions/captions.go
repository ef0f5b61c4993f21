// Package captions groups the words active at the playhead into short
// caption lines for flow layout.
package captions

import (
	"sort"
	"strings"

	"github.com/user/caption-timeline-cli/transcript"
)

const (
	// DefaultMaxWords is the most words a caption line holds.
	DefaultMaxWords = 3
	// DefaultMaxLines is how many of the most recent lines are kept.
	DefaultMaxLines = 4
)

// Options tune Group. Zero values take the defaults.
type Options struct {
	MaxWords int
	MaxLines int
	// KeepPlaceholders keeps explicitly positioned words in the flow as
	// invisible items, so relocating a word does not reflow its neighbours.
	KeepPlaceholders bool
}

// DefaultOptions returns the grouping used by the editor.
func DefaultOptions() Options {
	return Options{MaxWords: DefaultMaxWords, MaxLines: DefaultMaxLines, KeepPlaceholders: true}
}

func (o Options) withDefaults() Options {
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
	return o
}

// Item is a word in a caption line with its global index.
type Item struct {
	Index int
	Word  transcript.Word
	// Placeholder items hold their slot but render at opacity 0.
	Placeholder bool
}

// Line is one caption line.
type Line []Item

// Text joins the visible words of the line.
func (l Line) Text() string {
	parts := make([]string, 0, len(l))
	for _, it := range l {
		if it.Placeholder {
			continue
		}
		parts = append(parts, it.Word.Text)
	}
	return strings.Join(parts, " ")
}

// Start is the earliest start in the line.
func (l Line) Start() int64 {
	if len(l) == 0 {
		return 0
	}
	s := l[0].Word.Start
	for _, it := range l[1:] {
		s = min(s, it.Word.Start)
	}
	return s
}

// End is the latest end in the line.
func (l Line) End() int64 {
	var e int64
	for _, it := range l {
		e = max(e, it.Word.End)
	}
	return e
}

// Visible counts the non-placeholder items.
func (l Line) Visible() int {
	n := 0
	for _, it := range l {
		if !it.Placeholder {
			n++
		}
	}
	return n
}

// Group returns the caption lines for nowMs: the active flow-positioned
// words sorted by start, chunked by MaxWords and sentence-final punctuation,
// with only the last MaxLines lines kept.
func Group(t transcript.Transcript, nowMs int64, opts Options) []Line {
	opts = opts.withDefaults()

	var items []Item
	idx := 0
	for _, l := range t {
		for _, w := range l.Words {
			if w.ActiveAt(nowMs) {
				switch {
				case !w.Positioned():
					items = append(items, Item{Index: idx, Word: w})
				case opts.KeepPlaceholders:
					items = append(items, Item{Index: idx, Word: w, Placeholder: true})
				}
			}
			idx++
		}
	}
	if len(items) == 0 {
		return nil
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Word.Start < items[j].Word.Start
	})

	lines := Chunk(items, opts.MaxWords)
	if len(lines) > opts.MaxLines {
		lines = lines[len(lines)-opts.MaxLines:]
	}
	return lines
}

// Chunk packs items in order into lines of at most maxWords, closing a line
// early after a word that ends a sentence.
func Chunk(items []Item, maxWords int) []Line {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	var lines []Line
	var buf Line
	for _, it := range items {
		buf = append(buf, it)
		if len(buf) >= maxWords || EndsSentence(it.Word.Text) {
			lines = append(lines, buf)
			buf = nil
		}
	}
	if len(buf) > 0 {
		lines = append(lines, buf)
	}
	return lines
}

// Items lists every word of t with its global index, in transcript order.
func Items(t transcript.Transcript) []Item {
	out := make([]Item, 0, t.TotalWords())
	idx := 0
	for _, l := range t {
		for _, w := range l.Words {
			out = append(out, Item{Index: idx, Word: w})
			idx++
		}
	}
	return out
}

// EndsSentence reports whether text ends in . ! or ?, ignoring trailing
// closing quotes and brackets.
func EndsSentence(text string) bool {
	text = strings.TrimRight(strings.TrimSpace(text), `"')]”’`)
	if text == "" {
		return false
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// Package segments groups a flat word list into sections separated by
// silence and derives, per word, the window during which its caption stays
// on screen and the lane it occupies on the timeline.
package segments

import "github.com/user/caption-timeline-cli/transcript"

const (
	// DefaultGapMs is the silence that starts a new section on the timeline.
	DefaultGapMs int64 = 650
	// CaptionGapMs is the silence used when grouping for on-video captions.
	CaptionGapMs int64 = 1000
	// DefaultMaxLanes caps the number of timeline lanes.
	DefaultMaxLanes = 10
	// DefaultDropAfter is how many later words must begin before a word drops off.
	DefaultDropAfter = 4
)

// Options tunes sectioning and segment derivation.
type Options struct {
	GapMs           int64
	MaxLanes        int
	DropAfter       int
	AlignSectionEnd bool
}

// DefaultOptions returns the timeline defaults.
func DefaultOptions() Options {
	return Options{
		GapMs:     DefaultGapMs,
		MaxLanes:  DefaultMaxLanes,
		DropAfter: DefaultDropAfter,
	}
}

func (o Options) withDefaults() Options {
	if o.GapMs < 0 {
		o.GapMs = 0
	}
	if o.MaxLanes <= 0 {
		o.MaxLanes = DefaultMaxLanes
	}
	if o.DropAfter <= 0 {
		o.DropAfter = DefaultDropAfter
	}
	return o
}

// Section is a contiguous run of words with no gap larger than the threshold.
// StartIdx and EndIdx are inclusive indices into the word list.
type Section struct {
	StartIdx int
	EndIdx   int
	Start    int64
	End      int64
}

// Len returns the number of words in the section.
func (s Section) Len() int {
	return s.EndIdx - s.StartIdx + 1
}

// Segment is a word's render window and lane.
type Segment struct {
	Index   int
	Start   int64
	End     int64
	Lane    int
	Text    string
	Section int
}

// ActiveAt reports whether nowMs falls inside [Start, End).
func (s Segment) ActiveAt(nowMs int64) bool {
	return nowMs >= s.Start && nowMs < s.End
}

// Sections splits words wherever word[i].Start - word[i-1].End exceeds gapMs.
// A section's End is the latest word end inside it.
func Sections(words []transcript.Word, gapMs int64) []Section {
	if len(words) == 0 {
		return nil
	}
	var out []Section
	cur := Section{StartIdx: 0, Start: words[0].Start, End: words[0].End}
	for i := 1; i < len(words); i++ {
		if words[i].Start-words[i-1].End > gapMs {
			cur.EndIdx = i - 1
			out = append(out, cur)
			cur = Section{StartIdx: i, Start: words[i].Start, End: words[i].End}
			continue
		}
		if words[i].Start < cur.Start {
			cur.Start = words[i].Start
		}
		if words[i].End > cur.End {
			cur.End = words[i].End
		}
	}
	cur.EndIdx = len(words) - 1
	return append(out, cur)
}

// Compute returns one segment per word, in input order.
//
// Within a section a word without an explicit lane takes the next sequential
// lane, capped at MaxLanes-1. Its end is either the section end
// (AlignSectionEnd) or held until DropAfter further words have begun, and it
// never exceeds the section end.
func Compute(words []transcript.Word, opts Options) []Segment {
	opts = opts.withDefaults()
	sections := Sections(words, opts.GapMs)
	if len(sections) == 0 {
		return nil
	}
	out := make([]Segment, 0, len(words))
	for si, sec := range sections {
		for i := sec.StartIdx; i <= sec.EndIdx; i++ {
			w := words[i]
			out = append(out, Segment{
				Index:   i,
				Start:   w.Start,
				End:     effectiveEnd(words, i, sec, opts),
				Lane:    laneFor(w, i-sec.StartIdx, opts.MaxLanes),
				Text:    w.Text,
				Section: si,
			})
		}
	}
	return out
}

func laneFor(w transcript.Word, offset, maxLanes int) int {
	lane := offset
	if w.Lane != nil {
		lane = *w.Lane
	}
	if lane < 0 {
		lane = 0
	}
	if lane > maxLanes-1 {
		lane = maxLanes - 1
	}
	return lane
}

func effectiveEnd(words []transcript.Word, i int, sec Section, opts Options) int64 {
	if opts.AlignSectionEnd {
		return sec.End
	}
	hold := sec.End
	if j := i + opts.DropAfter; j <= sec.EndIdx {
		hold = words[j].Start
	}
	end := max(words[i].End, hold)
	return min(end, sec.End)
}

// HeldEnd extends a caption that ends at end with word idx to that word's
// segment end. A following caption starting at next cuts it short; next < 0
// means none follows in the section.
func HeldEnd(segs []Segment, idx int, end, next int64) int64 {
	if idx < 0 || idx >= len(segs) {
		return end
	}
	held := max(end, segs[idx].End)
	if next >= 0 {
		held = min(held, max(end, next))
	}
	return held
}

// ActiveAt filters segments visible at nowMs.
func ActiveAt(segs []Segment, nowMs int64) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.ActiveAt(nowMs) {
			out = append(out, s)
		}
	}
	return out
}

// LaneCount returns the number of lanes in use, at least 1 when segs is non-empty.
func LaneCount(segs []Segment) int {
	n := 0
	for _, s := range segs {
		if s.Lane+1 > n {
			n = s.Lane + 1
		}
	}
	return n
}

// SectionOf returns the section containing word index idx.
func SectionOf(sections []Section, idx int) (Section, bool) {
	for _, s := range sections {
		if idx >= s.StartIdx && idx <= s.EndIdx {
			return s, true
		}
	}
	return Section{}, false
}

package export

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/user/caption-timeline-cli/captions"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/segments"
	"github.com/user/caption-timeline-cli/transcript"
)

// DefaultMaxCPL is the characters-per-line limit before a cue wraps.
const DefaultMaxCPL = 42

// SRTOptions tune SRT. Zero values take the defaults.
type SRTOptions struct {
	MaxWords int
	GapMs    int64
	MaxCPL   int
	// AlignSectionEnd holds each cue until the next one, and the last cue of
	// a section until the section ends.
	AlignSectionEnd bool
}

func (o SRTOptions) withDefaults() SRTOptions {
	if o.MaxWords <= 0 {
		o.MaxWords = captions.DefaultMaxWords
	}
	if o.GapMs <= 0 {
		o.GapMs = segments.CaptionGapMs
	}
	if o.MaxCPL <= 0 {
		o.MaxCPL = DefaultMaxCPL
	}
	return o
}

// Cue is one SRT entry.
type Cue struct {
	Start int64
	End   int64
	Text  string
}

// Cues groups the words of t into caption cues: sections split at silences
// longer than GapMs, then each section is chunked like the on-screen captions.
// Positioned words stay in the flow since SRT has no placement.
func Cues(t transcript.Transcript, opts SRTOptions) []Cue {
	opts = opts.withDefaults()
	items := captions.Items(t)
	words := make([]transcript.Word, len(items))
	for i, it := range items {
		words[i] = it.Word
	}

	var segs []segments.Segment
	if opts.AlignSectionEnd {
		segs = segments.Compute(words, segments.Options{GapMs: opts.GapMs, AlignSectionEnd: true})
	}
	var out []Cue
	for _, sec := range segments.Sections(words, opts.GapMs) {
		lines := captions.Chunk(items[sec.StartIdx:sec.EndIdx+1], opts.MaxWords)
		for k, line := range lines {
			text := strings.TrimSpace(line.Text())
			if text == "" {
				continue
			}
			end := line.End()
			if segs != nil {
				next := int64(-1)
				if k+1 < len(lines) {
					next = lines[k+1].Start()
				}
				end = segments.HeldEnd(segs, line[len(line)-1].Index, end, next)
			}
			out = append(out, Cue{Start: line.Start(), End: end, Text: wrap(text, opts.MaxCPL)})
		}
	}
	return out
}

// SRT renders t as SubRip text.
func SRT(t transcript.Transcript, opts SRTOptions) string {
	var b strings.Builder
	for i, c := range Cues(t, opts) {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, timeutil.FormatSRT(c.Start), timeutil.FormatSRT(c.End), c.Text)
	}
	return b.String()
}

// wrap keeps text on one line when it fits maxCPL, otherwise breaks it once
// at the last space or punctuation before the limit.
func wrap(text string, maxCPL int) string {
	if utf8.RuneCountInString(text) <= maxCPL {
		return text
	}
	runes := []rune(text)
	split := -1
	for i := min(maxCPL+1, len(runes)) - 1; i > 0; i-- {
		if runes[i] == ' ' {
			split = i
			break
		}
		if unicode.IsPunct(runes[i]) {
			split = i + 1
			break
		}
	}
	if split <= 0 {
		split = maxCPL
	}
	first := strings.TrimSpace(string(runes[:split]))
	rest := strings.TrimSpace(string(runes[split:]))
	if rest == "" {
		return first
	}
	return first + "\n" + rest
}

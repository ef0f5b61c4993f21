package arrange

import (
	"math"
	"sort"

	"github.com/user/caption-timeline-cli/captions"
	"github.com/user/caption-timeline-cli/style"
)

// KaraokeBatch describes how the transcript is cut into fixed-size batches
// shown at a constant cadence.
type KaraokeBatch struct {
	Size       int
	Count      int
	DurationMs float64
	Index      int
	// Visible is false when the playhead is outside the transcript span.
	Visible bool
}

// batchSize estimates how many average words fit the row budget, capped by
// the preset's MaxWords.
func batchSize(in Input) int {
	em := style.Resolve(in.Lyric, nil).FontSizePx
	gap := in.Layout.WordGapEm * em
	word := avgWordGlyphs*em*glyphWidthEm + gap
	budget := in.Layout.WidthBudgetPct / 100 * in.Frame.Width
	size := max(1, int(math.Floor((budget+gap)/word)))
	if in.Layout.MaxWords > 0 {
		size = min(size, in.Layout.MaxWords)
	}
	return size
}

// karaokeItems lists the flow-positioned words in start order.
func karaokeItems(in Input) []captions.Item {
	var items []captions.Item
	for _, it := range captions.Items(in.Words) {
		if !it.Word.Positioned() {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Word.Start < items[j].Word.Start })
	return items
}

// Batch computes the karaoke batch for in without laying it out. The span
// runs from the first word's start to the last word's end and is split
// evenly across the batches, so batches advance with the clock rather than
// with individual word timing.
func Batch(in Input) KaraokeBatch {
	in = in.withDefaults()
	return batchFor(in, karaokeItems(in))
}

func batchFor(in Input, items []captions.Item) KaraokeBatch {
	if len(items) == 0 {
		return KaraokeBatch{}
	}
	size := batchSize(in)
	count := (len(items) + size - 1) / size
	first := items[0].Word.Start
	last := items[0].Word.End
	for _, it := range items {
		last = max(last, it.Word.End)
	}
	b := KaraokeBatch{Size: size, Count: count}
	span := last - first
	if span <= 0 {
		return b
	}
	b.DurationMs = float64(span) / float64(count)
	if in.NowMs < first || in.NowMs >= last {
		return b
	}
	b.Index = min(count-1, int(math.Floor(float64(in.NowMs-first)/b.DurationMs)))
	b.Visible = true
	return b
}

func karaoke(in Input) []Token {
	items := karaokeItems(in)
	b := batchFor(in, items)
	if !b.Visible {
		return nil
	}
	lo := b.Index * b.Size
	hi := min(len(items), lo+b.Size)
	row := make([]Token, 0, hi-lo)
	for _, it := range items[lo:hi] {
		row = append(row, itemToken(in, it))
	}
	return stackRows(in, [][]Token{row}, in.Layout.WordGapEm, in.Layout.LineGapEm)
}

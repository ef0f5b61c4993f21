package segments

import (
	"testing"

	"github.com/user/caption-timeline-cli/transcript"
)

func words(spans ...[2]int64) []transcript.Word {
	out := make([]transcript.Word, len(spans))
	for i, s := range spans {
		out[i] = transcript.Word{Text: "w", Start: s[0], End: s[1]}
	}
	return out
}

func TestSectionsSplitOnGap(t *testing.T) {
	ws := words([2]int64{0, 300}, [2]int64{310, 600}, [2]int64{2000, 2300})
	got := Sections(ws, 650)
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got))
	}
	if got[0].StartIdx != 0 || got[0].EndIdx != 1 {
		t.Fatalf("first section = %+v", got[0])
	}
	if got[1].StartIdx != 2 || got[1].EndIdx != 2 {
		t.Fatalf("second section = %+v", got[1])
	}
}

func TestSectionsEmpty(t *testing.T) {
	if got := Sections(nil, 650); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if got := Compute(nil, DefaultOptions()); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestComputeSequentialLanesCapped(t *testing.T) {
	var spans [][2]int64
	for i := int64(0); i < 6; i++ {
		spans = append(spans, [2]int64{i * 100, i*100 + 90})
	}
	segs := Compute(words(spans...), Options{GapMs: 650, MaxLanes: 3, DropAfter: 4})
	want := []int{0, 1, 2, 2, 2, 2}
	for i, s := range segs {
		if s.Lane != want[i] {
			t.Fatalf("segment %d lane = %d, want %d", i, s.Lane, want[i])
		}
	}
}

func TestComputeExplicitLaneClamped(t *testing.T) {
	ws := words([2]int64{0, 100}, [2]int64{100, 200})
	ws[0].Lane = transcript.Ptr(42)
	ws[1].Lane = transcript.Ptr(-3)
	segs := Compute(ws, Options{MaxLanes: 5})
	if segs[0].Lane != 4 || segs[1].Lane != 0 {
		t.Fatalf("lanes = %d, %d", segs[0].Lane, segs[1].Lane)
	}
}

func TestComputeDropAfterHoldsWordVisible(t *testing.T) {
	ws := words(
		[2]int64{0, 100},
		[2]int64{200, 300},
		[2]int64{400, 500},
		[2]int64{600, 700},
		[2]int64{800, 900},
	)
	segs := Compute(ws, Options{GapMs: 650, DropAfter: 2})
	if segs[0].End != 400 {
		t.Fatalf("word 0 end = %d, want start of word 2 (400)", segs[0].End)
	}
	if segs[3].End != 900 {
		t.Fatalf("word 3 end = %d, want section end (900)", segs[3].End)
	}
}

func TestComputeAlignSectionEnd(t *testing.T) {
	ws := words([2]int64{0, 300}, [2]int64{310, 600}, [2]int64{2000, 2300})
	segs := Compute(ws, Options{GapMs: 650, AlignSectionEnd: true})
	if segs[0].End != 600 || segs[1].End != 600 {
		t.Fatalf("first section ends = %d, %d", segs[0].End, segs[1].End)
	}
	if segs[2].End != 2300 {
		t.Fatalf("second section end = %d", segs[2].End)
	}
}

func TestSegmentsNeverExceedSectionEnd(t *testing.T) {
	ws := words(
		[2]int64{0, 1200},
		[2]int64{100, 200},
		[2]int64{250, 400},
		[2]int64{3000, 3100},
	)
	for _, align := range []bool{false, true} {
		opts := Options{GapMs: 650, DropAfter: 1, AlignSectionEnd: align}
		segs := Compute(ws, opts)
		secs := Sections(ws, opts.GapMs)
		for _, s := range segs {
			sec := secs[s.Section]
			if s.End > sec.End {
				t.Fatalf("segment %d end %d exceeds section end %d", s.Index, s.End, sec.End)
			}
		}
	}
}

func TestActiveAtAndLaneCount(t *testing.T) {
	segs := Compute(words([2]int64{0, 100}, [2]int64{50, 150}), Options{DropAfter: 4})
	if got := ActiveAt(segs, 60); len(got) != 2 {
		t.Fatalf("active at 60 = %d segments", len(got))
	}
	if got := LaneCount(segs); got != 2 {
		t.Fatalf("lane count = %d", got)
	}
	if got := LaneCount(nil); got != 0 {
		t.Fatalf("lane count of nil = %d", got)
	}
}

func TestHeldEnd(t *testing.T) {
	ws := words([2]int64{0, 200}, [2]int64{500, 700}, [2]int64{700, 900})
	segs := Compute(ws, Options{GapMs: 650, AlignSectionEnd: true})

	tests := []struct {
		name string
		idx  int
		end  int64
		next int64
		want int64
	}{
		{"cut by next caption", 0, 200, 500, 500},
		{"held to section end", 2, 900, -1, 900},
		{"next before own end", 1, 700, 600, 700},
		{"index out of range", 7, 250, -1, 250},
	}
	for _, tt := range tests {
		if got := HeldEnd(segs, tt.idx, tt.end, tt.next); got != tt.want {
			t.Errorf("%s: HeldEnd = %d, want %d", tt.name, got, tt.want)
		}
	}
}

package captions

import (
	"testing"

	"github.com/user/caption-timeline-cli/transcript"
)

func word(text string, start, end int64) transcript.Word {
	return transcript.Word{Text: text, Start: start, End: end}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGroupChunksByCountAndPunctuation(t *testing.T) {
	tr := transcript.Transcript{{Words: []transcript.Word{
		word("one", 0, 1000),
		word("two.", 10, 1000),
		word("three", 20, 1000),
		word("four", 30, 1000),
		word("five", 40, 1000),
		word("six", 50, 1000),
	}}}
	got := texts(Group(tr, 500, Options{}))
	want := []string{"one two.", "three four five", "six"}
	if !equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestGroupKeepsLastLines(t *testing.T) {
	var words []transcript.Word
	for i := range 7 {
		words = append(words, word("w.", int64(i), 100))
	}
	lines := Group(transcript.Transcript{{Words: words}}, 50, Options{MaxLines: 4})
	if len(lines) != 4 {
		t.Fatalf("len = %d, want 4", len(lines))
	}
	if lines[0][0].Index != 3 || lines[3][0].Index != 6 {
		t.Fatalf("kept indices %d..%d, want 3..6", lines[0][0].Index, lines[3][0].Index)
	}
}

func TestGroupSortsByStartAndSkipsInactive(t *testing.T) {
	tr := transcript.Transcript{
		{Words: []transcript.Word{word("late", 300, 900), word("gone", 0, 100)}},
		{Words: []transcript.Word{word("early", 200, 900)}},
	}
	lines := Group(tr, 400, Options{})
	if len(lines) != 1 || lines[0].Text() != "early late" {
		t.Fatalf("lines = %q", texts(lines))
	}
	if lines[0][0].Index != 2 || lines[0][1].Index != 0 {
		t.Fatalf("indices = %d,%d", lines[0][0].Index, lines[0][1].Index)
	}
}

func TestActiveWindowIsHalfOpen(t *testing.T) {
	tr := transcript.Transcript{{Words: []transcript.Word{word("a", 100, 200)}}}
	if Group(tr, 200, Options{}) != nil {
		t.Fatal("word active at its end")
	}
	if Group(tr, 100, Options{}) == nil {
		t.Fatal("word inactive at its start")
	}
}

func TestPositionedWordsBecomePlaceholders(t *testing.T) {
	pinned := word("pinned", 10, 500)
	pinned.XPct = transcript.Ptr(20.0)
	pinned.YPct = transcript.Ptr(30.0)
	tr := transcript.Transcript{{Words: []transcript.Word{word("a", 0, 500), pinned, word("b", 20, 500)}}}

	with := Group(tr, 100, Options{KeepPlaceholders: true})
	if len(with) != 1 || len(with[0]) != 3 || !with[0][1].Placeholder {
		t.Fatalf("placeholders: %+v", with)
	}
	if with[0].Text() != "a b" || with[0].Visible() != 2 {
		t.Fatalf("text = %q", with[0].Text())
	}

	without := Group(tr, 100, Options{})
	if len(without) != 1 || len(without[0]) != 2 {
		t.Fatalf("no placeholders: %+v", without)
	}
}

func TestGroupEmpty(t *testing.T) {
	if Group(nil, 0, DefaultOptions()) != nil {
		t.Fatal("nil transcript produced lines")
	}
	if Group(transcript.Transcript{{}}, 0, DefaultOptions()) != nil {
		t.Fatal("empty line produced lines")
	}
}

func TestEndsSentence(t *testing.T) {
	for text, want := range map[string]bool{
		"done.": true, "why?": true, "go!": true, `"stop."`: true,
		"and": false, "": false, "e.g": false, "ok,": false,
	} {
		if got := EndsSentence(text); got != want {
			t.Errorf("EndsSentence(%q) = %v", text, got)
		}
	}
}

func TestLineBounds(t *testing.T) {
	l := Line{{Word: word("a", 300, 600)}, {Word: word("b", 100, 900)}}
	if l.Start() != 100 || l.End() != 900 {
		t.Fatalf("bounds = %d-%d", l.Start(), l.End())
	}
}

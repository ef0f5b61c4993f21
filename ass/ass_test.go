package ass

import (
	"strings"
	"testing"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

func TestTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00:00.00"},
		{-20, "0:00:00.00"},
		{1_234, "0:00:01.23"},
		{3_723_456, "1:02:03.45"},
	}
	for _, tt := range tests {
		if got := Time(tt.ms); got != tt.want {
			t.Errorf("Time(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize(` {bold} a\b `); got != `(bold) a\\b` {
		t.Fatalf("Sanitize = %q", got)
	}
}

func token(text string, x, y float64) arrange.Token {
	return arrange.Token{
		Text:    text,
		XPct:    x,
		YPct:    y,
		Scale:   1,
		Opacity: 1,
		Style:   style.Resolve(style.Preset{}, nil),
	}
}

func TestEventPositionsAtFrameCentre(t *testing.T) {
	ev := Event(token("hi", 50, 25), arrange.Frame{Width: 1920, Height: 1080})
	if !strings.HasPrefix(ev, `{\an5\pos(960,270)`) {
		t.Fatalf("event = %q", ev)
	}
	if !strings.HasSuffix(ev, "}hi") {
		t.Fatalf("event text = %q", ev)
	}
	if !strings.Contains(ev, `\fs64`) || !strings.Contains(ev, `\b1`) {
		t.Fatalf("missing font tags: %q", ev)
	}
}

func TestEventRotationAndScale(t *testing.T) {
	tok := token("spin", 10, 10)
	tok.RotationDeg = 15
	tok.Scale = 1.5
	ev := Event(tok, arrange.DefaultFrame(false))
	if !strings.Contains(ev, `\frz-15`) {
		t.Fatalf("rotation not inverted: %q", ev)
	}
	if !strings.Contains(ev, `\fscx150\fscy150`) {
		t.Fatalf("scale missing: %q", ev)
	}
}

func TestOverridesHighlightAndOpacity(t *testing.T) {
	rs := style.Resolve(style.Preset{HighlightColor: "#FF0000"}, nil)
	if got := Overrides(rs, arrange.StateActive, 1); !strings.Contains(got, `\1c&H0000FF&\1a&H00&`) {
		t.Fatalf("active word not highlighted: %q", got)
	}
	if got := Overrides(rs, arrange.StateSung, 0.5); !strings.Contains(got, `\1c&HFFFFFF&\1a&H7F&`) {
		t.Fatalf("sung word: %q", got)
	}
}

func TestOverridesBackgroundAndGlow(t *testing.T) {
	rs := style.Resolve(style.Preset{
		Background: &style.Background{Color: "#000000", Opacity: 1, PaddingPx: 12},
		Effects:    map[style.Effect]float64{style.EffectGlow: 0.5},
	}, nil)
	got := Overrides(rs, arrange.StateUpcoming, 1)
	if !strings.Contains(got, `\3c&H000000&\3a&H00&\bord12\shad0`) {
		t.Fatalf("background pill missing: %q", got)
	}
	if !strings.Contains(got, `\blur4`) {
		t.Fatalf("glow blur missing: %q", got)
	}
}

func TestOverlayEventsSkipsHiddenAndOrdersByZ(t *testing.T) {
	top := token("top", 50, 50)
	top.ZIndex = 5
	bottom := token("bottom", 50, 50)
	hidden := token("hidden", 50, 50)
	hidden.Placeholder = true
	hidden.Opacity = 0

	out := OverlayEvents([]arrange.Token{top, hidden, bottom}, arrange.DefaultFrame(false))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 events, got %d: %q", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "bottom") || !strings.HasSuffix(lines[1], "top") {
		t.Fatalf("z order wrong: %q", lines)
	}
	if OverlayEvents(nil, arrange.DefaultFrame(false)) != "" {
		t.Fatal("empty tokens should render nothing")
	}
}

func sampleTranscript() transcript.Transcript {
	return transcript.Transcript{
		{Start: 0, End: 1_200, Words: []transcript.Word{
			{Text: "Hello", Start: 0, End: 400},
			{Text: "world.", Start: 400, End: 800},
			{Text: "Next", Start: 900, End: 1_200},
		}},
		{Start: 3_000, End: 3_500, Words: []transcript.Word{
			{Text: "again", Start: 3_000, End: 3_400},
			{Text: "here", Start: 3_100, End: 3_500, XPct: transcript.Ptr(10.0), YPct: transcript.Ptr(20.0)},
		}},
	}
}

func dialogues(doc string) []string {
	var out []string
	for _, l := range strings.Split(doc, "\n") {
		if strings.HasPrefix(l, "Dialogue: ") {
			out = append(out, l)
		}
	}
	return out
}

func TestDocumentEvents(t *testing.T) {
	doc := Document(sampleTranscript(), DocumentOptions{})
	if !strings.Contains(doc, "PlayResX: 1920\nPlayResY: 1080\n") {
		t.Fatalf("header missing resolution:\n%s", doc)
	}
	got := dialogues(doc)
	want := []string{
		"Dialogue: 0,0:00:00.00,0:00:00.80,Caption,,0,0,0,,Hello world.",
		"Dialogue: 0,0:00:00.90,0:00:01.20,Caption,,0,0,0,,Next",
		"Dialogue: 0,0:00:03.00,0:00:03.40,Caption,,0,0,0,,again",
	}
	if len(got) != 4 {
		t.Fatalf("want 4 dialogues, got %d:\n%s", len(got), strings.Join(got, "\n"))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("dialogue %d = %q, want %q", i, got[i], w)
		}
	}
	if !strings.HasPrefix(got[3], `Dialogue: 1,0:00:03.10,0:00:03.50,Caption,,0,0,0,,{\an5\pos(192,216)`) {
		t.Errorf("positioned word event = %q", got[3])
	}
}

func TestDocumentAlignSectionEndHoldsEvents(t *testing.T) {
	got := dialogues(Document(sampleTranscript(), DocumentOptions{AlignSectionEnd: true}))
	want := []string{
		"Dialogue: 0,0:00:00.00,0:00:00.90,Caption,,0,0,0,,Hello world.",
		"Dialogue: 0,0:00:00.90,0:00:01.20,Caption,,0,0,0,,Next",
		"Dialogue: 0,0:00:03.00,0:00:03.50,Caption,,0,0,0,,again",
	}
	if len(got) != 4 {
		t.Fatalf("want 4 dialogues, got %d:\n%s", len(got), strings.Join(got, "\n"))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("dialogue %d = %q, want %q", i, got[i], w)
		}
	}
	if !strings.HasPrefix(got[3], "Dialogue: 1,0:00:03.10,0:00:03.50,") {
		t.Errorf("positioned word timing changed: %q", got[3])
	}
}

func TestDocumentKaraokeTags(t *testing.T) {
	doc := Document(sampleTranscript(), DocumentOptions{Karaoke: true})
	got := dialogues(doc)
	if !strings.HasSuffix(got[0], `,,{\k40}Hello {\k40}world.`) {
		t.Fatalf("karaoke line = %q", got[0])
	}
}

func TestDocumentStyleAlignment(t *testing.T) {
	layout, _ := arrange.Lookup("karaoke")
	doc := Document(nil, DocumentOptions{Layout: layout})
	if !strings.Contains(doc, ",2,60,60,129,1\n") {
		t.Fatalf("bottom anchored style line wrong:\n%s", doc)
	}
	if len(dialogues(doc)) != 0 {
		t.Fatal("empty transcript should have no events")
	}

	top, _ := arrange.Lookup("karaoke-top")
	if doc := Document(nil, DocumentOptions{Layout: top}); !strings.Contains(doc, ",8,60,60,129,1\n") {
		t.Fatalf("top anchored style line wrong:\n%s", doc)
	}
}

package style

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/user/caption-timeline-cli/transcript"
)

func TestResolveDefaults(t *testing.T) {
	r := Resolve(Preset{}, nil)
	if r.Color != DefaultColor || r.FontWeight != DefaultFontWeight || r.FontFamily != DefaultFontFamily {
		t.Fatalf("defaults = %+v", r)
	}
	if r.FontSizePx != DefaultFontSizePx || r.Opacity != 1 || r.TextAlign != "center" {
		t.Fatalf("defaults = %+v", r)
	}
}

func TestResolvePrecedence(t *testing.T) {
	p := Preset{FontFamily: "Caveat", FontWeight: 500, Color: "#FF0000"}
	o := &transcript.StyleOverride{FontWeight: transcript.Ptr(900)}
	r := Resolve(p, o)
	if r.FontFamily != "Caveat" {
		t.Fatalf("family = %q, want preset value", r.FontFamily)
	}
	if r.FontWeight != 900 {
		t.Fatalf("weight = %d, want override", r.FontWeight)
	}
	if r.Color != "#FF0000" {
		t.Fatalf("color = %q", r.Color)
	}
}

func TestColorOverrideClearsGradient(t *testing.T) {
	lib := Builtin()
	fire, ok := lib.Get("fire")
	if !ok || fire.Gradient == nil {
		t.Fatal("fire preset should carry a gradient")
	}
	r := Resolve(fire, &transcript.StyleOverride{Color: transcript.Ptr("#00FF00")})
	if r.Gradient != nil {
		t.Fatalf("gradient survived a solid colour override: %+v", r.Gradient)
	}
	if r.Color != "#00FF00" {
		t.Fatalf("color = %q", r.Color)
	}

	plain := Resolve(fire, nil)
	if plain.Gradient == nil || plain.Color != fire.Gradient.From {
		t.Fatalf("gradient mode = %+v", plain)
	}
}

func TestGradientOverride(t *testing.T) {
	r := Resolve(Preset{Color: "#123456"}, &transcript.StyleOverride{Gradient: &transcript.Gradient{From: "#000000", To: "#FFFFFF"}})
	if r.Gradient == nil || r.Color != "#000000" {
		t.Fatalf("resolved = %+v", r)
	}
}

func TestResolveIsPureAndIdempotent(t *testing.T) {
	p, _ := Builtin().Get("neon-pink")
	o := &transcript.StyleOverride{Opacity: transcript.Ptr(0.5), TextTransform: transcript.Ptr("uppercase")}
	a := Resolve(p, o)
	b := Resolve(p, o)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("resolve not deterministic:\n%+v\n%+v", a, b)
	}
	a.Effects[0].Intensity = 0
	if c := Resolve(p, o); c.Effects[0].Intensity == 0 {
		t.Fatal("resolved effects share memory with the preset")
	}
}

func TestEffectsSparseAndSorted(t *testing.T) {
	p := Preset{Effects: map[Effect]float64{EffectPulse: 0.3, EffectGlow: 2, EffectFire: 0}}
	r := Resolve(p, nil)
	want := []EffectLevel{{EffectGlow, 1}, {EffectPulse, 0.3}}
	if !reflect.DeepEqual(r.Effects, want) {
		t.Fatalf("effects = %+v", r.Effects)
	}
	if r.Intensity(EffectFire) != 0 || r.Intensity(EffectPulse) != 0.3 {
		t.Fatal("Intensity lookup")
	}
}

func TestTransform(t *testing.T) {
	tests := map[string]string{"uppercase": "HELLO WORLD", "lowercase": "hello world", "capitalize": "Hello World", "": "hELLo world"}
	for tt, want := range tests {
		r := Resolved{TextTransform: tt}
		if got := r.Transform("hELLo world"); got != want {
			t.Errorf("%q: got %q, want %q", tt, got, want)
		}
	}
}

func TestBuiltinLibrary(t *testing.T) {
	lib := Builtin()
	if lib.Len() < 30 {
		t.Fatalf("builtin presets = %d", lib.Len())
	}
	seen := map[string]bool{}
	for _, p := range lib.List() {
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Color != "" && p.Gradient != nil {
			t.Fatalf("%s sets both color and gradient", p.ID)
		}
	}
	if lib.Lookup("nope").ID != DefaultPresetID {
		t.Fatal("unknown id should fall back to the default preset")
	}
}

func TestLoadLibraryOverlaysUserPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := []byte(`presets:
  - id: classic
    name: My Classic
    color: "#00FFAA"
  - id: studio
    font_family: Inter
    font_weight: 600
    effects:
      glow: 0.25
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if c, _ := lib.Get("classic"); c.Name != "My Classic" || c.Color != "#00FFAA" {
		t.Fatalf("classic = %+v", c)
	}
	s, ok := lib.Get("studio")
	if !ok || s.Effects[EffectGlow] != 0.25 || s.FontWeight != 600 {
		t.Fatalf("studio = %+v", s)
	}
	if lib.Len() != Builtin().Len()+1 {
		t.Fatalf("len = %d", lib.Len())
	}
}

func TestLoadLibraryMissingFile(t *testing.T) {
	lib, err := LoadLibrary(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil || lib.Len() != Builtin().Len() {
		t.Fatalf("lib=%v err=%v", lib, err)
	}
}

func TestParsePresetsRejectsBadInput(t *testing.T) {
	bad := []string{
		"presets:\n  - name: anonymous\n",
		"presets:\n  - id: x\n    color: \"#fff\"\n    gradient: {from: \"#000\", to: \"#fff\"}\n",
		"presets:\n  - id: x\n    effects: {glow: 3}\n",
	}
	for _, in := range bad {
		if _, err := ParsePresets([]byte(in)); err == nil {
			t.Errorf("accepted %q", in)
		}
	}
}

func TestWritePresetsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	in := []Preset{{ID: "a", Name: "A", Gradient: &transcript.Gradient{From: "#000000", To: "#FFFFFF", AngleDeg: 90}}}
	if err := WritePresets(path, in); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := lib.Get("a")
	if a.Gradient == nil || a.Gradient.AngleDeg != 90 {
		t.Fatalf("a = %+v", a)
	}
}

func TestColorConversions(t *testing.T) {
	c, err := ParseHex("#FF8000")
	if err != nil {
		t.Fatal(err)
	}
	if c.ASS() != "&H0080FF&" || c.ASSAlpha() != "&H00&" || c.Hex() != "#FF8000" {
		t.Fatalf("ass=%s alpha=%s hex=%s", c.ASS(), c.ASSAlpha(), c.Hex())
	}
	short, _ := ParseHex("#fff")
	if short.Hex() != "#FFFFFF" {
		t.Fatalf("short = %s", short.Hex())
	}
	half, _ := ParseHex("#00000080")
	if half.ASSAlpha() != "&H7F&" {
		t.Fatalf("alpha = %s", half.ASSAlpha())
	}
	if ASSStyleColor("#FF0000") != "&H000000FF" {
		t.Fatalf("style colour = %s", ASSStyleColor("#FF0000"))
	}
	if ASSColor("nope") != "&HFFFFFF&" {
		t.Fatal("bad input should fall back to white")
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Fatal("accepted short garbage")
	}
}

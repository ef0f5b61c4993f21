package arrange

import "errors"

// Kind selects a layout strategy.
type Kind string

const (
	KindCentered  Kind = "centered"
	KindKaraoke   Kind = "karaoke"
	KindGrid      Kind = "grid"
	KindWave      Kind = "wave"
	KindScrolling Kind = "scrolling"
	KindCustom    Kind = "custom"
)

// Anchor is the vertical placement of the caption block.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorCenter Anchor = "center"
	AnchorBottom Anchor = "bottom"
)

// Direction is the order in which the wave phase advances along a row.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionReverse Direction = "reverse"
)

// Slot is a fixed frame position used by the custom strategy.
type Slot struct {
	XPct float64 `json:"xPct"`
	YPct float64 `json:"yPct"`
}

// DefaultLayoutID is used when no layout preset is chosen or it is unknown.
const DefaultLayoutID = "centered"

// ErrUnknownLayout is returned for layout ids not in the catalog.
var ErrUnknownLayout = errors.New("unknown layout preset")

// LayoutPreset names a strategy and its parameters. Zero-valued parameters
// are filled with orientation-dependent defaults at render time.
type LayoutPreset struct {
	ID     string
	Name   string
	Kind   Kind
	Anchor Anchor
	// OffsetPct is the distance of a top or bottom anchored block from the
	// frame edge.
	OffsetPct  float64
	CenterXPct float64
	MaxLines   int
	WordGapEm  float64
	LineGapEm  float64
	// WidthBudgetPct is the share of the frame width a row may use.
	WidthBudgetPct float64
	// Columns caps words per grid row.
	Columns int
	// MaxWords caps a karaoke batch below the width estimate. Zero means no cap.
	MaxWords     int
	AmplitudePct float64
	Frequency    float64
	Direction    Direction
	Slots        []Slot
}

// Effective returns p with every unset parameter filled for the orientation.
func (p LayoutPreset) Effective(portrait bool) LayoutPreset {
	return p.withDefaults(portrait)
}

func (p LayoutPreset) withDefaults(portrait bool) LayoutPreset {
	if p.Kind == "" {
		p.Kind = KindCentered
	}
	if p.Anchor == "" {
		switch p.Kind {
		case KindScrolling, KindKaraoke:
			p.Anchor = AnchorBottom
		default:
			p.Anchor = AnchorCenter
		}
	}
	if p.OffsetPct <= 0 {
		p.OffsetPct = 12
	}
	if p.CenterXPct <= 0 {
		p.CenterXPct = 50
	}
	if p.MaxLines <= 0 {
		p.MaxLines = 2
		if p.Kind == KindScrolling {
			p.MaxLines = 4
		}
	}
	if p.WidthBudgetPct <= 0 {
		p.WidthBudgetPct = 70
		if portrait {
			p.WidthBudgetPct = 85
		}
	}
	if p.Columns <= 0 {
		p.Columns = 4
		if portrait {
			p.Columns = 3
		}
	}
	if p.WordGapEm <= 0 {
		p.WordGapEm = 0.3
		if portrait {
			p.WordGapEm = 0.25
		}
	}
	if p.LineGapEm <= 0 {
		p.LineGapEm = 0.15
		if portrait {
			p.LineGapEm = 0.3
		}
	}
	if p.AmplitudePct == 0 {
		p.AmplitudePct = 3
	}
	if p.Frequency == 0 {
		p.Frequency = 0.9
	}
	if p.Direction != DirectionReverse {
		p.Direction = DirectionForward
	}
	return p
}

var catalog = []LayoutPreset{
	{ID: "centered", Name: "Centered", Kind: KindCentered},
	{ID: "centered-top", Name: "Centered Top", Kind: KindCentered, Anchor: AnchorTop},
	{ID: "lower-third", Name: "Lower Third", Kind: KindCentered, Anchor: AnchorBottom, OffsetPct: 18},
	{ID: "single-line", Name: "Single Line", Kind: KindCentered, Anchor: AnchorBottom, MaxLines: 1},
	{ID: "karaoke", Name: "Karaoke", Kind: KindKaraoke, Anchor: AnchorBottom},
	{ID: "karaoke-center", Name: "Karaoke Center", Kind: KindKaraoke, Anchor: AnchorCenter},
	{ID: "karaoke-top", Name: "Karaoke Top", Kind: KindKaraoke, Anchor: AnchorTop},
	{ID: "karaoke-short", Name: "Karaoke Short", Kind: KindKaraoke, Anchor: AnchorBottom, MaxWords: 3},
	{ID: "grid", Name: "Grid", Kind: KindGrid},
	{ID: "grid-narrow", Name: "Grid Narrow", Kind: KindGrid, Columns: 2, WidthBudgetPct: 50},
	{ID: "wave", Name: "Wave", Kind: KindWave},
	{ID: "wave-gentle", Name: "Wave Gentle", Kind: KindWave, AmplitudePct: 1.5, Frequency: 0.5},
	{ID: "wave-reverse", Name: "Wave Reverse", Kind: KindWave, Direction: DirectionReverse},
	{ID: "scrolling", Name: "Scrolling", Kind: KindScrolling},
	{ID: "corners", Name: "Corners", Kind: KindCustom, Slots: []Slot{
		{XPct: 20, YPct: 15}, {XPct: 80, YPct: 15}, {XPct: 80, YPct: 85}, {XPct: 20, YPct: 85},
	}},
}

// Lookup returns the catalog preset with id.
func Lookup(id string) (LayoutPreset, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return LayoutPreset{}, false
}

// LookupOrDefault returns the preset with id or the default layout.
func LookupOrDefault(id string) LayoutPreset {
	if p, ok := Lookup(id); ok {
		return p
	}
	p, _ := Lookup(DefaultLayoutID)
	return p
}

// List returns the catalog in display order.
func List() []LayoutPreset {
	out := make([]LayoutPreset, len(catalog))
	copy(out, catalog)
	return out
}

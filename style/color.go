package style

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is an 8-bit colour.
type RGBA struct {
	R, G, B, A uint8
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA, with or without the hash.
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as #RRGGBB, adding the alpha byte only when not opaque.
func (c RGBA) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ASS formats the colour part as an ASS override value, &HBBGGRR&.
func (c RGBA) ASS() string {
	return fmt.Sprintf("&H%02X%02X%02X&", c.B, c.G, c.R)
}

// ASSAlpha formats the transparency as &HAA&, where 00 is opaque.
func (c RGBA) ASSAlpha() string {
	return fmt.Sprintf("&H%02X&", 0xff-c.A)
}

// ASSColor converts a hex colour to ASS, falling back to white on bad input.
func ASSColor(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		return "&HFFFFFF&"
	}
	return c.ASS()
}

// ASSStyleColor formats a colour for a [V4+ Styles] line, &HAABBGGRR.
func ASSStyleColor(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		c = RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return fmt.Sprintf("&H%02X%02X%02X%02X", 0xff-c.A, c.B, c.G, c.R)
}

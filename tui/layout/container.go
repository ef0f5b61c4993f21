package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/styles"
)

// Container wraps content into an exact Width x Height bounding box.
// When content is cut vertically, the last visible line shows a scroll hint.
type Container struct {
	Width  int
	Height int
}

// Render returns the content constrained to exactly Width columns and Height lines.
func (c Container) Render(content string) string {
	if c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > c.Height {
		lines = lines[:c.Height]
		lines[c.Height-1] = lipgloss.NewStyle().Foreground(styles.Purple).Render("↓ more")
	}
	lines = NormalizeLines(lines, c.Height)
	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}
	return strings.Join(lines, "\n")
}

// Rect is a screen region in terminal cells, used for mouse hit tests.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

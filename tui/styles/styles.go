// Package styles provides Lipgloss styles for the editor using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is a secondary dark background (Ciapre ANSI 0 black)
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour (Ciapre ANSI 6 brown)
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states (Ciapre ANSI 5 magenta)
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour (Ciapre ANSI 14 cream)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink marks headers, the playhead and the selection
	Pink = lipgloss.Color("#D33061")
	// Cyan marks interactive elements and shortcuts
	Cyan = lipgloss.Color("#3097C6")
	// Amber is a warm accent for sub-headers and pinned words
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// LaneColors cycle through the timeline lanes.
var LaneColors = []lipgloss.Color{Cyan, Amber, Green, BrightPurple, Lavender}

// LaneColor returns the bar colour of lane i.
func LaneColor(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return LaneColors[i%len(LaneColors)]
}

// Border is the style for bordered panels
var Border = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Purple)

// Highlight is the style for selected/highlighted items
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

// Karaoke word states in the frame preview.
var (
	Upcoming = lipgloss.NewStyle().Foreground(Lavender)
	Active   = lipgloss.NewStyle().Foreground(Pink).Bold(true)
	Sung     = lipgloss.NewStyle().Foreground(LightLavender)
	Pinned   = lipgloss.NewStyle().Foreground(Amber).Bold(true)
)

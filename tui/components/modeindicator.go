package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/styles"
)

// ModeIndicator renders the focused panel and the input mode.
func ModeIndicator(focusName, mode string, width int) string {
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	left := " Focus: " + focusName
	right := mode + " "
	pad := max(width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)

	line := textStyle.Render(left + strings.Repeat(" ", pad) + right)
	return RenderInfoBox("Mode", []string{line}, width)
}

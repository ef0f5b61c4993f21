package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/layout"
	"github.com/user/caption-timeline-cli/tui/styles"
)

// RenderProgressState tracks one preview render.
type RenderProgressState struct {
	Active bool
	Done   bool
	// Output is the clip being written
	Output string
	Err    error
}

// RenderProgress renders a small box describing the current preview render.
func RenderProgress(state RenderProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}
	green := lipgloss.NewStyle().Foreground(styles.Green)
	amber := lipgloss.NewStyle().Foreground(styles.Amber)
	red := lipgloss.NewStyle().Foreground(styles.Red)
	text := lipgloss.NewStyle().Foreground(styles.LightLavender)

	innerW := width - 4
	var lines []string
	switch {
	case state.Err != nil:
		lines = append(lines, " "+red.Render(layout.Ellipsize("Failed: "+state.Err.Error(), innerW)))
	case state.Done:
		lines = append(lines, " "+green.Render("Render complete"))
	default:
		lines = append(lines, " "+amber.Render("Rendering with ffmpeg…"))
	}
	if state.Output != "" {
		lines = append(lines, " "+text.Render(layout.Ellipsize(state.Output, innerW)))
	}
	return RenderInfoBox("Preview render", lines, width)
}

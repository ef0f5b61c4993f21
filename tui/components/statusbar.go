package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/tui/styles"
)

// StatusBarState holds what the top bar shows.
type StatusBarState struct {
	Paused     bool
	NowMs      int64
	DurationMs int64
	// StepMs is the seek step of H and L
	StepMs int64
	Lyric  string
	Layout string
	// Portrait is set when the frame is 9:16
	Portrait bool
	// Connected is false when no player is attached
	Connected      bool
	OverlayEnabled bool
	// Saving is set while a save is pending or in flight
	Saving    bool
	SaveError bool
}

// StatusBar renders the full-width top bar: play state and time on the
// left, presets and save state on the right.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "▶"
	if state.Paused {
		playIcon = "⏸"
	}
	if !state.Connected {
		playIcon = "◼"
	}

	left := fmt.Sprintf(" %s %s / %s  step %s", playIcon,
		timeutil.FormatShort(state.NowMs), timeutil.FormatShort(state.DurationMs), formatStep(state.StepMs))

	frame := "16:9"
	if state.Portrait {
		frame = "9:16"
	}
	right := fmt.Sprintf("%s · %s · %s", state.Lyric, state.Layout, frame)
	if state.OverlayEnabled {
		right += " · overlay"
	}
	switch {
	case state.SaveError:
		right += " · " + lipgloss.NewStyle().Foreground(styles.Red).Render("save failed")
	case state.Saving:
		right += " · saving…"
	default:
		right += " · saved"
	}
	right += " "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	content := left + fmt.Sprintf("%*s", padding, "") + right

	return lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width).
		Render(content)
}

func formatStep(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	if ms%1000 == 0 {
		return fmt.Sprintf("%ds", ms/1000)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/styles"
)

type binding struct {
	key  string
	desc string
}

type bindingGroup struct {
	title    string
	bindings []binding
}

var helpGroups = []bindingGroup{
	{"Playback", []binding{
		{"Space", "Toggle play/pause"},
		{"H / L", "Seek back/forward by step"},
		{"< / >", "Decrease/increase step"},
		{"Enter", "Seek to selected word"},
	}},
	{"Words", []binding{
		{"J / K", "Select next/previous word"},
		{"A", "Add word at playhead"},
		{"E", "Edit selected word"},
		{"S", "Style selected word (or all)"},
		{"D", "Duplicate selected word"},
		{"X / Del", "Delete selected word"},
		{"C", "Return word to the layout"},
		{"[ / ]", "Nudge selected word 10ms"},
		{"{ / }", "Shift every word 100ms"},
		{"Y / Ctrl+V", "Copy word / paste text as word"},
	}},
	{"Mouse", []binding{
		{"Drag bar", "Move word; drag edges to resize"},
		{"Drag scrub", "Scrub the playhead"},
		{"Drag frame", "Pin word to a frame position"},
		{"Ctrl+Click", "Pin selected word at the click"},
	}},
	{"Views", []binding{
		{"Tab", "Cycle focus"},
		{"Arrows", "Nudge in focused panel"},
		{"P", "Choose presets"},
		{"V / Shift+V", "Cycle layout / lyric preset"},
		{"R", "Toggle portrait frame"},
		{"O", "Mirror captions on the video"},
		{"+ / -", "Zoom timeline"},
		{"Ctrl+R", "Render preview clip"},
		{"Ctrl+S", "Save now"},
	}},
	{"Commands", []binding{
		{":", "Enter command mode"},
		{"Esc", "Cancel command mode"},
		{"Q", "Quit"},
	}},
}

// HelpOverlay renders the keybinding reference centred on screen.
func HelpOverlay(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true).Padding(0, 1)
	groupHeaderStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Bold(true).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	footerStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)

	lines := []string{titleStyle.Render("Keybindings")}
	for _, g := range helpGroups {
		lines = append(lines, groupHeaderStyle.Render(g.title))
		for _, b := range g.bindings {
			lines = append(lines, "  "+keyStyle.Render(b.key)+descStyle.Render(b.desc))
		}
	}
	lines = append(lines, "", footerStyle.Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// Package components provides the rendering pieces of the editor screen:
// boxes, the lane timeline, the frame preview, the word list and bars.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/caption-timeline-cli/tui/styles"
)

// Control represents a single control with its display info.
type Control struct {
	Name     string
	Shortcut string
}

// ControlGroup is a titled set of controls. SubGroups are separated by
// horizontal dividers.
type ControlGroup struct {
	Name      string
	SubGroups [][]Control
}

// GetControlGroups returns the control groups shown in the controls column.
func GetControlGroups() []ControlGroup {
	return []ControlGroup{
		{
			Name: "Playback",
			SubGroups: [][]Control{
				{
					{Name: "Play", Shortcut: "Space"},
					{Name: "Back", Shortcut: "H"},
					{Name: "Fwd", Shortcut: "L"},
				},
				{
					{Name: "Step -", Shortcut: "<"},
					{Name: "Step +", Shortcut: ">"},
				},
			},
		},
		{
			Name: "Words",
			SubGroups: [][]Control{
				{
					{Name: "Add", Shortcut: "A"},
					{Name: "Edit", Shortcut: "E"},
					{Name: "Style", Shortcut: "S"},
					{Name: "Dup", Shortcut: "D"},
					{Name: "Delete", Shortcut: "X"},
				},
				{
					{Name: "Unpin", Shortcut: "C"},
					{Name: "Nudge", Shortcut: "[ / ]"},
					{Name: "Shift all", Shortcut: "{ / }"},
				},
			},
		},
		{
			Name: "Views",
			SubGroups: [][]Control{
				{
					{Name: "Focus", Shortcut: "Tab"},
					{Name: "Presets", Shortcut: "P"},
					{Name: "Layout", Shortcut: "V"},
					{Name: "Portrait", Shortcut: "R"},
					{Name: "Overlay", Shortcut: "O"},
					{Name: "Zoom", Shortcut: "+ / -"},
				},
				{
					{Name: "Render", Shortcut: "Ctrl+R"},
					{Name: "Help", Shortcut: "?"},
					{Name: "Quit", Shortcut: "Q"},
				},
			},
		},
	}
}

// RenderInfoBox renders a bordered box with a tab-style header. Content
// lines are rendered as-is; the caller styles them.
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}
	innerWidth := width - 2

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)

	// ╭─ Title ─────╮
	headerText := headerStyle.Render(" " + title + " ")
	fillWidth := max(innerWidth-1-lipgloss.Width(headerText), 0)
	topLine := borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮")

	lines := make([]string, 0, len(contentLines)+2)
	lines = append(lines, topLine)
	for _, line := range contentLines {
		if lipgloss.Width(line) > innerWidth {
			line = ansi.Truncate(line, innerWidth, "")
		}
		pad := innerWidth - lipgloss.Width(line)
		lines = append(lines, borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}
	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}

// RenderControlBox renders a control group inside a bordered box with a tab
// header and dividers between sub-groups:
//
//	 ┌──────────┐
//	┌┤ Playback ├┐
//	│└──────────┘└────────────┐
//	│ Play    [ Space ]       │
//	├─────────────────────────┤
//	│ Step -  [ < ]           │
//	└─────────────────────────┘
func RenderControlBox(group ControlGroup, width int) string {
	if width < 6 {
		return ""
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	shortcutStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)

	innerW := width - 2
	tabLabel := " " + group.Name + " "
	tabInnerW := lipgloss.Width(tabLabel)

	line1 := " " + borderStyle.Render("┌"+strings.Repeat("─", tabInnerW)+"┐")
	line2 := borderStyle.Render("┌┤") + headerStyle.Render(tabLabel) + borderStyle.Render("├┐")
	remainW := max(innerW-tabInnerW-3, 0)
	line3 := borderStyle.Render("│└" + strings.Repeat("─", tabInnerW) + "┘└" + strings.Repeat("─", remainW) + "┐")

	lines := []string{line1, line2, line3}

	nameW := 0
	for _, sg := range group.SubGroups {
		for _, c := range sg {
			nameW = max(nameW, len(c.Name))
		}
	}

	for si, sg := range group.SubGroups {
		for _, c := range sg {
			content := nameStyle.Render(fmt.Sprintf("%-*s", nameW, c.Name)) + "  " + shortcutStyle.Render("[ "+c.Shortcut+" ]")
			padRight := max(innerW-2-lipgloss.Width(content), 0)
			row := borderStyle.Render("│") + " " + content + strings.Repeat(" ", padRight) + " " + borderStyle.Render("│")
			if lipgloss.Width(row) > width {
				row = ansi.Truncate(row, width, "")
			}
			lines = append(lines, row)
		}
		if si < len(group.SubGroups)-1 {
			lines = append(lines, borderStyle.Render("├"+strings.Repeat("─", innerW)+"┤"))
		}
	}
	lines = append(lines, borderStyle.Render("└"+strings.Repeat("─", innerW)+"┘"))
	return strings.Join(lines, "\n")
}

package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth  = 80  // minimum terminal width for the editor
	ControlsHideWidth = 110 // below this width, hide the controls column
	ControlsWidth     = 28  // fixed width of the controls column
	WordsMinWidth     = 26  // narrowest word list
	PreviewShareNumer = 3   // the preview takes 3/5 of the remaining width
	PreviewShareDenom = 5
)

// ComputeColumnWidths splits the terminal into preview, word list and
// (when wide enough) controls columns. Border characters between columns are
// accounted for.
func ComputeColumnWidths(termWidth int) (preview, words, controls int, showControls bool) {
	showControls = termWidth >= ControlsHideWidth

	usable := termWidth - 1
	if showControls {
		usable = termWidth - 2 - ControlsWidth
		controls = ControlsWidth
	}
	preview = usable * PreviewShareNumer / PreviewShareDenom
	words = usable - preview
	if words < WordsMinWidth {
		words = min(WordsMinWidth, usable/2)
		preview = usable - words
	}
	return
}

// JoinColumns joins pre-rendered column strings side by side with border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	rows := make([]string, 0, height)
	for row := range height {
		parts := make([]string, 0, len(colLines))
		for i, lines := range colLines {
			parts = append(parts, PadToWidth(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}
	return strings.Join(rows, "\n")
}

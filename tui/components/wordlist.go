package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/transcript"
	"github.com/user/caption-timeline-cli/tui/layout"
	"github.com/user/caption-timeline-cli/tui/styles"
)

// WordListState holds the scroll position of the word list.
type WordListState struct {
	ScrollOffset int
}

// Follow scrolls so that selected is visible within rows lines.
func (s *WordListState) Follow(selected, rows, total int) {
	if rows <= 0 {
		return
	}
	if selected >= 0 {
		if selected < s.ScrollOffset {
			s.ScrollOffset = selected
		} else if selected >= s.ScrollOffset+rows {
			s.ScrollOffset = selected - rows + 1
		}
	}
	s.ScrollOffset = min(max(s.ScrollOffset, 0), max(total-rows, 0))
}

// WordList renders the transcript as a table, one word per row. The row under
// the playhead is marked and the selected row is highlighted. Row i of the
// output (after the header) is word ScrollOffset+i.
func WordList(state WordListState, words []transcript.Word, selected int, nowMs int64, width, height int) string {
	headerStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Bold(true).Underline(true)
	const idxW, timeW = 4, 15
	textW := max(width-idxW-timeW-6, 6)

	lines := []string{headerStyle.Render(fmt.Sprintf(" %-*s %-*s %-*s", idxW, "#", timeW, "Time", textW, "Word"))}
	if len(words) == 0 {
		empty := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true)
		return strings.Join(append(lines, empty.Render(" Transcript is empty")), "\n")
	}

	rows := max(height-1, 1)
	end := min(state.ScrollOffset+rows, len(words))
	for i := state.ScrollOffset; i < end; i++ {
		w := words[i]
		marker := " "
		if w.ActiveAt(nowMs) {
			marker = "▸"
		}
		flags := ""
		if w.Positioned() {
			flags += " ⌖"
		}
		if w.Style != nil {
			flags += " ✎"
		}
		span := timeutil.FormatShort(w.Start) + "–" + timeutil.FormatShort(w.End)
		text := layout.Ellipsize(w.Text+flags, textW)
		row := fmt.Sprintf("%s%-*d %-*s %s", marker, idxW, i, timeW, span, text)

		switch {
		case i == selected:
			lines = append(lines, styles.Highlight.Render(layout.PadToWidth(row, width)))
		case w.ActiveAt(nowMs):
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.Pink).Render(row))
		default:
			lines = append(lines, styles.PrimaryText.Render(row))
		}
	}
	return strings.Join(lines, "\n")
}

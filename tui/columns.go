package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/drag"
	"github.com/user/caption-timeline-cli/editor"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/tui/components"
	"github.com/user/caption-timeline-cli/tui/layout"
	"github.com/user/caption-timeline-cli/tui/styles"
)

// detailRows is the height of the selected-word box under the preview.
const detailRows = 6

// Screen rows above the columns: the status bar.
const columnsTop = 1

// geometry is where everything sits on screen. View and the mouse handler
// both derive it from the model so hit tests match what was drawn.
type geometry struct {
	previewW, wordsW, controlsW int
	showControls                bool
	colHeight                   int

	timeline    components.TimelineLayout
	timelineTop int

	frame     arrange.Frame
	frameW    int
	frameH    int
	frameLeft int
	frameTop  int
	boxes     []components.TokenBox

	wordsLeft     int
	wordsFirstRow int
	wordRows      int
}

func (m *Model) geometry() geometry {
	var g geometry
	g.previewW, g.wordsW, g.controlsW, g.showControls = layout.ComputeColumnWidths(m.width)

	g.timeline = components.LayoutTimeline(m.timelineState(), m.width)
	g.colHeight = max(m.height-columnsTop-g.timeline.Height()-1, 8)
	g.timelineTop = columnsTop + g.colHeight

	g.frame = m.nativeFrame()
	maxFrameH := max(g.colHeight-2-detailRows, 3)
	g.frameW, g.frameH = components.FrameSize(g.frame, g.previewW-2, maxFrameH)
	g.frameLeft = 1
	g.frameTop = columnsTop + 1
	if g.frameW > 0 {
		tokens := m.session.Frame(editor.FrameOptions{Frame: g.frame, Scale: float64(g.frameW) * components.CellPx / g.frame.Width})
		g.boxes = components.PlaceTokens(tokens, g.frameW, g.frameH)
	}

	g.wordsLeft = g.previewW + 1
	// box border, then the header row
	g.wordsFirstRow = columnsTop + 2
	g.wordRows = max(g.colHeight-3, 1)
	return g
}

// surface is the drag surface over the drawn frame, in pointer pixels.
func (g geometry) surface() drag.Surface {
	return drag.Surface{
		Left:         float64(g.frameLeft) * components.CellPx,
		Top:          float64(g.frameTop) * components.RowPx,
		NativeWidth:  g.frame.Width,
		NativeHeight: g.frame.Height,
		RenderScale:  drag.FitScale(float64(g.frameW)*components.CellPx, g.frame.Width),
	}
}

// renderPreviewColumn renders the frame preview and the selected word card.
func (m *Model) renderPreviewColumn(g geometry) string {
	var lines []string

	title := "Frame 16:9"
	if m.portrait {
		title = "Frame 9:16"
	}
	if g.frameW > 0 {
		box := components.FramePreview(title, g.boxes, m.session.Selected(), g.frameW, g.frameH)
		lines = append(lines, strings.Split(box, "\n")...)
	}

	detailStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)
	var content []string
	if w, ok := m.session.SelectedWord(); ok {
		content = append(content,
			detailStyle.Render(fmt.Sprintf(" #%d %s", m.session.Selected(), w.Text)),
			dimStyle.Render(fmt.Sprintf(" %s → %s (%dms)", timeutil.FormatMs(w.Start), timeutil.FormatMs(w.End), w.Duration())))
		lane := "auto"
		if w.Lane != nil {
			lane = fmt.Sprintf("%d", *w.Lane)
		}
		pos := "layout"
		if w.Positioned() {
			pos = fmt.Sprintf("%.1f%%, %.1f%%", *w.XPct, *w.YPct)
		}
		content = append(content, dimStyle.Render(fmt.Sprintf(" lane %s · %s", lane, pos)))
		if w.Style != nil && w.Style.Color != nil {
			content = append(content, dimStyle.Render(" colour "+*w.Style.Color))
		}
	} else {
		content = append(content, dimStyle.Italic(true).Render(" Nothing selected"))
	}
	lines = append(lines, strings.Split(components.RenderInfoBox("Selected", content, g.previewW), "\n")...)

	if p := components.RenderProgress(m.render, g.previewW); p != "" {
		lines = append(lines, strings.Split(p, "\n")...)
	}
	return layout.Container{Width: g.previewW, Height: g.colHeight}.Render(strings.Join(lines, "\n"))
}

// renderWordsColumn renders the scrollable word list.
func (m *Model) renderWordsColumn(g geometry) string {
	words := m.session.Transcript().Flatten()
	m.wordList.Follow(m.session.Selected(), g.wordRows, len(words))
	title := fmt.Sprintf("Words (%d)", len(words))
	if m.focus == FocusWords {
		title = "▸ " + title
	}
	list := components.WordList(m.wordList, words, m.session.Selected(), m.session.Now(), g.wordsW-2, g.colHeight-2)
	box := components.RenderInfoBox(title, strings.Split(list, "\n"), g.wordsW)
	return layout.Container{Width: g.wordsW, Height: g.colHeight}.Render(box)
}

// renderControlsColumn renders the keybinding groups and the focus box.
func (m *Model) renderControlsColumn(width, height int) string {
	mode := "normal"
	switch {
	case m.commandInput.Active:
		mode = "command"
	case m.dragging():
		mode = "drag"
	}
	lines := []string{components.ModeIndicator(m.focus.String(), mode, width)}
	for _, group := range components.GetControlGroups() {
		lines = append(lines, components.RenderControlBox(group, width))
	}
	return layout.Container{Width: width, Height: height}.Render(strings.Join(lines, "\n"))
}

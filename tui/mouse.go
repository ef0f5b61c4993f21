package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/caption-timeline-cli/drag"
	"github.com/user/caption-timeline-cli/tui/components"
)

// pointerAt maps a terminal cell to pointer pixels at the cell's centre.
func pointerAt(col, row int) (x, y float64) {
	return components.PointerX(col), (float64(row) + 0.5) * components.RowPx
}

// handleMouse turns mouse messages into pointer gestures. A press starts a
// controller for whatever is under the cell; motion and release go to the
// bus, where only the running controller listens.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := pointerAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.bus.Publish(drag.PointerEvent{Kind: drag.PointerMove, X: x, Y: y, Modifier: msg.Ctrl})
	case tea.MouseActionRelease:
		m.bus.Publish(drag.PointerEvent{Kind: drag.PointerUp, X: x, Y: y, Modifier: msg.Ctrl})
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m, m.press(msg, x, y)
		case tea.MouseButtonWheelUp:
			m.wheel(msg, -1)
		case tea.MouseButtonWheelDown:
			m.wheel(msg, 1)
		}
	}
	m.refreshStatus()
	return m, nil
}

func (m *Model) press(msg tea.MouseMsg, x, y float64) tea.Cmd {
	if m.dragging() {
		return nil
	}
	s := m.session
	g := m.geometry()

	// Timeline box: bars, empty lane cells and the scrub bar.
	tl := g.timeline
	bx, by := msg.X, msg.Y-g.timelineTop
	if bar, ok := tl.BarAt(bx, by); ok {
		mode := drag.HitMode(x, bar.LeftPx, bar.WidthPx, components.ResizeHandlePx)
		m.focus = FocusTimeline
		m.timeline.Begin(bar.Index, mode, x)
		return nil
	}
	if tl.InScrub(bx, by) {
		m.scrubber.SetTrack(drag.Track{Left: tl.TrackLeftPx(), Width: tl.ScrubWidthPx()})
		m.scrubber.SetDuration(s.Duration())
		m.scrubber.Down(x)
		return nil
	}
	if tl.InTrack(bx, by) {
		m.focus = FocusTimeline
		m.seek(tl.MsAt(bx))
		return nil
	}

	// Frame preview: drag a word, or pin the selected word with ctrl.
	fx, fy := msg.X-g.frameLeft, msg.Y-g.frameTop
	if g.frameW > 0 && fx >= 0 && fx < g.frameW && fy >= 0 && fy < g.frameH {
		m.focus = FocusFrame
		m.positioner.SetSurface(g.surface())
		if msg.Ctrl {
			if !m.positioner.PlaceSelected(x, y) {
				return m.flash("Select a word to pin it", true)
			}
			return nil
		}
		if box, ok := components.TokenAt(g.boxes, fx, fy); ok {
			m.positioner.Begin(box.Index)
		}
		return nil
	}

	// Word list rows.
	if msg.X >= g.wordsLeft && msg.X < g.wordsLeft+g.wordsW {
		row := msg.Y - g.wordsFirstRow
		idx := m.wordList.ScrollOffset + row
		if row >= 0 && row < g.wordRows && idx < s.Transcript().TotalWords() {
			m.focus = FocusWords
			s.Select(idx)
		}
	}
	return nil
}

// wheel scrolls the timeline, or zooms it with ctrl held. Over the word
// list it moves the selection.
func (m *Model) wheel(msg tea.MouseMsg, dir int) {
	g := m.geometry()
	if msg.Y >= g.timelineTop && msg.Y < g.timelineTop+g.timeline.Height() {
		if msg.Ctrl {
			if dir < 0 {
				m.zoom(zoomFactor)
			} else {
				m.zoom(1 / zoomFactor)
			}
			return
		}
		if m.timeline.Dragging() {
			return
		}
		state := components.TimelineState{PixelsPerSecond: m.pps}
		step := int64(float64(max(g.timeline.TrackCols/4, 1)) * state.MsPerCell())
		m.offsetMs = max(m.offsetMs+int64(dir)*step, 0)
		return
	}
	if msg.X >= g.wordsLeft && msg.X < g.wordsLeft+g.wordsW {
		if dir < 0 {
			m.session.SelectPrev()
		} else {
			m.session.SelectNext()
		}
	}
}

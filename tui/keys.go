package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/caption-timeline-cli/clock"
	"github.com/user/caption-timeline-cli/drag"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/transcript"
	"github.com/user/caption-timeline-cli/tui/components"
)

// Clipboard access, swapped out in tests.
var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)

const (
	nudgeMs      = 10
	shiftAllMs   = 100
	framePctStep = 1.0
)

// handleKey handles keys in normal mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	switch msg.String() {
	case "?":
		m.cancelPointer()
		m.showHelp = true
	case "q", "ctrl+c":
		return m.quit()
	case ":":
		m.commandInput.Open()
	case "esc":
		m.cancelPointer()
		s.Select(transcript.NoSelection)

	case " ":
		paused, err := s.TogglePlay()
		if errors.Is(err, clock.ErrNoClock) {
			return m, m.flash("Not connected to mpv", true)
		}
		if err != nil {
			return m, m.flash(err.Error(), true)
		}
		m.statusBar.Paused = paused
	case "h", "H":
		m.seek(s.Now() - stepSizes[m.stepIdx])
	case "l", "L":
		m.seek(s.Now() + stepSizes[m.stepIdx])
	case "<":
		m.stepIdx = max(m.stepIdx-1, 0)
	case ">":
		m.stepIdx = min(m.stepIdx+1, len(stepSizes)-1)
	case "enter":
		if w, ok := s.SelectedWord(); ok {
			m.seek(w.Start)
		}

	case "j", "J":
		s.SelectNext()
	case "k", "K":
		s.SelectPrev()
	case "a", "A":
		return m, m.openAddForm()
	case "e", "E":
		if _, ok := s.SelectedWord(); !ok {
			return m, m.flash("No word selected", true)
		}
		return m, m.openEditForm()
	case "s", "S":
		return m, m.openStyleForm()
	case "d", "D":
		if !s.DuplicateSelected() {
			return m, m.flash("No word selected", true)
		}
	case "x", "X", "delete":
		if !s.DeleteSelected() {
			return m, m.flash("No word selected", true)
		}
	case "c", "C":
		if !s.ClearSelectedPosition() {
			return m, m.flash("Selected word is not pinned", true)
		}
	case "[":
		m.nudgeSelected(-nudgeMs)
	case "]":
		m.nudgeSelected(nudgeMs)
	case "{":
		s.ShiftAll(-shiftAllMs)
	case "}":
		s.ShiftAll(shiftAllMs)
	case "y", "Y":
		return m, m.copySelected()
	case "ctrl+v":
		return m, m.pasteWord()

	case "tab":
		m.focus = m.focus.next()
	case "up", "down", "left", "right":
		return m, m.arrow(msg.String())
	case "p":
		return m, m.openPresetForm()
	case "v":
		s.CycleLayout(1)
	case "V":
		s.CycleLyric(1)
	case "r", "R":
		m.portrait = !m.portrait
		m.lastOverlay = ""
	case "o", "O":
		m.overlayEnabled = !m.overlayEnabled
		if !m.overlayEnabled {
			m.hideOverlay()
		}
	case "+", "=":
		m.zoom(zoomFactor)
	case "-", "_":
		m.zoom(1 / zoomFactor)
	case "ctrl+r":
		return m.startRender()
	case "ctrl+s":
		if m.gateway != nil {
			m.gateway.Flush()
		}
		return m, m.flash("Saving", false)
	}
	m.refreshStatus()
	return m, nil
}

func (m *Model) seek(ms int64) {
	if err := m.session.Seek(min(max(ms, 0), max(m.session.Duration(), 0))); err != nil {
		m.logger.Debug("seek failed", "error", err)
	}
	m.followPlayhead()
}

func (m *Model) nudgeSelected(deltaMs int64) {
	w, ok := m.session.SelectedWord()
	if !ok {
		return
	}
	start, end := drag.Apply(drag.ModeMove, w.Start, w.End, deltaMs)
	m.session.SetSelectedTiming(start, end)
}

func (m *Model) zoom(factor float64) {
	m.pps = min(max(m.pps*factor, minPixelsPerSecond), maxPixelsPerSecond)
	m.timeline.SetPixelsPerSecond(m.pps)
	m.followPlayhead()
}

// arrow acts on the focused panel: the timeline moves and re-lanes the
// word, the list walks the words and the frame nudges the word's position.
func (m *Model) arrow(key string) tea.Cmd {
	s := m.session
	switch m.focus {
	case FocusWords:
		switch key {
		case "up", "left":
			s.SelectPrev()
		case "down", "right":
			s.SelectNext()
		}
	case FocusTimeline:
		if _, ok := s.SelectedWord(); !ok {
			return nil
		}
		cellMs := int64(components.TimelineState{PixelsPerSecond: m.pps}.MsPerCell())
		switch key {
		case "left":
			m.nudgeSelected(-cellMs)
		case "right":
			m.nudgeSelected(cellMs)
		case "up", "down":
			lane := m.laneOf(s.Selected())
			if key == "up" {
				lane = max(lane-1, 0)
			} else {
				lane++
			}
			s.SetSelectedLane(&lane)
		}
	case FocusFrame:
		return m.nudgeOnFrame(key)
	}
	return nil
}

// laneOf is the lane word idx is drawn on.
func (m *Model) laneOf(idx int) int {
	for _, seg := range m.session.Segments() {
		if seg.Index == idx {
			return seg.Lane
		}
	}
	return 0
}

// nudgeOnFrame moves the selected word one percent on the frame, pinning
// it where the layout last drew it.
func (m *Model) nudgeOnFrame(key string) tea.Cmd {
	g := m.geometry()
	idx := m.session.Selected()
	var xPct, yPct float64
	found := false
	for _, b := range g.boxes {
		if b.Index == idx {
			xPct, yPct, found = b.Token.XPct, b.Token.YPct, true
		}
	}
	if w, ok := m.session.SelectedWord(); ok && w.Positioned() {
		xPct, yPct, found = *w.XPct, *w.YPct, true
	}
	if !found {
		return m.flash("Selected word is not on screen", true)
	}
	switch key {
	case "left":
		xPct -= framePctStep
	case "right":
		xPct += framePctStep
	case "up":
		yPct -= framePctStep
	case "down":
		yPct += framePctStep
	}
	surface := g.surface()
	m.positioner.SetSurface(surface)
	x, y := surface.FromPct(transcript.ClampPct(xPct), transcript.ClampPct(yPct))
	m.positioner.PlaceSelected(x, y)
	return nil
}

func (m *Model) copySelected() tea.Cmd {
	w, ok := m.session.SelectedWord()
	if !ok {
		return m.flash("No word selected", true)
	}
	if err := clipboardWrite(w.Text); err != nil {
		return m.flash("Clipboard: "+err.Error(), true)
	}
	return m.flash(fmt.Sprintf("Copied %q", w.Text), false)
}

// pasteWord adds the clipboard text as a word at the playhead.
func (m *Model) pasteWord() tea.Cmd {
	text, err := clipboardRead()
	if err != nil {
		return m.flash("Clipboard: "+err.Error(), true)
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return m.flash("Clipboard is empty", true)
	}
	m.session.AddWord(text)
	return m.flash(fmt.Sprintf("Added %q at %s", text, timeutil.FormatShort(m.session.Now())), false)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.gateway != nil && m.gateway.Status().LastError != nil {
		return m, m.openQuitForm()
	}
	m.cancelPointer()
	m.hideOverlay()
	m.quitting = true
	return m, tea.Quit
}

// handleCommandInput handles key events when in command mode.
func (m *Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandInput.Clear()
		return m, nil
	case tea.KeyEnter:
		line := m.commandInput.GetCommand()
		m.commandInput.Clear()
		if line == "" {
			return m, nil
		}
		result, err := m.executeCommand(line)
		if m.quitting {
			return m, tea.Quit
		}
		after := m.afterCommand
		m.afterCommand = nil
		if err != nil {
			return m, m.flash("Error: "+err.Error(), true)
		}
		m.refreshStatus()
		if result == "" {
			return m, after
		}
		return m, tea.Batch(m.flash(result, false), after)
	case tea.KeyBackspace:
		m.commandInput.Backspace()
	case tea.KeyDelete:
		m.commandInput.Delete()
	case tea.KeyLeft:
		m.commandInput.MoveCursorLeft()
	case tea.KeyRight:
		m.commandInput.MoveCursorRight()
	case tea.KeySpace:
		m.commandInput.InsertRunes(' ')
	case tea.KeyRunes:
		m.commandInput.InsertRunes(msg.Runes...)
	}
	return m, nil
}

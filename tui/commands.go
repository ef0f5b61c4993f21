package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/caption-timeline-cli/pkg/export"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/transcript"
)

var errNoSelection = errors.New("no word selected")

const commandHelp = "Commands: seek, add, text, time, lane, shift, color, unpin, lyric, layout, zoom, export, render, save, quit"

// executeCommand runs a ':' command line and returns a result message.
func (m *Model) executeCommand(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	cmd, args := parts[0], parts[1:]
	rest := strings.Join(args, " ")
	s := m.session

	switch cmd {
	case "seek", "s":
		if len(args) != 1 {
			return "", errors.New("seek requires a time (e.g. seek 1:30.5)")
		}
		ms, err := timeutil.ParseMs(args[0])
		if err != nil {
			return "", err
		}
		m.seek(ms)
		return "Seeked to " + timeutil.FormatMs(s.Now()), nil

	case "add", "a":
		if rest == "" {
			return "", errors.New("add requires the word text")
		}
		s.AddWord(rest)
		return fmt.Sprintf("Added %q at %s", rest, timeutil.FormatShort(s.Now())), nil

	case "text", "t":
		if rest == "" {
			return "", errors.New("text requires the new text")
		}
		if !s.UpdateSelectedText(rest) {
			return "", errNoSelection
		}
		return "Text updated", nil

	case "time":
		if len(args) != 2 {
			return "", errors.New("time requires start and end (e.g. time 1.2 1.6)")
		}
		start, err := timeutil.ParseMs(args[0])
		if err != nil {
			return "", fmt.Errorf("start: %w", err)
		}
		end, err := timeutil.ParseMs(args[1])
		if err != nil {
			return "", fmt.Errorf("end: %w", err)
		}
		if !s.SetSelectedTiming(start, end) {
			return "", errNoSelection
		}
		w, _ := s.SelectedWord()
		return fmt.Sprintf("Timing %s → %s", timeutil.FormatShort(w.Start), timeutil.FormatShort(w.End)), nil

	case "lane":
		if len(args) != 1 {
			return "", errors.New("lane requires a number or auto")
		}
		var lane *int
		if args[0] != "auto" {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return "", fmt.Errorf("invalid lane: %s", args[0])
			}
			lane = &n
		}
		if !s.SetSelectedLane(lane) {
			return "", errNoSelection
		}
		return "Lane set", nil

	case "shift":
		if len(args) != 1 {
			return "", errors.New("shift requires milliseconds (e.g. shift -250)")
		}
		delta, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid shift: %s", args[0])
		}
		s.ShiftAll(delta)
		return fmt.Sprintf("Shifted every word by %dms", delta), nil

	case "color", "colour":
		if len(args) != 1 {
			return "", errors.New("color requires a hex colour")
		}
		c, err := style.ParseHex(args[0])
		if err != nil {
			return "", err
		}
		w, ok := s.SelectedWord()
		if !ok {
			return "", errNoSelection
		}
		var o transcript.StyleOverride
		if w.Style != nil {
			o = w.Style.Clone()
		}
		s.SetSelectedStyle(o.WithColor(c.Hex()))
		return "Colour set to " + c.Hex(), nil

	case "unpin":
		if !s.ClearSelectedPosition() {
			return "", errors.New("selected word is not pinned")
		}
		return "Word returned to the layout", nil

	case "lyric":
		if len(args) != 1 {
			return "Lyric styles: " + strings.Join(s.Lyrics().IDs(), ", "), nil
		}
		if err := s.SetLyricPreset(args[0]); err != nil {
			return "", err
		}
		return "Lyric style " + s.Lyric().Name, nil

	case "layout":
		if len(args) != 1 {
			return "", errors.New("layout requires a preset id")
		}
		if err := s.SetLayoutPreset(args[0]); err != nil {
			return "", err
		}
		return "Layout " + s.Layout().Name, nil

	case "zoom":
		if len(args) != 1 {
			return fmt.Sprintf("Zoom: %.0f px/s", m.pps), nil
		}
		pps, err := strconv.ParseFloat(args[0], 64)
		if err != nil || pps <= 0 {
			return "", fmt.Errorf("invalid zoom: %s", args[0])
		}
		m.zoom(pps / m.pps)
		return fmt.Sprintf("Zoom: %.0f px/s", m.pps), nil

	case "export", "w":
		if len(args) != 1 {
			return "", errors.New("export requires a file path (.json, .srt or .ass)")
		}
		return m.exportTo(args[0])

	case "render":
		next, err := m.beginRender()
		if err != nil {
			return "", err
		}
		m.afterCommand = next
		return "Render queued", nil

	case "save":
		if m.gateway != nil {
			m.gateway.Flush()
		}
		return "Saving", nil

	case "q", "quit":
		m.hideOverlay()
		m.quitting = true
		return "", nil

	case "help", "h":
		return commandHelp, nil

	default:
		return "", fmt.Errorf("unknown command: %s", cmd)
	}
}

// exportTo writes the transcript to path in the format its extension names.
func (m *Model) exportTo(path string) (string, error) {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return "", err
	}
	opts := export.Options{Format: format}
	opts.ASS.Title = filepath.Base(m.videoPath)
	opts.ASS.Lyric = m.session.Lyric()
	opts.ASS.Layout = m.session.Layout()
	opts.ASS.Frame = m.nativeFrame()
	opts.ASS.Karaoke = m.cfg.Render.Karaoke
	opts.ASS.MaxWords = m.cfg.Render.MaxWords
	opts.SRT.MaxWords = m.cfg.Render.MaxWords
	opts.ASS.AlignSectionEnd = m.cfg.Editor.AlignSectionEnd
	opts.SRT.AlignSectionEnd = m.cfg.Editor.AlignSectionEnd
	if err := export.WriteFile(path, m.session.Transcript(), opts); err != nil {
		return "", err
	}
	return "Exported " + path, nil
}

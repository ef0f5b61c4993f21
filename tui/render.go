package tui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/caption-timeline-cli/ass"
	"github.com/user/caption-timeline-cli/clip"
	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/deps"
	"github.com/user/caption-timeline-cli/tui/components"
)

// renderStartedMsg is sent once the render is queued.
type renderStartedMsg struct {
	id     int64
	output string
}

// renderDoneMsg is sent when ffmpeg has written the clip.
type renderDoneMsg struct {
	output string
	size   int64
}

// renderErrorMsg is sent when the render could not be produced.
type renderErrorMsg struct {
	err error
}

// waitForRenderMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForRenderMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// startRenderGoroutine queues req and drains the render queue in the
// background. Progress messages are sent to the returned channel, which is
// closed when the render has finished either way.
func startRenderGoroutine(ctx context.Context, conn *sql.DB, req clip.Request, logger *slog.Logger) (<-chan tea.Msg, error) {
	if err := deps.CheckFfmpeg(); err != nil {
		return nil, err
	}
	id, output, err := clip.Enqueue(ctx, conn, req)
	if err != nil {
		return nil, err
	}

	ch := make(chan tea.Msg, 1)
	go func() {
		defer close(ch)
		ch <- renderStartedMsg{id: id, output: output}

		proc := &clip.Processor{DB: conn, Logger: logger}
		if _, err := proc.Drain(ctx); err != nil {
			ch <- renderErrorMsg{err}
			return
		}
		renders, err := db.SelectRendersByProject(ctx, conn, req.ProjectID)
		if err != nil {
			ch <- renderErrorMsg{err}
			return
		}
		for _, r := range renders {
			if r.ID != id {
				continue
			}
			if r.Status != db.RenderCompleted {
				ch <- renderErrorMsg{fmt.Errorf("render %s: %s", r.Status, r.Log)}
				return
			}
			ch <- renderDoneMsg{output: output, size: r.Filesize}
			return
		}
		ch <- renderErrorMsg{fmt.Errorf("render %d disappeared", id)}
	}()
	return ch, nil
}

// renderRequest frames a preview around the selected word, or the playhead.
func (m *Model) renderRequest() clip.Request {
	s := m.session
	req := clip.Request{
		ProjectID:  m.projectID,
		VideoPath:  m.videoPath,
		LayoutID:   s.LayoutID(),
		Transcript: s.Transcript(),
		AtMs:       s.Now(),
		DurationMs: s.Duration(),
		Document: ass.DocumentOptions{
			Title:           filepath.Base(m.videoPath),
			Lyric:           s.Lyric(),
			Layout:          s.Layout(),
			Frame:           m.nativeFrame(),
			Karaoke:         m.cfg.Render.Karaoke,
			MaxWords:        m.cfg.Render.MaxWords,
			AlignSectionEnd: m.cfg.Editor.AlignSectionEnd,
		},
	}
	if w, ok := s.SelectedWord(); ok {
		req.AtMs = w.Start
	}
	return req
}

// beginRender starts a preview render unless one is running.
func (m *Model) beginRender() (tea.Cmd, error) {
	if m.db == nil || m.projectID == "" || m.videoPath == "" {
		return nil, errors.New("preview renders need a project opened from a video")
	}
	if m.render.Active && !m.render.Done && m.render.Err == nil {
		return nil, errors.New("a render is already running")
	}
	ch, err := startRenderGoroutine(context.Background(), m.db, m.renderRequest(), m.logger)
	if err != nil {
		m.render = components.RenderProgressState{Active: true, Err: err}
		return nil, err
	}
	m.renderCh = ch
	m.render = components.RenderProgressState{Active: true}
	return waitForRenderMsg(ch), nil
}

func (m *Model) startRender() (tea.Model, tea.Cmd) {
	cmd, err := m.beginRender()
	if err != nil {
		return m, m.flash("Render: "+err.Error(), true)
	}
	return m, cmd
}

func (m *Model) handleRenderMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderStartedMsg:
		m.render.Output = msg.output
		return m, waitForRenderMsg(m.renderCh)
	case renderDoneMsg:
		m.render.Done = true
		m.renderCh = nil
		return m, m.flash(fmt.Sprintf("Rendered %s (%d KB)", filepath.Base(msg.output), msg.size/1024), false)
	case renderErrorMsg:
		m.render.Err = msg.err
		m.renderCh = nil
		return m, m.flash("Render failed: "+msg.err.Error(), true)
	}
	return m, nil
}

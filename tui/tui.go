// Package tui is the terminal editor: a bubbletea program over an
// editor.Session, with the lane timeline, the frame preview and the word
// list side by side. Mouse input is turned into pointer events for the drag
// controllers.
package tui

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/ass"
	"github.com/user/caption-timeline-cli/config"
	"github.com/user/caption-timeline-cli/drag"
	"github.com/user/caption-timeline-cli/editor"
	"github.com/user/caption-timeline-cli/mpv"
	"github.com/user/caption-timeline-cli/persist"
	"github.com/user/caption-timeline-cli/tui/components"
	"github.com/user/caption-timeline-cli/tui/forms"
	"github.com/user/caption-timeline-cli/tui/layout"
	"github.com/user/caption-timeline-cli/tui/styles"
)

const (
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
	// overlayID is the osd-overlay slot the caption mirror uses.
	overlayID = 1
	// defaultStepIndex selects 1s in stepSizes.
	defaultStepIndex = 5
)

// stepSizes are the seek steps cycled with < and >, in milliseconds.
var stepSizes = []int64{10, 50, 100, 250, 500, 1000, 2000, 5000, 10_000}

// Zoom limits for the timeline, in pixels per second.
const (
	minPixelsPerSecond = 10.0
	maxPixelsPerSecond = 1600.0
	zoomFactor         = 1.5
)

type tickMsg time.Time

type clearResultMsg struct{}

// Options wire a Model to its collaborators. Only Session is required.
type Options struct {
	Session *editor.Session
	// Client is the player; nil runs the editor without video
	Client  *mpv.Client
	Gateway *persist.Gateway
	Config  *config.Config
	// DB and ProjectID enable preview renders
	DB        *sql.DB
	ProjectID string
	VideoPath string
	Logger    *slog.Logger
}

type formKind int

const (
	formNone formKind = iota
	formWord
	formStyle
	formPreset
	formQuit
)

// Model is the bubbletea model of the editor.
type Model struct {
	session   *editor.Session
	client    *mpv.Client
	gateway   *persist.Gateway
	cfg       *config.Config
	db        *sql.DB
	projectID string
	videoPath string
	logger    *slog.Logger

	quitting bool
	width    int
	height   int

	focus        FocusTarget
	stepIdx      int
	statusBar    components.StatusBarState
	wordList     components.WordListState
	commandInput components.CommandInputState
	render       components.RenderProgressState
	renderCh     <-chan tea.Msg
	showHelp     bool
	// afterCommand is a follow-up cmd queued by a ':' command
	afterCommand tea.Cmd

	overlayEnabled bool
	lastOverlay    string
	portrait       bool
	videoFrame     arrange.Frame
	pps            float64
	offsetMs       int64

	bus        *drag.Bus
	timeline   *drag.Timeline
	scrubber   *drag.Scrubber
	positioner *drag.Positioner

	form       *huh.Form
	formKind   formKind
	formTarget int
	wordForm   *forms.WordFormResult
	styleForm  *forms.StyleFormResult
	presetForm *forms.PresetFormResult
	quitAnswer bool
}

// NewModel builds the editor model.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Model{
		session:        opts.Session,
		client:         opts.Client,
		gateway:        opts.Gateway,
		cfg:            cfg,
		db:             opts.DB,
		projectID:      opts.ProjectID,
		videoPath:      opts.VideoPath,
		logger:         logger,
		stepIdx:        defaultStepIndex,
		portrait:       cfg.Editor.Portrait,
		overlayEnabled: cfg.Editor.MirrorOverlay,
		pps:            cfg.Editor.PixelsPerSecond,
		bus:            drag.NewBus(),
	}
	if m.pps <= 0 {
		m.pps = 100
	}
	s := m.session
	m.timeline = drag.NewTimeline(s, m.bus, s, m.pps)
	m.scrubber = drag.NewScrubber(s.Playhead(), m.bus, drag.Track{}, s.Duration())
	if q := cfg.Editor.ScrubQuantumMs; q > 0 {
		m.scrubber.SetQuantum(int64(q))
	}
	m.positioner = drag.NewPositioner(s, m.bus, s, drag.Surface{})
	m.refreshStatus()
	return m
}

// Init starts the player poll.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	interval := m.cfg.Tick()
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearResultCmd() tea.Cmd {
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

// flash shows a command result for a few seconds.
func (m *Model) flash(msg string, isErr bool) tea.Cmd {
	m.commandInput.SetResult(msg, isErr)
	return clearResultCmd()
}

func (m *Model) connected() bool {
	return m.client != nil && m.client.IsConnected()
}

func (m *Model) dragging() bool {
	return m.timeline.Dragging() || m.scrubber.Dragging() || m.positioner.Dragging()
}

// cancelPointer aborts any running gesture.
func (m *Model) cancelPointer() {
	if m.dragging() {
		m.bus.Publish(drag.PointerEvent{Kind: drag.PointerCancel})
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cancelPointer()
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.BlurMsg:
		m.cancelPointer()
		return m, nil

	case tickMsg:
		m.onTick()
		return m, m.tickCmd()

	case clearResultMsg:
		m.commandInput.ClearResult()
		return m, nil

	case renderStartedMsg, renderDoneMsg, renderErrorMsg:
		return m.handleRenderMsg(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.commandInput.Active {
			return m.handleCommandInput(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		return m.handleMouse(msg)
	}
	return m, nil
}

// onTick pulls the player state and mirrors the captions.
func (m *Model) onTick() {
	if m.connected() {
		moved, err := m.session.Playhead().Sync()
		if err != nil {
			m.logger.Debug("playhead sync failed", "error", err)
		}
		if moved && !m.timeline.Dragging() {
			m.followPlayhead()
		}
		if m.videoFrame.Width <= 0 {
			if w, h, err := m.client.VideoSize(); err == nil && w > 0 && h > 0 {
				m.videoFrame = arrange.Frame{Width: float64(w), Height: float64(h)}
			}
		}
		if m.overlayEnabled {
			m.updateOverlay()
		}
	}
	m.refreshStatus()
}

// updateOverlay sends the current caption frame to the player, skipping
// unchanged frames.
func (m *Model) updateOverlay() {
	frame := m.nativeFrame()
	tokens := m.session.Frame(editor.FrameOptions{Frame: frame})
	events := ass.OverlayEvents(tokens, frame)
	if events == m.lastOverlay {
		return
	}
	m.lastOverlay = events
	var err error
	if events == "" {
		err = m.client.HideOverlay(overlayID)
	} else {
		err = m.client.ShowOverlay(overlayID, events, int(frame.Width), int(frame.Height))
	}
	if err != nil {
		m.logger.Debug("overlay update failed", "error", err)
	}
}

func (m *Model) hideOverlay() {
	m.lastOverlay = ""
	if m.connected() {
		_ = m.client.HideOverlay(overlayID)
	}
}

// nativeFrame is the video size when it matches the chosen orientation,
// otherwise the standard frame for it.
func (m *Model) nativeFrame() arrange.Frame {
	if m.videoFrame.Width > 0 && m.videoFrame.Height > 0 && m.videoFrame.Portrait() == m.portrait {
		return m.videoFrame
	}
	return arrange.DefaultFrame(m.portrait)
}

func (m *Model) refreshStatus() {
	s := m.session
	m.statusBar.NowMs = s.Now()
	m.statusBar.DurationMs = s.Duration()
	m.statusBar.StepMs = stepSizes[m.stepIdx]
	m.statusBar.Lyric = s.Lyric().Name
	m.statusBar.Layout = s.Layout().Name
	m.statusBar.Portrait = m.portrait
	m.statusBar.OverlayEnabled = m.overlayEnabled
	m.statusBar.Connected = m.connected()
	m.statusBar.Paused = s.Playhead().Paused()
	if m.gateway != nil {
		st := m.gateway.Status()
		m.statusBar.Saving = st.Pending+st.InFlight > 0
		m.statusBar.SaveError = st.LastError != nil
	}
}

// followPlayhead scrolls the timeline so the playhead stays in view.
func (m *Model) followPlayhead() {
	cols := max(m.width-4, 1)
	msPerCell := components.TimelineState{PixelsPerSecond: m.pps}.MsPerCell()
	span := int64(float64(cols) * msPerCell)
	now := m.session.Now()
	if now < m.offsetMs || now >= m.offsetMs+span*9/10 {
		m.offsetMs = max(now-span/4, 0)
	}
}

// timelineState snapshots what the lane view draws.
func (m *Model) timelineState() components.TimelineState {
	s := m.session
	return components.TimelineState{
		Words:           s.Transcript().Flatten(),
		Segments:        s.Segments(),
		Selected:        s.Selected(),
		NowMs:           s.Now(),
		DurationMs:      s.Duration(),
		OffsetMs:        m.offsetMs,
		PixelsPerSecond: m.pps,
	}
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if m.width == 0 {
		return "Loading…"
	}
	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}
	if m.width < layout.MinTerminalWidth {
		warningStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
		hintStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth)) + "\n" +
			hintStyle.Render("Please resize your terminal.")
	}

	statusBar := components.StatusBar(m.statusBar, m.width)
	if m.form != nil {
		return statusBar + "\n\n" + m.form.View()
	}

	g := m.geometry()
	columns := []string{m.renderPreviewColumn(g), m.renderWordsColumn(g)}
	widths := []int{g.previewW, g.wordsW}
	if g.showControls {
		columns = append(columns, m.renderControlsColumn(g.controlsW, g.colHeight))
		widths = append(widths, g.controlsW)
	}
	body := layout.JoinColumns(columns, widths, g.colHeight)
	timeline := components.Timeline(g.timeline)
	commandInput := components.CommandInput(m.commandInput, m.width)

	return statusBar + "\n" + body + "\n" + timeline + "\n" + commandInput
}

// Run starts the editor and blocks until it quits.
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

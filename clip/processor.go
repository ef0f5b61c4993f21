package clip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/user/caption-timeline-cli/ass"
	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/deps"
	"github.com/user/caption-timeline-cli/transcript"
)

// DefaultPollInterval is how long the worker sleeps when the queue is empty.
const DefaultPollInterval = 2 * time.Second

// Request describes a preview to queue.
type Request struct {
	ProjectID  string
	VideoPath  string
	LayoutID   string
	Transcript transcript.Transcript
	Document   ass.DocumentOptions
	// AtMs frames the clip when StartMs/EndMs do not form a range.
	AtMs       int64
	StartMs    int64
	EndMs      int64
	DurationMs int64
}

// Enqueue writes the request's subtitles next to the future clip and queues
// the render. It returns the render id and the output video path.
func Enqueue(ctx context.Context, conn *sql.DB, req Request) (int64, string, error) {
	start, end := Bounds(req.AtMs, req.StartMs, req.EndMs, req.DurationMs)
	folder, filename, subtitle := Paths(req.VideoPath, req.LayoutID, start)

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return 0, "", fmt.Errorf("create preview folder: %w", err)
	}
	subPath := filepath.Join(folder, subtitle)
	doc := ass.Document(req.Transcript, req.Document)
	if err := os.WriteFile(subPath, []byte(doc), 0o644); err != nil {
		return 0, "", fmt.Errorf("write subtitles: %w", err)
	}

	id, err := db.QueuePreviewRender(ctx, conn, db.PreviewRender{
		ProjectID:    req.ProjectID,
		StartMs:      start,
		EndMs:        end,
		SubtitlePath: subPath,
		Folder:       folder,
		Filename:     filename,
	})
	if err != nil {
		return 0, "", err
	}
	return id, filepath.Join(folder, filename), nil
}

// Processor manages the background preview render worker.
type Processor struct {
	DB       *sql.DB
	Logger   *slog.Logger
	Interval time.Duration
	// Run and Check default to running ffmpeg from PATH.
	Run   Runner
	Check func() error
	Now   func() time.Time
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Processor) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Start launches a goroutine that polls for pending renders and processes
// them one at a time. The goroutine exits when ctx is cancelled.
func (p *Processor) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			worked, err := p.RunOnce(ctx)
			if err != nil {
				p.logger().Warn("preview queue poll failed", "error", err)
			}
			if worked {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}()
}

// RunOnce processes the oldest pending render. It reports whether there was
// one. Render failures are recorded on the row, not returned.
func (p *Processor) RunOnce(ctx context.Context) (bool, error) {
	r, err := db.SelectNextPendingRender(ctx, p.DB)
	if err != nil {
		return false, err
	}
	if r == nil {
		return false, nil
	}
	p.process(ctx, r)
	return true, nil
}

// ErrStuck is returned by Drain when a render stays pending after it was
// processed, which happens when its status cannot be written.
var ErrStuck = errors.New("preview render stuck in pending")

// Drain processes renders until the queue is empty.
func (p *Processor) Drain(ctx context.Context) (int, error) {
	n := 0
	last := int64(-1)
	for {
		r, err := db.SelectNextPendingRender(ctx, p.DB)
		if err != nil || r == nil {
			return n, err
		}
		if r.ID == last {
			return n, fmt.Errorf("%w: render %d", ErrStuck, r.ID)
		}
		last = r.ID
		p.process(ctx, r)
		n++
	}
}

func (p *Processor) process(ctx context.Context, r *db.PendingRender) {
	log := p.logger().With("render", r.ID, "project", r.ProjectID)

	check := p.Check
	if check == nil {
		check = deps.CheckFfmpeg
	}
	if err := check(); err != nil {
		p.fail(ctx, log, r.ID, err.Error())
		return
	}

	if err := db.MarkRenderProcessing(ctx, p.DB, r.ID, p.now()); err != nil {
		p.fail(ctx, log, r.ID, err.Error())
		return
	}

	if err := os.MkdirAll(r.Folder, 0o755); err != nil {
		p.fail(ctx, log, r.ID, fmt.Sprintf("mkdir: %v", err))
		return
	}
	outPath := filepath.Join(r.Folder, r.Filename)

	run := p.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, "ffmpeg", BurnArgs(r.VideoPath, r.SubtitlePath, r.StartMs, r.EndMs, outPath)...)
	if err != nil {
		msg := string(out)
		if msg == "" || errors.Is(err, context.Canceled) {
			msg = err.Error()
		}
		p.fail(ctx, log, r.ID, msg)
		return
	}

	info, err := os.Stat(outPath)
	if err != nil {
		p.fail(ctx, log, r.ID, fmt.Sprintf("stat output: %v", err))
		return
	}
	if err := db.MarkRenderComplete(ctx, p.DB, r.ID, p.now(), info.Size()); err != nil {
		log.Warn("mark complete failed", "error", err)
		return
	}
	log.Info("preview rendered", "path", outPath, "bytes", info.Size())
}

func (p *Processor) fail(ctx context.Context, log *slog.Logger, id int64, msg string) {
	log.Warn("preview render failed", "error", msg)
	// The worker's ctx may already be cancelled; the error still gets recorded.
	if err := db.MarkRenderError(context.WithoutCancel(ctx), p.DB, id, p.now(), msg); err != nil {
		log.Warn("mark error failed", "error", err)
	}
}

package db

import "time"

// Project represents a row in the projects table. One project per video.
type Project struct {
	ID           string
	Name         string
	VideoPath    string
	LyricPreset  string
	LayoutPreset string
	PlayheadMs   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProjectSummary is a project with the word count of its latest transcript.
type ProjectSummary struct {
	Project
	WordCount int
}

// TranscriptRevision represents a row in the transcript_revisions table.
// Body is the JSON-encoded transcript; listings leave it empty.
type TranscriptRevision struct {
	ID        int64
	ProjectID string
	Body      string
	WordCount int
	CreatedAt time.Time
}

// Render statuses.
const (
	RenderPending    = "pending"
	RenderProcessing = "processing"
	RenderCompleted  = "completed"
	RenderError      = "error"
)

// PreviewRender represents a row in the preview_renders table: a clip of the
// project video with its captions burned in.
type PreviewRender struct {
	ID           int64
	ProjectID    string
	StartMs      int64
	EndMs        int64
	SubtitlePath string
	Folder       string
	Filename     string
	Status       string
	Filesize     int64
	StartedAt    *time.Time
	FinishedAt   *time.Time
	ErrorAt      *time.Time
	Log          string
}

// PendingRender is a queued render joined with its project's video path.
type PendingRender struct {
	ID           int64
	ProjectID    string
	VideoPath    string
	StartMs      int64
	EndMs        int64
	SubtitlePath string
	Folder       string
	Filename     string
}

func millis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms) }

func fromNullMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}

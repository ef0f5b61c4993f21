package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// QueuePreviewRender adds a pending render and returns its id.
func QueuePreviewRender(ctx context.Context, db *sql.DB, r PreviewRender) (int64, error) {
	res, err := db.ExecContext(ctx, InsertPreviewRenderSQL, r.ProjectID, r.StartMs, r.EndMs, r.SubtitlePath, r.Folder, r.Filename)
	if err != nil {
		return 0, fmt.Errorf("insert preview render: %w", err)
	}
	return res.LastInsertId()
}

// SelectNextPendingRender returns the oldest pending render, or nil when the
// queue is empty.
func SelectNextPendingRender(ctx context.Context, db *sql.DB) (*PendingRender, error) {
	var p PendingRender
	err := db.QueryRowContext(ctx, SelectNextPendingRenderSQL).
		Scan(&p.ID, &p.ProjectID, &p.VideoPath, &p.StartMs, &p.EndMs, &p.SubtitlePath, &p.Folder, &p.Filename)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select next pending render: %w", err)
	}
	return &p, nil
}

// SelectRendersByProject lists a project's renders, newest first.
func SelectRendersByProject(ctx context.Context, db *sql.DB, projectID string) ([]PreviewRender, error) {
	rows, err := db.QueryContext(ctx, SelectRendersByProjectSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("select renders: %w", err)
	}
	defer rows.Close()

	var out []PreviewRender
	for rows.Next() {
		var r PreviewRender
		var started, finished, errored *int64
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.StartMs, &r.EndMs, &r.SubtitlePath, &r.Folder, &r.Filename,
			&r.Status, &r.Filesize, &started, &finished, &errored, &r.Log); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		r.StartedAt = fromNullMillis(started)
		r.FinishedAt = fromNullMillis(finished)
		r.ErrorAt = fromNullMillis(errored)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkRenderProcessing moves a render to processing.
func MarkRenderProcessing(ctx context.Context, db *sql.DB, id int64, at time.Time) error {
	if _, err := db.ExecContext(ctx, MarkRenderProcessingSQL, millis(at), id); err != nil {
		return fmt.Errorf("mark render processing: %w", err)
	}
	return nil
}

// MarkRenderComplete records a finished render and its output size.
func MarkRenderComplete(ctx context.Context, db *sql.DB, id int64, at time.Time, filesize int64) error {
	if _, err := db.ExecContext(ctx, MarkRenderCompleteSQL, millis(at), filesize, id); err != nil {
		return fmt.Errorf("mark render complete: %w", err)
	}
	return nil
}

// MarkRenderError records a failed render with its log.
func MarkRenderError(ctx context.Context, db *sql.DB, id int64, at time.Time, logMsg string) error {
	if _, err := db.ExecContext(ctx, MarkRenderErrorSQL, millis(at), logMsg, id); err != nil {
		return fmt.Errorf("mark render error: %w", err)
	}
	return nil
}

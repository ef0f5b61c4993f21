package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrProjectNotFound is returned when no project matches.
var ErrProjectNotFound = errors.New("project not found")

func scanProject(row interface{ Scan(...any) error }, p *Project, extra ...any) error {
	var created, updated int64
	dest := append([]any{&p.ID, &p.Name, &p.VideoPath, &p.LyricPreset, &p.LayoutPreset, &p.PlayheadMs, &created, &updated}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return nil
}

// EnsureProject returns the project for videoPath, creating it with the
// given presets if it does not exist. The path is made absolute first.
func EnsureProject(ctx context.Context, db *sql.DB, videoPath, lyricPreset, layoutPreset string) (*Project, error) {
	abs, err := filepath.Abs(videoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve video path: %w", err)
	}
	p, err := SelectProjectByVideo(ctx, db, abs)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProjectNotFound) {
		return nil, err
	}

	now := time.Now()
	name := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	p = &Project{
		ID:           uuid.NewString(),
		Name:         name,
		VideoPath:    abs,
		LyricPreset:  lyricPreset,
		LayoutPreset: layoutPreset,
		CreatedAt:    fromMillis(millis(now)),
		UpdatedAt:    fromMillis(millis(now)),
	}
	if _, err := db.ExecContext(ctx, InsertProjectSQL, p.ID, p.Name, p.VideoPath, p.LyricPreset, p.LayoutPreset, millis(now), millis(now)); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// SelectProjectByID returns the project with id.
func SelectProjectByID(ctx context.Context, db *sql.DB, id string) (*Project, error) {
	var p Project
	err := scanProject(db.QueryRowContext(ctx, SelectProjectByIDSQL, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select project: %w", err)
	}
	return &p, nil
}

// SelectProjectByVideo returns the project for an absolute video path.
func SelectProjectByVideo(ctx context.Context, db *sql.DB, videoPath string) (*Project, error) {
	var p Project
	err := scanProject(db.QueryRowContext(ctx, SelectProjectByVideoSQL, videoPath), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, videoPath)
	}
	if err != nil {
		return nil, fmt.Errorf("select project by video: %w", err)
	}
	return &p, nil
}

// SelectProjects lists projects, most recently updated first.
func SelectProjects(ctx context.Context, db *sql.DB) ([]ProjectSummary, error) {
	rows, err := db.QueryContext(ctx, SelectProjectsSQL)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectSummary
	for rows.Next() {
		var s ProjectSummary
		if err := scanProject(rows, &s.Project, &s.WordCount); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateProjectLyricPreset stores the lyric preset id.
func UpdateProjectLyricPreset(ctx context.Context, db *sql.DB, id, presetID string) error {
	return execOne(ctx, db, "update lyric preset", UpdateProjectLyricPresetSQL, presetID, millis(time.Now()), id)
}

// UpdateProjectLayoutPreset stores the layout preset id.
func UpdateProjectLayoutPreset(ctx context.Context, db *sql.DB, id, presetID string) error {
	return execOne(ctx, db, "update layout preset", UpdateProjectLayoutPresetSQL, presetID, millis(time.Now()), id)
}

// UpdateProjectPlayhead stores where editing stopped, to resume there.
func UpdateProjectPlayhead(ctx context.Context, db *sql.DB, id string, ms int64) error {
	return execOne(ctx, db, "update playhead", UpdateProjectPlayheadSQL, ms, millis(time.Now()), id)
}

// DeleteProject removes a project with its revisions and renders.
func DeleteProject(ctx context.Context, db *sql.DB, id string) error {
	return execOne(ctx, db, "delete project", DeleteProjectSQL, id)
}

// execOne runs a statement that must affect exactly one project row.
func execOne(ctx context.Context, db *sql.DB, what, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrProjectNotFound)
	}
	return nil
}

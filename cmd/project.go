package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/user/caption-timeline-cli/captions"
	"github.com/user/caption-timeline-cli/config"
	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/persist"
	"github.com/user/caption-timeline-cli/persist/httpstore"
	"github.com/user/caption-timeline-cli/segments"
)

// resolveVideo returns the absolute path of an existing video file.
func resolveVideo(videoPath string) (string, error) {
	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	return absPath, nil
}

// openDatabase opens the configured SQLite database.
func openDatabase() (*sql.DB, error) {
	conn, err := db.Open(cfg.Paths.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}

// findProject returns the project of an existing video without creating one.
func findProject(ctx context.Context, conn *sql.DB, videoPath string) (*db.Project, error) {
	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	p, err := db.SelectProjectByVideo(ctx, conn, absPath)
	if errors.Is(err, db.ErrProjectNotFound) {
		return nil, fmt.Errorf("no project for %s (open it first)", filepath.Base(absPath))
	}
	return p, err
}

// lockProject takes the single-editor lock of a project. The returned lock
// must be unlocked when editing ends.
func lockProject(projectID string) (*flock.Flock, error) {
	dir := filepath.Join(filepath.Dir(cfg.Paths.Database), "locks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, projectID+".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return nil, errors.New("this project is already open in another editor")
	}
	return lock, nil
}

// newStore picks the save backend named in the config.
func newStore(conn *sql.DB, projectID string) (persist.Store, error) {
	switch cfg.Persistence.Backend {
	case config.BackendSQLite:
		return db.NewStore(conn, projectID, cfg.Persistence.KeepRevisions), nil
	case config.BackendHTTP:
		remoteID := cfg.API.ProjectID
		if remoteID == "" {
			remoteID = projectID
		}
		return httpstore.New(cfg.API.URL, remoteID, cfg.API.Token, nil), nil
	case config.BackendMemory:
		return persist.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}

func newGateway(store persist.Store) *persist.Gateway {
	return persist.NewGateway(store, persist.Options{
		Debounce: cfg.Debounce(),
		Timeout:  cfg.SaveTimeout(),
		Policy:   persist.PolicyFor(cfg.Persistence.RetryAttempts, cfg.RetryDelay()),
		Logger:   logger,
	})
}

func segmentOptions() segments.Options {
	opts := segments.DefaultOptions()
	opts.GapMs = int64(cfg.Editor.SectionGapMs)
	opts.MaxLanes = cfg.Editor.MaxLanes
	opts.AlignSectionEnd = cfg.Editor.AlignSectionEnd
	return opts
}

func captionOptions() captions.Options {
	opts := captions.DefaultOptions()
	opts.MaxWords = cfg.Editor.MaxWords
	opts.MaxLines = cfg.Editor.MaxLines
	return opts
}

package db

import (
	"context"
	"database/sql"

	"github.com/user/caption-timeline-cli/transcript"
)

// DefaultKeepRevisions is how many transcript revisions a Store retains.
const DefaultKeepRevisions = 50

// Store saves one project's editor state to SQLite.
type Store struct {
	db        *sql.DB
	projectID string
	keep      int
}

// NewStore returns a store for projectID keeping keep revisions. keep <= 0
// uses DefaultKeepRevisions.
func NewStore(db *sql.DB, projectID string, keep int) *Store {
	if keep <= 0 {
		keep = DefaultKeepRevisions
	}
	return &Store{db: db, projectID: projectID, keep: keep}
}

// SaveTranscript appends a revision and prunes old ones.
func (s *Store) SaveTranscript(ctx context.Context, t transcript.Transcript) error {
	if _, err := InsertTranscriptRevision(ctx, s.db, s.projectID, t); err != nil {
		return err
	}
	return PruneTranscriptRevisions(ctx, s.db, s.projectID, s.keep)
}

// SaveLyricPreset stores the lyric preset id.
func (s *Store) SaveLyricPreset(ctx context.Context, id string) error {
	return UpdateProjectLyricPreset(ctx, s.db, s.projectID, id)
}

// SaveLayoutPreset stores the layout preset id.
func (s *Store) SaveLayoutPreset(ctx context.Context, id string) error {
	return UpdateProjectLayoutPreset(ctx, s.db, s.projectID, id)
}

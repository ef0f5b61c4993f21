package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/caption-timeline-cli/transcript"
)

// InsertTranscriptRevision stores t as the newest revision of the project.
func InsertTranscriptRevision(ctx context.Context, db *sql.DB, projectID string, t transcript.Transcript) (int64, error) {
	if t == nil {
		t = transcript.Transcript{}
	}
	body, err := json.Marshal(t)
	if err != nil {
		return 0, fmt.Errorf("encode transcript: %w", err)
	}
	res, err := db.ExecContext(ctx, InsertTranscriptRevisionSQL, projectID, string(body), t.TotalWords(), millis(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("insert transcript revision: %w", err)
	}
	return res.LastInsertId()
}

// LatestTranscript returns the newest transcript of the project. A project
// without revisions has an empty transcript.
func LatestTranscript(ctx context.Context, db *sql.DB, projectID string) (transcript.Transcript, error) {
	var rev TranscriptRevision
	var created int64
	err := db.QueryRowContext(ctx, SelectLatestTranscriptSQL, projectID).
		Scan(&rev.ID, &rev.ProjectID, &rev.Body, &rev.WordCount, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return transcript.Transcript{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select latest transcript: %w", err)
	}
	var t transcript.Transcript
	if err := json.Unmarshal([]byte(rev.Body), &t); err != nil {
		return nil, fmt.Errorf("decode transcript revision %d: %w", rev.ID, err)
	}
	return t, nil
}

// SelectTranscriptRevisions lists revisions newest first, without bodies.
func SelectTranscriptRevisions(ctx context.Context, db *sql.DB, projectID string) ([]TranscriptRevision, error) {
	rows, err := db.QueryContext(ctx, SelectTranscriptRevisionsSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("select transcript revisions: %w", err)
	}
	defer rows.Close()

	var out []TranscriptRevision
	for rows.Next() {
		var r TranscriptRevision
		var created int64
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.WordCount, &created); err != nil {
			return nil, fmt.Errorf("scan transcript revision: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// PruneTranscriptRevisions keeps only the newest keep revisions.
func PruneTranscriptRevisions(ctx context.Context, db *sql.DB, projectID string, keep int) error {
	if keep <= 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, PruneTranscriptRevisionsSQL, projectID, projectID, keep); err != nil {
		return fmt.Errorf("prune transcript revisions: %w", err)
	}
	return nil
}

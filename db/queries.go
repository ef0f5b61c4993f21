package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Project queries

//go:embed sql/insert_project.sql
var InsertProjectSQL string

//go:embed sql/select_project_by_id.sql
var SelectProjectByIDSQL string

//go:embed sql/select_project_by_video.sql
var SelectProjectByVideoSQL string

//go:embed sql/select_projects.sql
var SelectProjectsSQL string

//go:embed sql/update_project_lyric_preset.sql
var UpdateProjectLyricPresetSQL string

//go:embed sql/update_project_layout_preset.sql
var UpdateProjectLayoutPresetSQL string

//go:embed sql/update_project_playhead.sql
var UpdateProjectPlayheadSQL string

//go:embed sql/delete_project.sql
var DeleteProjectSQL string

// Transcript revision queries

//go:embed sql/insert_transcript_revision.sql
var InsertTranscriptRevisionSQL string

//go:embed sql/select_latest_transcript.sql
var SelectLatestTranscriptSQL string

//go:embed sql/select_transcript_revisions.sql
var SelectTranscriptRevisionsSQL string

//go:embed sql/prune_transcript_revisions.sql
var PruneTranscriptRevisionsSQL string

// Preview render queue

//go:embed sql/insert_preview_render.sql
var InsertPreviewRenderSQL string

//go:embed sql/select_next_pending_render.sql
var SelectNextPendingRenderSQL string

//go:embed sql/select_renders_by_project.sql
var SelectRendersByProjectSQL string

//go:embed sql/mark_render_processing.sql
var MarkRenderProcessingSQL string

//go:embed sql/mark_render_complete.sql
var MarkRenderCompleteSQL string

//go:embed sql/mark_render_error.sql
var MarkRenderErrorSQL string

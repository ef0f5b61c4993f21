// Package clip renders short preview clips of a project video with its
// captions burned in. Renders are queued in the database and processed by a
// background worker that runs ffmpeg.
package clip

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// MinDurationMs is the shortest preview clip.
	MinDurationMs int64 = 4_000
	// LeadMs and TailMs frame a preview around the playhead when no explicit
	// range is given.
	LeadMs int64 = 2_000
	TailMs int64 = 8_000
)

var unsafeChars = regexp.MustCompile(`[/\\:*?"<>|\s]`)

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "untitled"
	}
	return unsafeChars.ReplaceAllString(s, "_")
}

// Paths computes the output folder and filenames for a preview.
// Folder is <videoDir>/captions/<videoName>; the video is
// {HHMMSS}-{layout}-preview.mp4 and its subtitles share the name with .ass.
func Paths(videoPath, layoutID string, startMs int64) (folder, filename, subtitle string) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	folder = filepath.Join(filepath.Dir(videoPath), "captions", slug(base))

	total := max(startMs, 0) / 1000
	stamp := fmt.Sprintf("%02d%02d%02d", total/3600, (total%3600)/60, total%60)

	name := fmt.Sprintf("%s-%s-preview", stamp, slug(layoutID))
	return folder, name + ".mp4", name + ".ass"
}

// Bounds returns the clip range for a preview. An explicit range with
// endMs > startMs is used as given; otherwise the clip frames atMs. The result
// is clamped to [0, durationMs] when the duration is known and is never
// shorter than MinDurationMs unless the video is.
func Bounds(atMs, startMs, endMs, durationMs int64) (start, end int64) {
	if endMs > startMs {
		start, end = startMs, endMs
	} else {
		start, end = atMs-LeadMs, atMs+TailMs
	}
	start = max(start, 0)
	end = max(end, start+MinDurationMs)
	if durationMs > 0 {
		end = min(end, durationMs)
		start = max(0, min(start, end-MinDurationMs))
	}
	return start, end
}

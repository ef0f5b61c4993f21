package clip

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// BurnArgs returns the ffmpeg arguments that cut [startMs, endMs) out of
// videoPath and burn subtitlePath into it. Seeking is done on the output
// side so the subtitles keep the source timeline.
func BurnArgs(videoPath, subtitlePath string, startMs, endMs int64, outPath string) []string {
	return []string{
		"-hide_banner", "-y",
		"-i", videoPath,
		"-ss", seconds(startMs),
		"-to", seconds(endMs),
		"-vf", "subtitles=" + escapeFilterPath(subtitlePath),
		"-c:v", "libx264", "-preset", "veryfast", "-crf", "18",
		"-c:a", "aac", "-b:a", "192k",
		"-movflags", "+faststart",
		outPath,
	}
}

func seconds(ms int64) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000)
}

// escapeFilterPath quotes a path for use as a filtergraph option value.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, `\`, `\\`)
	p = strings.ReplaceAll(p, ":", `\:`)
	p = strings.ReplaceAll(p, "'", `\'`)
	return p
}

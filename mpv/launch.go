package mpv

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/user/caption-timeline-cli/deps"
)

// LaunchOptions configure the mpv process.
type LaunchOptions struct {
	SocketPath string
	// StartSeconds resumes playback at this position.
	StartSeconds float64
	ExtraArgs    []string
}

// LaunchMpv starts mpv paused on videoPath with its IPC socket enabled.
// It checks that mpv is installed first and returns a DependencyError if not.
// The returned command is the running process, for cleanup.
func LaunchMpv(videoPath string, opts LaunchOptions) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if opts.SocketPath == "" {
		opts.SocketPath = DefaultSocketPath
	}
	// A stale socket from a crashed run would make mpv fail to bind.
	_ = os.Remove(opts.SocketPath)

	cmd := exec.Command("mpv", launchArgs(videoPath, opts)...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func launchArgs(videoPath string, opts LaunchOptions) []string {
	args := []string{
		"--input-ipc-server=" + opts.SocketPath,
		"--pause",
		"--keep-open=yes",
		"--force-window=yes",
		"--osd-level=1",
	}
	if opts.StartSeconds > 0 {
		args = append(args, "--start="+strconv.FormatFloat(opts.StartSeconds, 'f', 3, 64))
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, videoPath)
}

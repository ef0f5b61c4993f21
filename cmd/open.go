package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/clock"
	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/editor"
	"github.com/user/caption-timeline-cli/mpv"
	"github.com/user/caption-timeline-cli/pkg/export"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/style"
	"github.com/user/caption-timeline-cli/tui"
)

// mpvConnectTimeout bounds the wait for mpv's IPC socket.
const mpvConnectTimeout = 5 * time.Second

var openCmd = &cobra.Command{
	Use:   "open <video-file>",
	Short: "Open a video in the caption editor",
	Long: `Open a video in mpv and start the caption editor. The project for the
video is created on first open; edits are saved as you go and the editor
resumes where you left off.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	importPath, _ := cmd.Flags().GetString("import")
	noPlayer, _ := cmd.Flags().GetBool("no-player")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	absPath, err := resolveVideo(args[0])
	if err != nil {
		return err
	}

	closer, err := setupLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	conn, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	project, err := db.EnsureProject(ctx, conn, absPath, cfg.Editor.LyricPreset, cfg.Editor.LayoutPreset)
	if err != nil {
		return err
	}
	lock, err := lockProject(project.ID)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	t, err := db.LatestTranscript(ctx, conn, project.ID)
	if err != nil {
		return err
	}
	imported := false
	if importPath != "" {
		if t.TotalWords() > 0 {
			return fmt.Errorf("project already has %d words; use 'transcript import --replace' instead", t.TotalWords())
		}
		if t, err = export.ReadFile(importPath); err != nil {
			return err
		}
		imported = true
	}

	lib, err := style.LoadLibrary(cfg.Paths.PresetsFile)
	if err != nil {
		return err
	}

	store, err := newStore(conn, project.ID)
	if err != nil {
		return err
	}
	gateway := newGateway(store)
	defer gateway.Close()

	var client *mpv.Client
	playhead := clock.NewPlayhead(nil)
	if !noPlayer {
		var process *exec.Cmd
		client, process, err = startPlayer(ctx, absPath, project.PlayheadMs)
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Quit()
			client.Close()
			_ = process.Wait()
		}()
		playhead = clock.NewPlayhead(mpv.NewClock(client))
	}

	session := editor.New(t, editor.Options{
		Playhead:     playhead,
		Saver:        gateway,
		Lyrics:       lib,
		LyricPreset:  project.LyricPreset,
		LayoutPreset: project.LayoutPreset,
		Segments:     segmentOptions(),
		Captions:     captionOptions(),
	})
	if imported {
		session.Commit()
	}
	if err := session.Seek(project.PlayheadMs); err != nil {
		logger.Warn("resume seek failed", "error", err)
	}

	logger.Info("editor opened", "project", project.ID, "video", absPath, "words", t.TotalWords())
	err = tui.Run(tui.Options{
		Session:   session,
		Client:    client,
		Gateway:   gateway,
		Config:    cfg,
		DB:        conn,
		ProjectID: project.ID,
		VideoPath: absPath,
		Logger:    logger,
	})

	gateway.Close()
	if st := gateway.Status(); st.LastError != nil {
		fmt.Printf("Warning: last save failed: %v\n", st.LastError)
	}
	now := session.Now()
	if perr := db.UpdateProjectPlayhead(context.Background(), conn, project.ID, now); perr != nil {
		logger.Warn("store playhead failed", "error", perr)
	}
	fmt.Printf("Closed %s at %s (%d words)\n", filepath.Base(absPath), timeutil.FormatMs(now), session.Transcript().TotalWords())
	return err
}

// startPlayer launches mpv on the video and connects to it.
func startPlayer(ctx context.Context, videoPath string, resumeMs int64) (*mpv.Client, *exec.Cmd, error) {
	fmt.Printf("Opening video: %s\n", filepath.Base(videoPath))
	process, err := mpv.LaunchMpv(videoPath, mpv.LaunchOptions{
		SocketPath:   cfg.Paths.MpvSocket,
		StartSeconds: float64(resumeMs) / 1000,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch mpv: %w", err)
	}

	client := mpv.NewClient(cfg.Paths.MpvSocket)
	waitCtx, cancel := context.WithTimeout(ctx, mpvConnectTimeout)
	defer cancel()
	if err := client.ConnectWait(waitCtx, 100*time.Millisecond); err != nil {
		if process.Process != nil {
			_ = process.Process.Kill()
		}
		return nil, nil, fmt.Errorf("failed to connect to mpv: %w", err)
	}
	return client, process, nil
}

func init() {
	openCmd.Flags().String("import", "", "seed an empty project from a transcript JSON file")
	openCmd.Flags().Bool("no-player", false, "edit without launching mpv")
	rootCmd.AddCommand(openCmd)
}

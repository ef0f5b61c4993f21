package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/ass"
	"github.com/user/caption-timeline-cli/clip"
	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/deps"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/style"
)

var renderCmd = &cobra.Command{
	Use:   "render <video-file>",
	Short: "Render a preview clip with the captions burned in",
	Long: `Render a short preview of a project with its captions burned in by ffmpeg.
The clip is written to a previews folder next to the video. Give --start and
--end for an exact range, or --at to frame a few seconds around a moment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetString("at")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		portrait, _ := cmd.Flags().GetBool("portrait")
		ctx := cmd.Context()

		if err := deps.CheckFfmpeg(); err != nil {
			return err
		}
		closer, err := setupLogger(false)
		if err != nil {
			return err
		}
		defer closer.Close()

		conn, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		project, err := findProject(ctx, conn, args[0])
		if err != nil {
			return err
		}
		t, err := db.LatestTranscript(ctx, conn, project.ID)
		if err != nil {
			return err
		}
		if t.TotalWords() == 0 {
			return errors.New("the project has no words to render")
		}
		lib, err := style.LoadLibrary(cfg.Paths.PresetsFile)
		if err != nil {
			return err
		}

		req := clip.Request{
			ProjectID:  project.ID,
			VideoPath:  project.VideoPath,
			LayoutID:   project.LayoutPreset,
			Transcript: t,
			AtMs:       project.PlayheadMs,
			Document: ass.DocumentOptions{
				Title:           filepath.Base(project.VideoPath),
				Lyric:           lib.Lookup(project.LyricPreset),
				Layout:          arrange.LookupOrDefault(project.LayoutPreset),
				Frame:           arrange.DefaultFrame(portrait),
				Karaoke:         cfg.Render.Karaoke,
				MaxWords:        cfg.Render.MaxWords,
				AlignSectionEnd: cfg.Editor.AlignSectionEnd,
			},
		}
		for _, f := range []struct {
			value string
			dst   *int64
		}{{at, &req.AtMs}, {startStr, &req.StartMs}, {endStr, &req.EndMs}} {
			if f.value == "" {
				continue
			}
			ms, err := timeutil.ParseMs(f.value)
			if err != nil {
				return err
			}
			*f.dst = ms
		}

		id, output, err := clip.Enqueue(ctx, conn, req)
		if err != nil {
			return err
		}
		logger.Info("render queued", "id", id, "output", output)

		proc := &clip.Processor{DB: conn, Logger: logger}
		if _, err := proc.Drain(ctx); err != nil {
			return err
		}
		renders, err := db.SelectRendersByProject(ctx, conn, project.ID)
		if err != nil {
			return err
		}
		for _, r := range renders {
			if r.ID != id {
				continue
			}
			if r.Status != db.RenderCompleted {
				return fmt.Errorf("render %s: %s", r.Status, r.Log)
			}
			fmt.Printf("Rendered %s (%s → %s, %d KB)\n", output,
				timeutil.FormatShort(r.StartMs), timeutil.FormatShort(r.EndMs), r.Filesize/1024)
			return nil
		}
		return fmt.Errorf("render %d disappeared", id)
	},
}

func init() {
	renderCmd.Flags().String("at", "", "frame the clip around this time (default: where editing stopped)")
	renderCmd.Flags().String("start", "", "clip start time")
	renderCmd.Flags().String("end", "", "clip end time")
	renderCmd.Flags().Bool("portrait", false, "lay out captions for a 9:16 frame")
	rootCmd.AddCommand(renderCmd)
}

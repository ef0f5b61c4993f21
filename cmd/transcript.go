package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/pkg/export"
	"github.com/user/caption-timeline-cli/style"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Import, export and inspect project transcripts",
}

var transcriptImportCmd = &cobra.Command{
	Use:   "import <video-file> <transcript.json>",
	Short: "Load a transcript into a video's project",
	Long: `Load a transcript JSON file into the project of a video, creating the
project if needed. Accepts an array of lines, an object with a "transcript"
or "lines" array, or a flat array of words. Timings are repaired on load.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")
		ctx := cmd.Context()

		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		t, err := export.ReadFile(args[1])
		if err != nil {
			return err
		}

		conn, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		project, err := db.EnsureProject(ctx, conn, absPath, cfg.Editor.LyricPreset, cfg.Editor.LayoutPreset)
		if err != nil {
			return err
		}
		current, err := db.LatestTranscript(ctx, conn, project.ID)
		if err != nil {
			return err
		}
		if current.TotalWords() > 0 && !replace {
			return fmt.Errorf("project already has %d words (use --replace to overwrite)", current.TotalWords())
		}

		store := db.NewStore(conn, project.ID, cfg.Persistence.KeepRevisions)
		if err := store.SaveTranscript(ctx, t); err != nil {
			return err
		}
		fmt.Printf("Imported %d words in %d lines into %s\n", t.TotalWords(), len(t), project.Name)
		return nil
	},
}

var transcriptExportCmd = &cobra.Command{
	Use:   "export <video-file> <output>",
	Short: "Export a project transcript as JSON, SRT or ASS",
	Long: `Export the latest transcript of a video's project. The format follows the
output extension unless --format is given. Use "-" to write to stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		portrait, _ := cmd.Flags().GetBool("portrait")
		ctx := cmd.Context()
		output := args[1]

		var format export.Format
		var err error
		switch {
		case formatName != "":
			format, err = export.ParseFormat(formatName)
		case output == "-":
			format = export.FormatJSON
		default:
			format, err = export.FormatFromPath(output)
		}
		if err != nil {
			return err
		}

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
		lib, err := style.LoadLibrary(cfg.Paths.PresetsFile)
		if err != nil {
			return err
		}

		opts := export.Options{Format: format}
		opts.ASS.Title = filepath.Base(project.VideoPath)
		opts.ASS.Lyric = lib.Lookup(project.LyricPreset)
		opts.ASS.Layout = arrange.LookupOrDefault(project.LayoutPreset)
		opts.ASS.Frame = arrange.DefaultFrame(portrait)
		opts.ASS.Karaoke = cfg.Render.Karaoke
		opts.ASS.MaxWords = cfg.Render.MaxWords
		opts.SRT.MaxWords = cfg.Render.MaxWords
		opts.ASS.AlignSectionEnd = cfg.Editor.AlignSectionEnd
		opts.SRT.AlignSectionEnd = cfg.Editor.AlignSectionEnd

		if output == "-" {
			return export.Write(os.Stdout, t, opts)
		}
		if err := export.WriteFile(output, t, opts); err != nil {
			return err
		}
		fmt.Printf("Exported %d words to %s (%s)\n", t.TotalWords(), output, format)
		return nil
	},
}

var transcriptHistoryCmd = &cobra.Command{
	Use:   "history <video-file>",
	Short: "List saved transcript revisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		project, err := findProject(ctx, conn, args[0])
		if err != nil {
			return err
		}
		revs, err := db.SelectTranscriptRevisions(ctx, conn, project.ID)
		if err != nil {
			return err
		}
		if len(revs) == 0 {
			fmt.Printf("No revisions saved for %s\n", project.Name)
			return nil
		}

		rows := make([][]string, 0, len(revs))
		for _, r := range revs {
			rows = append(rows, []string{
				strconv.FormatInt(r.ID, 10),
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				strconv.Itoa(r.WordCount),
			})
		}
		fmt.Println(renderTable([]string{"Revision", "Saved", "Words"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
		return nil
	},
}

func init() {
	transcriptImportCmd.Flags().Bool("replace", false, "overwrite a project that already has words")
	transcriptExportCmd.Flags().StringP("format", "f", "", "output format: json, srt or ass")
	transcriptExportCmd.Flags().Bool("portrait", false, "lay out ASS captions for a 9:16 frame")

	transcriptCmd.AddCommand(transcriptImportCmd)
	transcriptCmd.AddCommand(transcriptExportCmd)
	transcriptCmd.AddCommand(transcriptHistoryCmd)
	rootCmd.AddCommand(transcriptCmd)
}

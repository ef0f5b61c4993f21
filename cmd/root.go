package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/config"
	"github.com/user/caption-timeline-cli/deps"
	"github.com/user/caption-timeline-cli/logging"
)

var Version = "0.1.0"

var (
	configPath string
	cfg        *config.Config
	logger     = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "caption-timeline-cli",
	Short: "Edit word-timed captions against a video",
	Long: `caption-timeline-cli edits word-level caption timing and on-screen
placement for a video played in mpv, with a lane timeline and a live
preview of the caption frame in the terminal.

Features:
  - Drag words along the timeline and across the frame
  - Lyric styles and layout presets with karaoke highlighting
  - Autosave to SQLite or a remote project API
  - Export to JSON, SRT and ASS, or render a preview clip with ffmpeg`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		loaded, _, _, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// setupLogger points the package logger at stderr, or at the log file for
// commands that take over the terminal. The closer is never nil.
func setupLogger(interactive bool) (io.Closer, error) {
	l, closer, err := logging.NewFromConfig(cfg, interactive)
	if err != nil {
		return nil, err
	}
	logger = l
	slog.SetDefault(l)
	return closer, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("caption-timeline-cli version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the external programs the editor drives (mpv, ffmpeg) are installed and on PATH.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		missing := false
		for _, s := range deps.Probe() {
			status, where := "✓ OK", s.Path
			if s.Err != nil {
				status = "✗ NOT FOUND"
				where = "install from " + s.InstallURL
				if s.Required {
					missing = true
				}
			}
			need := "optional"
			if s.Required {
				need = "required"
			}
			rows = append(rows, []string{s.Name, status, need, s.Purpose, where})
		}
		fmt.Println(renderTable([]string{"Program", "Status", "Need", "Used for", "Path"}, rows, nil))

		if missing {
			return errors.New("required dependencies are missing")
		}
		fmt.Println("All required dependencies are installed.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/caption-timeline-cli/config.toml)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}

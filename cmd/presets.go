package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/style"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List lyric styles and layout presets",
}

var presetsLyricCmd = &cobra.Command{
	Use:   "lyric",
	Short: "List lyric style presets, built-in and from the presets file",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := style.LoadLibrary(cfg.Paths.PresetsFile)
		if err != nil {
			return err
		}
		var rows [][]string
		for _, p := range lib.List() {
			rows = append(rows, []string{p.ID, p.Name, p.FontFamily, strconv.Itoa(p.FontWeight), p.Color, p.HighlightColor, effectNames(p)})
		}
		fmt.Println(renderTable([]string{"ID", "Name", "Font", "Weight", "Colour", "Highlight", "Effects"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
		return nil
	},
}

var presetsLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "List layout presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, p := range arrange.List() {
			lines := "-"
			if p.MaxLines > 0 {
				lines = strconv.Itoa(p.MaxLines)
			}
			rows = append(rows, []string{p.ID, p.Name, string(p.Kind), string(p.Anchor), lines})
		}
		fmt.Println(renderTable([]string{"ID", "Name", "Strategy", "Anchor", "Lines"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
		return nil
	},
}

var presetsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in lyric styles to the presets file for editing",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := cfg.Paths.PresetsFile

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("presets file already exists: %s (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat presets file: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create presets directory: %w", err)
		}
		presets := style.Builtin().List()
		if err := style.WritePresets(path, presets); err != nil {
			return err
		}
		fmt.Printf("Wrote %d presets to %s\n", len(presets), path)
		return nil
	},
}

// effectNames lists the preset's effects with their intensity.
func effectNames(p style.Preset) string {
	names := make([]string, 0, len(p.Effects))
	for e, v := range p.Effects {
		names = append(names, fmt.Sprintf("%s %.0f%%", e, v*100))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func init() {
	presetsInitCmd.Flags().Bool("force", false, "overwrite an existing presets file")

	presetsCmd.AddCommand(presetsLyricCmd)
	presetsCmd.AddCommand(presetsLayoutCmd)
	presetsCmd.AddCommand(presetsInitCmd)
	rootCmd.AddCommand(presetsCmd)
}

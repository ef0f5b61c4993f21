package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/db"
	"github.com/user/caption-timeline-cli/logging"
	"github.com/user/caption-timeline-cli/pkg/timeutil"
	"github.com/user/caption-timeline-cli/tui/forms"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage caption projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently edited first",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		projects, err := db.SelectProjects(cmd.Context(), conn)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No projects yet. Open a video to create one.")
			return nil
		}

		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{
				shortID(p.ID),
				p.Name,
				strconv.Itoa(p.WordCount),
				p.LyricPreset + " / " + p.LayoutPreset,
				timeutil.FormatShort(p.PlayheadMs),
				p.UpdatedAt.Local().Format("2006-01-02 15:04"),
				filepath.Dir(p.VideoPath),
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "Name", "Words", "Style / Layout", "Resume", "Updated", "Folder"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
		))
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <video-file>",
	Short: "Delete a project with its revisions and renders",
	Long:  `Delete the project of a video, with every saved transcript revision and queued render. The video and rendered clips on disk are left alone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
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

		if !yes {
			if !logging.IsTerminal(os.Stdin) {
				return fmt.Errorf("refusing to delete %s without --yes", project.Name)
			}
			confirmed := false
			form := forms.NewConfirmForm(
				fmt.Sprintf("Delete project %q?", project.Name),
				"Every saved revision of its transcript is removed.",
				"Delete", "Cancel", &confirmed)
			if err := form.Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Cancelled")
				return nil
			}
		}

		if err := db.DeleteProject(ctx, conn, project.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted project %s\n", project.Name)
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	projectsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}

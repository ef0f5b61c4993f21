package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/caption-timeline-cli/tui/styles"
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Theme returns a huh theme in the editor palette. Focused fields use the
// bright accents, blurred fields the muted purples.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	t.Focused.Title = fg(styles.Pink).Bold(true)
	t.Focused.Description = fg(styles.Lavender)
	t.Focused.ErrorIndicator = fg(styles.Red).Bold(true)
	t.Focused.ErrorMessage = fg(styles.Red)
	t.Focused.SelectSelector = fg(styles.Cyan).SetString("▸ ")
	t.Focused.Option = fg(styles.LightLavender)
	t.Focused.NextIndicator = fg(styles.Lavender)
	t.Focused.PrevIndicator = fg(styles.Lavender)
	t.Focused.SelectedOption = fg(styles.Cyan)
	t.Focused.SelectedPrefix = fg(styles.Cyan).SetString("[✓] ")
	t.Focused.UnselectedOption = fg(styles.Lavender)
	t.Focused.UnselectedPrefix = fg(styles.Lavender).SetString("[ ] ")
	t.Focused.TextInput.Cursor = fg(styles.Cyan)
	t.Focused.TextInput.Placeholder = fg(styles.Purple)
	t.Focused.TextInput.Prompt = fg(styles.Cyan)
	t.Focused.TextInput.Text = fg(styles.LightLavender)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.BrightPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)
	t.Focused.NoteTitle = fg(styles.Cyan).Bold(true)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = fg(styles.Lavender)
	t.Blurred.Description = fg(styles.Purple)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.Option = fg(styles.Lavender)
	t.Blurred.TextInput.Cursor = fg(styles.Purple)
	t.Blurred.TextInput.Prompt = fg(styles.Purple)
	t.Blurred.TextInput.Text = fg(styles.Lavender)
	t.Blurred.NoteTitle = fg(styles.Lavender)

	return t
}

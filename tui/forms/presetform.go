package forms

import (
	"github.com/charmbracelet/huh"

	"github.com/user/caption-timeline-cli/arrange"
	"github.com/user/caption-timeline-cli/style"
)

// PresetFormResult holds the chosen preset ids.
type PresetFormResult struct {
	Lyric  string
	Layout string
}

// NewPresetForm offers every lyric preset in lib and every layout preset.
func NewPresetForm(lib *style.Library, result *PresetFormResult) *huh.Form {
	var lyricOpts []huh.Option[string]
	for _, p := range lib.List() {
		lyricOpts = append(lyricOpts, huh.NewOption(p.Name, p.ID))
	}
	var layoutOpts []huh.Option[string]
	for _, p := range arrange.List() {
		layoutOpts = append(layoutOpts, huh.NewOption(p.Name, p.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Lyric style").
				Options(lyricOpts...).
				Value(&result.Lyric),

			huh.NewSelect[string]().
				Title("Layout").
				Options(layoutOpts...).
				Value(&result.Layout),
		),
	).WithTheme(Theme())
}

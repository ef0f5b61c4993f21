// Package forms holds the huh forms the editor opens over the main view.
package forms

import (
	"github.com/charmbracelet/huh"
)

// NewConfirmForm asks a yes/no question bound to answer.
func NewConfirmForm(title, description, yes, no string, answer *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(yes).
				Negative(no).
				Value(answer),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}

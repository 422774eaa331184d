// Package forms provides huh-based forms for interactive cutting.
package forms

import (
	"github.com/charmbracelet/huh"
)

// NewConfirmCutForm asks whether to cut the planned clip described by summary.
// The answer is bound to confirm.
func NewConfirmCutForm(summary string, confirm *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Cut this clip?").
				Description(summary).
				Affirmative("Cut").
				Negative("Cancel").
				Value(confirm),
		),
	).WithTheme(Theme())
}

package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/tui/styles"
)

// Theme returns a huh theme in the clipper palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Focus).
		PaddingLeft(1)
	t.Focused.Title = styles.Title
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Header).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Header)
	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(styles.Info).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Info)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Border)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Info)
	t.Focused.TextInput.Text = styles.Value
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.Focus).
		Foreground(styles.Text).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Border).
		Foreground(styles.Muted).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = styles.Label
	t.Blurred.Description = lipgloss.NewStyle().Foreground(styles.Border)
	t.Blurred.NoteTitle = styles.Label
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Border)
	t.Blurred.TextInput.Text = styles.Label
	t.Blurred.FocusedButton = t.Focused.BlurredButton
	t.Blurred.BlurredButton = lipgloss.NewStyle().
		Background(styles.Background).
		Foreground(styles.Border).
		Padding(0, 1)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}

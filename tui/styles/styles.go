// Package styles holds the Lipgloss colours and styles shared by the
// progress view, the summary and the forms (Ciapre palette from Gogh).
package styles

import "github.com/charmbracelet/lipgloss"

const (
	// Background is the darkest surface colour.
	Background = lipgloss.Color("#191C27")
	// Border is used for box outlines and dim accents.
	Border = lipgloss.Color("#5C4F4B")
	// Focus marks the focused form field.
	Focus = lipgloss.Color("#724D7C")
	// Muted is secondary text.
	Muted = lipgloss.Color("#AEA47A")
	// Text is primary text.
	Text = lipgloss.Color("#F3DBB2")
	// Header is used for box titles.
	Header = lipgloss.Color("#D33061")
	// Info highlights interactive elements and values.
	Info = lipgloss.Color("#3097C6")
	// Pending fills the unfinished part of progress bars.
	Pending = lipgloss.Color("#CC8B3F")
	// Red marks failures.
	Red = lipgloss.Color("#AC3835")
	// Green marks successes.
	Green = lipgloss.Color("#A6A75D")
)

var (
	Title = lipgloss.NewStyle().Foreground(Header).Bold(true)

	Label = lipgloss.NewStyle().Foreground(Muted)

	Value = lipgloss.NewStyle().Foreground(Text)

	Success = lipgloss.NewStyle().Foreground(Green).Bold(true)

	Failure = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// Box frames summary output printed after a run.
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

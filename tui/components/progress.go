package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/video-clipper-cli/tui/styles"
)

// ProgressState is what the batch progress box shows.
type ProgressState struct {
	Title  string
	Total  int
	Done   int
	Failed int
	// Last is the most recently finished clip or rejected line.
	Last     string
	Finished bool
}

// Percent returns the completed share of the batch, 0 to 100.
func (s ProgressState) Percent() int {
	if s.Total <= 0 {
		return 0
	}
	return s.Done * 100 / s.Total
}

// Progress renders a bordered box with a progress bar, a clip counter with the
// failure count, and the last finished item.
func Progress(state ProgressState, width int) string {
	if width < 10 {
		return ""
	}

	green := lipgloss.NewStyle().Foreground(styles.Green)
	pending := lipgloss.NewStyle().Foreground(styles.Pending)
	red := lipgloss.NewStyle().Foreground(styles.Red)
	text := lipgloss.NewStyle().Foreground(styles.Text)

	// box border plus one space either side
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	// room for " 100%"
	barW := innerW - 6
	if barW < 4 {
		barW = 4
	}
	filled := 0
	if state.Total > 0 {
		filled = min(barW*state.Done/state.Total, barW)
	}

	bar := green.Render(strings.Repeat("█", filled)) + pending.Render(strings.Repeat("░", barW-filled))
	lines := []string{" " + bar + text.Render(fmt.Sprintf(" %3d%%", state.Percent()))}

	counter := fmt.Sprintf(" %d/%d clips", state.Done, state.Total)
	if state.Failed > 0 {
		counter = text.Render(counter) + "  " + red.Render(fmt.Sprintf("%d failed", state.Failed))
	} else {
		counter = text.Render(counter)
	}
	lines = append(lines, counter)

	switch {
	case state.Finished:
		lines = append(lines, " "+green.Render("Batch complete"))
	case state.Last != "":
		last := state.Last
		if lipgloss.Width(last) > innerW-2 {
			last = ansi.Truncate(last, innerW-5, "...")
		}
		lines = append(lines, " "+text.Render(last))
	}

	title := state.Title
	if title == "" {
		title = "Cutting"
	}
	return RenderInfoBox(title, lines, width)
}

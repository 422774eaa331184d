package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/tui/styles"
)

// Summary renders the end-of-batch report printed to the terminal.
// reportPath may be empty when no HTML report was written.
func Summary(s clip.Summary, outputDir, reportPath string) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Batch complete") + "\n")
	row(&b, "Succeeded", styles.Success.Render(fmt.Sprintf("%d/%d", s.Succeeded, s.Total)))
	if s.Failed > 0 {
		row(&b, "Failed", styles.Failure.Render(fmt.Sprint(s.Failed)))
	}
	row(&b, "Written", styles.Value.Render(humanize.Bytes(uint64(s.Bytes))))
	row(&b, "Saved to", styles.Value.Render(outputDir))
	if reportPath != "" {
		row(&b, "Report", styles.Value.Render(reportPath))
	}

	if len(s.Failures) > 0 {
		b.WriteString("\n" + styles.Failure.Render("Failures:") + "\n")
		for _, f := range s.Failures {
			b.WriteString("  " + styles.Value.Render(f) + "\n")
		}
		if s.MoreFailures > 0 {
			b.WriteString(styles.Label.Render(fmt.Sprintf("  ... and %d more", s.MoreFailures)) + "\n")
		}
	}

	return styles.Box.Render(strings.TrimRight(b.String(), "\n"))
}

// ClipResult renders the outcome of a single cut.
func ClipResult(o clip.Outcome) string {
	var b strings.Builder
	b.WriteString(styles.Success.Render("Clip saved") + "\n")
	row(&b, "Window", styles.Value.Render(o.Window.String()))
	row(&b, "Duration", styles.Value.Render(fmt.Sprintf("%.0fs", o.Window.Duration())))
	row(&b, "File", styles.Value.Render(o.OutputPath))
	row(&b, "Size", styles.Value.Render(humanize.Bytes(uint64(o.Size))))
	return styles.Box.Render(strings.TrimRight(b.String(), "\n"))
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(styles.Label.Render(fmt.Sprintf("%-10s", label)) + value + "\n")
}

// Package report renders the HTML summary of a batch run.
package report

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// FileLayout is the time layout used in report file names.
const FileLayout = "20060102_150405"

// Run describes the batch a report covers.
type Run struct {
	ID             string
	Source         string
	RecordingStart int
	Before         int
	After          int
	Duration       float64
	OutputDir      string
}

type item struct {
	Index      int
	OK         bool
	Line       int
	Time       string
	Label      string
	Window     string
	OutputName string
	Size       string
	Error      string
	FirstFrame template.URL
	LastFrame  template.URL
}

type page struct {
	Run            Run
	Title          string
	Generated      string
	Year           int
	RecordingStart string
	Duration       string
	Summary        clip.Summary
	TotalSize      string
	Items          []item
}

// FileName returns the report file name for a run generated at now.
func FileName(now time.Time) string {
	return "clip-report_" + now.Format(FileLayout) + ".html"
}

// Write renders outcomes to dir and returns the report path.
func Write(dir string, run Run, outcomes []clip.Outcome, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}

	if err := reportTemplate.Execute(f, newPage(run, outcomes, now)); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func newPage(run Run, outcomes []clip.Outcome, now time.Time) page {
	summary := clip.Summarize(outcomes)
	p := page{
		Run:            run,
		Title:          filepath.Base(run.Source),
		Generated:      now.Format("2006-01-02 15:04:05"),
		Year:           now.Year(),
		RecordingStart: timeutil.Format(run.RecordingStart),
		Duration:       timeutil.FormatDuration(run.Duration),
		Summary:        summary,
		TotalSize:      humanize.Bytes(uint64(summary.Bytes)),
		Items:          make([]item, 0, len(outcomes)),
	}

	for i, o := range outcomes {
		it := item{
			Index: i + 1,
			OK:    o.OK(),
			Line:  o.Entry.Line,
			Time:  o.Entry.Expression,
			Label: o.Entry.Label,
		}
		if o.OK() {
			it.Window = o.Window.String()
			it.OutputName = o.OutputName
			it.Size = humanize.Bytes(uint64(o.Size))
			it.FirstFrame = dataURI(o.FirstFrame)
			it.LastFrame = dataURI(o.LastFrame)
		} else if o.Err != nil {
			it.Error = o.Err.Error()
		}
		p.Items = append(p.Items, it)
	}
	return p
}

// dataURI embeds a JPEG so the report stays a single self-contained file.
func dataURI(jpeg []byte) template.URL {
	if len(jpeg) == 0 {
		return ""
	}
	return template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg))
}

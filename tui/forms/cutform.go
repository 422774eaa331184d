package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

// CutFormResult holds the raw field values of the cut form.
type CutFormResult struct {
	RecordingStart string
	Target         string
	Before         string
	After          string
}

// CutValues are the parsed values of a submitted cut form.
type CutValues struct {
	RecordingStart int
	Target         int
	Before         int
	After          int
}

// Parse validates every field and converts it.
func (r *CutFormResult) Parse() (CutValues, error) {
	var v CutValues
	var err error
	if v.RecordingStart, err = timeutil.ParseStrict(r.RecordingStart); err != nil {
		return v, fmt.Errorf("recording start: %w", err)
	}
	if v.Target, err = timeutil.ParseStrict(r.Target); err != nil {
		return v, fmt.Errorf("clip time: %w", err)
	}
	if v.Before, err = parseMargin(r.Before); err != nil {
		return v, fmt.Errorf("before: %w", err)
	}
	if v.After, err = parseMargin(r.After); err != nil {
		return v, fmt.Errorf("after: %w", err)
	}
	return v, nil
}

func parseMargin(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a whole number of seconds", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}

func validateClock(s string) error {
	_, err := timeutil.ParseStrict(s)
	return err
}

func validateMargin(s string) error {
	_, err := parseMargin(s)
	return err
}

// NewCutForm creates a form for a single cut of video. Fields already set in
// result are shown as their initial values.
func NewCutForm(video string, result *CutFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Cut clip").Description(video),

			huh.NewInput().
				Title("Recording start").
				Description("Wall-clock time of the first frame (HH:MM:SS)").
				Placeholder("10:00:00").
				Value(&result.RecordingStart).
				Validate(validateClock),

			huh.NewInput().
				Title("Clip time").
				Description("Moment to cut around (HH:MM:SS)").
				Placeholder("10:05:30").
				Value(&result.Target).
				Validate(validateClock),

			huh.NewInput().
				Title("Seconds before").
				Value(&result.Before).
				Validate(validateMargin),

			huh.NewInput().
				Title("Seconds after").
				Value(&result.After).
				Validate(validateMargin),
		),
	).WithTheme(Theme())
}

// Package cliputil turns a target time of day into the window of source media to cut.
package cliputil

import (
	"errors"
	"fmt"

	"github.com/user/video-clipper-cli/pkg/timeutil"
)

var (
	ErrNegativeMargin    = errors.New("margins must not be negative")
	ErrTargetBeforeStart = errors.New("target is before the recording start")
	ErrWindowTooEarly    = errors.New("clip window starts before the recording")
	ErrWindowTooLate     = errors.New("clip window ends after the recording")
)

// Request describes one clip in wall-clock terms. Times are seconds since midnight.
type Request struct {
	RecordingStart int
	Target         int
	Before         int
	After          int
}

// Relative returns the target's offset into the media.
func (r Request) Relative() int {
	return r.Target - r.RecordingStart
}

// Window is a cut range in seconds from the start of the media.
type Window struct {
	Start float64
	End   float64
}

// Duration returns End - Start.
func (w Window) Duration() float64 {
	return w.End - w.Start
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", timeutil.FormatDuration(w.Start), timeutil.FormatDuration(w.End))
}

// PlanError is a planning rejection with enough context for a suggestion.
// Suggested is the earliest acceptable target for ErrWindowTooEarly and the
// latest acceptable target for ErrWindowTooLate; it is unused otherwise.
type PlanError struct {
	Kind      error
	Request   Request
	Duration  float64
	Suggested int
}

func (e *PlanError) Error() string {
	r := e.Request
	target := timeutil.Format(r.Target)
	start := timeutil.Format(r.RecordingStart)

	switch e.Kind {
	case ErrTargetBeforeStart:
		return fmt.Sprintf("target %s is before the recording start %s", target, start)
	case ErrWindowTooEarly:
		return fmt.Sprintf("target %s is too early: %ds are needed before it but the recording starts at %s; choose %s or later",
			target, r.Before, start, timeutil.Format(e.Suggested))
	case ErrWindowTooLate:
		return fmt.Sprintf("target %s is too late: %ds are needed after it but the recording (%s long) ends at %s; choose %s or earlier",
			target, r.After, timeutil.FormatDuration(e.Duration),
			timeutil.FormatDuration(float64(r.RecordingStart)+e.Duration), timeutil.Format(e.Suggested))
	}
	return e.Kind.Error()
}

func (e *PlanError) Unwrap() error {
	return e.Kind
}

// Plan computes the cut window for req in media of totalDuration seconds.
// Zero margins yield an empty window (Start == End); that is left for the
// cutter to reject.
func Plan(req Request, totalDuration float64) (Window, error) {
	if req.Before < 0 || req.After < 0 {
		return Window{}, fmt.Errorf("%w: before=%d after=%d", ErrNegativeMargin, req.Before, req.After)
	}

	relative := req.Relative()
	if relative < 0 {
		return Window{}, &PlanError{Kind: ErrTargetBeforeStart, Request: req, Duration: totalDuration}
	}

	start := relative - req.Before
	end := relative + req.After

	if start < 0 {
		return Window{}, &PlanError{
			Kind:      ErrWindowTooEarly,
			Request:   req,
			Duration:  totalDuration,
			Suggested: req.RecordingStart + req.Before,
		}
	}

	if float64(end) > totalDuration {
		return Window{}, &PlanError{
			Kind:      ErrWindowTooLate,
			Request:   req,
			Duration:  totalDuration,
			Suggested: int(float64(req.RecordingStart)+totalDuration) - req.After,
		}
	}

	return Window{Start: float64(start), End: float64(end)}, nil
}

// Package clip plans and cuts sub-clips of a source video, one at a time or
// from a timestamp file.
package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/user/video-clipper-cli/pkg/batchfile"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

// ErrNoTimestamps is returned for a batch with no usable timestamp lines.
var ErrNoTimestamps = errors.New("no valid timestamps in file")

// frameInset keeps thumbnail offsets away from the clip's first and last instants.
const frameInset = 0.1

// Job holds the settings shared by every clip cut from one source.
type Job struct {
	Source         string
	OutputDir      string
	Ext            string
	RecordingStart int
	Before         int
	After          int
	// DefaultSeconds fills the seconds of batch expressions written without them.
	DefaultSeconds int
	// Duration is the total length of Source in seconds.
	Duration float64
	// Strict reports unrecognized batch lines as failures instead of skipping them.
	Strict bool
}

func (j Job) request(target int) cliputil.Request {
	return cliputil.Request{
		RecordingStart: j.RecordingStart,
		Target:         target,
		Before:         j.Before,
		After:          j.After,
	}
}

// Outcome is the result for one clip. Err is nil on success.
type Outcome struct {
	Entry      batchfile.Entry
	Target     int
	Window     cliputil.Window
	OutputName string
	OutputPath string
	Size       int64
	FirstFrame []byte
	LastFrame  []byte
	Err        error
}

// OK reports whether the clip was planned (and, after a run, cut) successfully.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Progress is reported after each outcome of a batch is final.
type Progress struct {
	Done    int
	Total   int
	Outcome Outcome
}

// Runner evaluates clip requests and hands valid windows to a Cutter.
type Runner struct {
	Cutter Cutter
	// Frames is optional; when set, first and last frames of each clip are kept.
	Frames FrameGrabber
	Logger *slog.Logger
	// Workers bounds concurrent cuts; values below 1 mean 1.
	Workers int
	// OnProgress is optional and is called serially.
	OnProgress func(Progress)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Single cuts the clip centred on target, a strict HH:MM:SS time.
// The returned error is the outcome's error.
func (r *Runner) Single(ctx context.Context, job Job, target string) (Outcome, error) {
	o := Outcome{Entry: batchfile.Entry{Expression: target}}

	secs, err := timeutil.ParseStrict(target)
	if err != nil {
		o.Err = fmt.Errorf("invalid clip time: %w", err)
		return o, o.Err
	}
	o.Target = secs

	w, err := cliputil.Plan(job.request(secs), job.Duration)
	if err != nil {
		o.Err = err
		return o, err
	}
	o.Window = w
	o.OutputName, o.OutputPath = newNamer(job.OutputDir, job.Ext).next(cliputil.SingleOutputName(target))

	r.cut(ctx, job, &o)
	return o, o.Err
}

// Plan parses and positions every entry of f without cutting anything.
// Outcomes are in line order.
func (r *Runner) Plan(job Job, f *batchfile.File) []Outcome {
	names := newNamer(job.OutputDir, job.Ext)
	outcomes := make([]Outcome, 0, len(f.Entries)+len(f.Unrecognized))

	for _, e := range f.Entries {
		o := Outcome{Entry: e}
		secs, err := timeutil.ParseFlexible(e.Expression, job.DefaultSeconds)
		if err != nil {
			o.Err = err
			outcomes = append(outcomes, o)
			continue
		}
		o.Target = secs

		w, err := cliputil.Plan(job.request(secs), job.Duration)
		if err != nil {
			o.Err = err
			outcomes = append(outcomes, o)
			continue
		}
		o.Window = w
		o.OutputName, o.OutputPath = names.next(cliputil.BatchOutputName(e.Expression, e.Label))
		outcomes = append(outcomes, o)
	}

	for _, l := range f.Unrecognized {
		if !job.Strict {
			r.logger().Warn("skipping unrecognized line", "line", l.Number, "text", l.Text)
			continue
		}
		outcomes = append(outcomes, Outcome{
			Entry: batchfile.Entry{Expression: l.Text, Line: l.Number},
			Err:   l.Err(),
		})
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Entry.Line < outcomes[j].Entry.Line
	})
	return outcomes
}

// Batch plans every entry of f and cuts the valid ones. A failing entry never
// stops the others. Outcomes are in line order.
func (r *Runner) Batch(ctx context.Context, job Job, f *batchfile.File) ([]Outcome, error) {
	if len(f.Entries) == 0 {
		return nil, ErrNoTimestamps
	}

	outcomes := r.Plan(job, f)
	total := len(outcomes)

	var mu sync.Mutex
	done := 0
	report := func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if r.OnProgress != nil {
			r.OnProgress(Progress{Done: done, Total: total, Outcome: o})
		}
	}

	for _, o := range outcomes {
		if !o.OK() {
			r.logger().Info("clip rejected", "line", o.Entry.Line, "time", o.Entry.Expression, "error", o.Err)
			report(o)
		}
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i := range outcomes {
		if !outcomes[i].OK() {
			continue
		}
		o := &outcomes[i]
		g.Go(func() error {
			r.cut(ctx, job, o)
			report(*o)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, nil
}

// cut runs the cutter for a planned outcome and records the result in o.
func (r *Runner) cut(ctx context.Context, job Job, o *Outcome) {
	log := r.logger().With("line", o.Entry.Line, "time", o.Entry.Expression)

	if err := ctx.Err(); err != nil {
		o.Err = err
		return
	}

	log.Info("cutting clip", "window", o.Window.String(), "output", o.OutputPath)
	if err := r.Cutter.Cut(ctx, job.Source, o.Window, o.OutputPath); err != nil {
		log.Error("cut failed", "error", err)
		o.Err = err
		return
	}

	if info, err := os.Stat(o.OutputPath); err == nil {
		o.Size = info.Size()
	}

	if r.Frames == nil {
		return
	}
	first, err := r.Frames.Frame(ctx, o.OutputPath, frameInset)
	if err != nil {
		log.Warn("first frame unavailable", "error", err)
	}
	last, err := r.Frames.Frame(ctx, o.OutputPath, o.Window.Duration()-frameInset)
	if err != nil {
		log.Warn("last frame unavailable", "error", err)
	}
	o.FirstFrame, o.LastFrame = first, last
}

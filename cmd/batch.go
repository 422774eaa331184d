package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/pkg/batchfile"
	"github.com/user/video-clipper-cli/report"
	"github.com/user/video-clipper-cli/tui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <video-file> <timestamps-file>",
	Short: "Cut a clip for every timestamp in a file",
	Long: `Cut one clip per line of a timestamps file. Each line holds a time and an
optional label, for example:

  10:05:30 kickoff
  10:12 try            seconds default to --default-seconds
  2025-11-13 10:20:05 penalty
  2025年11月13日10:31:00 scrum
  10点45分12秒 lineout

Blank lines and lines starting with # are ignored. A bad line never stops the
run; failures are listed at the end and in the HTML report.`,
	Example: `  video-clipper batch match.mp4 times.txt --start 10:00:00
  video-clipper batch match.mp4 times.txt --start 10:00:00 --workers 4 --strict
  video-clipper batch match.mp4 times.txt --start 10:00:00 --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		recordingStart, err := parseRecordingStart(cmd)
		if err != nil {
			return err
		}
		before, after, err := margins(cmd)
		if err != nil {
			return err
		}

		file, err := readTimestamps(args[1])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		dryRun, _ := flags.GetBool("dry-run")
		strict, _ := flags.GetBool("strict")
		noReport, _ := flags.GetBool("no-report")
		noFrames, _ := flags.GetBool("no-frames")
		noTUI, _ := flags.GetBool("no-tui")
		workers := cfg.Workers
		if flags.Changed("workers") {
			workers, _ = flags.GetInt("workers")
		}
		if workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", workers)
		}
		defaultSeconds := before
		if flags.Changed("default-seconds") {
			defaultSeconds, _ = flags.GetInt("default-seconds")
		}

		ffmpeg, err := newFFmpeg(cmd, !dryRun)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		duration, err := probe(ctx, ffmpeg, videoPath)
		if err != nil {
			return err
		}

		job := clip.Job{
			Source:         videoPath,
			OutputDir:      outputDir(cmd, videoPath),
			Ext:            cfg.Ext,
			RecordingStart: recordingStart,
			Before:         before,
			After:          after,
			DefaultSeconds: defaultSeconds,
			Duration:       duration,
			Strict:         strict,
		}
		runner := &clip.Runner{Cutter: ffmpeg, Logger: logger, Workers: workers}
		if !noFrames {
			runner.Frames = ffmpeg
		}

		if dryRun {
			if len(file.Entries) == 0 {
				return clip.ErrNoTimestamps
			}
			printPlan(cmd.OutOrStdout(), runner.Plan(job, file))
			return nil
		}

		runID := db.NewRunID()
		started := time.Now()
		logger.Info("starting batch", "run", runID, "video", videoPath, "entries", len(file.Entries), "workers", workers)

		var outcomes []clip.Outcome
		if isTerminal() && !noTUI {
			outcomes, err = tui.RunBatch(ctx, "Cutting "+filepath.Base(videoPath), func(ctx context.Context, onProgress func(clip.Progress)) ([]clip.Outcome, error) {
				runner.OnProgress = onProgress
				return runner.Batch(ctx, job, file)
			})
		} else {
			out := cmd.OutOrStdout()
			runner.OnProgress = func(p clip.Progress) { printProgress(out, p) }
			outcomes, err = runner.Batch(ctx, job, file)
		}
		if err != nil {
			return err
		}

		reportPath := ""
		if !noReport {
			reportPath, err = report.Write(job.OutputDir, report.Run{
				ID:             runID,
				Source:         videoPath,
				RecordingStart: recordingStart,
				Before:         before,
				After:          after,
				Duration:       duration,
				OutputDir:      job.OutputDir,
			}, outcomes, time.Now())
			if err != nil {
				logger.Error("report generation failed", "error", err)
				reportPath = ""
			}
		}

		saveHistory(db.Run{
			ID:             runID,
			Mode:           db.ModeBatch,
			Source:         videoPath,
			RecordingStart: recordingStart,
			Before:         before,
			After:          after,
			Duration:       duration,
			StartedAt:      started,
			ReportPath:     reportPath,
		}, outcomes)

		fmt.Fprintln(cmd.OutOrStdout(), tui.Summary(clip.Summarize(outcomes), job.OutputDir, reportPath))
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("batch interrupted")
		}
		return nil
	},
}

func readTimestamps(path string) (*batchfile.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timestamps file: %w", err)
	}
	defer f.Close()

	file, err := batchfile.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamps file: %w", err)
	}
	return file, nil
}

func printProgress(w io.Writer, p clip.Progress) {
	if p.Outcome.OK() {
		fmt.Fprintf(w, "[%d/%d] ok     %s\n", p.Done, p.Total, p.Outcome.OutputName)
		return
	}
	fmt.Fprintf(w, "[%d/%d] failed %s\n", p.Done, p.Total, clip.FailureMessage(p.Outcome))
}

func printPlan(out io.Writer, outcomes []clip.Outcome) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tTIME\tLABEL\tWINDOW\tOUTPUT")
	for _, o := range outcomes {
		result := o.OutputName
		window := o.Window.String()
		if !o.OK() {
			result = "error: " + o.Err.Error()
			window = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", o.Entry.Line, o.Entry.Expression, o.Entry.Label, window, result)
	}
	w.Flush()
}

func init() {
	batchCmd.Flags().StringP("start", "s", "", "Wall-clock time of the video's first frame (HH:MM:SS)")
	batchCmd.Flags().StringP("out", "o", "", "Output directory (default \"<video>-clips\")")
	batchCmd.Flags().IntP("workers", "w", 1, "Clips cut in parallel (default from CLIPPER_WORKERS)")
	batchCmd.Flags().Int("default-seconds", 0, "Seconds used for times written without them (default: --before)")
	batchCmd.Flags().Bool("strict", false, "Report unrecognized lines as failures instead of skipping them")
	batchCmd.Flags().Bool("dry-run", false, "Show the planned clips without cutting")
	batchCmd.Flags().Bool("no-report", false, "Do not write the HTML report")
	batchCmd.Flags().Bool("no-frames", false, "Do not grab first and last frames for the report")
	batchCmd.Flags().Bool("no-tui", false, "Print plain progress lines even on a terminal")
	batchCmd.Flags().Bool("copy", false, "Copy streams instead of re-encoding (fast, keyframe accurate only)")
	addMarginFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

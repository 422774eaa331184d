package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/deps"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

// resolveVideo returns the absolute path of an existing video file.
func resolveVideo(videoPath string) (string, error) {
	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	return absPath, nil
}

// addMarginFlags registers --before and --after; unset flags fall back to config.
func addMarginFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("before", "b", 0, "Seconds to keep before the clip time (default from CLIPPER_BEFORE, 40)")
	cmd.Flags().IntP("after", "a", 0, "Seconds to keep after the clip time (default from CLIPPER_AFTER, 20)")
}

func margins(cmd *cobra.Command) (before, after int, err error) {
	before, after = cfg.Before, cfg.After
	if cmd.Flags().Changed("before") {
		before, _ = cmd.Flags().GetInt("before")
	}
	if cmd.Flags().Changed("after") {
		after, _ = cmd.Flags().GetInt("after")
	}
	if before < 0 || after < 0 {
		return 0, 0, fmt.Errorf("%w (before=%d, after=%d)", cliputil.ErrNegativeMargin, before, after)
	}
	return before, after, nil
}

// outputDir picks --out, then CLIPPER_OUTPUT_DIR, then "<video>-clips".
func outputDir(cmd *cobra.Command, videoPath string) string {
	if dir, _ := cmd.Flags().GetString("out"); dir != "" {
		return dir
	}
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return cliputil.GetOutputDir(videoPath)
}

// parseRecordingStart reads the required --start flag.
func parseRecordingStart(cmd *cobra.Command) (int, error) {
	text, _ := cmd.Flags().GetString("start")
	if text == "" {
		return 0, fmt.Errorf("--start is required (wall-clock time of the first frame, HH:MM:SS)")
	}
	secs, err := timeutil.ParseStrict(text)
	if err != nil {
		return 0, fmt.Errorf("invalid recording start: %w", err)
	}
	return secs, nil
}

// newFFmpeg checks the media binaries and returns the adapter. needCutter
// also requires ffmpeg; --copy, when the command has it, selects stream copy.
func newFFmpeg(cmd *cobra.Command, needCutter bool) (*clip.FFmpeg, error) {
	required := []deps.Dependency{deps.Ffprobe(cfg.FFprobe)}
	if needCutter {
		required = append(required, deps.Ffmpeg(cfg.FFmpeg))
	}
	if errs := deps.CheckAll(required...); len(errs) > 0 {
		return nil, errs[0]
	}
	ff := clip.NewFFmpeg(cfg.FFmpeg, cfg.FFprobe, logger)
	ff.StreamCopy, _ = cmd.Flags().GetBool("copy")
	return ff, nil
}

// probe returns the total duration of videoPath.
func probe(ctx context.Context, p clip.Prober, videoPath string) (float64, error) {
	duration, err := p.Duration(ctx, videoPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read video duration: %w", err)
	}
	logger.Debug("probed video", "path", videoPath, "duration", duration)
	return duration, nil
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// saveHistory records a run. History is best effort: failures are logged.
func saveHistory(run db.Run, outcomes []clip.Outcome) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("run history unavailable", "path", cfg.DBPath, "error", err)
		return
	}
	defer database.Close()

	finished := time.Now()
	run.FinishedAt = &finished
	rows := make([]db.Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		row := db.Outcome{
			Line:       o.Entry.Line,
			Expression: o.Entry.Expression,
			Label:      o.Entry.Label,
			Start:      o.Window.Start,
			End:        o.Window.End,
			OutputPath: o.OutputPath,
			Filesize:   o.Size,
			Status:     db.StatusSuccess,
		}
		if !o.OK() {
			row.Status = db.StatusFailed
			row.Error = o.Err.Error()
			run.Failed++
		} else {
			run.Succeeded++
		}
		rows = append(rows, row)
	}

	if _, err := db.SaveRun(database, run, rows); err != nil {
		logger.Warn("failed to save run history", "error", err)
	}
}

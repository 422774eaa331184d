package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/tui"
	"github.com/user/video-clipper-cli/tui/forms"
)

var cutCmd = &cobra.Command{
	Use:   "cut <video-file>",
	Short: "Cut one clip around a wall-clock time",
	Long: `Cut a single clip from a video. --start is the wall-clock time of the
video's first frame and --at is the moment to cut around, both HH:MM:SS.
The clip covers --before seconds before and --after seconds after --at.

Use --interactive to fill in the times with a form.`,
	Example: `  video-clipper cut match.mp4 --start 10:00:00 --at 10:05:30
  video-clipper cut match.mp4 --start 10:00:00 --at 10:05:30 -b 10 -a 5 --out clips/
  video-clipper cut match.mp4 --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		before, after, err := margins(cmd)
		if err != nil {
			return err
		}

		startText, _ := cmd.Flags().GetString("start")
		target, _ := cmd.Flags().GetString("at")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if interactive {
			result := forms.CutFormResult{
				RecordingStart: startText,
				Target:         target,
				Before:         strconv.Itoa(before),
				After:          strconv.Itoa(after),
			}
			if err := forms.NewCutForm(videoPath, &result).Run(); err != nil {
				return err
			}
			values, err := result.Parse()
			if err != nil {
				return err
			}
			startText, target = result.RecordingStart, result.Target
			before, after = values.Before, values.After
		}

		if startText == "" || target == "" {
			return fmt.Errorf("--start and --at are required (or use --interactive)")
		}
		recordingStart, err := timeutil.ParseStrict(startText)
		if err != nil {
			return fmt.Errorf("invalid recording start: %w", err)
		}

		ffmpeg, err := newFFmpeg(cmd, true)
		if err != nil {
			return err
		}
		duration, err := probe(cmd.Context(), ffmpeg, videoPath)
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
			Duration:       duration,
		}

		if interactive {
			secs, err := timeutil.ParseStrict(target)
			if err != nil {
				return fmt.Errorf("invalid clip time: %w", err)
			}
			w, err := cliputil.Plan(cliputil.Request{RecordingStart: recordingStart, Target: secs, Before: before, After: after}, duration)
			if err != nil {
				return err
			}
			confirm := true
			summary := fmt.Sprintf("%s (%.0fs) into %s", w, w.Duration(), job.OutputDir)
			if err := forms.NewConfirmCutForm(summary, &confirm).Run(); err != nil {
				return err
			}
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		started := time.Now()
		runner := &clip.Runner{Cutter: ffmpeg, Logger: logger}
		outcome, cutErr := runner.Single(cmd.Context(), job, target)

		saveHistory(db.Run{
			Mode:           db.ModeSingle,
			Source:         videoPath,
			RecordingStart: recordingStart,
			Before:         before,
			After:          after,
			Duration:       duration,
			StartedAt:      started,
		}, []clip.Outcome{outcome})

		if cutErr != nil {
			return cutErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.ClipResult(outcome))
		return nil
	},
}

func init() {
	cutCmd.Flags().StringP("start", "s", "", "Wall-clock time of the video's first frame (HH:MM:SS)")
	cutCmd.Flags().String("at", "", "Wall-clock time to cut around (HH:MM:SS)")
	cutCmd.Flags().StringP("out", "o", "", "Output directory (default \"<video>-clips\")")
	cutCmd.Flags().BoolP("interactive", "i", false, "Fill in the cut with a form")
	cutCmd.Flags().Bool("copy", false, "Copy streams instead of re-encoding (fast, keyframe accurate only)")
	addMarginFlags(cutCmd)
	rootCmd.AddCommand(cutCmd)
}

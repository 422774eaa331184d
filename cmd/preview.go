package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/mpv"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

var previewCmd = &cobra.Command{
	Use:   "preview <video-file>",
	Short: "Play a planned clip window in mpv",
	Long:  `Plan the clip for --at exactly as cut would, then play only that window in mpv without writing anything.`,
	Args:  cobra.ExactArgs(1),
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
		at, _ := cmd.Flags().GetString("at")
		target, err := timeutil.ParseStrict(at)
		if err != nil {
			return fmt.Errorf("invalid clip time: %w", err)
		}

		ffmpeg, err := newFFmpeg(cmd, false)
		if err != nil {
			return err
		}
		duration, err := probe(cmd.Context(), ffmpeg, videoPath)
		if err != nil {
			return err
		}

		w, err := cliputil.Plan(cliputil.Request{
			RecordingStart: recordingStart,
			Target:         target,
			Before:         before,
			After:          after,
		}, duration)
		if err != nil {
			return err
		}

		loop, _ := cmd.Flags().GetBool("loop")
		fmt.Fprintf(cmd.OutOrStdout(), "Previewing %s (%.0fs)\n", w, w.Duration())
		return mpv.Preview(cmd.Context(), videoPath, w, mpv.Options{Binary: cfg.Mpv, Loop: loop})
	},
}

func init() {
	previewCmd.Flags().StringP("start", "s", "", "Wall-clock time of the video's first frame (HH:MM:SS)")
	previewCmd.Flags().String("at", "", "Wall-clock time to cut around (HH:MM:SS)")
	previewCmd.Flags().Bool("loop", false, "Replay the window until mpv is closed")
	addMarginFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}

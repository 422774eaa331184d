package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/config"
	"github.com/user/video-clipper-cli/deps"
	"github.com/user/video-clipper-cli/pkg/logging"
)

var Version = "0.1.0"

var (
	cfg    *config.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "video-clipper",
	Short: "Cut short clips out of a video at wall-clock timestamps",
	Long: `video-clipper extracts short sub-clips from a recording. You give it the
wall-clock time the recording started and the moments you care about, and it
cuts a window of a few seconds around each one with ffmpeg.

Features:
  - Cut a single clip, from flags or an interactive form
  - Cut every timestamp in a text file, in parallel
  - Flexible timestamp syntaxes (12:30, 2025-11-13 12:30:45, 12点30分45秒, ...)
  - HTML report with first and last frames of every clip
  - Preview a clip window in mpv before cutting
  - Run history stored in SQLite`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = logging.New(os.Stderr, level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "video-clipper version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that ffmpeg and ffprobe (required) and mpv (used by preview) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking dependencies...")
		fmt.Fprintln(out)

		missingRequired := false
		for _, d := range []deps.Dependency{deps.Ffmpeg(cfg.FFmpeg), deps.Ffprobe(cfg.FFprobe), deps.Mpv(cfg.Mpv)} {
			if err := d.Check(); err != nil {
				note := ""
				if !d.Required {
					note = " (optional, needed for preview)"
				}
				fmt.Fprintf(out, "✗ %s: NOT FOUND%s\n", d.Name, note)
				fmt.Fprintf(out, "  Install from: %s\n", d.InstallURL)
				missingRequired = missingRequired || d.Required
				continue
			}
			fmt.Fprintf(out, "✓ %s: OK\n", d.Name)
		}

		fmt.Fprintln(out)
		if missingRequired {
			fmt.Fprintln(out, "Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
		fmt.Fprintln(out, "All required dependencies are installed!")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

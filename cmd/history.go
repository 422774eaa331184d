package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

// shortIDLen is how many run id characters the list shows; any unique prefix works.
const shortIDLen = 8

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List past runs or show one run's clips",
	Long: `Without arguments, list the most recent runs. With a run id (or any unique
prefix of one), show every clip of that run. --delete removes the run instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer database.Close()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := db.SelectRuns(database, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			printRuns(out, runs)
			return nil
		}

		run, err := db.SelectRunByIDPrefix(database, args[0])
		if err != nil {
			return err
		}

		if del, _ := cmd.Flags().GetBool("delete"); del {
			if err := db.DeleteRun(database, run.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted run %s\n", run.ID)
			return nil
		}

		outcomes, err := db.SelectOutcomesByRun(database, run.ID)
		if err != nil {
			return err
		}
		printRun(out, run, outcomes)
		return nil
	},
}

func printRuns(out io.Writer, runs []db.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tMODE\tVIDEO\tOK\tFAILED")
	for _, r := range runs {
		id := r.ID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			id, humanize.Time(r.StartedAt), r.Mode, filepath.Base(r.Source), r.Succeeded, r.Failed)
	}
	w.Flush()
}

func printRun(out io.Writer, r *db.Run, outcomes []db.Outcome) {
	fmt.Fprintf(out, "Run %s (%s)\n", r.ID, r.Mode)
	fmt.Fprintf(out, "  Video:     %s\n", r.Source)
	fmt.Fprintf(out, "  Started:   %s (%s)\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(r.StartedAt))
	fmt.Fprintf(out, "  Recording: starts %s, %s long\n", timeutil.Format(r.RecordingStart), timeutil.FormatDuration(r.Duration))
	fmt.Fprintf(out, "  Margins:   -%ds / +%ds\n", r.Before, r.After)
	if r.ReportPath != "" {
		fmt.Fprintf(out, "  Report:    %s\n", r.ReportPath)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tTIME\tLABEL\tSTATUS\tWINDOW\tFILE\tSIZE")
	for _, o := range outcomes {
		window, file, size := "-", "-", "-"
		if o.Status == db.StatusSuccess {
			window = timeutil.FormatDuration(o.Start) + "-" + timeutil.FormatDuration(o.End)
			file = filepath.Base(o.OutputPath)
			size = humanize.Bytes(uint64(o.Filesize))
		} else {
			file = o.Error
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", o.Line, o.Expression, o.Label, o.Status, window, file, size)
	}
	w.Flush()
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to list")
	historyCmd.Flags().Bool("delete", false, "Delete the given run")
	rootCmd.AddCommand(historyCmd)
}

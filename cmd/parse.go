package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/user/video-clipper-cli/pkg/batchfile"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>...",
	Short: "Show how time expressions are read",
	Long: `Parse each argument the way a timestamps file line is read and print the
time expression, label, seconds since midnight and canonical HH:MM:SS.

With --list, print the supported time syntaxes instead.`,
	Example: `  video-clipper parse 12:30 "2025-11-13 12:30:45 kickoff" "12点30分"
  video-clipper parse --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultSeconds := cfg.Before
		if cmd.Flags().Changed("default-seconds") {
			defaultSeconds, _ = cmd.Flags().GetInt("default-seconds")
		}
		out := cmd.OutOrStdout()

		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, f := range timeutil.SupportedFormats(defaultSeconds) {
				fmt.Fprintln(out, "  "+f)
			}
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("requires at least 1 expression (or --list)")
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INPUT\tTIME\tLABEL\tSECONDS\tCLOCK")
		failed := 0
		for _, arg := range args {
			expr, label, ok := batchfile.ParseLine(arg)
			if !ok {
				expr = strings.TrimSpace(arg)
			}
			secs, err := timeutil.ParseFlexible(expr, defaultSeconds)
			if err != nil {
				failed++
				fmt.Fprintf(w, "%s\t%s\t%s\t-\terror: %s\n", arg, expr, label, firstLine(err.Error()))
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", arg, expr, label, secs, timeutil.Format(secs))
		}
		w.Flush()

		if failed > 0 {
			return fmt.Errorf("%d of %d expressions could not be parsed (see --list for supported syntaxes)", failed, len(args))
		}
		return nil
	},
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func init() {
	parseCmd.Flags().Int("default-seconds", 0, "Seconds used for times written without them (default from CLIPPER_BEFORE)")
	parseCmd.Flags().BoolP("list", "l", false, "List the supported time syntaxes")
	rootCmd.AddCommand(parseCmd)
}

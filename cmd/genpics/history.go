package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genpics/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded render runs",
	Long: `History lists runs recorded with --history, newest first. With --run it
prints the per-file results of a single run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the per-file results of this run ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history.path")
	if path == "" {
		return fmt.Errorf("no history database configured (use --history or GENPICS_HISTORY_PATH)")
	}

	store, err := history.NewStore(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		results, err := store.Results(runID)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "STATUS\tINPUT\tOUTPUT\tREASON")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Status, r.Input, r.Output, r.Reason)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "ID\tSTARTED\tINPUT\tOUTPUT\tTOOL\tRENDERED\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.InputDir, r.OutputDir, r.Tool, r.Rendered, r.Failed)
	}
	return nil
}

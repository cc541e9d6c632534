package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/stats"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard summary",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rs := recordsFrom(cmd, s)
	bm := openBookmarks(cmd.Context(), s)
	defer closeBookmarks(cmd.Context(), bm)

	summary := stats.Summary(rs.All(), bm.Len())
	if textOutput() {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total employees:  %d\n", summary.TotalEmployees)
		fmt.Fprintf(out, "Average rating:   %.1f\n", stats.RoundTo1(summary.AverageRating))
		fmt.Fprintf(out, "Bookmarked:       %d\n", summary.Bookmarked)
		fmt.Fprintf(out, "High performers:  %d\n", summary.HighPerformers)
		return
	}
	printJSON(cmd, summary)
}

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/filter"
	"github.com/rcliao/staff-directory/internal/stats"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Department breakdown and rating distribution",
		Long:  "Aggregate the employees matching the filters: per-department counts, averages and bookmarks, the rating distribution, the top department and the high performer count.",
		Run:   runAnalytics,
	}

	addFilterFlags(cmd)

	RootCmd.AddCommand(cmd)
}

// facetOptions lists the values the filter flags accept, drawn from the
// whole snapshot rather than the filtered subset.
type facetOptions struct {
	Departments []string `json:"departments"`
	Ratings     []int    `json:"ratings"`
}

type analyticsView struct {
	stats.Analytics
	Facets facetOptions `json:"facets"`
}

func runAnalytics(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rs := recordsFrom(cmd, s)
	bm := openBookmarks(cmd.Context(), s)
	defer closeBookmarks(cmd.Context(), bm)

	all := rs.All()
	subset := filter.Apply(all, criteriaFromFlags(cmd, bm.IsBookmarked))
	a := analyticsView{
		Analytics: stats.Analyze(subset, bm.IsBookmarked),
		Facets: facetOptions{
			Departments: filter.DepartmentOptions(all),
			Ratings:     filter.RatingOptions(),
		},
	}

	if textOutput() {
		printAnalytics(cmd, a)
		return
	}
	printJSON(cmd, a)
}

func printAnalytics(cmd *cobra.Command, a analyticsView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Employees: %d   Average rating: %.1f   High performers: %d\n",
		a.TotalEmployees, stats.RoundTo1(a.AverageRating), a.HighPerformers)
	if a.TopDepartment != nil {
		fmt.Fprintf(out, "Top department: %s (%.1f avg)\n", a.TopDepartment.Department, stats.RoundTo1(a.TopDepartment.AverageRating))
	} else {
		fmt.Fprintln(out, "Top department: N/A")
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPARTMENT\tEMPLOYEES\tAVG RATING\tBOOKMARKED\t")
	for _, d := range a.Departments {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d\t\n", d.Department, d.Count, stats.RoundTo1(d.AverageRating), d.Bookmarked)
	}
	tw.Flush()

	fmt.Fprintln(out, "\nRating distribution:")
	for _, b := range a.RatingDistribution {
		fmt.Fprintf(out, "  %d  %-20s %d\n", b.Rating, strings.Repeat("#", b.Count), b.Count)
	}

	fmt.Fprintf(out, "\nFilter by department: %s\n", strings.Join(a.Facets.Departments, ", "))
	fmt.Fprintf(out, "Filter by rating: %s\n", strings.Trim(fmt.Sprint(a.Facets.Ratings), "[]"))
}

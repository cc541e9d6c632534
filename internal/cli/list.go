package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/filter"
	"github.com/rcliao/staff-directory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees matching the filters",
		Run:   runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")
	cmd.Flags().Bool("ids-only", false, "Only output ids")

	RootCmd.AddCommand(cmd)
}

type listItem struct {
	model.Employee
	Bookmarked bool `json:"bookmarked"`
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rs := recordsFrom(cmd, s)
	bm := openBookmarks(cmd.Context(), s)
	defer closeBookmarks(cmd.Context(), bm)

	matched := filter.Apply(rs.All(), criteriaFromFlags(cmd, bm.IsBookmarked))
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	if idsOnly {
		for _, e := range matched {
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
		}
		return
	}

	items := make([]listItem, 0, len(matched))
	for _, e := range matched {
		items = append(items, listItem{Employee: e, Bookmarked: bm.IsBookmarked(e.ID)})
	}

	if textOutput() {
		printEmployeeTable(cmd, items)
		return
	}
	printJSON(cmd, items)
}

func printEmployeeTable(cmd *cobra.Command, items []listItem) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tRATING\tEMAIL\t")
	for _, it := range items {
		name := it.FullName()
		if it.Bookmarked {
			name += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", it.ID, name, it.Department, stars(it.Rating), it.Email)
	}
	tw.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "%d employee(s)\n", len(items))
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > model.MaxRating {
		rating = model.MaxRating
	}
	return strings.Repeat("*", rating) + strings.Repeat(".", model.MaxRating-rating)
}

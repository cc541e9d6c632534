package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/filter"
)

// addFilterFlags registers the shared filter facets on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Case-insensitive match on name, email or department")
	cmd.Flags().StringSlice("dept", nil, "Departments to include (repeatable or comma-separated)")
	cmd.Flags().IntSlice("rating", nil, "Ratings to include, 1-5 (repeatable or comma-separated)")
	cmd.Flags().Bool("bookmarked", false, "Only bookmarked employees")
}

// criteriaFromFlags builds filter criteria from the flags added by
// addFilterFlags. isBookmarked backs the --bookmarked facet. Values are
// taken as given: a department or rating nobody has matches nothing.
func criteriaFromFlags(cmd *cobra.Command, isBookmarked func(int) bool) filter.Criteria {
	search, _ := cmd.Flags().GetString("search")
	depts, _ := cmd.Flags().GetStringSlice("dept")
	ratings, _ := cmd.Flags().GetIntSlice("rating")
	onlyBookmarked, _ := cmd.Flags().GetBool("bookmarked")

	return filter.Criteria{
		SearchTerm:     search,
		Departments:    depts,
		Ratings:        ratings,
		BookmarkedOnly: onlyBookmarked,
		Bookmarked:     isBookmarked,
	}
}

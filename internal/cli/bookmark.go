package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/bookmark"
	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/stats"
	"github.com/rcliao/staff-directory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage bookmarked employees",
	}

	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Bookmark an employee",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mutateBookmark(cmd, args[0], always, func(bm *bookmark.Store, id int) bool {
				bm.Add(id)
				return true
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mutateBookmark(cmd, args[0], never, func(bm *bookmark.Store, id int) bool {
				bm.Remove(id)
				return false
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the bookmark state of an employee",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mutateBookmark(cmd, args[0], unlessBookmarked, func(bm *bookmark.Store, id int) bool {
				return bm.Toggle(id)
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked employees in the order they were bookmarked",
		Run:   runBookmarkList,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every bookmark",
		Run:   runBookmarkClear,
	}

	cmd.AddCommand(add, rm, toggle, list, clearCmd)
	RootCmd.AddCommand(cmd)
}

type bookmarkResult struct {
	OK         bool `json:"ok"`
	ID         int  `json:"id"`
	Bookmarked bool `json:"bookmarked"`
	Count      int  `json:"count"`
}

// recordCheck reports whether id must be present in the snapshot before
// the mutation runs.
type recordCheck func(bm *bookmark.Store, id int) bool

func always(*bookmark.Store, int) bool { return true }

func never(*bookmark.Store, int) bool { return false }

// unlessBookmarked lets a stale bookmark be toggled off.
func unlessBookmarked(bm *bookmark.Store, id int) bool { return !bm.IsBookmarked(id) }

// mutateBookmark applies fn to the bookmark set once needsRecord is
// satisfied.
func mutateBookmark(cmd *cobra.Command, arg string, needsRecord recordCheck, fn func(*bookmark.Store, int) bool) {
	id := parseID(arg)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	bm := openBookmarks(cmd.Context(), s)
	if needsRecord(bm, id) {
		rs := recordsFrom(cmd, s)
		if _, err := rs.Get(id); err != nil {
			exitErr("bookmark", err)
		}
	}

	marked := fn(bm, id)
	count := bm.Len()
	closeBookmarks(cmd.Context(), bm)

	if textOutput() {
		state := "not bookmarked"
		if marked {
			state = "bookmarked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%d total)\n", id, state, count)
		return
	}
	printJSON(cmd, bookmarkResult{OK: true, ID: id, Bookmarked: marked, Count: count})
}

type bookmarkList struct {
	Summary   stats.BookmarkStats `json:"summary"`
	Employees []model.Employee    `json:"employees"`
	// Missing holds bookmarked ids absent from the current snapshot.
	Missing []int `json:"missing,omitempty"`
}

func runBookmarkList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	bm := openBookmarks(cmd.Context(), s)
	defer closeBookmarks(cmd.Context(), bm)

	rs, err := loadRecords(cmd.Context(), s)
	if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		exitErr(cmd.Name(), err)
	}

	var out bookmarkList
	out.Employees, out.Missing = rs.Subset(bm.Bookmarks())
	out.Summary = stats.BookmarkSummary(out.Employees)

	if textOutput() {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Bookmarked: %d   Average rating: %.1f   Departments: %d\n\n",
			out.Summary.Total, stats.RoundTo1(out.Summary.AverageRating), out.Summary.Departments)
		items := make([]listItem, 0, len(out.Employees))
		for _, e := range out.Employees {
			items = append(items, listItem{Employee: e, Bookmarked: true})
		}
		printEmployeeTable(cmd, items)
		if len(out.Missing) > 0 {
			fmt.Fprintf(w, "not in snapshot: %v\n", out.Missing)
		}
		return
	}
	printJSON(cmd, out)
}

func runBookmarkClear(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	bm := openBookmarks(cmd.Context(), s)
	cleared := bm.Len()
	bm.ClearAll()
	closeBookmarks(cmd.Context(), bm)

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d bookmark(s)\n", cleared)
		return
	}
	printJSON(cmd, map[string]interface{}{"ok": true, "cleared": cleared})
}

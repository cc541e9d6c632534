package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/stats"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee with derived performance figures",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

type employeeDetail struct {
	Employee   model.Employee        `json:"employee"`
	Bookmarked bool                  `json:"bookmarked"`
	Profile    stats.EmployeeProfile `json:"profile"`
}

func parseID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		exitErr("parse id", fmt.Errorf("%q is not an employee id", arg))
	}
	return id
}

func runGet(cmd *cobra.Command, args []string) {
	id := parseID(args[0])

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rs := recordsFrom(cmd, s)
	e, err := rs.Get(id)
	if err != nil {
		exitErr("get", err)
	}

	bm := openBookmarks(cmd.Context(), s)
	defer closeBookmarks(cmd.Context(), bm)

	d := employeeDetail{
		Employee:   e,
		Bookmarked: bm.IsBookmarked(id),
		Profile:    stats.Profile(e),
	}
	if textOutput() {
		printDetail(cmd, d)
		return
	}
	printJSON(cmd, d)
}

func printDetail(cmd *cobra.Command, d employeeDetail) {
	out := cmd.OutOrStdout()
	e := d.Employee
	mark := ""
	if d.Bookmarked {
		mark = "  [bookmarked]"
	}
	fmt.Fprintf(out, "%s (#%d)%s\n", e.FullName(), e.ID, mark)
	fmt.Fprintf(out, "%s  %s  age %d\n", e.Department, stars(e.Rating), e.Age)
	fmt.Fprintf(out, "%s  %s\n", e.Email, e.Phone)
	fmt.Fprintf(out, "%s, %s, %s, %s\n\n", e.Address.Street, e.Address.City, e.Address.State, e.Address.Country)
	fmt.Fprintln(out, e.Bio)
	fmt.Fprintf(out, "\nProjects: %s\n", strings.Join(e.Projects, ", "))

	fmt.Fprintln(out, "\nPerformance:")
	for _, p := range e.PerformanceHistory {
		fmt.Fprintf(out, "  %s  %.1f  %d project(s)\n", p.Month, p.Rating, p.ProjectCount)
	}
	fmt.Fprintf(out, "  average %.1f, trend %+.1f, %d project(s) total\n",
		stats.RoundTo1(d.Profile.AveragePerformance), d.Profile.PerformanceTrend, d.Profile.TotalProjects)

	fmt.Fprintln(out, "\nFeedback:")
	for _, f := range e.Feedback {
		fmt.Fprintf(out, "  %s  %s  %s: %s\n", f.Date, stars(f.Rating), f.Author, f.Comment)
	}
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/export"
	"github.com/rcliao/staff-directory/internal/filter"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export employees as JSON, CSV or XLSX",
		Long:  "Export the employees matching the filters. JSON output can be loaded back with import.",
		Run:   runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("as", "json", "Export format: json, csv or xlsx")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	as, _ := cmd.Flags().GetString("as")
	outPath, _ := cmd.Flags().GetString("out")

	format, err := export.ParseFormat(as)
	if err != nil {
		exitErr("export", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rs := recordsFrom(cmd, s)
	bm := openBookmarks(cmd.Context(), s)
	defer closeBookmarks(cmd.Context(), bm)

	subset := filter.Apply(rs.All(), criteriaFromFlags(cmd, bm.IsBookmarked))

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("create output", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, subset, export.Options{IsBookmarked: bm.IsBookmarked}); err != nil {
		exitErr("export", err)
	}

	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d employee(s) to %s\n", len(subset), outPath)
	}
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show database information",
		Run:   runInfo,
	}

	RootCmd.AddCommand(cmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	info, err := s.Info(cmd.Context())
	if err != nil {
		exitErr("info", err)
	}

	if !textOutput() {
		printJSON(cmd, info)
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database:   %s (%s)\n", info.DBPath, humanize.Bytes(uint64(info.DBSizeBytes)))
	fmt.Fprintf(out, "Employees:  %s\n", humanize.Comma(int64(info.Employees)))
	if info.Snapshot != nil {
		fmt.Fprintf(out, "Snapshot:   %s from %s, %s\n", info.Snapshot.ID, info.Snapshot.Source, humanize.Time(info.Snapshot.CreatedAt))
	} else {
		fmt.Fprintln(out, "Snapshot:   none (run sync or import)")
	}

	if len(info.Departments) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DEPARTMENT\tEMPLOYEES\t")
		for _, d := range info.Departments {
			fmt.Fprintf(tw, "%s\t%d\t\n", d.Department, d.Count)
		}
		tw.Flush()
	}

	if len(info.Keys) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tSIZE\tREVISION\tUPDATED\t")
		for _, k := range info.Keys {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", k.Key, humanize.Bytes(uint64(k.Bytes)), k.Revision, humanize.Time(k.UpdatedAt))
		}
		tw.Flush()
	}
}

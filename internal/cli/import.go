package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/export"
	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/records"
	"github.com/rcliao/staff-directory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import employees from JSON",
		Long:  "Replace the stored snapshot with employees from JSON (file or stdin). Expects the format produced by export. Every record is validated first.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

type importResult struct {
	OK       bool            `json:"ok"`
	Imported int             `json:"imported"`
	Snapshot *store.Snapshot `json:"snapshot"`
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = cmd.InOrStdin()
	sourceName := "import:stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open input", err)
		}
		defer f.Close()
		r = f
		sourceName = "import:" + args[0]
	}

	employees, err := export.ReadJSON(r)
	if err != nil {
		exitErr("parse json", err)
	}

	rs := recordsFrom(cmd, records.LoaderFunc(func(_ context.Context) ([]model.Employee, error) {
		return employees, nil
	}))

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snap, err := s.SaveEmployees(cmd.Context(), sourceName, rs.All())
	if err != nil {
		exitErr("import", err)
	}

	printJSON(cmd, importResult{OK: true, Imported: snap.Count, Snapshot: snap})
}

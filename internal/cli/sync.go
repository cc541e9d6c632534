package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/logger"
	"github.com/rcliao/staff-directory/internal/source"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch and enrich employees into a new snapshot",
		Long:  "Fetch users from the source API, enrich them with department, rating and history, and replace the stored snapshot. Bookmarks are kept.",
		Run:   runSync,
	}

	cmd.Flags().String("url", "", "Source URL (default: $STAFFDIR_SOURCE_URL)")
	cmd.Flags().IntP("limit", "l", 0, "Number of users to fetch (default: $STAFFDIR_FETCH_LIMIT)")
	cmd.Flags().Int64("seed", 0, "Enrichment seed (default: current time)")

	RootCmd.AddCommand(cmd)
}

func runSync(cmd *cobra.Command, args []string) {
	url, _ := cmd.Flags().GetString("url")
	limit, _ := cmd.Flags().GetInt("limit")
	seed, _ := cmd.Flags().GetInt64("seed")

	if url == "" {
		url = cfg.SourceURL
	}
	if limit <= 0 {
		limit = cfg.FetchLimit
	}
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	pipeline := source.Pipeline{
		Fetcher:  source.NewHTTPFetcher(url, limit, cfg.FetchTimeout, *logger.FromContext(cmd.Context())),
		Enricher: source.NewRandomEnricher(seed),
	}
	rs := recordsFrom(cmd, pipeline)

	snap, err := s.SaveEmployees(cmd.Context(), url, rs.All())
	if err != nil {
		exitErr("save snapshot", err)
	}
	logger.Infof(cmd.Context(), "synced %d employees into snapshot %s", snap.Count, snap.ID)

	printJSON(cmd, snap)
}

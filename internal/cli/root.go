// Package cli implements the staff-directory CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/staff-directory/internal/bookmark"
	"github.com/rcliao/staff-directory/internal/config"
	"github.com/rcliao/staff-directory/internal/logger"
	"github.com/rcliao/staff-directory/internal/records"
	"github.com/rcliao/staff-directory/internal/store"
)

var (
	dbPath     string
	formatFlag string
	ephemeral  bool

	cfg *config.Config

	// closeTimeout bounds the wait for bookmark writes before exit.
	closeTimeout = 5 * time.Second
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "staff-directory",
	Short: "Browse, filter and bookmark the staff directory",
	Long:  "A small CLI over an enriched employee directory. SQLite-backed snapshot, shared bookmarks, JSON or text output.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		c, err := config.Load()
		if err != nil {
			exitErr("load config", err)
		}
		cfg = c
		logger.InitLogging(cfg.LogLevel, cfg.LogFile)
		cmd.SetContext(logger.WithLogger(cmd.Context(), map[string]interface{}{"cmd": cmd.CommandPath()}))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $STAFFDIR_DB or ~/.staff-directory/directory.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep bookmark changes in memory only")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB
	}
	return config.DefaultDBPath()
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// loadRecords populates a record store from loader. Errors already carry
// the "load employees" prefix.
func loadRecords(ctx context.Context, loader records.Loader) (*records.Store, error) {
	rs := records.New()
	if err := rs.Load(ctx, loader); err != nil {
		return rs, err
	}
	logger.Debugf(ctx, "loaded %d employees", rs.Len())
	return rs, nil
}

// recordsFrom is loadRecords for commands: failure exits.
func recordsFrom(cmd *cobra.Command, loader records.Loader) *records.Store {
	rs, err := loadRecords(cmd.Context(), loader)
	if err != nil {
		exitErr(cmd.Name(), err)
	}
	return rs
}

// openBookmarks opens the shared bookmark set. With --ephemeral the set is
// seeded from the database but changes stay in memory.
func openBookmarks(ctx context.Context, s *store.SQLiteStore) *bookmark.Store {
	var kv store.KV = s
	if ephemeral {
		mem := store.NewMemoryKV()
		if b, err := s.Get(ctx, bookmark.DefaultKey); err == nil {
			mem.Put(ctx, bookmark.DefaultKey, b)
		}
		kv = mem
	}
	return bookmark.Open(ctx, kv, bookmark.WithLogger(*logger.FromContext(ctx)))
}

// closeBookmarks waits up to closeTimeout for pending bookmark writes.
// Write failures are logged by the store and do not fail the command.
func closeBookmarks(ctx context.Context, bm *bookmark.Store) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := bm.Close(ctx); err != nil {
		logger.Warnf(ctx, err, "bookmark writes still pending at exit (%d bookmarks)", bm.Len())
	}
}

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(cmd *cobra.Command, v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func errLine(msg string, err error) string {
	return fmt.Sprintf("error: %s: %v", msg, err)
}

func exitErr(msg string, err error) {
	fmt.Fprintln(os.Stderr, errLine(msg, err))
	os.Exit(1)
}

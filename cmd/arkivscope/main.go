package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "arkivscope",
		Short:        "Arkiv protocol-event query and aggregation service",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	serveCmd.Flags().String("rpc", "", "Arkiv RPC URL")
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().String("cors-origin", "*", "allowed CORS origin")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the response cache (empty disables caching)")
	serveCmd.Flags().Duration("cache-ttl", 30*time.Second, "response cache TTL")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch filtered events into a JSONL file",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("rpc", "", "Arkiv RPC URL")
	fetchCmd.Flags().String("event-type", "", "event type filter (Supply, Withdraw, ...)")
	fetchCmd.Flags().String("asset", "", "asset filter (matches any asset-bearing field)")
	fetchCmd.Flags().String("user", "", "actor address filter")
	fetchCmd.Flags().String("tx-hash", "", "transaction hash filter")
	fetchCmd.Flags().String("min-amount", "", "inclusive minimum amount (decimal integer string)")
	fetchCmd.Flags().String("max-amount", "", "inclusive maximum amount (decimal integer string)")
	fetchCmd.Flags().Int("limit", 100, "maximum number of events")
	fetchCmd.Flags().String("out", "./data/events.jsonl", "output JSONL path")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror events into Postgres",
		RunE:  runSync,
	}

	syncCmd.Flags().String("rpc", "", "Arkiv RPC URL")
	syncCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	syncCmd.Flags().StringSlice("protocol", nil, "protocols to sync (comma-separated)")
	syncCmd.Flags().Int("limit", 1000, "events per protocol query")
	syncCmd.Flags().Int("batch-size", 500, "batch size for DB writes")
	syncCmd.Flags().String("state-file", "", "optional local state file for the sync cursor")
	syncCmd.Flags().Bool("snapshot-stats", false, "record a stats snapshot after syncing")
	syncCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(syncCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute aggregate statistics and print them as JSON",
		RunE:  runStats,
	}

	statsCmd.Flags().String("rpc", "", "Arkiv RPC URL")
	statsCmd.Flags().Int("limit", 1000, "events to sample")
	statsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(statsCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

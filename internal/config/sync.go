package config

import (
	"github.com/spf13/pflag"
)

// SyncConfig holds configuration for the sync command.
type SyncConfig struct {
	RPCURL        string
	PGDSN         string
	Protocols     []string
	Limit         int
	BatchSize     int
	StateFile     string
	SnapshotStats bool
	LogLevel      string
}

// LoadSync merges config file, environment variables, and flags.
func LoadSync(cfgFile string, flags *pflag.FlagSet) (SyncConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"limit":          1000,
		"batch-size":     500,
		"snapshot-stats": false,
		"log-level":      "info",
	})
	if err != nil {
		return SyncConfig{}, err
	}

	cfg := SyncConfig{
		RPCURL:        v.GetString("rpc"),
		PGDSN:         v.GetString("pg-dsn"),
		Protocols:     v.GetStringSlice("protocol"),
		Limit:         v.GetInt("limit"),
		BatchSize:     v.GetInt("batch-size"),
		StateFile:     v.GetString("state-file"),
		SnapshotStats: v.GetBool("snapshot-stats"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}

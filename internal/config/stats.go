package config

import (
	"github.com/spf13/pflag"
)

// StatsConfig holds configuration for the stats command.
type StatsConfig struct {
	RPCURL   string
	Limit    int
	LogLevel string
}

// LoadStats merges config file, environment variables, and flags.
func LoadStats(cfgFile string, flags *pflag.FlagSet) (StatsConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"limit":     1000,
		"log-level": "info",
	})
	if err != nil {
		return StatsConfig{}, err
	}

	cfg := StatsConfig{
		RPCURL:   v.GetString("rpc"),
		Limit:    v.GetInt("limit"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

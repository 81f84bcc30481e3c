// Package config loads per-command configuration from flags, environment
// variables, and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ARKIVSCOPE"

// FetchConfig holds configuration for the fetch command.
type FetchConfig struct {
	RPCURL    string
	EventType string
	Asset     string
	User      string
	TxHash    string
	MinAmount string
	MaxAmount string
	Limit     int
	Out       string
	LogLevel  string
}

// LoadFetch merges config file, environment variables, and flags.
func LoadFetch(cfgFile string, flags *pflag.FlagSet) (FetchConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"limit":     100,
		"out":       "./data/events.jsonl",
		"log-level": "info",
	})
	if err != nil {
		return FetchConfig{}, err
	}

	cfg := FetchConfig{
		RPCURL:    v.GetString("rpc"),
		EventType: v.GetString("event-type"),
		Asset:     v.GetString("asset"),
		User:      v.GetString("user"),
		TxHash:    v.GetString("tx-hash"),
		MinAmount: v.GetString("min-amount"),
		MaxAmount: v.GetString("max-amount"),
		Limit:     v.GetInt("limit"),
		Out:       v.GetString("out"),
		LogLevel:  v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]any) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

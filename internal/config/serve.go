package config

import (
	"time"

	"github.com/spf13/pflag"
)

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	RPCURL     string
	Listen     string
	CORSOrigin string
	RedisAddr  string
	CacheTTL   time.Duration
	LogLevel   string
}

// LoadServe merges config file, environment variables, and flags.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"listen":      ":8080",
		"cors-origin": "*",
		"cache-ttl":   30 * time.Second,
		"log-level":   "info",
	})
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		RPCURL:     v.GetString("rpc"),
		Listen:     v.GetString("listen"),
		CORSOrigin: v.GetString("cors-origin"),
		RedisAddr:  v.GetString("redis-addr"),
		CacheTTL:   v.GetDuration("cache-ttl"),
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

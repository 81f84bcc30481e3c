package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	api "arkivscope/internal/api/http"
	"arkivscope/internal/api/http/mw"
	"arkivscope/internal/arkiv"
	rds "arkivscope/internal/cache/redis"
	"arkivscope/internal/config"
	"arkivscope/internal/query"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadServe(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := arkiv.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect arkiv: %w", err)
	}
	defer client.Close()

	service := query.NewService(client, logger)

	var cache api.ResponseCache
	if cfg.RedisAddr != "" {
		redisClient, err := rds.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = api.DefaultCacheTTL
		}
		cache = rds.NewResponseCache(redisClient, ttl)
	}

	handlers := api.NewAPI(service, cache, logger)
	router := api.BuildRouter(handlers, mw.NewLogging(logger), mw.NewCORS(cfg.CORSOrigin))
	server := api.NewServer(cfg.Listen, router, logger)

	logger.Info("serve start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("listen", cfg.Listen),
		zap.Bool("cache_enabled", cache != nil),
	)

	return server.Run(ctx)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkivscope/internal/arkiv"
	"arkivscope/internal/config"
	"arkivscope/internal/query"
	"arkivscope/internal/storage/postgres"
	"arkivscope/internal/syncer"
)

func runSync(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSync(cfgFile, cmd.Flags())
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
	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := arkiv.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect arkiv: %w", err)
	}
	defer client.Close()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	var state syncer.StateStore
	if cfg.StateFile != "" {
		state = &syncer.FileStateStore{Path: cfg.StateFile}
	} else {
		state = &syncer.DBStateStore{Store: store, Name: "syncer"}
	}

	service := query.NewService(client, logger)

	sync := syncer.New(syncer.Config{
		Protocols:     cfg.Protocols,
		Limit:         cfg.Limit,
		BatchSize:     cfg.BatchSize,
		SnapshotStats: cfg.SnapshotStats,
		State:         state,
	}, service, store, logger)

	logger.Info("sync start",
		zap.String("rpc", cfg.RPCURL),
		zap.Strings("protocols", cfg.Protocols),
		zap.Int("limit", cfg.Limit),
		zap.Int("batch_size", cfg.BatchSize),
	)

	return sync.Run(ctx)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkivscope/internal/arkiv"
	"arkivscope/internal/config"
	"arkivscope/internal/model"
	"arkivscope/internal/query"
	"arkivscope/internal/storage"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
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
	if cfg.User != "" && !common.IsHexAddress(cfg.User) {
		return fmt.Errorf("user must be a hex address: %s", cfg.User)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := arkiv.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect arkiv: %w", err)
	}
	defer client.Close()

	service := query.NewService(client, logger)

	events, err := service.EventsWithFilters(ctx, model.Filter{
		Kind:      cfg.EventType,
		Asset:     cfg.Asset,
		Actor:     cfg.User,
		TxHash:    cfg.TxHash,
		MinAmount: cfg.MinAmount,
		MaxAmount: cfg.MaxAmount,
		Limit:     cfg.Limit,
	})
	if err != nil {
		return err
	}

	sink := storage.NewJsonlStorage(cfg.Out)
	if err := sink.PutEventBatch(events); err != nil {
		return err
	}

	logger.Info("fetch complete",
		zap.Int("events", len(events)),
		zap.String("out", cfg.Out),
	)
	return nil
}

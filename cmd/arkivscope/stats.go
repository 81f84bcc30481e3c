package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"arkivscope/internal/arkiv"
	"arkivscope/internal/config"
	"arkivscope/internal/query"
	"arkivscope/internal/stats"
)

func runStats(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadStats(cfgFile, cmd.Flags())
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

	events, err := service.AllEvents(ctx, cfg.Limit)
	if err != nil {
		return err
	}

	report := struct {
		Stats        any `json:"stats"`
		Distribution any `json:"distribution"`
		Averages     any `json:"averageAmounts"`
	}{
		Stats:        stats.Calculate(events),
		Distribution: stats.DistributionBy(events, stats.ByKind),
		Averages:     stats.AverageAmountByAsset(events),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

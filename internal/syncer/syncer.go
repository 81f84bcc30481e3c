// Package syncer mirrors protocol events from the ledger-query service
// into Postgres, resuming from the last synced block.
package syncer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"arkivscope/internal/model"
	"arkivscope/internal/query"
	"arkivscope/internal/stats"
	"arkivscope/internal/storage/postgres"
)

// Config controls one sync run.
type Config struct {
	// Protocols to mirror. Each protocol is one independent upstream query.
	Protocols []string
	// Limit per protocol query.
	Limit int
	// BatchSize for Postgres writes.
	BatchSize int
	// SnapshotStats records a stats snapshot after syncing.
	SnapshotStats bool
	State         StateStore
}

// Syncer pulls events per protocol and upserts anything newer than the
// stored cursor.
type Syncer struct {
	cfg     Config
	service *query.Service
	store   *postgres.Store
	logger  *zap.Logger
}

func New(cfg Config, service *query.Service, store *postgres.Store, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Protocols) == 0 {
		cfg.Protocols = []string{model.ProtocolAaveV3, model.ProtocolUniswapV3}
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &Syncer{cfg: cfg, service: service, store: store, logger: logger}
}

// Run executes one sync pass. Protocol queries are independent, so they
// are issued in parallel and joined before any write.
func (s *Syncer) Run(ctx context.Context) error {
	lastBlock := uint64(0)
	if s.cfg.State != nil {
		block, ok, err := s.cfg.State.Load(ctx)
		if err != nil {
			return err
		}
		if ok {
			lastBlock = block
		}
	}

	events, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}

	fresh := make([]model.Event, 0, len(events))
	maxBlock := lastBlock
	for _, event := range events {
		if event.BlockNumber <= lastBlock {
			continue
		}
		fresh = append(fresh, event)
		if event.BlockNumber > maxBlock {
			maxBlock = event.BlockNumber
		}
	}

	for start := 0; start < len(fresh); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(fresh) {
			end = len(fresh)
		}
		if err := s.store.UpsertEvents(ctx, fresh[start:end]); err != nil {
			return err
		}
	}

	if s.cfg.SnapshotStats && len(events) > 0 {
		if err := s.store.InsertStatsSnapshot(ctx, stats.Calculate(events)); err != nil {
			return err
		}
	}

	if s.cfg.State != nil && maxBlock > lastBlock {
		if err := s.cfg.State.Save(ctx, maxBlock); err != nil {
			return err
		}
	}

	s.logger.Info("sync complete",
		zap.Int("fetched", len(events)),
		zap.Int("upserted", len(fresh)),
		zap.Uint64("last_block", maxBlock),
	)
	return nil
}

func (s *Syncer) fetchAll(ctx context.Context) ([]model.Event, error) {
	type result struct {
		index  int
		events []model.Event
		err    error
	}

	results := make([]result, len(s.cfg.Protocols))
	var wg sync.WaitGroup
	for i, protocol := range s.cfg.Protocols {
		wg.Add(1)
		go func(i int, protocol string) {
			defer wg.Done()
			events, err := s.service.EventsWithFilters(ctx, model.Filter{
				Protocol: protocol,
				Limit:    s.cfg.Limit,
			})
			results[i] = result{index: i, events: events, err: err}
		}(i, protocol)
	}
	wg.Wait()

	var all []model.Event
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		all = append(all, res.events...)
	}
	return all, nil
}

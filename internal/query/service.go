// Package query plans and runs event queries against the ledger-query
// service, then decodes, filters, and aggregates the results.
package query

import (
	"context"

	"go.uber.org/zap"

	"arkivscope/internal/arkiv"
	"arkivscope/internal/decode"
	"arkivscope/internal/filter"
	"arkivscope/internal/model"
	"arkivscope/internal/stats"
)

// statsSampleLimit bounds how many events feed a stats calculation.
const statsSampleLimit = 1000

// Fetcher is the query-service capability the planner needs: one equality
// clause per request, payload and attributes on demand.
type Fetcher interface {
	Query(ctx context.Context, clause arkiv.Clause, opts arkiv.Options) ([]model.Envelope, error)
}

// Service runs planned queries over an injected client handle.
type Service struct {
	client Fetcher
	logger *zap.Logger
}

func NewService(client Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// EventsWithFilters fetches via the planned clause, decodes, and applies
// the full filter client-side. Entities that fail to decode are dropped
// and logged; an upstream failure is terminal for the query.
func (s *Service) EventsWithFilters(ctx context.Context, f model.Filter) ([]model.Event, error) {
	clause := PlanClause(f)

	envelopes, err := s.client.Query(ctx, clause, arkiv.Options{
		IncludePayload:    true,
		IncludeAttributes: true,
	})
	if err != nil {
		return nil, err
	}

	events := s.decodeAll(envelopes)
	return filter.Apply(events, f), nil
}

// AllEvents fetches every Aave event up to limit, in service order.
func (s *Service) AllEvents(ctx context.Context, limit int) ([]model.Event, error) {
	return s.EventsWithFilters(ctx, model.Filter{Limit: limit})
}

// EventsByKind fetches events of one kind.
func (s *Service) EventsByKind(ctx context.Context, kind string, limit int) ([]model.Event, error) {
	return s.EventsWithFilters(ctx, model.Filter{Kind: kind, Limit: limit})
}

// EventsByAsset fetches events touching an asset in any asset-bearing field.
func (s *Service) EventsByAsset(ctx context.Context, asset string, limit int) ([]model.Event, error) {
	return s.EventsWithFilters(ctx, model.Filter{Asset: asset, Limit: limit})
}

// EventsByActor fetches events involving an address in any actor-bearing field.
func (s *Service) EventsByActor(ctx context.Context, actor string, limit int) ([]model.Event, error) {
	return s.EventsWithFilters(ctx, model.Filter{Actor: actor, Limit: limit})
}

// EventsByTxHash fetches the events of one transaction.
func (s *Service) EventsByTxHash(ctx context.Context, txHash string) ([]model.Event, error) {
	return s.EventsWithFilters(ctx, model.Filter{TxHash: txHash})
}

// Stats aggregates statistics over a bounded sample of recent events.
func (s *Service) Stats(ctx context.Context) (model.EventStats, error) {
	events, err := s.AllEvents(ctx, statsSampleLimit)
	if err != nil {
		return model.EventStats{}, err
	}
	return stats.Calculate(events), nil
}

// VolumeByAsset computes exact per-asset volume sums.
func (s *Service) VolumeByAsset(ctx context.Context) (map[string]string, error) {
	events, err := s.AllEvents(ctx, statsSampleLimit)
	if err != nil {
		return nil, err
	}
	return stats.VolumeByAsset(events), nil
}

// Distribution computes per-kind counts and percentage shares.
func (s *Service) Distribution(ctx context.Context) (model.Distribution, error) {
	events, err := s.AllEvents(ctx, statsSampleLimit)
	if err != nil {
		return model.Distribution{}, err
	}
	return stats.DistributionBy(events, stats.ByKind), nil
}

func (s *Service) decodeAll(envelopes []model.Envelope) []model.Event {
	events, failures := decode.Entities(envelopes)
	for _, failure := range failures {
		s.logger.Warn("drop undecodable entity",
			zap.String("entity_key", failure.EntityKey),
			zap.String("reason", failure.Reason),
		)
	}
	return events
}

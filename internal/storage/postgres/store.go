// Package postgres persists decoded events and sync progress.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arkivscope/internal/model"
)

// Store provides Postgres persistence for decoded events.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables this store writes to if they do not
// already exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS protocol_events (
			entity_key     TEXT PRIMARY KEY,
			event_type     TEXT NOT NULL,
			protocol       TEXT NOT NULL DEFAULT '',
			network        TEXT NOT NULL DEFAULT '',
			tx_hash        TEXT NOT NULL DEFAULT '',
			block_number   BIGINT NOT NULL DEFAULT 0,
			event_ts       TIMESTAMPTZ,
			primary_asset  TEXT NOT NULL DEFAULT '',
			primary_actor  TEXT NOT NULL DEFAULT '',
			primary_amount TEXT NOT NULL DEFAULT '',
			payload        JSONB,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_protocol_events_type ON protocol_events (event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_protocol_events_block ON protocol_events (block_number)`,
		`CREATE TABLE IF NOT EXISTS stats_snapshots (
			id             BIGSERIAL PRIMARY KEY,
			total_events   BIGINT NOT NULL,
			unique_users   BIGINT NOT NULL,
			events_by_type JSONB,
			total_volume   JSONB,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sync_state (
			name              TEXT PRIMARY KEY,
			last_synced_block BIGINT NOT NULL,
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertEvents inserts or updates decoded events keyed by entity key.
// The full original payload is stored alongside the resolved columns.
func (s *Store) UpsertEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
			INSERT INTO protocol_events (
				entity_key, event_type, protocol, network, tx_hash, block_number,
				event_ts, primary_asset, primary_actor, primary_amount, payload,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (entity_key)
			DO UPDATE SET
				event_type = EXCLUDED.event_type,
				protocol = EXCLUDED.protocol,
				network = EXCLUDED.network,
				tx_hash = EXCLUDED.tx_hash,
				block_number = EXCLUDED.block_number,
				event_ts = EXCLUDED.event_ts,
				primary_asset = EXCLUDED.primary_asset,
				primary_actor = EXCLUDED.primary_actor,
				primary_amount = EXCLUDED.primary_amount,
				payload = EXCLUDED.payload,
				updated_at = now()
		`,
			event.EntityKey,
			string(event.Kind),
			event.Protocol,
			event.Network,
			event.TxHash,
			int64(event.BlockNumber),
			event.Timestamp,
			event.PrimaryAsset(),
			event.PrimaryActor(),
			event.PrimaryAmount(),
			[]byte(event.Raw),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertStatsSnapshot records one aggregate stats computation. The
// grouped mappings are stored as jsonb.
func (s *Store) InsertStatsSnapshot(ctx context.Context, stats model.EventStats) error {
	byType, err := json.Marshal(stats.EventsByType)
	if err != nil {
		return fmt.Errorf("marshal events_by_type: %w", err)
	}
	volume, err := json.Marshal(stats.TotalVolume)
	if err != nil {
		return fmt.Errorf("marshal total_volume: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO stats_snapshots (total_events, unique_users, events_by_type, total_volume, created_at)
		VALUES ($1, $2, $3, $4, now())
	`,
		stats.TotalEvents,
		stats.UniqueUsers,
		byType,
		volume,
	)
	return err
}

// LoadState returns the last synced block for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block uint64
	err := s.pool.QueryRow(ctx, `
		SELECT last_synced_block FROM sync_state WHERE name = $1
	`, name).Scan(&block)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return block, true, nil
}

// SaveState upserts the last synced block for a name.
func (s *Store) SaveState(ctx context.Context, name string, block uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_state (name, last_synced_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_synced_block = EXCLUDED.last_synced_block, updated_at = now()
	`, name, int64(block))
	return err
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CofferStatRow represents a row from coffer_stats.
type CofferStatRow struct {
	Territory int16
	Kind      int64
	Count     int32
}

// EpisodeRow represents a row from bunny_episodes.
type EpisodeRow struct {
	Territory int16
	Episodes  int32
}

// LocationRow represents a row from coffer_locations.
type LocationRow struct {
	Territory int16
	Ordinal   int32
	X, Y, Z   float32
}

// StatsRows is the full persisted stats state.
type StatsRows struct {
	Coffers      []CofferStatRow
	Episodes     []EpisodeRow
	PendingKills int32
	Locations    []LocationRow
}

// StatsRepository persists coffer statistics.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// LoadAll loads every stats table.
func (r *StatsRepository) LoadAll(ctx context.Context) (StatsRows, error) {
	var out StatsRows
	var err error

	if out.Coffers, err = r.loadCoffers(ctx); err != nil {
		return out, err
	}
	if out.Episodes, err = r.loadEpisodes(ctx); err != nil {
		return out, err
	}
	if out.Locations, err = r.loadLocations(ctx); err != nil {
		return out, err
	}

	err = r.pool.QueryRow(ctx, `SELECT pending_kills FROM tracker_state WHERE id = 1`).Scan(&out.PendingKills)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return out, fmt.Errorf("query tracker_state: %w", err)
	}
	return out, nil
}

func (r *StatsRepository) loadCoffers(ctx context.Context) ([]CofferStatRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT territory, kind, count FROM coffer_stats ORDER BY territory, kind`)
	if err != nil {
		return nil, fmt.Errorf("query coffer_stats: %w", err)
	}
	defer rows.Close()

	var result []CofferStatRow
	for rows.Next() {
		var row CofferStatRow
		if err := rows.Scan(&row.Territory, &row.Kind, &row.Count); err != nil {
			return nil, fmt.Errorf("scan coffer_stats: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *StatsRepository) loadEpisodes(ctx context.Context) ([]EpisodeRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT territory, episodes FROM bunny_episodes ORDER BY territory`)
	if err != nil {
		return nil, fmt.Errorf("query bunny_episodes: %w", err)
	}
	defer rows.Close()

	var result []EpisodeRow
	for rows.Next() {
		var row EpisodeRow
		if err := rows.Scan(&row.Territory, &row.Episodes); err != nil {
			return nil, fmt.Errorf("scan bunny_episodes: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *StatsRepository) loadLocations(ctx context.Context) ([]LocationRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT territory, ordinal, x, y, z FROM coffer_locations ORDER BY territory, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query coffer_locations: %w", err)
	}
	defer rows.Close()

	var result []LocationRow
	for rows.Next() {
		var row LocationRow
		if err := rows.Scan(&row.Territory, &row.Ordinal, &row.X, &row.Y, &row.Z); err != nil {
			return nil, fmt.Errorf("scan coffer_locations: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// SaveAll replaces the stored stats in a single transaction.
// Either the whole state is written or nothing is.
func (r *StatsRepository) SaveAll(ctx context.Context, s StatsRows) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if len(s.Coffers) > 0 {
		batch := &pgx.Batch{}
		for _, c := range s.Coffers {
			batch.Queue(
				`INSERT INTO coffer_stats (territory, kind, count) VALUES ($1, $2, $3)
				 ON CONFLICT (territory, kind) DO UPDATE SET count = EXCLUDED.count`,
				c.Territory, c.Kind, c.Count)
		}
		br := tx.SendBatch(ctx, batch)
		for range s.Coffers {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return fmt.Errorf("save coffer_stats batch: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close coffer_stats batch: %w", err)
		}
	}

	for _, e := range s.Episodes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO bunny_episodes (territory, episodes) VALUES ($1, $2)
			 ON CONFLICT (territory) DO UPDATE SET episodes = EXCLUDED.episodes`,
			e.Territory, e.Episodes,
		); err != nil {
			return fmt.Errorf("save bunny_episodes %d: %w", e.Territory, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO tracker_state (id, pending_kills, updated_at) VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET pending_kills = EXCLUDED.pending_kills, updated_at = now()`,
		s.PendingKills,
	); err != nil {
		return fmt.Errorf("save tracker_state: %w", err)
	}

	// локации пишем целиком: список только растёт, но порядок важен
	if _, err := tx.Exec(ctx, `DELETE FROM coffer_locations`); err != nil {
		return fmt.Errorf("deleting coffer_locations: %w", err)
	}
	if len(s.Locations) > 0 {
		rows := make([][]any, 0, len(s.Locations))
		for _, l := range s.Locations {
			rows = append(rows, []any{l.Territory, l.Ordinal, l.X, l.Y, l.Z})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"coffer_locations"},
			[]string{"territory", "ordinal", "x", "y", "z"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("inserting coffer_locations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit stats: %w", err)
	}

	slog.Debug("saved stats",
		"coffers", len(s.Coffers),
		"episodes", len(s.Episodes),
		"locations", len(s.Locations))
	return nil
}

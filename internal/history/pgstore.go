package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easycalchub/calchub/model"
)

// PgStore is a PostgreSQL-backed Store using pgx/v5.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PostgreSQL history store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Load retrieves the owner's entries, newest first.
func (s *PgStore) Load(ctx context.Context, owner string) ([]model.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, kind, slug, title, expression, result, inputs, created_at
		FROM history_entries
		WHERE owner = $1
		ORDER BY created_at DESC, id DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var inputsJSON []byte
		if err := rows.Scan(
			&e.ID, &e.Owner, &e.Kind, &e.Slug, &e.Title,
			&e.Expression, &e.Result, &inputsJSON, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if inputsJSON != nil {
			if err := json.Unmarshal(inputsJSON, &e.Inputs); err != nil {
				return nil, fmt.Errorf("unmarshal inputs: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Save replaces the owner's entries in a single transaction.
func (s *PgStore) Save(ctx context.Context, owner string, entries []model.HistoryEntry) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin history save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM history_entries WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	for _, e := range entries {
		inputsJSON, err := json.Marshal(e.Inputs)
		if err != nil {
			return fmt.Errorf("marshal inputs: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO history_entries (
				id, owner, kind, slug, title, expression, result, inputs, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, owner, e.Kind, e.Slug, e.Title,
			e.Expression, e.Result, inputsJSON, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert history entry: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// Ping checks database connectivity.
func (s *PgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the pages and blocks tables if they do not exist.
// Timestamps are stored as timestamptz; block properties as JSONB so
// arbitrary client-supplied keys round-trip.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id          TEXT PRIMARY KEY,
				user_id     TEXT NOT NULL,
				title       VARCHAR(255) NOT NULL,
				is_archived BOOLEAN NOT NULL DEFAULT FALSE,
				position    INTEGER NOT NULL DEFAULT 0,
				created_at  TIMESTAMPTZ NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL
			)
		`, tables.Pages),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				page_id    TEXT NOT NULL,
				user_id    TEXT NOT NULL,
				type       TEXT NOT NULL,
				content    TEXT NOT NULL DEFAULT '',
				position   INTEGER NOT NULL DEFAULT 0,
				properties JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Blocks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_idx ON %s (user_id)`, tables.Pages, tables.Pages),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_page_idx ON %s (page_id)`, tables.Blocks, tables.Blocks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_user_idx ON %s (user_id)`, tables.Blocks, tables.Blocks),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

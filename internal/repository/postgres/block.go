package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
)

// PostgresBlockRepository implements the BlockRepository interface
type PostgresBlockRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	txm    repositories.TransactionManager
	logger *slog.Logger
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(config *RepositoryConfig) repositories.BlockRepository {
	return &PostgresBlockRepository{
		pool:   config.Pool,
		tables: config.Tables,
		txm:    NewTransactionManager(config.Pool, config.Logger),
		logger: config.Logger,
	}
}

// ListByPage returns the page's blocks ordered by ascending position
func (r *PostgresBlockRepository) ListByPage(ctx context.Context, pageID string) ([]models.Block, error) {
	query := fmt.Sprintf(`
		SELECT id, page_id, user_id, type, content, position, properties, created_at, updated_at
		FROM %s
		WHERE page_id = $1
		ORDER BY position ASC
	`, r.tables.Blocks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, pageID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// ListByOwner returns every block created by the user
func (r *PostgresBlockRepository) ListByOwner(ctx context.Context, userID string) ([]models.Block, error) {
	query := fmt.Sprintf(`
		SELECT id, page_id, user_id, type, content, position, properties, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Blocks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// ReplaceAll deletes the page's blocks and inserts the normalized incoming
// set in one transaction, then touches the parent page's updatedAt.
func (r *PostgresBlockRepository) ReplaceAll(ctx context.Context, pageID, userID string, incoming []models.Block) error {
	return r.txm.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, r.pool)
		stamp := time.Now()

		// createdAt of previously persisted blocks must survive a replace
		// that resubmits their ids without timestamps
		existing := make(map[string]time.Time)
		rows, err := executor.Query(ctx, fmt.Sprintf(`SELECT id, created_at FROM %s WHERE page_id = $1`, r.tables.Blocks), pageID)
		if err != nil {
			return fmt.Errorf("replace blocks: %w", err)
		}
		for rows.Next() {
			var id string
			var createdAt time.Time
			if err := rows.Scan(&id, &createdAt); err != nil {
				rows.Close()
				return fmt.Errorf("replace blocks: %w", err)
			}
			existing[id] = createdAt
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("replace blocks: %w", err)
		}

		if _, err := executor.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE page_id = $1`, r.tables.Blocks), pageID); err != nil {
			return fmt.Errorf("replace blocks: %w", err)
		}

		insert := fmt.Sprintf(`
			INSERT INTO %s (id, page_id, user_id, type, content, position, properties, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, r.tables.Blocks)

		for _, b := range models.NormalizeReplacement(pageID, userID, incoming, existing, stamp, uuid.NewString) {
			if _, err := executor.Exec(ctx, insert,
				b.ID, b.PageID, b.UserID, b.Type, b.Content, b.Position, b.Properties, b.CreatedAt, b.UpdatedAt,
			); err != nil {
				return fmt.Errorf("insert block: %w", err)
			}
		}

		// Dangling pageID updates zero rows, which is tolerated
		if _, err := executor.Exec(ctx, fmt.Sprintf(`UPDATE %s SET updated_at = $2 WHERE id = $1`, r.tables.Pages), pageID, stamp); err != nil {
			return fmt.Errorf("touch page: %w", err)
		}
		return nil
	})
}

func scanBlocks(rows pgx.Rows) ([]models.Block, error) {
	blocks := make([]models.Block, 0)
	for rows.Next() {
		var b models.Block
		if err := rows.Scan(&b.ID, &b.PageID, &b.UserID, &b.Type, &b.Content, &b.Position, &b.Properties, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		if b.Properties == nil {
			b.Properties = map[string]any{}
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
)

// PostgresPageRepository implements the PageRepository interface
type PostgresPageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	txm    repositories.TransactionManager
	logger *slog.Logger
}

// NewPageRepository creates a new page repository
func NewPageRepository(config *RepositoryConfig) repositories.PageRepository {
	return &PostgresPageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		txm:    NewTransactionManager(config.Pool, config.Logger),
		logger: config.Logger,
	}
}

// ListByOwner returns the owner's non-archived pages, newest update first
func (r *PostgresPageRepository) ListByOwner(ctx context.Context, userID string) ([]models.Page, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, is_archived, position, created_at, updated_at
		FROM %s
		WHERE user_id = $1 AND is_archived = FALSE
		ORDER BY updated_at DESC, position DESC
	`, r.tables.Pages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := make([]models.Page, 0)
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.IsArchived, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetByID retrieves a page by ID
func (r *PostgresPageRepository) GetByID(ctx context.Context, pageID string) (*models.Page, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, is_archived, position, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Pages)

	var p models.Page
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, pageID).Scan(
		&p.ID, &p.UserID, &p.Title, &p.IsArchived, &p.Position, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &p, nil
}

// CountByOwner counts every page of the owner, archived included
func (r *PostgresPageRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, r.tables.Pages)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}

// Create persists a fully-prepared page record
func (r *PostgresPageRepository) Create(ctx context.Context, page *models.Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, is_archived, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Pages)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		page.ID, page.UserID, page.Title, page.IsArchived, page.Position, page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("page id %s already exists: %w", page.ID, domain.ErrValidation)
		}
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

// UpdateTitle overwrites the title and refreshes updatedAt
func (r *PostgresPageRepository) UpdateTitle(ctx context.Context, pageID, title string) (*models.Page, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, user_id, title, is_archived, position, created_at, updated_at
	`, r.tables.Pages)

	var p models.Page
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, pageID, title, time.Now()).Scan(
		&p.ID, &p.UserID, &p.Title, &p.IsArchived, &p.Position, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update title: %w", err)
	}
	return &p, nil
}

// Archive marks the page hidden
func (r *PostgresPageRepository) Archive(ctx context.Context, pageID string) (*models.Page, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET is_archived = TRUE, updated_at = $2
		WHERE id = $1
		RETURNING id, user_id, title, is_archived, position, created_at, updated_at
	`, r.tables.Pages)

	var p models.Page
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, pageID, time.Now()).Scan(
		&p.ID, &p.UserID, &p.Title, &p.IsArchived, &p.Position, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("archive page: %w", err)
	}
	return &p, nil
}

// Delete removes the page and cascades removal of its blocks; a nonexistent
// id is a no-op
func (r *PostgresPageRepository) Delete(ctx context.Context, pageID string) error {
	return r.txm.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, r.pool)

		if _, err := executor.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE page_id = $1`, r.tables.Blocks), pageID); err != nil {
			return fmt.Errorf("delete page blocks: %w", err)
		}
		if _, err := executor.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Pages), pageID); err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		return nil
	})
}

package repositories

import (
	"context"

	"noion/internal/domain/models"
)

// PageRepository defines data access operations for pages
type PageRepository interface {
	// ListByOwner lists the owner's non-archived pages, most recently
	// updated first
	ListByOwner(ctx context.Context, userID string) ([]models.Page, error)

	// GetByID retrieves a page by ID
	GetByID(ctx context.Context, pageID string) (*models.Page, error)

	// CountByOwner counts all of the owner's pages, archived included
	CountByOwner(ctx context.Context, userID string) (int, error)

	// Create persists a fully-prepared page record
	Create(ctx context.Context, page *models.Page) error

	// UpdateTitle overwrites the title and refreshes updatedAt
	UpdateTitle(ctx context.Context, pageID, title string) (*models.Page, error)

	// Archive marks a page hidden without removing its data
	Archive(ctx context.Context, pageID string) (*models.Page, error)

	// Delete removes the page and every block referencing it. Deleting a
	// nonexistent id is a no-op.
	Delete(ctx context.Context, pageID string) error
}

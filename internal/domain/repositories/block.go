package repositories

import (
	"context"

	"noion/internal/domain/models"
)

// BlockRepository defines data access operations for blocks. The unit of
// synchronization is a page's entire ordered block list; there is no
// targeted single-block write.
type BlockRepository interface {
	// ListByPage lists a page's blocks by ascending position
	ListByPage(ctx context.Context, pageID string) ([]models.Block, error)

	// ListByOwner lists every block created by the user, across all pages
	ListByOwner(ctx context.Context, userID string) ([]models.Block, error)

	// ReplaceAll discards every persisted block for the page and inserts
	// the normalized incoming set in one atomic step. The parent page's
	// updatedAt is touched when the page exists; a dangling pageID is
	// tolerated silently.
	ReplaceAll(ctx context.Context, pageID, userID string, incoming []models.Block) error
}

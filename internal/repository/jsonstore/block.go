package jsonstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
	"noion/internal/storage/jsonfile"
)

// now is swappable in tests that need deterministic timestamps
var now = time.Now

// BlockRepository implements repositories.BlockRepository over the file store
type BlockRepository struct {
	store  *jsonfile.Store
	logger *slog.Logger
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(store *jsonfile.Store, logger *slog.Logger) repositories.BlockRepository {
	return &BlockRepository{
		store:  store,
		logger: logger,
	}
}

// ListByPage returns the page's blocks ordered by ascending position
func (r *BlockRepository) ListByPage(ctx context.Context, pageID string) ([]models.Block, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}

	blocks := make([]models.Block, 0)
	for _, b := range ds.Blocks {
		if b.PageID == pageID {
			blocks = append(blocks, b)
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Position < blocks[j].Position
	})
	return blocks, nil
}

// ListByOwner returns every block created by the user
func (r *BlockRepository) ListByOwner(ctx context.Context, userID string) ([]models.Block, error) {
	ds, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}

	blocks := make([]models.Block, 0)
	for _, b := range ds.Blocks {
		if b.UserID == userID {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// ReplaceAll discards the page's persisted blocks and inserts the normalized
// incoming set. Positions become exactly 0..n-1 in submitted order.
// createdAt survives for blocks whose id was already persisted; the parent
// page's updatedAt is touched when the page exists.
func (r *BlockRepository) ReplaceAll(ctx context.Context, pageID, userID string, incoming []models.Block) error {
	err := r.store.Update(ctx, func(ds *models.Dataset) error {
		stamp := now()

		existing := make(map[string]time.Time)
		kept := ds.Blocks[:0]
		for _, b := range ds.Blocks {
			if b.PageID == pageID {
				existing[b.ID] = b.CreatedAt
				continue
			}
			kept = append(kept, b)
		}
		ds.Blocks = kept

		normalized := models.NormalizeReplacement(pageID, userID, incoming, existing, stamp, uuid.NewString)
		ds.Blocks = append(ds.Blocks, normalized...)

		for i := range ds.Pages {
			if ds.Pages[i].ID == pageID {
				ds.Pages[i].UpdatedAt = stamp
				break
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace blocks: %w", err)
	}
	return nil
}

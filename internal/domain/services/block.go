package services

import (
	"context"

	"noion/internal/domain/models"
)

// ReplaceBlocksRequest carries a full replacement of a page's block list.
// Seq orders autosave flushes per page; a request older than the
// last-applied sequence is dropped. Zero means unguarded (direct API calls).
type ReplaceBlocksRequest struct {
	UserID string         `json:"userId"`
	Blocks []models.Block `json:"blocks"`
	Seq    uint64         `json:"-"`
}

// BlockService defines business logic operations for block synchronization
type BlockService interface {
	// ListBlocks retrieves a page's blocks by ascending position
	ListBlocks(ctx context.Context, pageID string) ([]models.Block, error)

	// ReplaceBlocks replaces the page's entire block list
	ReplaceBlocks(ctx context.Context, pageID string, req *ReplaceBlocksRequest) error
}

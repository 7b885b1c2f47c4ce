package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"noion/internal/blocktypes"
	"noion/internal/config"
	"noion/internal/domain"
	"noion/internal/domain/models"
	"noion/internal/domain/repositories"
	"noion/internal/domain/services"
)

// blockService implements the BlockService interface
type blockService struct {
	blocks   repositories.BlockRepository
	registry *blocktypes.Registry
	logger   *slog.Logger

	mu          sync.Mutex
	lastApplied map[string]uint64 // pageID -> highest applied flush sequence
}

// NewBlockService creates a new block service
func NewBlockService(blocks repositories.BlockRepository, registry *blocktypes.Registry, logger *slog.Logger) services.BlockService {
	return &blockService{
		blocks:      blocks,
		registry:    registry,
		logger:      logger,
		lastApplied: make(map[string]uint64),
	}
}

// ListBlocks retrieves a page's blocks by ascending position
func (s *blockService) ListBlocks(ctx context.Context, pageID string) ([]models.Block, error) {
	return s.blocks.ListByPage(ctx, pageID)
}

// ReplaceBlocks replaces the page's entire block list. Sequenced requests
// older than the last applied flush for the page are dropped, so a slow
// in-flight save can never overwrite a newer one that already landed.
func (s *blockService) ReplaceBlocks(ctx context.Context, pageID string, req *services.ReplaceBlocksRequest) error {
	if err := s.validateReplaceRequest(req); err != nil {
		return err
	}

	if req.Seq != 0 && !s.admit(pageID, req.Seq) {
		s.logger.Debug("stale block flush dropped",
			"page_id", pageID,
			"seq", req.Seq,
		)
		return nil
	}

	if err := s.blocks.ReplaceAll(ctx, pageID, req.UserID, req.Blocks); err != nil {
		return err
	}

	s.logger.Debug("blocks replaced",
		"page_id", pageID,
		"count", len(req.Blocks),
		"seq", req.Seq,
	)
	return nil
}

// admit records seq as applied when it is newer than every previous flush
// for the page
func (s *blockService) admit(pageID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.lastApplied[pageID] {
		return false
	}
	s.lastApplied[pageID] = seq
	return true
}

func (s *blockService) validateReplaceRequest(req *services.ReplaceBlocksRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if len(req.Blocks) > config.MaxBlocksPerReplace {
		return fmt.Errorf("%w: too many blocks (%d > %d)", domain.ErrValidation, len(req.Blocks), config.MaxBlocksPerReplace)
	}
	for i, b := range req.Blocks {
		if !s.registry.Valid(b.Type) {
			return fmt.Errorf("%w: blocks[%d]: unknown block type %q", domain.ErrValidation, i, b.Type)
		}
		if len(b.Content) > config.MaxBlockContentLength {
			return fmt.Errorf("%w: blocks[%d]: content too long", domain.ErrValidation, i)
		}
	}
	return nil
}
